// Package state persists the small per-profile identity blob the browser kept
// in localStorage: the anonymous session token, the admin key and mode flag,
// the review voter token, and the last fetched product list. Everything here
// is a best-effort cache with no expiry.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const profileFile = "profile.json"

type profile struct {
	SessionID      string          `json:"session_id"`
	AdminKey       string          `json:"admin_key,omitempty"`
	AdminMode      bool            `json:"admin_mode,omitempty"`
	VoterToken     string          `json:"voter_token,omitempty"`
	CachedProducts json.RawMessage `json:"cached_products,omitempty"`
}

type Store struct {
	mu      sync.Mutex
	path    string
	profile profile
}

// Open loads the profile from dir, creating the directory and a fresh session
// token when nothing usable is there. A corrupt file starts fresh rather than
// failing; losing a cart token is cheaper than refusing to start.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}
	s := &Store{path: filepath.Join(dir, profileFile)}

	raw, err := os.ReadFile(s.path)
	if err == nil {
		_ = json.Unmarshal(raw, &s.profile)
	}
	if s.profile.SessionID == "" {
		s.profile.SessionID = newToken("session")
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.SessionID
}

// RotateSession replaces the session token after a successful checkout. The
// new token has no server-side cart, which is what empties the displayed cart.
func (s *Store) RotateSession() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.SessionID = newToken("session")
	if err := s.save(); err != nil {
		return "", err
	}
	return s.profile.SessionID, nil
}

func (s *Store) AdminKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.AdminKey
}

// SetAdminKey persists a key that already passed the login round trip and
// flips admin mode on.
func (s *Store) SetAdminKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.AdminKey = key
	s.profile.AdminMode = key != ""
	return s.save()
}

func (s *Store) AdminMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.AdminMode
}

func (s *Store) ClearAdminKey() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.AdminKey = ""
	s.profile.AdminMode = false
	return s.save()
}

// VoterToken returns the per-profile helpfulness voter token, generating and
// persisting one on first use.
func (s *Store) VoterToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.VoterToken == "" {
		s.profile.VoterToken = newToken("voter")
		if err := s.save(); err != nil {
			return "", err
		}
	}
	return s.profile.VoterToken, nil
}

func (s *Store) CachedProducts() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.profile.CachedProducts...)
}

func (s *Store) SetCachedProducts(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.CachedProducts = append(json.RawMessage(nil), raw...)
	return s.save()
}

func (s *Store) save() error {
	encoded, err := json.MarshalIndent(&s.profile, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// newToken keeps the original wire shape: prefix, millis, short random tail.
func newToken(prefix string) string {
	tail := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), tail)
}
