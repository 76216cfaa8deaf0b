package adminops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/httpx"
	"storefront/internal/state"
)

func newTestConsole(t *testing.T, handler http.Handler) (*Console, *state.Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	profile, err := state.Open(t.TempDir())
	require.NoError(t, err)

	client := httpx.NewClient(server.URL, nil)
	client.SetAdminKeyProvider(profile.AdminKey)
	return NewConsole(client, profile, nil), profile, server
}

func TestConsole_LoginStoresOnlyVerifiedKeys(t *testing.T) {
	console, profile, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Key string `json:"key"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Key != "sekrit" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid admin key"}`))
		}
	}))

	err := console.Login(context.Background(), "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid admin key", httpx.Message(err))
	assert.False(t, console.LoggedIn(), "a rejected key must not be stored")

	require.NoError(t, console.Login(context.Background(), "  sekrit  "))
	assert.True(t, console.LoggedIn())
	assert.Equal(t, "sekrit", profile.AdminKey(), "the key is trimmed before storing")

	require.NoError(t, console.Logout())
	assert.False(t, console.LoggedIn())
}

func TestConsole_LoginRejectsBlankKey(t *testing.T) {
	called := false
	console, _, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := console.Login(context.Background(), "   ")
	require.Error(t, err)
	assert.False(t, called, "a blank key never reaches the server")
}

func TestConsole_CreateProductJSON(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	console, _, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":7,"name":"LED Desk Lamp"}`))
	}))

	product, err := console.CreateProduct(context.Background(), ProductForm{
		Name:        "LED Desk Lamp",
		Description: "Warm white.",
		Price:       29.99,
		Stock:       40,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, product.ID)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "LED Desk Lamp", gotBody["name"])
	// Unset optionals are sent as explicit nulls, not omitted.
	category, present := gotBody["category"]
	assert.True(t, present)
	assert.Nil(t, category)
}

func TestConsole_CreateProductMultipartWhenImageAttached(t *testing.T) {
	image := filepath.Join(t.TempDir(), "lamp.jpg")
	require.NoError(t, os.WriteFile(image, []byte("jpegbytes"), 0o600))

	var gotContentType string
	console, _, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "LED Desk Lamp", r.FormValue("name"))
		_, header, err := r.FormFile("image_file")
		require.NoError(t, err)
		assert.Equal(t, "lamp.jpg", header.Filename)
		w.Write([]byte(`{"id":7}`))
	}))

	_, err := console.CreateProduct(context.Background(), ProductForm{
		Name:        "LED Desk Lamp",
		Description: "Warm white.",
		Price:       29.99,
		ImagePath:   image,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data"), "content type = %s", gotContentType)
}

func TestConsole_CreateProductValidates(t *testing.T) {
	called := false
	console, _, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := console.CreateProduct(context.Background(), ProductForm{Name: "No price"})
	require.Error(t, err)
	assert.False(t, called, "an invalid form never reaches the server")
}

func TestConsole_DeleteRequiresConfirmation(t *testing.T) {
	var deleted bool
	console, _, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deleted = r.Method == http.MethodDelete
	}))

	err := console.DeleteProduct(context.Background(), 7, false)
	require.True(t, errors.Is(err, ErrNotConfirmed))
	assert.False(t, deleted, "an unconfirmed delete must not go out")

	require.NoError(t, console.DeleteProduct(context.Background(), 7, true))
	assert.True(t, deleted)
}

func TestConsole_ModerateReviewValidatesStatus(t *testing.T) {
	var paths []string
	console, _, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`[]`))
	}))

	_, err := console.ModerateReview(context.Background(), 3, "maybe")
	require.Error(t, err)
	assert.Empty(t, paths)

	remaining, err := console.ModerateReview(context.Background(), 3, ReviewApproved)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	// Moderation posts, then refetches the pending list.
	require.Equal(t, []string{"/admin/reviews/3/moderate", "/admin/reviews/pending"}, paths)
}

func TestConsole_SetTicketStatusValidates(t *testing.T) {
	var paths []string
	console, _, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`[]`))
	}))

	_, err := console.SetTicketStatus(context.Background(), 9, "closed")
	require.Error(t, err)
	assert.Empty(t, paths)

	_, err = console.SetTicketStatus(context.Background(), 9, "in_progress")
	require.NoError(t, err)
	require.Equal(t, []string{"/admin/support/tickets/9/status", "/admin/support/tickets"}, paths)
}

func TestConsole_AdminKeyAttachedAfterLogin(t *testing.T) {
	var keys []string
	console, _, _ := newTestConsole(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("X-Admin-Key"))
		w.Write([]byte(`[]`))
	}))

	require.NoError(t, console.Login(context.Background(), "sekrit"))
	_, err := console.PendingReviews(context.Background())
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.Empty(t, keys[0], "login itself carries no key header yet")
	assert.Equal(t, "sekrit", keys[1])
}
