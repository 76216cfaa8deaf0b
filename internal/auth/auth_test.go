package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/httpx"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]string) {
	t.Helper()
	paths := &[]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*paths = append(*paths, r.URL.Path)
		if handler != nil {
			handler(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return NewClient(httpx.NewClient(server.URL, nil)), paths
}

func validForm() RegisterForm {
	return RegisterForm{
		Name:         "Jo Smith",
		Email:        "jo@example.com",
		Password:     "hunter2hunter2",
		RePassword:   "hunter2hunter2",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "or",
	}
}

func TestRegister_LocalChecksFirst(t *testing.T) {
	client, paths := newTestClient(t, nil)

	form := validForm()
	form.RePassword = "different"
	_, err := client.Register(context.Background(), form)
	require.True(t, errors.Is(err, ErrPasswordMismatch))

	short := validForm()
	short.Password, short.RePassword = "short", "short"
	_, err = client.Register(context.Background(), short)
	require.Error(t, err, "minimum length is enforced locally")

	assert.Empty(t, *paths, "rejected forms never reach the server")
}

func TestRegister_NormalizesAndPosts(t *testing.T) {
	var got RegisterForm
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"message":"Welcome, Jo!"}`))
	})

	msg, err := client.Register(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Jo!", msg)
	assert.Equal(t, "OR", got.State, "state is uppercased")
	assert.Equal(t, "US", got.CountryCode, "country defaults to US")
}

func TestResetPassword_LocalChecks(t *testing.T) {
	client, paths := newTestClient(t, nil)
	ctx := context.Background()

	_, err := client.ResetPassword(ctx, "  ", "hunter2hunter2", "hunter2hunter2")
	assert.True(t, errors.Is(err, ErrMissingToken))

	_, err = client.ResetPassword(ctx, "tok", "short", "short")
	assert.True(t, errors.Is(err, ErrPasswordTooShort))

	_, err = client.ResetPassword(ctx, "tok", "hunter2hunter2", "different")
	assert.True(t, errors.Is(err, ErrPasswordMismatch))

	assert.Empty(t, *paths)
}

func TestForgotPassword_SurfacesResetLink(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Check your inbox.","reset_link":"http://localhost/reset?token=abc"}`))
	})

	msg, link, err := client.ForgotPassword(context.Background(), " jo@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Check your inbox.", msg)
	assert.Equal(t, "http://localhost/reset?token=abc", link)
}
