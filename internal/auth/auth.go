// Package auth wraps the customer account endpoints: register, login,
// forgot-password, reset-password. The client repeats only the checks the
// signup pages did locally (password match, minimum length); everything else
// is the server's call.
package auth

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/forms"
	"storefront/internal/httpx"
)

var (
	ErrPasswordMismatch = errors.New("password and re-entered password must match")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrMissingToken     = errors.New("invalid reset link, request a new password reset email")
)

type RegisterForm struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	RePassword   string `json:"-"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	CountryCode  string `json:"country_code"`
}

type Client struct {
	http *httpx.Client
}

func NewClient(http *httpx.Client) *Client {
	return &Client{http: http}
}

type message struct {
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, form RegisterForm) (string, error) {
	if form.Password != form.RePassword {
		return "", ErrPasswordMismatch
	}
	form.State = strings.ToUpper(strings.TrimSpace(form.State))
	if form.CountryCode == "" {
		form.CountryCode = "US"
	}
	if err := forms.Validate.Struct(form); err != nil {
		return "", err
	}

	var reply message
	if err := c.http.Post(ctx, "/auth/register", form, &reply); err != nil {
		return "", err
	}
	if reply.Message == "" {
		reply.Message = "Account created."
	}
	return reply.Message, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: strings.TrimSpace(email), Password: password}

	var reply message
	if err := c.http.Post(ctx, "/auth/login", body, &reply); err != nil {
		return "", err
	}
	if reply.Message == "" {
		reply.Message = "Login successful."
	}
	return reply.Message, nil
}

// ForgotPassword returns the server's message and, in development setups,
// an inline reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (msg, resetLink string, err error) {
	body := struct {
		Email string `json:"email"`
	}{Email: strings.TrimSpace(email)}

	var reply struct {
		Message   string `json:"message"`
		ResetLink string `json:"reset_link"`
	}
	if err := c.http.Post(ctx, "/auth/forgot-password", body, &reply); err != nil {
		return "", "", err
	}
	if reply.Message == "" {
		reply.Message = "If the account exists, a reset link has been sent."
	}
	return reply.Message, reply.ResetLink, nil
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword, verifyPassword string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	if len(newPassword) < 8 {
		return "", ErrPasswordTooShort
	}
	if newPassword != verifyPassword {
		return "", ErrPasswordMismatch
	}

	body := struct {
		Token          string `json:"token"`
		NewPassword    string `json:"new_password"`
		VerifyPassword string `json:"verify_password"`
	}{Token: token, NewPassword: newPassword, VerifyPassword: verifyPassword}

	var reply message
	if err := c.http.Post(ctx, "/auth/reset-password", body, &reply); err != nil {
		return "", err
	}
	if reply.Message == "" {
		reply.Message = "Password reset successful."
	}
	return reply.Message, nil
}
