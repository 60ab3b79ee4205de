package api

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"mediassist/internal/clinic"
	"mediassist/internal/session"
)

const (
	loginPath  = "auth/login"
	signupPath = "auth/signup"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and stores the returned token and profile in the
// client's session.
func (c *Client) Login(ctx context.Context, creds clinic.Credentials) (*session.User, error) {
	return c.authenticate(ctx, loginPath, loginRequest{Email: creds.Email, Password: creds.Password})
}

// Signup registers a new account and signs it in.
func (c *Client) Signup(ctx context.Context, creds clinic.Credentials) (*session.User, error) {
	return c.authenticate(ctx, signupPath, signupRequest{
		Username: creds.Username,
		Email:    creds.Email,
		Password: creds.Password,
	})
}

// Logout forgets the session locally.
func (c *Client) Logout() {
	c.session.Clear()
}

func (c *Client) authenticate(ctx context.Context, path string, req any) (*session.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	res, err := c.post(ctx, path, body)
	if err != nil {
		c.log.Warn("auth request failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	if !res.Success {
		return nil, &RejectedError{Message: res.Message}
	}
	if res.Token == "" || res.User == nil {
		return nil, &TransportError{Path: path, Err: errors.New("response is missing token or user")}
	}
	c.session.Set(res.Token, res.User)
	c.log.Info("signed in", zap.String("email", res.User.Email))
	return c.session.User(), nil
}

// AuthFailureMessage is the inline message shown when sign-in fails.
func AuthFailureMessage(err error) string {
	if msg := RejectionMessage(err); msg != "" {
		return msg
	}
	var rej *RejectedError
	if errors.As(err, &rej) {
		return "Something went wrong"
	}
	return "Error occurred"
}
