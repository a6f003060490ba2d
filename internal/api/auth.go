package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labsys/labclient/internal/session"
)

// Minimal local@domain.tld shape; the backend does the real validation.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthClient authenticates against the backend. It never persists anything;
// the caller owns the session store.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID int    `json:"idMedico"`
	Name   string `json:"nombre"`
	Email  string `json:"correo"`
	Role   string `json:"rol"`
}

type errorBody struct {
	Message string `json:"message"`
}

// Login validates locally, then exchanges credentials for a session. Local
// validation failures return *ValidationError with no request issued; a
// rejected login returns *AuthError carrying the server's message.
func (a *AuthClient) Login(ctx context.Context, email, password string) (session.Session, error) {
	fields := map[string]string{}
	email = strings.TrimSpace(email)
	if email == "" {
		fields["email"] = "required"
	} else if !emailRe.MatchString(email) {
		fields["email"] = "invalid email"
	}
	if password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return session.Session{}, &ValidationError{Fields: fields}
	}

	var resp loginResponse
	err := a.c.doJSON(ctx, http.MethodPost, "/api/Auth/login", false, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		// Any non-2xx on this endpoint is a rejected login, whatever the
		// status. Transport failures stay NetworkError.
		if srv := asServerError(err); srv != nil {
			return session.Session{}, &AuthError{Message: serverMessage(srv.Body)}
		}
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return session.Session{}, &AuthError{}
		}
		return session.Session{}, err
	}
	return session.Session{
		Token:  resp.Token,
		UserID: resp.UserID,
		Name:   resp.Name,
		Email:  resp.Email,
		Role:   resp.Role,
	}, nil
}

type resetRequest struct {
	Email string `json:"correo"`
}

type resetResponse struct {
	Success bool   `json:"Exito"`
	Message string `json:"Mensaje"`
}

// RequestPasswordReset asks the backend to start a password reset for email.
// The returned message is user-facing either way.
func (a *AuthClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || !emailRe.MatchString(email) {
		return "", &ValidationError{Fields: map[string]string{"email": "invalid email"}}
	}
	var resp resetResponse
	if err := a.c.doJSON(ctx, http.MethodPost, "/api/Restablecer/solicitar", false, resetRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &ServerError{Status: http.StatusOK, Body: resp.Message}
	}
	return resp.Message, nil
}

func asServerError(err error) *ServerError {
	var srv *ServerError
	if errors.As(err, &srv) {
		return srv
	}
	return nil
}

// serverMessage extracts {message} from an error body, defaulting when absent.
func serverMessage(body string) string {
	var eb errorBody
	if err := json.Unmarshal([]byte(body), &eb); err == nil && strings.TrimSpace(eb.Message) != "" {
		return eb.Message
	}
	return "invalid credentials"
}
