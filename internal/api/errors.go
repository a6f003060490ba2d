package api

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValidationError reports client-side field problems. Nothing was sent over
// the network when this is returned.
type ValidationError struct {
	Fields map[string]string // field -> problem
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// AuthError means the backend rejected the credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "invalid credentials"
	}
	return e.Message
}

// NetworkError means the request could not complete at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// NotFoundError means the mutation target does not exist server-side.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ServerError is any other non-2xx response.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Body)
}

// retagNotFound fills in the entity identity on 404s so callers can report
// "doctor 12 not found" instead of a raw path.
func retagNotFound(err error, resource string, id int) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return &NotFoundError{Resource: resource, ID: strconv.Itoa(id)}
	}
	return err
}
