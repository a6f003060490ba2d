package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, 5*time.Second, func() string { return token }, zerolog.Nop())
	return c, srv
}

func TestPatientListSendsBearerAndUnwraps(t *testing.T) {
	var gotAuth string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/api/Paciente", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"$values":[{"idPaciente":1,"nombre":"Juan Pérez","genero":"M"}]}`))
	}), "tok123")

	got, err := NewPatientRepo(c).List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
	require.Len(t, got, 1)
	require.Equal(t, "Juan Pérez", got[0].Name)
	require.Equal(t, GenderMale, got[0].Gender)
}

func TestSampleListSendsNoAuth(t *testing.T) {
	var gotAuth string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"$values":[]}`))
	}), "tok123")

	got, err := NewSampleRepo(c).List(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth, "sample listing is unauthenticated")
	require.Empty(t, got)
}

func TestSampleDeleteSendsAuth(t *testing.T) {
	var gotAuth, gotMethod, gotPath string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}), "tok123")

	require.NoError(t, NewSampleRepo(c).Delete(context.Background(), 4))
	require.Equal(t, "Bearer tok123", gotAuth)
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/api/Muestra/4", gotPath)
}

func TestDeleteMissingIDIsNotFound(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}), "tok")

	err := NewDoctorRepo(c).Delete(context.Background(), 42)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "doctor", nf.Resource)
	require.Equal(t, "42", nf.ID)
}

func TestCreateDecodesServerAssignedID(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in PatientInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "Ana", in.Name)
		out := Patient{ID: 9, Name: in.Name, BirthDate: in.BirthDate, Gender: in.Gender}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(out)
	}), "tok")

	got, err := NewPatientRepo(c).Create(context.Background(), PatientInput{
		Name: "Ana", BirthDate: "1990-01-01", Gender: GenderFemale,
	})
	require.NoError(t, err)
	require.Equal(t, 9, got.ID)
	require.Equal(t, "Ana", got.Name)
}

func TestServerErrorCarriesStatusAndBody(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}), "tok")

	_, err := NewDoctorRepo(c).List(context.Background())
	var srv *ServerError
	require.ErrorAs(t, err, &srv)
	require.Equal(t, http.StatusInternalServerError, srv.Status)
	require.Contains(t, srv.Body, "boom")
}

func TestServerErrorBodyCutAtRuneBoundary(t *testing.T) {
	// the cut point lands inside the first two-byte rune
	body := strings.Repeat("a", maxErrorBodyLen-1) + "ééé"
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	}), "tok")

	_, err := NewSampleRepo(c).List(context.Background())
	var srv *ServerError
	require.ErrorAs(t, err, &srv)
	require.True(t, utf8.ValidString(srv.Body))
	require.Len(t, srv.Body, maxErrorBodyLen-1)
}

func TestNotFoundErrorMessage(t *testing.T) {
	require.Equal(t, "doctor 42 not found", (&NotFoundError{Resource: "doctor", ID: "42"}).Error())
	require.Equal(t, "/api/Muestra not found", (&NotFoundError{Resource: "/api/Muestra"}).Error())
}

func TestNetworkFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listening anymore

	c := NewClient(url, 2*time.Second, nil, zerolog.Nop())
	_, err := NewSampleRepo(c).List(context.Background())
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	require.Error(t, errors.Unwrap(ne))
}

func TestRequestIDsAreUnique(t *testing.T) {
	var calls int64
	seen := make(chan string, 2)
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		seen <- r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"$values":[]}`))
	}), "")

	repo := NewSampleRepo(c)
	_, err := repo.List(context.Background())
	require.NoError(t, err)
	_, err = repo.List(context.Background())
	require.NoError(t, err)

	a, b := <-seen, <-seen
	require.NotEqual(t, a, b)
}
