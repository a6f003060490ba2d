package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeSampleBackend stores samples in memory and speaks the $values envelope.
type fakeSampleBackend struct {
	mu     sync.Mutex
	nextID int
	items  []Sample
}

func (b *fakeSampleBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{"$id": "1", "$values": b.items})
	case http.MethodPost:
		var in SampleInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.nextID++
		s := Sample{ID: b.nextID, Name: in.Name}
		b.items = append(b.items, s)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(s)
	default:
		http.NotFound(w, r)
	}
}

func TestCreateThenListRoundTrip(t *testing.T) {
	backend := &fakeSampleBackend{}
	c, _ := testClient(t, backend, "tok")
	repo := NewSampleRepo(c)
	ctx := context.Background()

	created, err := repo.Create(ctx, SampleInput{Name: "Sangre"})
	require.NoError(t, err)
	require.NotZero(t, created.ID, "server assigns the id")

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Sangre", listed[0].Name)
	require.Equal(t, created.ID, listed[0].ID)

	_, err = repo.Create(ctx, SampleInput{Name: "Orina"})
	require.NoError(t, err)
	listed, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

// Guards against hidden retries: one repository call is exactly one request.
func TestNoRetries(t *testing.T) {
	var calls int
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}), "tok")

	_, err := NewSampleRepo(c).List(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, calls)

	c2 := NewClient("http://127.0.0.1:1", time.Second, nil, zerolog.Nop())
	_, err = NewSampleRepo(c2).List(context.Background())
	require.Error(t, err)
}
