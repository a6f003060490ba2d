package api

import (
	"context"
	"net/http"
	"strconv"
)

// SampleRepo handles the Muestra resource.
//
// The backend exposes an inconsistent trust boundary here: listing samples
// requires no authentication while deleting one does. Kept as the backend
// defines it; flagged for review rather than papered over.
type SampleRepo struct {
	c *Client
}

func NewSampleRepo(c *Client) *SampleRepo { return &SampleRepo{c: c} }

func (r *SampleRepo) List(ctx context.Context) ([]Sample, error) {
	data, err := r.c.do(ctx, http.MethodGet, "/api/Muestra", false, nil)
	if err != nil {
		return nil, err
	}
	return decodeValues[Sample](data)
}

func (r *SampleRepo) Create(ctx context.Context, in SampleInput) (Sample, error) {
	var out Sample
	if err := r.c.doJSON(ctx, http.MethodPost, "/api/Muestra", true, in, &out); err != nil {
		return Sample{}, err
	}
	return out, nil
}

func (r *SampleRepo) Update(ctx context.Context, id int, in SampleInput) error {
	err := r.c.doJSON(ctx, http.MethodPut, "/api/Muestra/"+strconv.Itoa(id), true, in, nil)
	return retagNotFound(err, "sample", id)
}

func (r *SampleRepo) Delete(ctx context.Context, id int) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/api/Muestra/"+strconv.Itoa(id), true, nil, nil)
	return retagNotFound(err, "sample", id)
}
