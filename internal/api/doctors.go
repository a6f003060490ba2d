package api

import (
	"context"
	"net/http"
	"strconv"
)

// DoctorRepo handles the MedicoUser resource.
type DoctorRepo struct {
	c *Client
}

func NewDoctorRepo(c *Client) *DoctorRepo { return &DoctorRepo{c: c} }

func (r *DoctorRepo) List(ctx context.Context) ([]Doctor, error) {
	data, err := r.c.do(ctx, http.MethodGet, "/api/MedicoUser", true, nil)
	if err != nil {
		return nil, err
	}
	return decodeValues[Doctor](data)
}

func (r *DoctorRepo) Create(ctx context.Context, in DoctorInput) (Doctor, error) {
	var out Doctor
	if err := r.c.doJSON(ctx, http.MethodPost, "/api/MedicoUser", true, in, &out); err != nil {
		return Doctor{}, err
	}
	return out, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int, in DoctorInput) error {
	err := r.c.doJSON(ctx, http.MethodPut, "/api/MedicoUser/"+strconv.Itoa(id), true, in, nil)
	return retagNotFound(err, "doctor", id)
}

func (r *DoctorRepo) Delete(ctx context.Context, id int) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/api/MedicoUser/"+strconv.Itoa(id), true, nil, nil)
	return retagNotFound(err, "doctor", id)
}
