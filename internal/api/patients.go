package api

import (
	"context"
	"net/http"
	"strconv"
)

// PatientRepo handles the Paciente resource.
type PatientRepo struct {
	c *Client
}

func NewPatientRepo(c *Client) *PatientRepo { return &PatientRepo{c: c} }

func (r *PatientRepo) List(ctx context.Context) ([]Patient, error) {
	data, err := r.c.do(ctx, http.MethodGet, "/api/Paciente", true, nil)
	if err != nil {
		return nil, err
	}
	return decodeValues[Patient](data)
}

func (r *PatientRepo) Create(ctx context.Context, in PatientInput) (Patient, error) {
	var out Patient
	if err := r.c.doJSON(ctx, http.MethodPost, "/api/Paciente", true, in, &out); err != nil {
		return Patient{}, err
	}
	return out, nil
}

func (r *PatientRepo) Update(ctx context.Context, id int, in PatientInput) error {
	err := r.c.doJSON(ctx, http.MethodPut, "/api/Paciente/"+strconv.Itoa(id), true, in, nil)
	return retagNotFound(err, "patient", id)
}

func (r *PatientRepo) Delete(ctx context.Context, id int) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/api/Paciente/"+strconv.Itoa(id), true, nil, nil)
	return retagNotFound(err, "patient", id)
}
