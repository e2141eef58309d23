package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// PatientAPI is the patient resource.
type PatientAPI interface {
	GetPatient(ctx context.Context, id string) (*model.PatientRecord, error)
	CreatePatient(ctx context.Context, rec model.PatientRecord) (*model.PatientRecord, error)
	UpdatePatient(ctx context.Context, id string, rec model.PatientRecord) (*model.PatientRecord, error)
}

var _ PatientAPI = (*Client)(nil)

func (c *Client) GetPatient(ctx context.Context, id string) (*model.PatientRecord, error) {
	var out model.PatientRecord
	err := c.call(ctx, request{op: "patients.get", method: http.MethodGet, path: "/patients/" + url.PathEscape(id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, rec model.PatientRecord) (*model.PatientRecord, error) {
	rec.ID = ""
	var out model.PatientRecord
	err := c.call(ctx, request{op: "patients.create", method: http.MethodPost, path: "/patients", body: rec}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id string, rec model.PatientRecord) (*model.PatientRecord, error) {
	var out model.PatientRecord
	err := c.call(ctx, request{op: "patients.update", method: http.MethodPut, path: "/patients/" + url.PathEscape(id), body: rec}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
