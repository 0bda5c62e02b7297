package backend

import (
	"context"
	"fmt"
	"net/http"

	"siuportal/internal/domain/registration"
)

// ListMyRegistrations fetches one user's registrations, every kind
// and status included. This list feeds the status reconciler.
func (c *Client) ListMyRegistrations(ctx context.Context, token string, userID int) ([]registration.Registration, error) {
	var out []registration.Registration
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pendaftar/user/%d", userID), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRegistrations fetches every registration in the system. Admin
// token required.
func (c *Client) ListRegistrations(ctx context.Context, token string) ([]registration.Registration, error) {
	var out []registration.Registration
	if err := c.do(ctx, http.MethodGet, "/pendaftar", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitInput is a new registration request. ActivityID stays zero for
// membership applications.
type SubmitInput struct {
	ClubID     int    `json:"ukm_id"`
	ActivityID int    `json:"kegiatan_id,omitempty"`
	Kind       string `json:"type"`
}

// SubmitRegistration files a membership or activity application for
// the caller. The backend stores it as pending.
func (c *Client) SubmitRegistration(ctx context.Context, token string, in SubmitInput) (registration.Registration, error) {
	var out registration.Registration
	if err := c.do(ctx, http.MethodPost, "/pendaftar", token, in, &out); err != nil {
		return registration.Registration{}, err
	}
	return out, nil
}

// UpdateRegistrationStatus records an admin decision. Admin token
// required.
func (c *Client) UpdateRegistrationStatus(ctx context.Context, token string, id int, status string) error {
	payload := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/pendaftar/%d", id), token, payload, nil)
}
