package backend

import (
	"context"
	"fmt"
	"net/http"

	"siuportal/internal/domain/club"
)

// ListClubs fetches every UKM with its embedded rosters, activities
// and reports. The endpoint is public.
func (c *Client) ListClubs(ctx context.Context) ([]club.Club, error) {
	var out []club.Club
	if err := c.do(ctx, http.MethodGet, "/ukm", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClub fetches a single UKM.
// POST: returns ErrNotFound for unknown ids
func (c *Client) GetClub(ctx context.Context, id int) (club.Club, error) {
	var out club.Club
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/ukm/%d", id), "", nil, &out); err != nil {
		return club.Club{}, err
	}
	return out, nil
}

// CreateClub adds a UKM. Admin token required.
func (c *Client) CreateClub(ctx context.Context, token string, in club.Club) (club.Club, error) {
	var out club.Club
	if err := c.do(ctx, http.MethodPost, "/ukm", token, in, &out); err != nil {
		return club.Club{}, err
	}
	return out, nil
}

// UpdateClub replaces a UKM's editable fields. Admin token required.
func (c *Client) UpdateClub(ctx context.Context, token string, in club.Club) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/ukm/%d", in.ID), token, in, nil)
}

// DeleteClub removes a UKM and everything under it. Admin token
// required.
func (c *Client) DeleteClub(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/ukm/%d", id), token, nil, nil)
}

// CreateActivity adds a kegiatan under a club. Admin token required.
func (c *Client) CreateActivity(ctx context.Context, token string, clubID int, in club.Activity) (club.Activity, error) {
	var out club.Activity
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/ukm/%d/kegiatan", clubID), token, in, &out); err != nil {
		return club.Activity{}, err
	}
	return out, nil
}

// UpdateActivity replaces a kegiatan's editable fields. Admin token
// required.
func (c *Client) UpdateActivity(ctx context.Context, token string, clubID int, in club.Activity) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/ukm/%d/kegiatan/%d", clubID, in.ID), token, in, nil)
}

// DeleteActivity removes a kegiatan. Admin token required.
func (c *Client) DeleteActivity(ctx context.Context, token string, clubID, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/ukm/%d/kegiatan/%d", clubID, id), token, nil, nil)
}

// AddMember appends a roster entry to a club. Admin token required.
func (c *Client) AddMember(ctx context.Context, token string, clubID int, in club.MemberEntry) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/ukm/%d/anggota", clubID), token, in, nil)
}

// RemoveMember drops a roster entry. Admin token required.
func (c *Client) RemoveMember(ctx context.Context, token string, clubID, entryID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/ukm/%d/anggota/%d", clubID, entryID), token, nil, nil)
}
