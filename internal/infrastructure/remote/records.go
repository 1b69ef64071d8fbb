package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Bash0121/FHU-social-club/internal/core/domain"
)

// listResponse is the backend's document-list envelope. Total counts
// every match, Documents holds at most the requested limit.
type listResponse[T any] struct {
	Total     int `json:"total"`
	Documents []T `json:"documents"`
}

// MemberByUserID looks up the Member row whose memberId equals id.
// The query carries limit(1); at most one row is ever expected because
// memberId is unique across the collection. (nil, nil) means the
// profile has not been provisioned yet. More than one match is a
// data-integrity violation surfaced as domain.ErrMemberConflict, never
// silently ignored.
func (c *Client) MemberByUserID(ctx context.Context, id string) (*domain.Member, error) {
	q := NewListQuery().Equal("memberId", id).Limit(1)
	var res listResponse[domain.Member]
	path := c.collectionPath(c.cfg.MembersCollection) + "?" + q.Encode()
	if err := c.do(ctx, "member_by_user_id", http.MethodGet, path, nil, &res); err != nil {
		return nil, fmt.Errorf("member by user id: %w", err)
	}
	if res.Total > 1 {
		return nil, fmt.Errorf("memberId %s matched %d rows: %w", id, res.Total, domain.ErrMemberConflict)
	}
	if len(res.Documents) == 0 {
		return nil, nil
	}
	m := res.Documents[0]
	return &m, nil
}

// Members lists the members collection in backend order.
func (c *Client) Members(ctx context.Context) ([]domain.Member, error) {
	var res listResponse[domain.Member]
	if err := c.do(ctx, "members", http.MethodGet, c.collectionPath(c.cfg.MembersCollection), nil, &res); err != nil {
		return nil, fmt.Errorf("members: %w", err)
	}
	return res.Documents, nil
}

// CreateMember inserts a Member row. Used by registration and by the
// explicit profile repair step.
func (c *Client) CreateMember(ctx context.Context, member domain.Member) (*domain.Member, error) {
	var created domain.Member
	if err := c.do(ctx, "create_member", http.MethodPost, c.collectionPath(c.cfg.MembersCollection), member, &created); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return &created, nil
}

// UpdateMember applies a partial update; only set fields are sent.
func (c *Client) UpdateMember(ctx context.Context, id string, patch domain.MemberPatch) (*domain.Member, error) {
	var updated domain.Member
	path := c.collectionPath(c.cfg.MembersCollection) + "/" + id
	if err := c.do(ctx, "update_member", http.MethodPatch, path, patch.Fields(), &updated); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return &updated, nil
}

// Events lists the events collection ordered ascending by eventDate.
// The slice is returned exactly as delivered — the ordering is a
// contract with the UI. A failure comes back as an error so callers
// can tell "no events" apart from "fetch failed".
func (c *Client) Events(ctx context.Context) ([]domain.EventRecord, error) {
	q := NewListQuery().OrderAsc("eventDate")
	var res listResponse[domain.EventRecord]
	path := c.collectionPath(c.cfg.EventsCollection) + "?" + q.Encode()
	if err := c.do(ctx, "events", http.MethodGet, path, nil, &res); err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	return res.Documents, nil
}
