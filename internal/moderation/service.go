package moderation

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"dormirlahaut/internal/gateway"
	"dormirlahaut/internal/poi"

	"go.uber.org/zap"
)

var (
	// ErrNoFieldsSelected refuses approving an edit with zero accepted fields.
	ErrNoFieldsSelected = errors.New("select at least one field to approve")
	// ErrEmptyReason refuses a rejection without a reason; nothing is sent.
	ErrEmptyReason = errors.New("a rejection reason is required")
	// ErrNotConfirmed refuses approve/reject without interactive confirmation.
	ErrNotConfirmed = errors.New("confirmation required")
)

// Stats are the recomputed aggregate counts shown atop the queue.
type Stats struct {
	Pending  int         `json:"pending"`
	Approved int         `json:"approved"`
	Rejected int         `json:"rejected"`
	Total    int         `json:"total"`
	ByType   []TypeCount `json:"byType"`
}

type TypeCount struct {
	Type  poi.ContributionType `json:"_id"`
	Count int                  `json:"count"`
}

// Service is the admin-side moderation client. Role gating happens at the
// route layer; the backend enforces it again.
type Service struct {
	gw  *gateway.Client
	log *zap.Logger
}

func NewService(gw *gateway.Client, log *zap.Logger) *Service {
	return &Service{gw: gw, log: log}
}

// Pending lists contributions awaiting review, optionally one type only.
func (s *Service) Pending(ctx context.Context, tok gateway.TokenSource, typeFilter string) ([]poi.Contribution, error) {
	q := url.Values{}
	if typeFilter != "" && typeFilter != "all" {
		q.Set("type", typeFilter)
	}
	var contribs []poi.Contribution
	if err := s.gw.Get(ctx, "/admin/pending", q, tok, &contribs); err != nil {
		return nil, err
	}
	return contribs, nil
}

func (s *Service) Stats(ctx context.Context, tok gateway.TokenSource) (Stats, error) {
	var stats Stats
	if err := s.gw.Get(ctx, "/admin/stats", nil, tok, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Approve commits a contribution. For edit_poi a non-empty selected-field
// subset is mandatory and only those fields are accepted; other kinds take
// the whole payload.
func (s *Service) Approve(ctx context.Context, tok gateway.TokenSource, c poi.Contribution, selectedFields []string) error {
	body := map[string]any{}
	if c.Type == poi.TypeEditPOI {
		if len(selectedFields) == 0 {
			return ErrNoFieldsSelected
		}
		body["selectedFields"] = selectedFields
	}
	return s.gw.Post(ctx, "/admin/pending/"+c.ID+"/approve", tok, body, nil)
}

// Reject discards a contribution, keeping the reason for the submitter.
func (s *Service) Reject(ctx context.Context, tok gateway.TokenSource, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrEmptyReason
	}
	body := map[string]string{"reason": reason}
	return s.gw.Post(ctx, "/admin/pending/"+id+"/reject", tok, body, nil)
}

// DeleteComment removes a published comment, the one destructive admin
// action outside the pending queue.
func (s *Service) DeleteComment(ctx context.Context, tok gateway.TokenSource, poiID, commentID string) error {
	return s.gw.Delete(ctx, "/admin/pois/"+poiID+"/comments/"+commentID, tok, nil)
}
