package contribution

import (
	"bytes"
	"context"
	"strings"

	"dormirlahaut/internal/gateway"
	"dormirlahaut/internal/poi"

	"go.uber.org/zap"
)

// Service submits the four moderated contribution kinds. Nothing submitted
// here is ever reflected locally: content stays invisible until an admin
// approves it and a later fetch returns it.
type Service struct {
	gw       *gateway.Client
	log      *zap.Logger
	maxPhoto int64
}

func NewService(gw *gateway.Client, maxPhotoMB int, log *zap.Logger) *Service {
	return &Service{gw: gw, log: log, maxPhoto: int64(maxPhotoMB) * 1024 * 1024}
}

// ProposePOI submits a new-POI proposal. The draft is validated locally
// first; validation failures never reach the network.
func (s *Service) ProposePOI(ctx context.Context, tok gateway.TokenSource, draft NewPOIDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	if draft.PhotoURL != "" {
		if err := ValidatePhotoURL(draft.PhotoURL); err != nil {
			return err
		}
	}
	return s.gw.Post(ctx, "/pois", tok, draft.payload(), nil)
}

// SuggestEdit submits the field diff between the draft and the POI's
// current values. An empty diff is reported locally, not sent.
func (s *Service) SuggestEdit(ctx context.Context, tok gateway.TokenSource, current poi.POI, draft EditDraft) error {
	changes := draft.Diff(current)
	if len(changes) == 0 {
		return ErrNoChanges
	}
	body := map[string]any{"changes": changes}
	return s.gw.Patch(ctx, "/pois/"+current.ID+"/edit", tok, body, nil)
}

// AddComment submits a comment for moderation.
func (s *Service) AddComment(ctx context.Context, tok gateway.TokenSource, poiID, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}
	body := map[string]string{"text": strings.TrimSpace(text)}
	return s.gw.Post(ctx, "/pois/"+poiID+"/comments", tok, body, nil)
}

// AddPhotoURL submits a photo by URL.
func (s *Service) AddPhotoURL(ctx context.Context, tok gateway.TokenSource, poiID, rawURL string) error {
	if err := ValidatePhotoURL(rawURL); err != nil {
		return err
	}
	body := map[string]string{"photoUrl": rawURL}
	return s.gw.Post(ctx, "/pois/"+poiID+"/photos", tok, body, nil)
}

// UploadPhoto validates and forwards a photo file as multipart form data.
type PhotoFile struct {
	Name    string
	Content []byte
}

func (s *Service) UploadPhoto(ctx context.Context, tok gateway.TokenSource, poiID string, file PhotoFile) error {
	raw, err := ValidateImage(bytes.NewReader(file.Content), s.maxPhoto)
	if err != nil {
		return err
	}
	return s.gw.PostMultipart(ctx, "/pois/"+poiID+"/photos/upload", tok, "photo", file.Name, bytes.NewReader(raw), nil)
}

// UserContributions lists the caller's own contributions; the only way the
// client learns a pending item resolved.
func (s *Service) UserContributions(ctx context.Context, tok gateway.TokenSource) ([]poi.Contribution, error) {
	var contribs []poi.Contribution
	if err := s.gw.Get(ctx, "/admin/user/contributions", nil, tok, &contribs); err != nil {
		return nil, err
	}
	return contribs, nil
}
