package contribution

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"dormirlahaut/internal/gateway"
	"dormirlahaut/internal/poi"

	"go.uber.org/zap"
)

type recordedRequest struct {
	method string
	path   string
	body   []byte
}

func recordingBackend(t *testing.T) (*httptest.Server, *int32, *recordedRequest) {
	t.Helper()
	var calls int32
	last := &recordedRequest{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		last.method = r.Method
		last.path = r.URL.Path
		last.body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"success":true,"data":{"message":"ok"}}`))
	}))
	t.Cleanup(backend.Close)
	return backend, &calls, last
}

func newTestService(t *testing.T) (*Service, *int32, *recordedRequest) {
	t.Helper()
	backend, calls, last := recordingBackend(t)
	return NewService(gateway.NewClient(backend.URL, zap.NewNop()), 5, zap.NewNop()), calls, last
}

func TestProposePOI(t *testing.T) {
	svc, calls, last := newTestService(t)

	if err := svc.ProposePOI(context.Background(), gateway.StaticToken("t"), validDraft()); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if *calls != 1 || last.method != http.MethodPost || last.path != "/pois" {
		t.Fatalf("unexpected request: %s %s (%d calls)", last.method, last.path, *calls)
	}

	var payload poi.NewPOIPayload
	if err := json.Unmarshal(last.body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Name != "Abri du Col" || payload.Coordinates.Lat != 45.1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Photos == nil || len(payload.Photos) != 0 {
		t.Fatalf("expected empty photos array, got %v", payload.Photos)
	}
}

func TestProposePOIInvalidDraftNeverSent(t *testing.T) {
	svc, calls, _ := newTestService(t)

	draft := validDraft()
	draft.Name = ""
	if err := svc.ProposePOI(context.Background(), nil, draft); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	draft = validDraft()
	draft.PhotoURL = "not a url"
	if err := svc.ProposePOI(context.Background(), nil, draft); !errors.Is(err, ErrInvalidPhotoURL) {
		t.Fatalf("expected ErrInvalidPhotoURL, got %v", err)
	}

	if *calls != 0 {
		t.Fatalf("validation failures must not reach the network, got %d calls", *calls)
	}
}

func TestSuggestEditSendsOnlyDiff(t *testing.T) {
	svc, calls, last := newTestService(t)

	current := poi.POI{ID: "p1", Name: "Refuge", Altitude: 2100, SunExposition: "Est", Description: "d"}
	draft := DraftFrom(current)
	draft.Altitude = 1800

	if err := svc.SuggestEdit(context.Background(), gateway.StaticToken("t"), current, draft); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if *calls != 1 || last.method != http.MethodPatch || last.path != "/pois/p1/edit" {
		t.Fatalf("unexpected request: %s %s", last.method, last.path)
	}

	var body struct {
		Changes map[string]any `json:"changes"`
	}
	if err := json.Unmarshal(last.body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Changes) != 1 || body.Changes["altitude"] != float64(1800) {
		t.Fatalf("diff must carry only the changed field: %v", body.Changes)
	}
}

func TestSuggestEditEmptyDiffNeverSent(t *testing.T) {
	svc, calls, _ := newTestService(t)

	current := poi.POI{ID: "p1", Name: "Refuge", Altitude: 2100}
	if err := svc.SuggestEdit(context.Background(), nil, current, DraftFrom(current)); !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
	if *calls != 0 {
		t.Fatalf("an empty diff must not reach the network")
	}
}

func TestAddComment(t *testing.T) {
	svc, _, last := newTestService(t)

	if err := svc.AddComment(context.Background(), nil, "p1", "  Superbe vue  "); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if last.path != "/pois/p1/comments" {
		t.Fatalf("unexpected path: %s", last.path)
	}

	var body map[string]string
	json.Unmarshal(last.body, &body)
	if body["text"] != "Superbe vue" {
		t.Fatalf("expected trimmed text, got %q", body["text"])
	}
}

func TestAddCommentEmpty(t *testing.T) {
	svc, calls, _ := newTestService(t)

	if err := svc.AddComment(context.Background(), nil, "p1", "   "); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
	if *calls != 0 {
		t.Fatalf("empty comments must not reach the network")
	}
}

func TestAddPhotoURL(t *testing.T) {
	svc, calls, last := newTestService(t)

	if err := svc.AddPhotoURL(context.Background(), nil, "p1", "bad url"); !errors.Is(err, ErrInvalidPhotoURL) {
		t.Fatalf("expected ErrInvalidPhotoURL, got %v", err)
	}
	if *calls != 0 {
		t.Fatalf("invalid urls must not reach the network")
	}

	if err := svc.AddPhotoURL(context.Background(), nil, "p1", "https://example.com/p.jpg"); err != nil {
		t.Fatalf("add photo url: %v", err)
	}
	if last.path != "/pois/p1/photos" {
		t.Fatalf("unexpected path: %s", last.path)
	}
}

func TestUploadPhoto(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pois/p1/photos/upload" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("photo"); err != nil {
			t.Fatalf("form file: %v", err)
		}
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer backend.Close()

	svc := NewService(gateway.NewClient(backend.URL, zap.NewNop()), 5, zap.NewNop())
	file := PhotoFile{Name: "cabane.png", Content: pngBytes(t)}
	if err := svc.UploadPhoto(context.Background(), gateway.StaticToken("t"), "p1", file); err != nil {
		t.Fatalf("upload: %v", err)
	}
}

func TestUploadPhotoRejectsNonImage(t *testing.T) {
	svc, calls, _ := newTestService(t)

	file := PhotoFile{Name: "notes.txt", Content: []byte("plain text")}
	if err := svc.UploadPhoto(context.Background(), nil, "p1", file); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
	if *calls != 0 {
		t.Fatalf("invalid files must not reach the network")
	}
}

func TestUserContributions(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/user/contributions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Fatalf("expected bearer token")
		}
		w.Write([]byte(`{"success":true,"data":[{"_id":"c1","type":"comment","status":"rejected","rejectionReason":"Hors sujet"}]}`))
	}))
	defer backend.Close()

	svc := NewService(gateway.NewClient(backend.URL, zap.NewNop()), 5, zap.NewNop())
	contribs, err := svc.UserContributions(context.Background(), gateway.StaticToken("tok"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(contribs) != 1 || contribs[0].RejectionReason != "Hors sujet" {
		t.Fatalf("unexpected contributions: %+v", contribs)
	}
}
