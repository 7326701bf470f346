package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"dormirlahaut/internal/gateway"
	"dormirlahaut/internal/poi"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Filter holds the three server-side facets. Empty or "all" means
// unconstrained. Sun exposure is deliberately absent: the backend does not
// filter on it, so it stays a local concern (see ByExposure).
type Filter struct {
	Category string
	Massif   string
	Search   string
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if f.Category != "" && f.Category != "all" {
		q.Set("category", f.Category)
	}
	if f.Massif != "" && f.Massif != "all" {
		q.Set("massif", f.Massif)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

func (f Filter) cacheKey() string {
	return "catalog:" + f.query().Encode()
}

// Service fetches filtered POI sets from the backend. Responses that lose a
// race against a later request from the SAME view are reported stale so a
// client never applies an out-of-order set over a fresher one. Ordering is
// scoped per view (one client's filter panel); independent clients never
// suppress each other.
type Service struct {
	gw    *gateway.Client
	cache *redis.Client
	ttl   time.Duration
	log   *zap.Logger

	mu    sync.Mutex
	views map[string]*viewState
}

// viewState tracks request ordering for one client's filter view. The entry
// is dropped once no request is in flight.
type viewState struct {
	inflight int
	issued   uint64
	applied  uint64
}

func NewService(gw *gateway.Client, cache *redis.Client, cacheTTL time.Duration, log *zap.Logger) *Service {
	return &Service{gw: gw, cache: cache, ttl: cacheTTL, log: log, views: make(map[string]*viewState)}
}

// Result carries a fetched POI set. Stale means a later fetch already
// resolved; the caller must discard POIs.
type Result struct {
	POIs  []poi.POI
	Stale bool
}

// FetchFiltered issues exactly one backend request for the given facets.
// view identifies the client's filter panel (the session id); only requests
// sharing a view race each other. Public endpoint: no token attached.
func (s *Service) FetchFiltered(ctx context.Context, view string, f Filter) (Result, error) {
	s.mu.Lock()
	vs := s.views[view]
	if vs == nil {
		vs = &viewState{}
		s.views[view] = vs
	}
	vs.inflight++
	vs.issued++
	token := vs.issued
	s.mu.Unlock()

	pois, err := s.fetch(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	vs.inflight--
	if vs.inflight == 0 {
		delete(s.views, view)
	}
	if err != nil {
		return Result{}, err
	}
	if token < vs.applied {
		return Result{Stale: true}, nil
	}
	vs.applied = token
	return Result{POIs: pois}, nil
}

func (s *Service) fetch(ctx context.Context, f Filter) ([]poi.POI, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, f.cacheKey()).Bytes(); err == nil {
			var pois []poi.POI
			if json.Unmarshal(raw, &pois) == nil {
				return pois, nil
			}
		}
	}

	var pois []poi.POI
	if err := s.gw.Get(ctx, "/pois", f.query(), nil, &pois); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(pois); err == nil {
			if err := s.cache.Set(ctx, f.cacheKey(), raw, s.ttl).Err(); err != nil {
				s.log.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}
	return pois, nil
}

// Get loads one POI by id. Public endpoint.
func (s *Service) Get(ctx context.Context, id string) (poi.POI, error) {
	var p poi.POI
	if err := s.gw.Get(ctx, "/pois/"+id, nil, nil, &p); err != nil {
		return poi.POI{}, err
	}
	return p, nil
}

// ByExposure applies the fourth facet locally; no network round-trip.
func ByExposure(pois []poi.POI, exposure string) []poi.POI {
	if exposure == "" || exposure == "all" {
		return pois
	}
	out := make([]poi.POI, 0, len(pois))
	for _, p := range pois {
		if string(p.SunExposition) == exposure {
			out = append(out, p)
		}
	}
	return out
}
