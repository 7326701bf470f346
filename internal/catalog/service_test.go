package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dormirlahaut/internal/gateway"
	"dormirlahaut/internal/poi"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func TestFetchFilteredSendsFacets(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		q := r.URL.Query()
		if q.Get("category") != "Refuge" || q.Get("massif") != "Vanoise" || q.Get("search") != "lac" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":true,"data":[{"_id":"p1","name":"Refuge du Lac"}]}`))
	}))
	defer backend.Close()

	svc := NewService(gateway.NewClient(backend.URL, zap.NewNop()), nil, 0, zap.NewNop())
	res, err := svc.FetchFiltered(context.Background(), "view-1", Filter{Category: "Refuge", Massif: "Vanoise", Search: "lac"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.Stale {
		t.Fatalf("unexpected stale result")
	}
	if len(res.POIs) != 1 || res.POIs[0].ID != "p1" {
		t.Fatalf("unexpected pois: %+v", res.POIs)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly one backend call, got %d", calls)
	}
}

func TestFetchFilteredOmitsAllSentinel(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Fatalf("expected no query for 'all' facets, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer backend.Close()

	svc := NewService(gateway.NewClient(backend.URL, zap.NewNop()), nil, 0, zap.NewNop())
	if _, err := svc.FetchFiltered(context.Background(), "view-1", Filter{Category: "all", Massif: "all"}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
}

func TestFetchFilteredStaleResponseSuppressed(t *testing.T) {
	var calls int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(arrived)
			<-release
			w.Write([]byte(`{"success":true,"data":[{"_id":"slow"}]}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":[{"_id":"fast"}]}`))
	}))
	defer backend.Close()

	svc := NewService(gateway.NewClient(backend.URL, zap.NewNop()), nil, 0, zap.NewNop())

	type outcome struct {
		res Result
		err error
	}
	slow := make(chan outcome, 1)
	go func() {
		res, err := svc.FetchFiltered(context.Background(), "view-1", Filter{Search: "slow"})
		slow <- outcome{res, err}
	}()
	<-arrived

	fast, err := svc.FetchFiltered(context.Background(), "view-1", Filter{Search: "fast"})
	if err != nil {
		t.Fatalf("fast fetch: %v", err)
	}
	if fast.Stale || len(fast.POIs) != 1 || fast.POIs[0].ID != "fast" {
		t.Fatalf("unexpected fast result: %+v", fast)
	}

	close(release)
	got := <-slow
	if got.err != nil {
		t.Fatalf("slow fetch: %v", got.err)
	}
	if !got.res.Stale {
		t.Fatalf("expected slow response to be reported stale")
	}
	if got.res.POIs != nil {
		t.Fatalf("stale result must not carry pois")
	}
}

func TestFetchFilteredIndependentViewsNeverRace(t *testing.T) {
	var calls int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(arrived)
			<-release
			w.Write([]byte(`{"success":true,"data":[{"_id":"slow"}]}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":[{"_id":"fast"}]}`))
	}))
	defer backend.Close()

	svc := NewService(gateway.NewClient(backend.URL, zap.NewNop()), nil, 0, zap.NewNop())

	type outcome struct {
		res Result
		err error
	}
	slow := make(chan outcome, 1)
	go func() {
		res, err := svc.FetchFiltered(context.Background(), "client-a", Filter{Search: "slow"})
		slow <- outcome{res, err}
	}()
	<-arrived

	// A different client resolving meanwhile must not mark client A stale.
	if _, err := svc.FetchFiltered(context.Background(), "client-b", Filter{Search: "fast"}); err != nil {
		t.Fatalf("client-b fetch: %v", err)
	}

	close(release)
	got := <-slow
	if got.err != nil {
		t.Fatalf("client-a fetch: %v", got.err)
	}
	if got.res.Stale {
		t.Fatalf("independent views must not suppress each other")
	}
	if len(got.res.POIs) != 1 || got.res.POIs[0].ID != "slow" {
		t.Fatalf("unexpected result: %+v", got.res)
	}
}

func TestFetchFilteredUsesCache(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"success":true,"data":[{"_id":"p1","name":"Cabane"}]}`))
	}))
	defer backend.Close()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewService(gateway.NewClient(backend.URL, zap.NewNop()), cache, time.Minute, zap.NewNop())

	for i := 0; i < 3; i++ {
		res, err := svc.FetchFiltered(context.Background(), "view-1", Filter{Massif: "Bauges"})
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if len(res.POIs) != 1 || res.POIs[0].ID != "p1" {
			t.Fatalf("fetch %d: unexpected pois %+v", i, res.POIs)
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected a single backend call behind the cache, got %d", calls)
	}
}

func TestGet(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pois/p1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"_id":"p1","name":"Refuge de la Pra","altitude":2100}}`))
	}))
	defer backend.Close()

	svc := NewService(gateway.NewClient(backend.URL, zap.NewNop()), nil, 0, zap.NewNop())
	p, err := svc.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ID != "p1" || p.Altitude != 2100 {
		t.Fatalf("unexpected poi: %+v", p)
	}
}

func TestByExposure(t *testing.T) {
	pois := []poi.POI{
		{ID: "a", SunExposition: "Sud"},
		{ID: "b", SunExposition: "Nord"},
		{ID: "c", SunExposition: "Sud"},
		{ID: "d"},
	}

	south := ByExposure(pois, "Sud")
	if len(south) != 2 || south[0].ID != "a" || south[1].ID != "c" {
		t.Fatalf("unexpected filtered set: %+v", south)
	}

	if got := ByExposure(pois, ""); len(got) != 4 {
		t.Fatalf("empty facet must pass everything through")
	}
	if got := ByExposure(pois, "all"); len(got) != 4 {
		t.Fatalf("'all' facet must pass everything through")
	}
}
