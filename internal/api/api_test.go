// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/auth"
	"github.com/tomtom215/barkeep/internal/barclient"
	"github.com/tomtom215/barkeep/internal/catalog"
	"github.com/tomtom215/barkeep/internal/recommend"
	"github.com/tomtom215/barkeep/internal/store"
)

// testCatalog has two bottles in each of four regions.
const testCatalog = `[
	{"id": "lag16", "name": "Lagavulin 16", "distillery": "Lagavulin", "region": "Islay", "style": "Single Malt",
	 "flavor_profile": {"smoky": 0.9, "briny": 0.6}, "price": 90, "age": 16, "rarity": 0.5},
	{"id": "ard10", "name": "Ardbeg 10", "distillery": "Ardbeg", "region": "Islay", "style": "Single Malt",
	 "flavor_profile": {"smoky": 0.95, "spicy": 0.3}, "price": 55, "age": 10, "rarity": 0.3},
	{"id": "gl12", "name": "Glenlivet 12", "distillery": "Glenlivet", "region": "Speyside", "style": "Single Malt",
	 "flavor_profile": {"sweet": 0.7, "fruity": 0.5}, "price": 40, "age": 12, "rarity": 0.1},
	{"id": "mac18", "name": "Macallan 18", "distillery": "Macallan", "region": "Speyside", "style": "Single Malt",
	 "flavor_profile": {"sweet": 0.6, "woody": 0.7, "fruity": 0.4}, "price": 300, "age": 18, "rarity": 0.8},
	{"id": "dal12", "name": "Dalmore 12", "distillery": "Dalmore", "region": "Highland", "style": "Single Malt",
	 "flavor_profile": {"sweet": 0.5, "woody": 0.5}, "price": 60, "age": 12, "rarity": 0.3},
	{"id": "ob14", "name": "Oban 14", "distillery": "Oban", "region": "Highland", "style": "Single Malt",
	 "flavor_profile": {"briny": 0.4, "fruity": 0.4, "smoky": 0.2}, "price": 75, "age": 14, "rarity": 0.4},
	{"id": "bt", "name": "Buffalo Trace", "distillery": "Buffalo Trace", "region": "Kentucky", "style": "Bourbon",
	 "flavor_profile": {"sweet": 0.8, "spicy": 0.3}, "price": 30, "rarity": 0.1},
	{"id": "wt101", "name": "Wild Turkey 101", "distillery": "Wild Turkey", "region": "Kentucky", "style": "Bourbon",
	 "flavor_profile": {"spicy": 0.7, "woody": 0.4}, "price": 28, "rarity": 0.1}
]`

type memorySource struct{}

func (memorySource) Name() string { return "memory" }

func (memorySource) Load(context.Context) ([]recommend.BottleRecord, error) {
	return catalog.DecodeRecords([]byte(testCatalog))
}

type envOptions struct {
	unloaded bool
	bars     BarFetcher
	auth     *auth.Middleware
	mw       *ChiMiddlewareConfig
}

type testEnv struct {
	handler http.Handler
	h       *Handler
	store   *store.Store
	catalog *catalog.Store
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	cat := catalog.NewStore(memorySource{}, zerolog.Nop())
	if !opts.unloaded {
		if err := cat.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
	}

	st, err := store.Open(store.Options{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	mw := opts.mw
	if mw == nil {
		mw = DefaultChiMiddlewareConfig()
		mw.RateLimitDisabled = true
	}

	h := NewHandler(cat, st, engine, opts.bars, Limits{DefaultK: 5, MaxK: 10, DefaultPage: 50, MaxPage: 100})
	return &testEnv{
		handler: NewRouter(h, RouterConfig{Middleware: mw, Auth: opts.auth}),
		h:       h,
		store:   st,
		catalog: cat,
	}
}

// envelope mirrors APIResponse with raw data for per-test decoding.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
	Error    *APIError       `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("status = %q, error = %+v", env.Status, env.Error)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("envelope = %+v, want error", env)
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q (%s)", env.Error.Code, code, env.Error.Message)
	}
}

type stubFetcher struct {
	bar *barclient.UserBar
	err error
}

func (s *stubFetcher) FetchBar(context.Context, string) (*barclient.UserBar, error) {
	return s.bar, s.err
}

func ptr[T any](v T) *T {
	return &v
}
