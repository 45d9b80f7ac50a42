// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package supervisor

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/logging"
)

// flakyService fails a fixed number of times, then runs until canceled.
type flakyService struct {
	name     string
	failures int32
	starts   atomic.Int32
}

func (f *flakyService) Serve(ctx context.Context) error {
	if n := f.starts.Add(1); n <= f.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *flakyService) String() string { return f.name }

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestTreeConfigDefaults(t *testing.T) {
	t.Parallel()

	tree := NewTree(logging.NewSlogLogger(testLogger()), TreeConfig{})
	want := DefaultTreeConfig()
	if tree.config != want {
		t.Errorf("config = %+v, want %+v", tree.config, want)
	}

	custom := NewTree(logging.NewSlogLogger(testLogger()), TreeConfig{FailureBackoff: time.Second})
	if custom.config.FailureBackoff != time.Second || custom.config.FailureThreshold != 5 {
		t.Errorf("config = %+v, want custom backoff with default threshold", custom.config)
	}
}

func TestTree_RestartsFailingService(t *testing.T) {
	t.Parallel()

	tree := NewTree(logging.NewSlogLogger(testLogger()), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	data := &flakyService{name: "flaky-data", failures: 2}
	api := &flakyService{name: "steady-api"}
	tree.AddDataService(data)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for data.starts.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop")
	}

	if got := data.starts.Load(); got < 3 {
		t.Errorf("flaky service started %d times, want at least 3", got)
	}
	if got := api.starts.Load(); got != 1 {
		t.Errorf("sibling layer service started %d times, want 1", got)
	}
	if report, err := tree.UnstoppedServiceReport(); err != nil || len(report) != 0 {
		t.Errorf("UnstoppedServiceReport() = %v, %v", report, err)
	}
}
