// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// resetGlobal restores the default logger once a test that calls Init ends.
func resetGlobal(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { Init(DefaultConfig()) })
}

func TestInitJSON(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})

	Info().Str("bottle", "laphroaig-10").Msg("catalog loaded")
	Debug().Msg("debug visible")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"bottle":"laphroaig-10"`, `"message":"catalog loaded"`, "debug visible", `"time":`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestInitLevelFilters(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})

	Info().Msg("hidden")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestInitConsole(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	logger := Component("catalog")
	logger.Info().Msg("refreshed")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console format produced JSON: %s", out)
	}
	if !strings.Contains(out, "refreshed") || !strings.Contains(out, "catalog") {
		t.Errorf("console output = %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestComponent(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	l := Component("recommend")
	l.Info().Msg("ranked")

	if !strings.Contains(buf.String(), `"component":"recommend"`) {
		t.Errorf("output %q missing component field", buf.String())
	}
}
