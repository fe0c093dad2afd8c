package progress

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNewDisabledForBuffer(t *testing.T) {
	bar := New(&bytes.Buffer{}, "jobs", 10)
	if bar.Enabled {
		t.Error("expected bar to be disabled for a non-terminal writer")
	}
}

func TestNewWithEnvDisable(t *testing.T) {
	t.Setenv("STALLKIT_NO_PROGRESS", "1")
	bar := New(os.Stderr, "jobs", 10)
	if bar.Enabled {
		t.Error("expected bar to be disabled with STALLKIT_NO_PROGRESS=1")
	}
}

func TestBarIncrement(t *testing.T) {
	bar := &Bar{Total: 10, Width: 30}
	bar.Increment("saturday")
	if bar.Current != 1 {
		t.Errorf("expected current=1, got %d", bar.Current)
	}
	bar.Increment("sunday")
	if bar.Current != 2 {
		t.Errorf("expected current=2, got %d", bar.Current)
	}
}

func TestBarOverIncrement(t *testing.T) {
	bar := &Bar{Total: 2, Width: 30}
	bar.Increment("a")
	bar.Increment("b")
	bar.Increment("c")
	if bar.Current != 2 {
		t.Errorf("expected current capped at 2, got %d", bar.Current)
	}
}

func TestBarPct(t *testing.T) {
	cases := []struct {
		total, current int
		want           float64
	}{
		{10, 0, 0},
		{10, 5, 50},
		{10, 10, 100},
		{0, 0, 0},
	}
	for _, tc := range cases {
		bar := &Bar{Total: tc.total, Current: tc.current, Width: 30}
		if got := bar.Pct(); got != tc.want {
			t.Errorf("Pct() with %d/%d = %.1f, want %.1f", tc.current, tc.total, got, tc.want)
		}
	}
}

func TestEnabledBarRenders(t *testing.T) {
	var buf bytes.Buffer
	bar := &Bar{Total: 2, Label: "Jobs", Width: 10, Enabled: true, w: &buf}
	bar.Increment("saturday")

	out := buf.String()
	if !strings.Contains(out, "Jobs [=====     ] 1/2  saturday") {
		t.Errorf("unexpected render: %q", out)
	}

	bar.Finish()
	if !strings.HasSuffix(buf.String(), "\r\033[K") {
		t.Error("Finish should clear the line")
	}
}

func TestDisabledBarDoesNotWrite(t *testing.T) {
	var buf bytes.Buffer
	bar := &Bar{Total: 10, Width: 30, w: &buf}
	bar.Increment("test")
	bar.Finish()
	if buf.Len() > 0 {
		t.Errorf("disabled bar should not write, wrote %q", buf.String())
	}
}
