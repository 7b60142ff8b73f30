package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })
	return &buf
}

func TestPlacementSummary(t *testing.T) {
	tests := []struct {
		placed, dropped int
		cached          bool
		want            string
	}{
		{12, 0, false, "12 placed · fresh"},
		{18, 2, true, "18 of 20 placed · 2 dropped · cached"},
		{0, 0, false, "0 placed · fresh"},
	}
	for _, tt := range tests {
		if got := placementSummary(tt.placed, tt.dropped, tt.cached); got != tt.want {
			t.Errorf("placementSummary(%d, %d, %v) = %q, want %q", tt.placed, tt.dropped, tt.cached, got, tt.want)
		}
	}
}

func TestPrintStatsHintsOnDrops(t *testing.T) {
	buf := captureUI(t)

	printStats(5, 0, false)
	if strings.Contains(buf.String(), "--max-attempts") {
		t.Errorf("no drops should print no hint: %q", buf.String())
	}

	buf.Reset()
	printStats(5, 3, false)
	if !strings.Contains(buf.String(), "5 of 8 placed") || !strings.Contains(buf.String(), "--max-attempts") {
		t.Errorf("drops should print the summary and a hint: %q", buf.String())
	}
}

func TestStatusLines(t *testing.T) {
	buf := captureUI(t)

	printSuccess("Rendered %s", "svg")
	printFile("cloud.svg")
	printKeyValue("Store", "memory")

	out := buf.String()
	for _, want := range []string{"Rendered svg", "cloud.svg", "Store", "memory"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
