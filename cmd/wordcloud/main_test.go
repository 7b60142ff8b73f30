package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("compute layout: %w", context.Canceled), exitInterrupted},
		{"invalid rotation", errs.New(errs.ErrCodeInvalidRotation, "invalid rotation: %q", "diagonal"), exitInvalid},
		{"missing file", errs.New(errs.ErrCodeFileNotFound, "words.json"), exitFailure},
		{"plain error", errors.New("rsvg-convert failed"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
