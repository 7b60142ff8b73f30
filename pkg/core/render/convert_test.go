package render

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="red"/></svg>`

func TestMissingConverter(t *testing.T) {
	orig := converter
	converter = "rsvg-convert-does-not-exist"
	t.Cleanup(func() { converter = orig })

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	if _, err := ToPDF(context.Background(), []byte(tinySVG)); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPDF() error = %v, want ErrConverterMissing", err)
	}
	if _, err := ToPNG(context.Background(), []byte(tinySVG), 2); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPNG() error = %v, want ErrConverterMissing", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 1)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
