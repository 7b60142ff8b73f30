package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A layout must have positive dimensions; an empty word list is valid.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have positive dimensions, got %vx%v", l.Width, l.Height)
	}
	for i, w := range l.Words {
		if len(w.Box) != 4 {
			return Layout{}, fmt.Errorf("word %d (%q): box must have 4 corners, got %d", i, w.Text, len(w.Box))
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
