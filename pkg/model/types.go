package model

import (
	"time"

	"github.com/matzehuels/wordcloud/pkg/core/geom"
)

// Word is a weighted label as supplied by the caller.
type Word struct {
	Text  string  `json:"text" bson:"text"`
	Value float64 `json:"value" bson:"value"`
	Color string  `json:"color,omitempty" bson:"color,omitempty"`
}

// PlacedWord is a word with its resolved position and footprint.
type PlacedWord struct {
	Text       string       `json:"text" bson:"text"`
	Value      float64      `json:"value" bson:"value"`
	Color      string       `json:"color,omitempty" bson:"color,omitempty"`
	X          float64      `json:"x" bson:"x"`
	Y          float64      `json:"y" bson:"y"`
	FontSize   float64      `json:"font_size" bson:"font_size"`
	Rotation   float64      `json:"rotation" bson:"rotation"`
	Width      float64      `json:"width" bson:"width"`
	Height     float64      `json:"height" bson:"height"`
	Normalized float64      `json:"normalized" bson:"normalized"`
	Attempts   int          `json:"attempts" bson:"attempts"`
	Box        []geom.Point `json:"box" bson:"box"`
}

// Stats holds aggregate layout metrics.
type Stats struct {
	Placed          int     `json:"placed" bson:"placed"`
	Total           int     `json:"total" bson:"total"`
	Dropped         int     `json:"dropped" bson:"dropped"`
	AverageAttempts float64 `json:"average_attempts" bson:"average_attempts"`
	Coverage        float64 `json:"coverage" bson:"coverage"`
}

// Layout is the serialized result of a layout run.
//
// Words are in render order (descending value). Dropped words could not be
// placed without overlap; they are listed for diagnostics only.
type Layout struct {
	ID        string         `json:"id,omitempty" bson:"_id,omitempty"`
	Width     float64        `json:"width" bson:"width"`
	Height    float64        `json:"height" bson:"height"`
	Margin    float64        `json:"margin" bson:"margin"`
	Scale     string         `json:"scale,omitempty" bson:"scale,omitempty"`
	Rotation  string         `json:"rotation,omitempty" bson:"rotation,omitempty"`
	Seed      uint64         `json:"seed,omitempty" bson:"seed,omitempty"`
	Words     []PlacedWord   `json:"words" bson:"words"`
	Dropped   []Word         `json:"dropped,omitempty" bson:"dropped,omitempty"`
	Attempts  map[string]int `json:"attempts,omitempty" bson:"attempts,omitempty"`
	Stats     Stats          `json:"stats" bson:"stats"`
	CreatedAt time.Time      `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
