// Package model defines the serialization formats for word clouds.
//
// There are two documents:
//
//   - A word list ([Word] values), the input to a layout run. Word lists are
//     read from JSON, CSV or free text (see [ReadWordsFile]).
//   - A [Layout], the serialized result of a layout run: placed words with
//     their resolved geometry, dropped words, attempt counts and statistics.
//
// Both carry json and bson tags so the same values can be written to files,
// returned from the HTTP API, cached, or stored in MongoDB.
//
// The placement engine in pkg/core/cloud has its own in-memory types; use
// cloud.Result.Export and cloud.Parse to convert.
package model
