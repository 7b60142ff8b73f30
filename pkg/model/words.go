package model

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Input formats accepted by [ReadWords].
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
	FormatText = "text"
)

// DefaultTopN caps the number of distinct words extracted from free text.
const DefaultTopN = 150

// FormatForPath infers the word list format from a file extension.
// Unknown extensions are treated as free text.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	default:
		return FormatText
	}
}

// ReadWordsFile reads a word list, inferring its format from the extension.
func ReadWordsFile(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	words, err := ReadWords(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return words, nil
}

// ReadWords decodes a word list in the given format.
func ReadWords(r io.Reader, format string) ([]Word, error) {
	switch format {
	case FormatJSON:
		return readJSONWords(r)
	case FormatCSV:
		return readCSVWords(r, ',')
	case FormatTSV:
		return readCSVWords(r, '\t')
	case FormatText:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return CountWords(string(data), DefaultTopN), nil
	default:
		return nil, fmt.Errorf("unknown word list format: %q", format)
	}
}

// MarshalWords serializes a word list to JSON.
// The output is stable and suitable for content hashing.
func MarshalWords(words []Word) ([]byte, error) {
	return json.Marshal(words)
}

// readJSONWords accepts either a bare array or an object with a "words" key.
func readJSONWords(r io.Reader) ([]Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty word list")
	}

	var words []Word
	if data[0] == '[' {
		if err := json.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return words, nil
	}

	var doc struct {
		Words []Word `json:"words"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.Words, nil
}

// readCSVWords reads "text,value[,color]" records. A first row whose value
// column is not numeric is treated as a header.
func readCSVWords(r io.Reader, comma rune) ([]Word, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	words := make([]Word, 0, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("line %d: expected text,value[,color]", i+1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("line %d: invalid value %q", i+1, rec[1])
		}
		w := Word{Text: strings.TrimSpace(rec[0]), Value: v}
		if len(rec) > 2 {
			w.Color = strings.TrimSpace(rec[2])
		}
		words = append(words, w)
	}
	return words, nil
}

// stopWords are skipped when counting free text.
var stopWords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true, "an": true,
	"and": true, "any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "but": true, "by": true, "can": true, "could": true,
	"did": true, "do": true, "does": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "his": true, "how": true,
	"i": true, "if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "just": true, "me": true, "more": true, "my": true, "no": true,
	"not": true, "of": true, "on": true, "one": true, "or": true, "our": true,
	"out": true, "she": true, "so": true, "some": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "to": true, "up": true, "us": true, "was": true,
	"we": true, "were": true, "what": true, "when": true, "which": true, "who": true,
	"will": true, "with": true, "would": true, "you": true, "your": true,
}

// CountWords tokenizes free text and returns the topN most frequent words,
// case-folded, with stop words and single characters removed. Ties are
// broken alphabetically so the result is deterministic. topN <= 0 keeps all.
func CountWords(text string, topN int) []Word {
	fold := cases.Fold()
	counts := make(map[string]int)

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
	for _, tok := range tokens {
		tok = strings.Trim(fold.String(tok), "'-")
		if len([]rune(tok)) < 2 || stopWords[tok] {
			continue
		}
		counts[tok]++
	}

	words := make([]Word, 0, len(counts))
	for text, n := range counts {
		words = append(words, Word{Text: text, Value: float64(n)})
	}
	slices.SortFunc(words, func(a, b Word) int {
		if a.Value != b.Value {
			if a.Value > b.Value {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Text, b.Text)
	})

	if topN > 0 && len(words) > topN {
		words = words[:topN]
	}
	return words
}
