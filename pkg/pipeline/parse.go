package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/model"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

// Input kinds reported to the parse hooks.
const (
	inputList = "list"
	inputText = "text"
)

// ParseWords returns the word list described by opts: the explicit word
// list when present, otherwise the topN most frequent words of opts.Text.
// An empty input yields an empty list, which lays out to an empty cloud.
func ParseWords(ctx context.Context, opts Options) ([]model.Word, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	kind := inputList
	if opts.Text != "" {
		kind = inputText
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, kind)
	start := time.Now()

	var words []model.Word
	if kind == inputText {
		words = model.CountWords(opts.Text, opts.TopN)
	} else {
		words = opts.Words
	}

	if words == nil {
		words = []model.Word{}
	}
	hooks.OnParseComplete(ctx, kind, len(words), time.Since(start), nil)

	opts.Logger.Debug("parsed words", "input", kind, "count", len(words))
	return words, nil
}

// ReadInput loads a word file into opts. Free text files are stored in
// opts.Text so that counting happens in the parse stage; structured files
// fill opts.Words.
func ReadInput(path string, opts *Options) error {
	format := model.FormatForPath(path)
	if format == model.FormatText {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errs.Wrap(errs.ErrCodeFileNotFound, err, "input file %s", path)
			}
			return fmt.Errorf("read %s: %w", path, err)
		}
		opts.Text = string(data)
		opts.Words = nil
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errs.Wrap(errs.ErrCodeFileNotFound, err, "input file %s", path)
	}
	words, err := model.ReadWordsFile(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	opts.Words = words
	opts.Text = ""
	return nil
}
