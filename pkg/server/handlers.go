package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// handleCreateLayout lays out the posted words and stores the result.
func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Logger = s.logger

	ctx := r.Context()
	words, err := pipeline.ParseWords(ctx, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	layout, hit, err := s.runner.LayoutWithCacheInfo(ctx, words, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Save(ctx, &layout); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+layout.ID)
	w.Header().Set("X-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusCreated, layout)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": list})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderLayout renders a stored layout with render options taken from
// the query string.
func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	layout, err := s.store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts, err := renderOptionsFromQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Logger = s.logger

	artifacts, hit, err := s.runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := opts.Formats[0]
	writeArtifact(w, format, artifacts[format], hit)
}

// handleRender runs the whole pipeline and returns a single artifact.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(opts.Formats) > 1 {
		s.fail(w, r, errs.New(errs.ErrCodeInvalidFormat, "exactly one format per request, got %d", len(opts.Formats)))
		return
	}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := pipeline.FormatSVG
	if len(opts.Formats) == 1 {
		format = opts.Formats[0]
	}
	writeArtifact(w, format, res.Artifacts[format], res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
}

// decodeOptions reads a JSON pipeline.Options body. Unknown fields are
// rejected so typos do not silently fall back to defaults.
func decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return pipeline.Options{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}
	return opts, nil
}

// renderOptionsFromQuery reads render options from the query string:
// format, palette (comma separated), background, boxes, hover, titles, scale.
func renderOptionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:    []string{pipeline.FormatSVG},
		Background: q.Get("background"),
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if p := q.Get("palette"); p != "" {
		opts.Palette = strings.Split(p, ",")
	}

	for name, dst := range map[string]*bool{"boxes": &opts.Boxes, "hover": &opts.Hover, "titles": &opts.Titles} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return pipeline.Options{}, errs.New(errs.ErrCodeInvalidInput, "invalid %s %q", name, v)
		}
		*dst = b
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return pipeline.Options{}, errs.New(errs.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.PNGScale = f
	}
	return opts, pipeline.ValidateFormats(opts.Formats)
}
