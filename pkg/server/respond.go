package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/wordcloud/pkg/core/render"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    errs.Code `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

// contentTypes maps artifact formats to media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeArtifact(w http.ResponseWriter, format string, data []byte, cacheHit bool) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(cacheHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeError maps err to a status code and writes the error envelope.
// Internal errors are reported with a generic message.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	var body errorBody
	body.Error.Code = errs.GetCode(err)
	body.Error.Message = errs.UserMessage(err)
	switch {
	case errors.Is(err, render.ErrConverterMissing):
		body.Error.Code = errs.ErrCodeUnsupported
		body.Error.Message = "raster output is not available on this server"
	case status == http.StatusInternalServerError:
		body.Error.Code = errs.ErrCodeInternal
		body.Error.Message = "internal error"
	}
	writeJSON(w, status, body)
}

func statusFor(err error) int {
	switch {
	case errs.IsInvalid(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, render.ErrConverterMissing), errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// fail reports err to the HTTP hooks, logs server-side failures and writes
// the error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if statusFor(err) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
	}
	writeError(w, err)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}
