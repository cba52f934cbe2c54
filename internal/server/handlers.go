package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/pipeline"
)

// =============================================================================
// Catalog
// =============================================================================

type catalogResponse struct {
	Variants map[catalog.Variant]variantInfo `json:"variants"`
	Params   []paramInfo                     `json:"params"`
}

type variantInfo struct {
	Categories []categoryInfo `json:"categories"`
	Slots      []slotInfo     `json:"slots"`
	Formats    []string       `json:"formats"`
}

type categoryInfo struct {
	Name    catalog.Category `json:"name"`
	Options []optionInfo     `json:"options"`
}

type optionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type slotInfo struct {
	Name    catalog.Slot `json:"name"`
	Palette []string     `json:"palette"`
}

type paramInfo struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, describeCatalog(s.catalog))
}

func describeCatalog(cat *catalog.Catalog) catalogResponse {
	resp := catalogResponse{Variants: make(map[catalog.Variant]variantInfo, 2)}
	for _, v := range []catalog.Variant{catalog.Flat, catalog.Solid} {
		info := variantInfo{Formats: pipeline.Formats(v)}
		for _, c := range cat.Categories(v) {
			ci := categoryInfo{Name: c}
			for _, o := range cat.ListOptions(c) {
				ci.Options = append(ci.Options, optionInfo{ID: o.ID, Name: o.Name})
			}
			info.Categories = append(info.Categories, ci)
		}
		for _, slot := range cat.Slots(v) {
			si := slotInfo{Name: slot}
			for _, col := range cat.ListPalette(slot) {
				si.Palette = append(si.Palette, col.Hex())
			}
			info.Slots = append(info.Slots, si)
		}
		resp.Variants[v] = info
	}
	for _, p := range cat.Params() {
		resp.Params = append(resp.Params, paramInfo{
			Name: p.Name, Label: p.Label, Min: p.Min, Max: p.Max, Step: p.Step, Default: p.Default,
		})
	}
	return resp
}

// =============================================================================
// Artifacts
// =============================================================================

func (s *Server) handleArtifact(v catalog.Variant, format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		st, err := decodeState(s.catalog, v, q)
		if err != nil {
			writeError(w, s.logger, err)
			return
		}
		opts, err := decodeOptions(format, q)
		if err != nil {
			writeError(w, s.logger, err)
			return
		}

		data, hit, err := s.runner.RenderWithCacheInfo(r.Context(), st, opts)
		if err != nil {
			writeError(w, s.logger, err)
			return
		}

		h := w.Header()
		h.Set("Content-Type", pipeline.ContentType(format))
		h.Set("Content-Length", strconv.Itoa(len(data)))
		if hit {
			h.Set(CacheHeader, "HIT")
		} else {
			h.Set(CacheHeader, "MISS")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

// statusFor maps an error code onto an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSelection, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPreset, errors.ErrCodeOutOfRange,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "code", code, "error", err)
	}
	writeJSON(w, logger, status, errorBody{Error: errorInfo{Code: code, Message: errors.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", "error", err)
	}
}
