package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/orgmap/pkg/buildinfo"
	"github.com/matzehuels/orgmap/pkg/errors"
	"github.com/matzehuels/orgmap/pkg/metadata"
	"github.com/matzehuels/orgmap/pkg/pipeline"
	"github.com/matzehuels/orgmap/pkg/storage"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	src, opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.runner.Build(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	src, opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	src, opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.runner.Build(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap := storage.NewSnapshot(m)
	if err := s.store.Save(r.Context(), snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/maps/"+snap.ID)
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSnapshotID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSnapshotID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeRequest reads a source document from the body and applies query
// overrides (max_items, engine, pan_zoom) to the server defaults.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*metadata.Source, pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()
	if v := q.Get("max_items"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, opts, errors.New(errors.ErrCodeInvalidInput, "max_items must be a non-negative integer")
		}
		opts.MaxItems = n
	}
	if v := q.Get("engine"); v != "" {
		if err := pipeline.ValidateEngine(v); err != nil {
			return nil, opts, err
		}
		opts.Engine = v
	}
	if v := q.Get("pan_zoom"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, opts, errors.New(errors.ErrCodeInvalidInput, "pan_zoom must be a boolean")
		}
		opts.PanZoom = b
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	src, err := metadata.Decode(data, metadata.FormatJSON)
	return src, opts, err
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestIDFrom(r.Context()))
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: string(code)})
}

// classify maps an error to an HTTP status and error code.
func classify(err error) (int, errors.Code) {
	if stderrors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound, errors.ErrCodeNotFound
	}
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeValidation, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidEngine, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest, code
	case errors.ErrCodeLayout:
		return http.StatusUnprocessableEntity, code
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound, code
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented, code
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, code
	case "":
		return http.StatusInternalServerError, errors.ErrCodeInternal
	default:
		return http.StatusInternalServerError, code
	}
}
