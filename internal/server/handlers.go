package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/relpanel/pkg/buildinfo"
	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/pipeline"
	"github.com/matzehuels/relpanel/pkg/scene"
	"github.com/matzehuels/relpanel/pkg/storage"
)

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// createRequest is the body of POST /v1/layouts.
type createRequest struct {
	Name  string       `json:"name"`
	Scene *scene.Scene `json:"scene"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sc, err := scene.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts, err := s.layoutOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), sc, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sc, err := scene.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts, err := s.layoutOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	opts.Labels = queryBool(q.Get("labels"))
	opts.Links = queryBool(q.Get("links"))
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.runner.Layout(r.Context(), sc, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), res, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body"))
		return
	}
	if req.Scene == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "scene is required"))
		return
	}
	opts, err := s.layoutOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.runner.Layout(r.Context(), req.Scene, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	rec := storage.NewRecord(req.Name, opts.Apply(req.Scene), res)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/layouts/"+rec.ID)
	s.respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"layouts": recs})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// layoutOptions reads the size overrides and refresh switch from the query.
func (s *Server) layoutOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Logger: s.logger}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
	} {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidSize, "invalid %s %q", f.name, v)
		}
		*f.dst = n
	}
	opts.Refresh = queryBool(q.Get("refresh"))
	err := opts.ValidateForLayout()
	return opts, err
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
