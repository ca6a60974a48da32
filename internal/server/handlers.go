package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/scenepatch/pkg/anim"
	"github.com/matzehuels/scenepatch/pkg/buildinfo"
	"github.com/matzehuels/scenepatch/pkg/cache"
	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/pipeline"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/store"
)

// contentTypes maps render formats to MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Scene   *scene.Scene     `json:"scene"`
	Options pipeline.Options `json:"options"`
}

// RenderResponse is the data of a successful render. Artifacts are
// base64-encoded in JSON.
type RenderResponse struct {
	SceneHash string            `json:"sceneHash"`
	Artifacts map[string][]byte `json:"artifacts"`
	Cached    bool              `json:"cached"`
	Nodes     int               `json:"nodes"`
	Edges     int               `json:"edges"`
}

// SceneRequest is the body of POST and PUT /v1/scenes.
type SceneRequest struct {
	Name  string       `json:"name,omitempty"`
	Scene *scene.Scene `json:"scene"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.sendError(w, r, err)
		return
	}
	if err := validateScene(req.Scene); err != nil {
		s.sendError(w, r, err)
		return
	}
	check := req.Options
	if err := check.Validate(); err != nil {
		s.sendError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "options"))
		return
	}

	result, err := s.runner.Render(r.Context(), req.Scene, req.Options)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, RenderResponse{
		SceneHash: result.SceneHash,
		Artifacts: result.Artifacts,
		Cached:    result.CacheInfo.RenderHit,
		Nodes:     result.Stats.NodeCount,
		Edges:     result.Stats.EdgeCount,
	})
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.sendError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = min(n, MaxListLimit)
	}
	items, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	if items == nil {
		items = []store.Summary{}
	}
	sendSuccess(w, http.StatusOK, items)
}

func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	s.putScene(w, r, "", http.StatusCreated)
}

func (s *Server) handlePutScene(w http.ResponseWriter, r *http.Request) {
	s.putScene(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *Server) putScene(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req SceneRequest
	if err := s.decode(w, r, &req); err != nil {
		s.sendError(w, r, err)
		return
	}
	if err := validateScene(req.Scene); err != nil {
		s.sendError(w, r, err)
		return
	}
	data, err := scene.Marshal(req.Scene)
	if err != nil {
		s.sendError(w, r, err)
		return
	}

	doc := &store.Document{ID: id, Name: req.Name, Scene: req.Scene, Hash: cache.Hash(data)}
	if _, err := s.store.Put(r.Context(), doc); err != nil {
		s.sendError(w, r, err)
		return
	}
	s.logger.Info("stored scene", "id", doc.ID, "nodes", len(req.Scene.Nodes))
	sendSuccess(w, status, doc)
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.sendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderScene renders a stored scene in one format and writes the
// raw artifact. Query parameters: format, scale, time, animate.
func (s *Server) handleRenderScene(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	opts, err := renderQuery(r)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	result, err := s.runner.Render(r.Context(), doc.Scene, opts)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", strconv.Quote(result.SceneHash))
	_, _ = w.Write(result.Artifacts[format])
}

func renderQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	var err error
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "scale")
		}
	}
	if v := q.Get("time"); v != "" {
		if opts.Time, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "time")
		}
		opts.Animate = true
	}
	if v := q.Get("animate"); v != "" {
		if opts.Animate, err = strconv.ParseBool(v); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "animate")
		}
	}
	check := opts
	if err := check.Validate(); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidFormat, err, "render options")
	}
	return opts, nil
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	spec, cached, err := s.runner.Compile(r.Context(), body)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", strconv.FormatBool(cached))
	sendSuccess(w, http.StatusOK, spec)
}

func (s *Server) handleValidateAnimation(w http.ResponseWriter, r *http.Request) {
	spec, err := anim.ReadSpec(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, map[string]any{
		"tweens": len(spec.Tweens),
		"end":    spec.End(),
	})
}

// decode reads a size-limited JSON body into v, rejecting unknown fields.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func validateScene(sc *scene.Scene) error {
	if sc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "scene is required")
	}
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("validate scene: %w", err)
	}
	return nil
}
