package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/poimap/pkg/buildinfo"
	"github.com/matzehuels/poimap/pkg/core/bearing"
	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/pipeline"
)

// mapSummary is the list view of a map.
type mapSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	POICount  int       `json:"poiCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type validateRequest struct {
	Records []poi.BearingRecord `json:"records"`
	POIs    []poi.POI           `json:"pois"`
	POI     *poi.POI            `json:"poi,omitempty"`
}

type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) listMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := s.runner.Store.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	out := make([]mapSummary, len(maps))
	for i, m := range maps {
		out[i] = mapSummary{ID: m.ID, Name: m.Name, POICount: len(m.POIs), CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) createMap(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	m, err := s.runner.Store.Create(r.Context(), req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, m)
}

func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	m, err := s.runner.Store.Get(r.Context(), chi.URLParam(r, "mapID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, m)
}

func (s *Server) renameMap(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	m, err := s.runner.Store.Rename(r.Context(), chi.URLParam(r, "mapID"), req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMap(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Store.Delete(r.Context(), chi.URLParam(r, "mapID")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) putPOIs(w http.ResponseWriter, r *http.Request) {
	var pois []poi.POI
	if err := decode(w, r, &pois); err != nil {
		s.respondError(w, err)
		return
	}
	if err := checkPOIs(pois); err != nil {
		s.respondError(w, err)
		return
	}
	m, err := s.runner.Store.UpdatePOIs(r.Context(), chi.URLParam(r, "mapID"), pois)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, m)
}

func (s *Server) recalculateMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Save:    boolParam(q.Get("save")),
		Refresh: boolParam(q.Get("refresh")),
	}
	res, err := s.runner.RecalculateMap(r.Context(), chi.URLParam(r, "mapID"), opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.GraphOptions{
		Format:   q.Get("format"),
		Detailed: boolParam(q.Get("detailed")),
	}
	if opts.Format == "" {
		opts.Format = pipeline.FormatSVG
	}
	if opts.Format != pipeline.FormatDOT && opts.Format != pipeline.FormatSVG {
		s.respondError(w, errors.New(errors.ErrCodeInvalidFormat, "graph format must be dot or svg"))
		return
	}
	out, err := s.runner.GraphMap(r.Context(), chi.URLParam(r, "mapID"), opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	contentType := "image/svg+xml"
	if opts.Format == pipeline.FormatDOT {
		contentType = "text/vnd.graphviz"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(out)
}

func (s *Server) recalculate(w http.ResponseWriter, r *http.Request) {
	var pois []poi.POI
	if err := decode(w, r, &pois); err != nil {
		s.respondError(w, err)
		return
	}
	res, err := s.runner.Recalculate(r.Context(), pois, pipeline.Options{})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	var problems []string
	if req.POI != nil {
		problems = bearing.ValidatePOI(*req.POI, req.POIs)
	} else {
		problems = bearing.Validate(req.Records, req.POIs)
	}
	if problems == nil {
		problems = []string{}
	}
	s.respondJSON(w, http.StatusOK, validateResponse{Valid: len(problems) == 0, Errors: problems})
}

// checkPOIs rejects collections the store cannot hold: malformed or
// duplicate ids and unknown categories.
func checkPOIs(pois []poi.POI) error {
	seen := make(map[string]bool, len(pois))
	for _, p := range pois {
		if err := errors.ValidateID(p.ID); err != nil {
			return err
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate poi id %s", p.ID)
		}
		seen[p.ID] = true
		if !p.Category.Valid() {
			return errors.New(errors.ErrCodeInvalidCategory, "poi %s: unknown type %q", p.ID, p.Category)
		}
	}
	return nil
}

func boolParam(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
