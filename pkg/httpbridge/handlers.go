package httpbridge

import (
	"encoding/json"
	"net/http"

	"github.com/vango-dev/linkroute/internal/errors"
	"github.com/vango-dev/linkroute/pkg/applink"
	"github.com/vango-dev/linkroute/pkg/router"
)

// ResolveResponse is the body of GET /resolve.
type ResolveResponse struct {
	Matched bool              `json:"matched"`
	Scheme  string            `json:"scheme"`
	Path    string            `json:"path"`
	Params  map[string]string `json:"params,omitempty"`
}

// OpenRequest is the body of POST /open.
type OpenRequest struct {
	URL string `json:"url"`
}

// OpenResponse is the body returned by POST /open.
type OpenResponse struct {
	Handled   bool           `json:"handled"`
	Matched   bool           `json:"matched"`
	Status    string         `json:"status"`
	URL       string         `json:"url"`
	RequestID string         `json:"requestId"`
	Params    map[string]any `json:"params,omitempty"`
}

func parseURL(raw string) (*applink.Request, *errors.Error) {
	req, err := applink.Parse(raw)
	if err != nil {
		return nil, errors.New("U001").WithDetail(raw).Wrap(err)
	}
	return req, nil
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	req, perr := parseURL(r.URL.Query().Get("url"))
	if perr != nil {
		writeError(w, http.StatusBadRequest, perr)
		return
	}

	body := ResolveResponse{Scheme: req.Scheme, Path: req.Path}
	m, ok := s.router.Resolve(req.Scheme, req.Path)
	if !ok {
		s.recordMiss(req.Scheme)
		writeJSON(w, http.StatusNotFound, body)
		return
	}

	body.Matched = true
	body.Params = m.Params
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	var in OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("U001").WithDetail("request body").Wrap(err))
		return
	}

	req, perr := parseURL(in.URL)
	if perr != nil {
		writeError(w, http.StatusBadRequest, perr)
		return
	}
	req = req.WithContext(r.Context())

	resp, matched := s.router.Handle(req)
	if !matched {
		s.recordMiss(req.Scheme)
	}

	status := http.StatusOK
	if !matched {
		status = http.StatusNotFound
	}
	writeJSON(w, status, OpenResponse{
		Handled:   matched && resp.Status == router.StatusOK,
		Matched:   matched,
		Status:    resp.Status.String(),
		URL:       resp.URL,
		RequestID: req.ID,
		Params:    resp.Params,
	})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := s.router.Routes()
	if routes == nil {
		routes = []router.RouteInfo{}
	}
	writeJSON(w, http.StatusOK, routes)
}

func (s *Server) recordMiss(scheme string) {
	if s.recorder != nil {
		s.recorder.RecordMiss(scheme)
	}
}
