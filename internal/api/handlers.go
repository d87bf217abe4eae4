// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rysi3k/video-fullscreen/internal/fullscreen"
	"github.com/rysi3k/video-fullscreen/internal/metrics"
)

// targetRequest selects what to present. An empty selector targets the
// document root. video=true marks the selector as a media element, which is
// required on legacy-only hosts; standard-mode hosts fullscreen videos
// through the element API like any other node.
type targetRequest struct {
	Selector string `json:"selector"`
	Video    bool   `json:"video"`
}

type statusResponse struct {
	Mode          string             `json:"mode"`
	Enabled       bool               `json:"enabled"`
	Fullscreen    bool               `json:"fullscreen"`
	API           fullscreen.NameMap `json:"api"`
	UptimeSeconds int64              `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := statusResponse{
		Mode:          s.mode(),
		Enabled:       s.ctrl.Enabled(),
		Fullscreen:    s.ctrl.Element() != nil,
		API:           s.ctrl.API(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// resolveTarget turns the request body into a controller target. The zero
// target asks the controller to fall back to the document root. The video
// form feeds the legacy slot path only when the legacy path is active; in
// standard mode the selector resolves as an element so the request targets
// the video node itself instead of the root.
func (s *Server) resolveTarget(req targetRequest) (fullscreen.Target, error) {
	var t fullscreen.Target
	if req.Video && s.ctrl.API() == nil {
		v, err := s.env.LookupVideo(req.Selector)
		if err != nil {
			return t, err
		}
		t.Video = v
		return t, nil
	}
	if req.Selector == "" {
		return t, nil
	}
	el, err := s.env.LookupElement(req.Selector)
	if err != nil {
		return t, err
	}
	t.El = el
	return t, nil
}

func (s *Server) decodeTarget(w http.ResponseWriter, r *http.Request) (targetRequest, bool) {
	var req targetRequest
	if r.Body == nil || r.ContentLength == 0 {
		return req, true
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTarget(w, r)
	if !ok {
		return
	}

	t, err := s.resolveTarget(req)
	if err != nil {
		writeNotFound(w, err.Error())
		return
	}

	s.mu.Lock()
	res, err := s.ctrl.Request(t)
	mode := s.mode()
	s.mu.Unlock()

	metrics.IncRequest(mode, err == nil)
	if err != nil {
		if errors.Is(err, fullscreen.ErrSlotConflict) {
			writeConflict(w, "state_conflict")
			return
		}
		s.logger.Warn().Err(err).Str("event", "api.request.failed").
			Str("selector", req.Selector).Msg("fullscreen request rejected")
		writeBadGateway(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"result": res})
}

func (s *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	res, err := s.ctrl.Exit()
	mode := s.mode()
	s.mu.Unlock()

	metrics.IncExit(mode)
	if err != nil {
		s.logger.Warn().Err(err).Str("event", "api.exit.failed").Msg("fullscreen exit rejected")
		writeBadGateway(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"result": res})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTarget(w, r)
	if !ok {
		return
	}

	t, err := s.resolveTarget(req)
	if err != nil {
		writeNotFound(w, err.Error())
		return
	}

	s.mu.Lock()
	action := "request"
	if s.ctrl.IsFullscreen(t) {
		action = "exit"
	}
	err = s.ctrl.Toggle(t)
	mode := s.mode()
	s.mu.Unlock()

	metrics.IncToggle(mode, action)
	if err != nil {
		if errors.Is(err, fullscreen.ErrSlotConflict) {
			writeConflict(w, "state_conflict")
			return
		}
		s.logger.Warn().Err(err).Str("event", "api.toggle.failed").
			Str("selector", req.Selector).Msg("fullscreen toggle rejected")
		writeBadGateway(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"action": action})
}
