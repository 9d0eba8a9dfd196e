package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zeusmes/sapbridge/internal/bridge"
	"github.com/zeusmes/sapbridge/internal/gate"
	"github.com/zeusmes/sapbridge/internal/sapgui"
	"github.com/zeusmes/sapbridge/internal/script"
)

// statusResponse mirrors the original /api/status contract.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// orderResponse is the envelope for both transaction endpoints.
type orderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.bridge.Status(r.Context())
	resp := statusResponse{Status: "disconnected", Message: st.Message}
	if st.Connected {
		resp.Status = "connected"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	// Process liveness only. SAP connectivity is /api/status.
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req script.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, orderResponse{Message: "JSON inválido: " + err.Error()})
		return
	}
	out, err := s.bridge.CreateOrder(r.Context(), req)
	s.writeOutcome(w, out, err)
}

func (s *Server) handleReleaseOrder(w http.ResponseWriter, r *http.Request) {
	var req script.ReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, orderResponse{Message: "JSON inválido: " + err.Error()})
		return
	}
	out, err := s.bridge.ReleaseOrder(r.Context(), req)
	s.writeOutcome(w, out, err)
}

// writeOutcome maps the error taxonomy onto HTTP statuses: invalid request
// → 400, no session → 503, gate busy → 429, critical script failure → 500,
// otherwise 200.
func (s *Server) writeOutcome(w http.ResponseWriter, out script.Outcome, err error) {
	switch {
	case err == nil:
		code := http.StatusOK
		if !out.Success {
			code = http.StatusInternalServerError
		}
		writeJSON(w, code, orderResponse{Success: out.Success, Message: out.Message})
	case errors.Is(err, bridge.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, orderResponse{Message: err.Error()})
	case errors.Is(err, sapgui.ErrNoSession):
		writeJSON(w, http.StatusServiceUnavailable, orderResponse{Message: "SAP no está abierto."})
	case errors.Is(err, gate.ErrBusy):
		writeJSON(w, http.StatusTooManyRequests, orderResponse{Message: "SAP ocupado, reintente en unos segundos."})
	default:
		writeJSON(w, http.StatusInternalServerError, orderResponse{Message: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
