package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusmes/sapbridge/internal/bridge"
	"github.com/zeusmes/sapbridge/internal/config"
	"github.com/zeusmes/sapbridge/internal/sapgui"
	"github.com/zeusmes/sapbridge/internal/telemetry"
)

type fakeConnector struct {
	sess sapgui.Session
	err  error
}

func (f fakeConnector) Connect() (sapgui.Session, error) {
	return f.sess, f.err
}

func newTestServer(conn sapgui.Connector) *Server {
	cfg := config.Default()
	cfg.PopupPauseMs = 0
	cfg.TabRetryPauseMs = 0
	metrics := telemetry.New()
	b := bridge.New(zerolog.Nop(), cfg, metrics, conn)
	return New(zerolog.Nop(), b, metrics)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeOrder(t *testing.T, rec *httptest.ResponseRecorder) orderResponse {
	t.Helper()
	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestStatusEndpoint(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		srv := newTestServer(fakeConnector{sess: sapgui.NewFakeSession()})
		rec := doRequest(t, srv.Handler(), http.MethodGet, "/api/status", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp statusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "connected", resp.Status)
		assert.Equal(t, "Conectado a SAP", resp.Message)
	})

	t.Run("disconnected", func(t *testing.T) {
		srv := newTestServer(fakeConnector{err: sapgui.ErrNoSession})
		rec := doRequest(t, srv.Handler(), http.MethodGet, "/api/status", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp statusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "disconnected", resp.Status)
	})
}

func TestCreateOrderEndpoint_Success(t *testing.T) {
	sess := sapgui.NewFakeSession()
	sess.Status = "Orden 100235 creada"
	srv := newTestServer(fakeConnector{sess: sess})

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/crear-orden",
		`{"producto":"MAT1","lote":"L001"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeOrder(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "SAP: Orden 100235 creada", resp.Message)
}

func TestCreateOrderEndpoint_NoSession503(t *testing.T) {
	srv := newTestServer(fakeConnector{err: sapgui.ErrNoSession})

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/crear-orden",
		`{"producto":"MAT1","lote":"L001"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeOrder(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "SAP no está abierto.", resp.Message)
}

func TestCreateOrderEndpoint_ScriptFailure500(t *testing.T) {
	sess := sapgui.NewFakeSession()
	sess.FailOn["wnd[0]/usr/tabsTABSTRIP_5115/tabpKOWE/ssubSUBSCR_5115:SAPLCOKO:5190/ctxtAFPOD-CHARG"] = assert.AnError
	sess.Status = "El lote L001 ya existe"
	srv := newTestServer(fakeConnector{sess: sess})

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/crear-orden",
		`{"producto":"MAT1","lote":"L001"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeOrder(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Error SAP: El lote L001 ya existe", resp.Message)
}

func TestCreateOrderEndpoint_BadJSON400(t *testing.T) {
	srv := newTestServer(fakeConnector{sess: sapgui.NewFakeSession()})

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/crear-orden", `{"producto":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderEndpoint_MissingLote400(t *testing.T) {
	srv := newTestServer(fakeConnector{sess: sapgui.NewFakeSession()})

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/crear-orden", `{"producto":"MAT1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReleaseOrderEndpoint_Success(t *testing.T) {
	sess := sapgui.NewFakeSession()
	srv := newTestServer(fakeConnector{sess: sess})

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/liberar-orden", `{"id_sap":"000123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeOrder(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "SAP: Orden guardada", resp.Message)
	assert.Equal(t, "000123", sess.Fields["wnd[0]/usr/ctxtCAUFVD-AUFNR"])
}

func TestReleaseOrderEndpoint_MissingID400(t *testing.T) {
	srv := newTestServer(fakeConnector{sess: sapgui.NewFakeSession()})

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/liberar-orden", `{"producto":"MAT1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(fakeConnector{sess: sapgui.NewFakeSession()})

	rec := doRequest(t, srv.Handler(), http.MethodOptions, "/crear-orden", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(fakeConnector{sess: sapgui.NewFakeSession()})

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(fakeConnector{sess: sapgui.NewFakeSession()})

	// Run one transaction so the counter families exist.
	doRequest(t, srv.Handler(), http.MethodPost, "/crear-orden",
		`{"producto":"MAT1","lote":"L001"}`)

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sapbridge_transactions_total")
}
