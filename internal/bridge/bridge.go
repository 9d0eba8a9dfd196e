// Package bridge is the service layer shared by the REST, MCP, and CLI
// surfaces: it admits one transaction at a time through the session gate,
// acquires a fresh session handle, runs the requested script, and returns
// the classified outcome.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zeusmes/sapbridge/internal/config"
	"github.com/zeusmes/sapbridge/internal/gate"
	"github.com/zeusmes/sapbridge/internal/sapgui"
	"github.com/zeusmes/sapbridge/internal/script"
	"github.com/zeusmes/sapbridge/internal/telemetry"
)

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Bridge executes business operations against the single SAP GUI session.
type Bridge struct {
	log       zerolog.Logger
	gate      *gate.Gate
	metrics   *telemetry.Metrics
	connector sapgui.Connector
	builder   script.Builder
	validate  *validator.Validate
}

// New wires a bridge from configuration. The connector is injected so tests
// can supply a fake session.
func New(logger zerolog.Logger, cfg *config.Config, metrics *telemetry.Metrics, connector sapgui.Connector) *Bridge {
	return &Bridge{
		log:       logger,
		gate:      gate.New(cfg.GateTimeout()),
		metrics:   metrics,
		connector: connector,
		builder: script.Builder{
			Defaults: script.Defaults{
				Casa:     cfg.Defaults.Casa,
				Cantidad: cfg.Defaults.Cantidad,
				Unidad:   cfg.Defaults.Unidad,
			},
			Timing: script.Timing{
				PopupPause:    cfg.PopupPause(),
				TabRetryPause: cfg.TabRetryPause(),
			},
			AllowUnkeyedRelease: cfg.AllowUnkeyedRelease,
		},
		validate: validator.New(),
	}
}

// StatusResult is the connectivity report for the status endpoint.
type StatusResult struct {
	Connected bool
	Message   string
}

// Status probes for a live session. It briefly takes the gate so the probe
// never touches the session mid-script; a busy gate itself proves a session
// is in use.
func (b *Bridge) Status(ctx context.Context) StatusResult {
	// Do not queue behind a long script; a couple of seconds is enough to
	// tell "busy" from "gone".
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	release, err := b.gate.Acquire(ctx)
	if err != nil {
		if errors.Is(err, gate.ErrBusy) {
			return StatusResult{Connected: true, Message: "Conectado a SAP (transacción en curso)"}
		}
		return StatusResult{Connected: false, Message: "Error de conexión"}
	}
	defer release()

	sess, err := b.connector.Connect()
	if err != nil {
		return StatusResult{Connected: false, Message: "SAP no encontrado"}
	}
	if !sapgui.IsAlive(sess) {
		return StatusResult{Connected: false, Message: "Error de conexión"}
	}
	return StatusResult{Connected: true, Message: "Conectado a SAP"}
}

// CreateOrder runs the COR1 script for one order request.
func (b *Bridge) CreateOrder(ctx context.Context, req script.OrderRequest) (script.Outcome, error) {
	if err := b.validate.Struct(req); err != nil {
		return script.Outcome{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return b.run(ctx, script.TransactionCreate, b.builder.CreateOrder(req), script.FallbackCreated)
}

// ReleaseOrder runs the COR2 script for one release request.
func (b *Bridge) ReleaseOrder(ctx context.Context, req script.ReleaseRequest) (script.Outcome, error) {
	steps, err := b.builder.ReleaseOrder(req)
	if err != nil {
		return script.Outcome{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return b.run(ctx, script.TransactionRelease, steps, script.FallbackSaved)
}

// run serializes one script against the session: gate → connect → script
// body → status read. The gate is held for the whole span. Once the script
// has started it runs to completion even if the caller went away — SAP has
// no rollback, and abandoning a script mid-flight would leave the session
// in an undiagnosable state.
func (b *Bridge) run(ctx context.Context, transaction string, steps []script.Step, fallback string) (script.Outcome, error) {
	logger := b.log.With().
		Str("transaction", transaction).
		Str("run_id", uuid.NewString()).
		Logger()

	waitStart := time.Now()
	release, err := b.gate.Acquire(ctx)
	if err != nil {
		if errors.Is(err, gate.ErrBusy) {
			logger.Warn().Dur("waited", time.Since(waitStart)).Msg("session busy, rejecting")
			b.metrics.ObserveTransaction(transaction, telemetry.OutcomeBusy, 0)
		}
		return script.Outcome{}, err
	}
	defer release()
	b.metrics.ObserveGateWait(time.Since(waitStart))

	// Fresh handle per request: the operator may have restarted SAP since
	// the last one.
	sess, err := b.connector.Connect()
	if err != nil {
		logger.Warn().Err(err).Msg("no live session")
		b.metrics.ObserveTransaction(transaction, telemetry.OutcomeUnavailable, 0)
		return script.Outcome{}, err
	}

	start := time.Now()
	out := script.Run(logger, sess, transaction, steps, fallback)

	outcome := telemetry.OutcomeSuccess
	if !out.Success {
		outcome = telemetry.OutcomeFailure
	}
	b.metrics.ObserveTransaction(transaction, outcome, time.Since(start))
	return out, nil
}
