package script

import (
	"time"

	"github.com/zeusmes/sapbridge/internal/sapgui"
)

// OrderRequest is the inbound payload for creating a process order. Field
// names follow the Zeus wire format. All values are untyped strings; SAP
// itself enforces anything beyond presence.
type OrderRequest struct {
	Producto    string `json:"producto" validate:"required"`
	Lote        string `json:"lote" validate:"required"`
	Casa        string `json:"casa,omitempty"`
	Cantidad    string `json:"cantidad,omitempty"`
	Linea       string `json:"linea,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}

// ReleaseRequest is the inbound payload for releasing an order.
type ReleaseRequest struct {
	IDSAP    string `json:"id_sap,omitempty"`
	Producto string `json:"producto,omitempty"`
}

// Defaults are the values applied when a request omits the optional order
// fields.
type Defaults struct {
	Casa     string
	Cantidad string
	Unidad   string
}

// Timing holds the fixed pauses that let the SAP UI settle. Tests zero
// them out.
type Timing struct {
	// PopupPause is the wait between stacked-popup dismissal attempts.
	PopupPause time.Duration
	// TabRetryPause is the wait before retrying a tab select while the
	// screen is still rendering.
	TabRetryPause time.Duration
}

// Builder assembles transaction scripts from requests.
type Builder struct {
	Defaults Defaults
	Timing   Timing

	// Now supplies the order start date; nil means time.Now.
	Now func() time.Time

	// AllowUnkeyedRelease permits releasing whatever order is currently
	// loaded when no id is supplied. Off by default: that mode acts on an
	// unverifiable target.
	AllowUnkeyedRelease bool
}

func (b Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b Builder) casa(req OrderRequest) string {
	if req.Casa != "" {
		return req.Casa
	}
	if b.Defaults.Casa != "" {
		return b.Defaults.Casa
	}
	return "PC13"
}

func (b Builder) cantidad(req OrderRequest) string {
	if req.Cantidad != "" {
		return req.Cantidad
	}
	if b.Defaults.Cantidad != "" {
		return b.Defaults.Cantidad
	}
	return "100"
}

func (b Builder) unidad() string {
	if b.Defaults.Unidad != "" {
		return b.Defaults.Unidad
	}
	return "HL"
}

// selectTabWithRetry selects a tab, retrying once after a pause when the
// tab is not yet selectable because the screen is still rendering. One
// bounded retry, not a silent skip: the second failure propagates.
func selectTabWithRetry(s sapgui.Session, path string, pause time.Duration) error {
	if err := sapgui.SelectTab(s, path); err == nil {
		return nil
	}
	time.Sleep(pause)
	return sapgui.SelectTab(s, path)
}
