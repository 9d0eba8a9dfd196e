// Package sapgui wraps the SAP GUI scripting automation interface.
//
// The scripting API exposes the running SAP Logon process as a COM object
// tree: scripting engine → connections → sessions. A Session is the single
// live window context all automation runs against; elements inside the
// current screen are addressed by path strings such as
// "wnd[0]/usr/ctxtCAUFVD-MATNR". Only the action primitives in this package
// are allowed to touch a Session directly — higher layers compose them.
package sapgui

// Session is a handle to one live SAP GUI session. It is borrowed, not
// owned: the operator may close or restart SAP at any moment, so handles
// must be re-acquired per request and never cached.
type Session interface {
	// FindByID resolves an element by its full path within the current
	// screen. Paths are only valid while the matching screen is displayed.
	FindByID(path string) (Element, error)

	// ActiveWindowName returns the name of the currently active window
	// ("wnd[0]" for the main window, "wnd[1]" for a modal popup).
	ActiveWindowName() (string, error)

	// SystemName reads the connected system id. Used as a cheap liveness
	// probe; any error means the session is gone.
	SystemName() (string, error)
}

// Element is one addressable UI element inside the current screen.
type Element interface {
	Text() (string, error)
	SetText(value string) error
	Press() error
	Select() error
	SendVKey(key int) error
}

// Connector acquires a session handle from the running SAP GUI process.
type Connector interface {
	// Connect walks SAPGUI root → scripting engine → first connection →
	// first session. Any missing link yields ErrNoSession. No retries at
	// this layer; callers decide whether to retry.
	Connect() (Session, error)
}

// NewConnector returns the connector for the current platform.
func NewConnector() Connector {
	return newPlatformConnector()
}

// IsAlive probes a session by reading one cheap property. Any failure is
// treated as "not alive", never propagated.
func IsAlive(s Session) bool {
	if s == nil {
		return false
	}
	_, err := s.SystemName()
	return err == nil
}
