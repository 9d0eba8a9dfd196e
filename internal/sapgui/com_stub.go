//go:build !windows

package sapgui

import (
	"fmt"
	"runtime"
)

// SAP GUI scripting is COM-only. On other platforms the connector reports
// the session as absent, which keeps the HTTP surface and tests runnable
// anywhere while the automation itself stays windows-only.
type stubConnector struct{}

func newPlatformConnector() Connector {
	return stubConnector{}
}

func (stubConnector) Connect() (Session, error) {
	return nil, fmt.Errorf("%w: SAP GUI scripting requires windows, running on %s", ErrNoSession, runtime.GOOS)
}
