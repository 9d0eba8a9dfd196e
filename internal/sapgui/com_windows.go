//go:build windows

package sapgui

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// comConnector reaches the SAP GUI scripting object model over COM. This is
// the only file that knows about COM; everything else sees the Session and
// Element interfaces.
type comConnector struct{}

func newPlatformConnector() Connector {
	return comConnector{}
}

func (comConnector) Connect() (Session, error) {
	// Multithreaded apartment: request handlers run on arbitrary OS
	// threads. S_FALSE (already initialized) is fine.
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != uintptr(ole.S_FALSE) {
			return nil, fmt.Errorf("%w: CoInitializeEx: %v", ErrNoSession, err)
		}
	}

	clsid, err := ole.CLSIDFromProgID("SAPGUI")
	if err != nil {
		return nil, fmt.Errorf("%w: SAPGUI not registered: %v", ErrNoSession, err)
	}
	unknown, err := ole.GetActiveObject(clsid, ole.IID_IUnknown)
	if err != nil {
		return nil, fmt.Errorf("%w: SAP GUI not running: %v", ErrNoSession, err)
	}
	root, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		return nil, fmt.Errorf("%w: scripting root: %v", ErrNoSession, err)
	}

	engine, err := dispatchCall(root, "GetScriptingEngine")
	if err != nil {
		return nil, fmt.Errorf("%w: scripting engine: %v", ErrNoSession, err)
	}
	conn, err := dispatchCall(engine, "Children", 0)
	if err != nil {
		return nil, fmt.Errorf("%w: no open connection: %v", ErrNoSession, err)
	}
	sess, err := dispatchCall(conn, "Children", 0)
	if err != nil {
		return nil, fmt.Errorf("%w: no open session: %v", ErrNoSession, err)
	}
	return &comSession{disp: sess}, nil
}

// dispatchCall invokes a COM method and returns the result as IDispatch.
func dispatchCall(disp *ole.IDispatch, name string, args ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.CallMethod(disp, name, args...)
	if err != nil {
		return nil, err
	}
	child := v.ToIDispatch()
	if child == nil {
		return nil, fmt.Errorf("%s returned no object", name)
	}
	return child, nil
}

type comSession struct {
	disp *ole.IDispatch
}

func (s *comSession) FindByID(path string) (Element, error) {
	el, err := dispatchCall(s.disp, "FindById", path)
	if err != nil {
		return nil, err
	}
	return &comElement{disp: el}, nil
}

func (s *comSession) ActiveWindowName() (string, error) {
	win, err := oleutil.GetProperty(s.disp, "ActiveWindow")
	if err != nil {
		return "", err
	}
	wd := win.ToIDispatch()
	if wd == nil {
		return "", fmt.Errorf("no active window")
	}
	name, err := oleutil.GetProperty(wd, "Name")
	if err != nil {
		return "", err
	}
	return name.ToString(), nil
}

func (s *comSession) SystemName() (string, error) {
	info, err := oleutil.GetProperty(s.disp, "Info")
	if err != nil {
		return "", err
	}
	id := info.ToIDispatch()
	if id == nil {
		return "", fmt.Errorf("no session info")
	}
	name, err := oleutil.GetProperty(id, "SystemName")
	if err != nil {
		return "", err
	}
	return name.ToString(), nil
}

type comElement struct {
	disp *ole.IDispatch
}

func (e *comElement) Text() (string, error) {
	v, err := oleutil.GetProperty(e.disp, "Text")
	if err != nil {
		return "", err
	}
	return v.ToString(), nil
}

func (e *comElement) SetText(value string) error {
	_, err := oleutil.PutProperty(e.disp, "Text", value)
	return err
}

func (e *comElement) Press() error {
	_, err := oleutil.CallMethod(e.disp, "Press")
	return err
}

func (e *comElement) Select() error {
	_, err := oleutil.CallMethod(e.disp, "Select")
	return err
}

func (e *comElement) SendVKey(key int) error {
	_, err := oleutil.CallMethod(e.disp, "SendVKey", key)
	return err
}
