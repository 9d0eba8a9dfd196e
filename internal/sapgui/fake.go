package sapgui

import (
	"fmt"
	"sync"
)

// FakeSession is an in-memory Session used by tests across packages. It
// records every interaction in order, which is what the script and
// serializer properties assert against.
type FakeSession struct {
	mu sync.Mutex

	// Fields holds current values by element path. SetText writes here,
	// Text reads from here.
	Fields map[string]string

	// Status is returned for the status bar path.
	Status string

	// StatusErr, when set, makes status bar reads fail.
	StatusErr error

	// System is returned by SystemName; SystemErr makes the probe fail.
	System    string
	SystemErr error

	// Missing paths fail to resolve in FindByID.
	Missing map[string]bool

	// FailOn maps a path to an error returned by any interaction with it.
	FailOn map[string]error

	// SelectFlaky maps a tab path to a number of Select calls that fail
	// before one succeeds (screen still rendering).
	SelectFlaky map[string]int

	// ActiveWindow is the current active window name (default "wnd[0]").
	// activeSeq, when pushed, is consumed one entry per ActiveWindowName
	// call before falling back to ActiveWindow.
	ActiveWindow    string
	ActiveWindowErr error
	activeSeq       []string

	// OnVKey is called after every SendVKey, letting a test raise or
	// dismiss a popup in reaction to a keystroke.
	OnVKey func(window string, key int)

	calls []FakeCall
}

// FakeCall is one recorded interaction.
type FakeCall struct {
	Op    string // "set", "press", "select", "vkey", "read"
	Path  string
	Value string
	Key   int
}

func NewFakeSession() *FakeSession {
	return &FakeSession{
		Fields:       make(map[string]string),
		Missing:      make(map[string]bool),
		FailOn:       make(map[string]error),
		SelectFlaky:  make(map[string]int),
		ActiveWindow: "wnd[0]",
		System:       "PRD",
	}
}

// PushActiveWindow queues active-window answers consumed in order.
func (f *FakeSession) PushActiveWindow(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activeSeq = append(f.activeSeq, names...)
}

// Calls returns a copy of the recorded interactions.
func (f *FakeSession) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsFor returns recorded interactions touching one path.
func (f *FakeSession) CallsFor(path string) []FakeCall {
	var out []FakeCall
	for _, c := range f.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeSession) record(c FakeCall) {
	f.calls = append(f.calls, c)
}

func (f *FakeSession) FindByID(path string) (Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[path] {
		return nil, fmt.Errorf("the control could not be found by id %s", path)
	}
	return &fakeElement{sess: f, path: path}, nil
}

func (f *FakeSession) ActiveWindowName() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ActiveWindowErr != nil {
		return "", f.ActiveWindowErr
	}
	if len(f.activeSeq) > 0 {
		name := f.activeSeq[0]
		f.activeSeq = f.activeSeq[1:]
		return name, nil
	}
	return f.ActiveWindow, nil
}

func (f *FakeSession) SystemName() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SystemErr != nil {
		return "", f.SystemErr
	}
	return f.System, nil
}

type fakeElement struct {
	sess *FakeSession
	path string
}

func (e *fakeElement) Text() (string, error) {
	f := e.sess
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FakeCall{Op: "read", Path: e.path})
	if err := f.FailOn[e.path]; err != nil {
		return "", err
	}
	if e.path == statusBarPath {
		if f.StatusErr != nil {
			return "", f.StatusErr
		}
		return f.Status, nil
	}
	return f.Fields[e.path], nil
}

func (e *fakeElement) SetText(value string) error {
	f := e.sess
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FakeCall{Op: "set", Path: e.path, Value: value})
	if err := f.FailOn[e.path]; err != nil {
		return err
	}
	f.Fields[e.path] = value
	return nil
}

func (e *fakeElement) Press() error {
	f := e.sess
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FakeCall{Op: "press", Path: e.path})
	return f.FailOn[e.path]
}

func (e *fakeElement) Select() error {
	f := e.sess
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FakeCall{Op: "select", Path: e.path})
	if n := f.SelectFlaky[e.path]; n > 0 {
		f.SelectFlaky[e.path] = n - 1
		return fmt.Errorf("tab %s not selectable yet", e.path)
	}
	return f.FailOn[e.path]
}

func (e *fakeElement) SendVKey(key int) error {
	f := e.sess
	f.mu.Lock()
	f.record(FakeCall{Op: "vkey", Path: e.path, Key: key})
	err := f.FailOn[e.path]
	hook := f.OnVKey
	f.mu.Unlock()
	if hook != nil {
		hook(e.path, key)
	}
	return err
}
