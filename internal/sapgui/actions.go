package sapgui

// Action primitives. Each performs exactly one interaction against the
// session and classifies failures as ErrElementNotFound (path did not
// resolve) or ErrUnresponsive (the interaction itself failed). The session
// handle is always an explicit parameter; there is no ambient session.

const statusBarPath = "wnd[0]/sbar"

// SetText writes a value into a text field.
func SetText(s Session, path, value string) error {
	el, err := s.FindByID(path)
	if err != nil {
		return notFound(path, err)
	}
	if err := el.SetText(value); err != nil {
		return unresponsive("set "+path, err)
	}
	return nil
}

// GetText reads the current value of a field.
func GetText(s Session, path string) (string, error) {
	el, err := s.FindByID(path)
	if err != nil {
		return "", notFound(path, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", unresponsive("read "+path, err)
	}
	return text, nil
}

// Press presses a button.
func Press(s Session, path string) error {
	el, err := s.FindByID(path)
	if err != nil {
		return notFound(path, err)
	}
	if err := el.Press(); err != nil {
		return unresponsive("press "+path, err)
	}
	return nil
}

// SelectTab selects a tab strip entry.
func SelectTab(s Session, path string) error {
	el, err := s.FindByID(path)
	if err != nil {
		return notFound(path, err)
	}
	if err := el.Select(); err != nil {
		return unresponsive("select "+path, err)
	}
	return nil
}

// SendVKey sends a virtual key to a window ("wnd[0]", "wnd[1]").
// VKey 0 is Enter.
func SendVKey(s Session, window string, key int) error {
	el, err := s.FindByID(window)
	if err != nil {
		return notFound(window, err)
	}
	if err := el.SendVKey(key); err != nil {
		return unresponsive("vkey on "+window, err)
	}
	return nil
}

// StatusBarText reads the status line of the main window.
func StatusBarText(s Session) (string, error) {
	return GetText(s, statusBarPath)
}
