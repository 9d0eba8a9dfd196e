package script

import (
	"time"

	"github.com/zeusmes/sapbridge/internal/sapgui"
)

// Popup resolution. Every call here is speculative: the common case is that
// no popup appeared, and a failing detection (the window object does not
// exist) means the same thing as "no popup".

// popupActive reports whether a modal secondary window is the active window.
func popupActive(s sapgui.Session) bool {
	name, err := s.ActiveWindowName()
	if err != nil {
		return false
	}
	return name == popupWindow
}

// acknowledgePopups dismisses stacked confirmation dialogs (date warnings
// and the like) with a neutral Enter. Bounded at two attempts with a short
// pause between them, then gives up silently. Returns how many dialogs were
// dismissed.
func acknowledgePopups(s sapgui.Session, pause time.Duration) int {
	dismissed := 0
	for i := 0; i < 2; i++ {
		if !popupActive(s) {
			return dismissed
		}
		if err := sapgui.SendVKey(s, popupWindow, vkeyEnter); err != nil {
			return dismissed
		}
		dismissed++
		time.Sleep(pause)
	}
	return dismissed
}

// choosePopupOption answers a yes/no decision popup by pressing the named
// response button. No popup present is not an error.
func choosePopupOption(s sapgui.Session, button string) error {
	if !popupActive(s) {
		return nil
	}
	return sapgui.Press(s, button)
}
