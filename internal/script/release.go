package script

import (
	"errors"

	"github.com/zeusmes/sapbridge/internal/sapgui"
)

// FallbackSaved is the synthesized success message when the release save
// succeeded but the status line could not be read.
const FallbackSaved = "Orden guardada"

// ErrOrderIDRequired is returned when a release request carries no order id
// and unkeyed release is disabled. Without an id the script would act on
// whatever order happens to be loaded in the session, which is not a
// verifiable target.
var ErrOrderIDRequired = errors.New("id_sap requerido para liberar una orden")

// ReleaseOrder builds the COR2 script: load the order, press release, save.
// The release press is optional — the order may already be released or the
// button disabled — so its failure is recorded and the save still runs.
func (b Builder) ReleaseOrder(req ReleaseRequest) ([]Step, error) {
	if req.IDSAP == "" && !b.AllowUnkeyedRelease {
		return nil, ErrOrderIDRequired
	}

	steps := []Step{
		{
			Name:     "navigate COR2",
			Critical: true,
			Run: func(s sapgui.Session) error {
				if err := sapgui.SetText(s, pathCommandField, tcodeModifyOrder); err != nil {
					return err
				}
				return sapgui.Press(s, pathEnterButton)
			},
		},
	}

	if req.IDSAP != "" {
		steps = append(steps, Step{
			Name:     "load order",
			Critical: true,
			Run: func(s sapgui.Session) error {
				if err := sapgui.SetText(s, pathOrderID, req.IDSAP); err != nil {
					return err
				}
				return sapgui.SendVKey(s, mainWindow, vkeyEnter)
			},
		})
	}

	steps = append(steps,
		Step{
			Name: "press release",
			Run: func(s sapgui.Session) error {
				return sapgui.Press(s, pathReleaseButton)
			},
		},
		Step{
			Name:     "save",
			Critical: true,
			Run: func(s sapgui.Session) error {
				return sapgui.Press(s, pathSaveButton)
			},
		},
	)

	return steps, nil
}
