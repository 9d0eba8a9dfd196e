package script

import (
	"github.com/zeusmes/sapbridge/internal/sapgui"
)

// TransactionCreate and TransactionRelease name the two scripts in logs
// and metrics.
const (
	TransactionCreate  = "crear-orden"
	TransactionRelease = "liberar-orden"
)

// FallbackCreated is the synthesized success message when the save step
// succeeded but the status line could not be read.
const FallbackCreated = "Orden creada (mensaje no leído)"

// CreateOrder builds the COR1 script. Strictly ordered over screens:
// transaction entry → initial screen → header data → batch assignment →
// optional version and long-text blocks → save.
func (b Builder) CreateOrder(req OrderRequest) []Step {
	casa := b.casa(req)
	cantidad := b.cantidad(req)
	unidad := b.unidad()
	fecha := b.now().Format("02.01.2006")

	steps := []Step{
		{
			Name:     "navigate COR1",
			Critical: true,
			Run: func(s sapgui.Session) error {
				if err := sapgui.SetText(s, pathCommandField, tcodeCreateOrder); err != nil {
					return err
				}
				return sapgui.Press(s, pathEnterButton)
			},
		},
		{
			Name:     "initial screen",
			Critical: true,
			Run: func(s sapgui.Session) error {
				if err := sapgui.SetText(s, pathMaterial, req.Producto); err != nil {
					return err
				}
				if err := sapgui.SetText(s, pathPlant, casa); err != nil {
					return err
				}
				return sapgui.SendVKey(s, mainWindow, vkeyEnter)
			},
		},
		{
			Name:     "header data",
			Critical: true,
			Run: func(s sapgui.Session) error {
				if err := sapgui.SetText(s, pathQuantity, cantidad); err != nil {
					return err
				}
				if err := sapgui.SetText(s, pathUnit, unidad); err != nil {
					return err
				}
				if err := sapgui.SetText(s, pathStartDate, fecha); err != nil {
					return err
				}
				return sapgui.SendVKey(s, mainWindow, vkeyEnter)
			},
		},
		{
			// Confirming the header may raise one or two stacked date
			// warnings depending on the start date.
			Name: "dismiss date warnings",
			Run: func(s sapgui.Session) error {
				acknowledgePopups(s, b.Timing.PopupPause)
				return nil
			},
		},
		{
			Name:     "batch assignment",
			Critical: true,
			Run: func(s sapgui.Session) error {
				if err := selectTabWithRetry(s, pathReceiptTab, b.Timing.TabRetryPause); err != nil {
					return err
				}
				if err := sapgui.SetText(s, pathBatch, req.Lote); err != nil {
					return err
				}
				return sapgui.SendVKey(s, mainWindow, vkeyEnter)
			},
		},
		{
			// "¿Desea crear el lote?" appears only when the lot is new.
			Name: "confirm new lot",
			Run: func(s sapgui.Session) error {
				return choosePopupOption(s, pathLotConfirmYes)
			},
		},
	}

	if req.Linea != "" {
		// Best effort: the order is still saved without a version when
		// any part of this block fails.
		steps = append(steps, Step{
			Name: "production version",
			Run: func(s sapgui.Session) error {
				if err := sapgui.SelectTab(s, pathVersionTab); err != nil {
					return err
				}
				if err := sapgui.Press(s, pathVersionLookup); err != nil {
					return err
				}
				if err := sapgui.SetText(s, pathVersionField, req.Linea); err != nil {
					return err
				}
				return sapgui.SendVKey(s, popupWindow, vkeyEnter)
			},
		})
	}

	if req.Descripcion != "" {
		steps = append(steps, Step{
			Name: "long text",
			Run: func(s sapgui.Session) error {
				if err := sapgui.Press(s, pathLongTextButton); err != nil {
					return err
				}
				if err := sapgui.SetText(s, pathLongTextLine, req.Descripcion); err != nil {
					return err
				}
				return sapgui.Press(s, pathBackButton)
			},
		})
	}

	steps = append(steps, Step{
		Name:     "save",
		Critical: true,
		Run: func(s sapgui.Session) error {
			return sapgui.Press(s, pathSaveButton)
		},
	})

	return steps
}
