package script

// Element paths for the COR1/COR2 process-order screens. Paths address
// elements inside the currently displayed screen only; each script starts
// from an explicit transaction-code entry so the screen state is known.
const (
	mainWindow  = "wnd[0]"
	popupWindow = "wnd[1]"

	pathCommandField = "wnd[0]/tbar[0]/okcd"
	pathEnterButton  = "wnd[0]/tbar[0]/btn[0]"
	pathBackButton   = "wnd[0]/tbar[0]/btn[3]"
	pathSaveButton   = "wnd[0]/tbar[0]/btn[11]"

	pathMaterial = "wnd[0]/usr/ctxtCAUFVD-MATNR"
	pathPlant    = "wnd[0]/usr/ctxtCAUFVD-WERKS"
	pathOrderID  = "wnd[0]/usr/ctxtCAUFVD-AUFNR"

	pathQuantity  = "wnd[0]/usr/tabsTABSTRIP_5115/tabpKOZE/ssubSUBSCR_5115:SAPLCOKO:5120/txtCAUFVD-GAMNG"
	pathUnit      = "wnd[0]/usr/tabsTABSTRIP_5115/tabpKOZE/ssubSUBSCR_5115:SAPLCOKO:5120/ctxtCAUFVD-GMEIN"
	pathStartDate = "wnd[0]/usr/tabsTABSTRIP_5115/tabpKOZE/ssubSUBSCR_5115:SAPLCOKO:5120/ctxtCAUFVD-GSTRP"

	pathReceiptTab = "wnd[0]/usr/tabsTABSTRIP_5115/tabpKOWE"
	pathBatch      = "wnd[0]/usr/tabsTABSTRIP_5115/tabpKOWE/ssubSUBSCR_5115:SAPLCOKO:5190/ctxtAFPOD-CHARG"

	// "¿Desea crear el lote?" — affirmative response button.
	pathLotConfirmYes = "wnd[1]/usr/btnSPOP-VAROPTION1"

	pathVersionTab    = "wnd[0]/usr/tabsTABSTRIP_5115/tabpSLAP"
	pathVersionLookup = "wnd[0]/usr/tabsTABSTRIP_5115/tabpSLAP/ssubSUBSCR_5115:SAPLCOKO:5250/btnPUSH_STAK"
	pathVersionField  = "wnd[1]/usr/ctxtRC62F-PROD_VERS"

	pathLongTextButton = "wnd[0]/usr/btnPUSH_LANGTEXT"
	pathLongTextLine   = "wnd[0]/usr/tblSAPLSTXXEDITAREA/txtRSTXT-TXLINE[2,1]"

	// Release (green flag) on the COR2 application toolbar.
	pathReleaseButton = "wnd[0]/tbar[1]/btn[30]"
)

const (
	tcodeCreateOrder = "/ncor1"
	tcodeModifyOrder = "/ncor2"

	vkeyEnter = 0
)
