package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusmes/sapbridge/internal/sapgui"
)

func TestAcknowledgePopups_NoPopupIsTheCommonCase(t *testing.T) {
	s := sapgui.NewFakeSession()

	dismissed := acknowledgePopups(s, 0)

	assert.Equal(t, 0, dismissed)
	assert.Empty(t, s.CallsFor(popupWindow))
}

func TestAcknowledgePopups_SinglePopupDismissedOnce(t *testing.T) {
	s := sapgui.NewFakeSession()
	s.PushActiveWindow("wnd[1]", "wnd[0]")

	dismissed := acknowledgePopups(s, 0)

	assert.Equal(t, 1, dismissed)
	require.Len(t, s.CallsFor(popupWindow), 1)
	assert.Equal(t, vkeyEnter, s.CallsFor(popupWindow)[0].Key)
}

func TestAcknowledgePopups_StackedPopupsBoundedAtTwo(t *testing.T) {
	s := sapgui.NewFakeSession()
	// Still active on every check: the resolver must give up after two
	// attempts rather than loop.
	s.ActiveWindow = "wnd[1]"

	dismissed := acknowledgePopups(s, 0)

	assert.Equal(t, 2, dismissed)
	assert.Len(t, s.CallsFor(popupWindow), 2)
}

func TestAcknowledgePopups_DetectionFailureMeansNoPopup(t *testing.T) {
	s := sapgui.NewFakeSession()
	s.ActiveWindowErr = errors.New("window does not exist")

	dismissed := acknowledgePopups(s, 0)

	assert.Equal(t, 0, dismissed)
	assert.Empty(t, s.CallsFor(popupWindow))
}

func TestChoosePopupOption_PressesWhenPopupActive(t *testing.T) {
	s := sapgui.NewFakeSession()
	s.ActiveWindow = "wnd[1]"

	err := choosePopupOption(s, pathLotConfirmYes)

	require.NoError(t, err)
	assert.Len(t, s.CallsFor(pathLotConfirmYes), 1)
}

func TestChoosePopupOption_NoPopupNoAction(t *testing.T) {
	s := sapgui.NewFakeSession()

	err := choosePopupOption(s, pathLotConfirmYes)

	require.NoError(t, err)
	assert.Empty(t, s.CallsFor(pathLotConfirmYes))
}
