package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusmes/sapbridge/internal/sapgui"
)

func TestReleaseOrder_SetsOrderIDBeforeRelease(t *testing.T) {
	s := sapgui.NewFakeSession()
	s.Status = "Orden 000123 liberada"

	steps, err := testBuilder().ReleaseOrder(ReleaseRequest{IDSAP: "000123"})
	require.NoError(t, err)
	out := runScript(t, s, steps, FallbackSaved)

	require.True(t, out.Success)
	assert.Equal(t, "SAP: Orden 000123 liberada", out.Message)
	assert.Equal(t, "000123", s.Fields[pathOrderID])

	// The order id write must happen before the release press.
	idIdx, releaseIdx := -1, -1
	for i, c := range s.Calls() {
		if c.Op == "set" && c.Path == pathOrderID && idIdx == -1 {
			idIdx = i
		}
		if c.Op == "press" && c.Path == pathReleaseButton && releaseIdx == -1 {
			releaseIdx = i
		}
	}
	require.NotEqual(t, -1, idIdx)
	require.NotEqual(t, -1, releaseIdx)
	assert.Less(t, idIdx, releaseIdx)
}

func TestReleaseOrder_ReleaseButtonFailureDoesNotAbort(t *testing.T) {
	s := sapgui.NewFakeSession()
	s.FailOn[pathReleaseButton] = errors.New("button disabled")

	steps, err := testBuilder().ReleaseOrder(ReleaseRequest{IDSAP: "000123"})
	require.NoError(t, err)
	out := runScript(t, s, steps, FallbackSaved)

	require.True(t, out.Success, "an already-released order still saves")
	require.Len(t, s.CallsFor(pathSaveButton), 1)

	var pressStep *StepResult
	for i := range out.Steps {
		if out.Steps[i].Name == "press release" {
			pressStep = &out.Steps[i]
		}
	}
	require.NotNil(t, pressStep)
	assert.Equal(t, StatusSkipped, pressStep.Status)
}

func TestReleaseOrder_MissingID_Rejected(t *testing.T) {
	_, err := testBuilder().ReleaseOrder(ReleaseRequest{Producto: "MAT1"})
	assert.ErrorIs(t, err, ErrOrderIDRequired)
}

func TestReleaseOrder_UnkeyedModeSkipsLoadStep(t *testing.T) {
	b := testBuilder()
	b.AllowUnkeyedRelease = true

	steps, err := b.ReleaseOrder(ReleaseRequest{})
	require.NoError(t, err)

	for _, st := range steps {
		assert.NotEqual(t, "load order", st.Name)
	}

	s := sapgui.NewFakeSession()
	out := runScript(t, s, steps, FallbackSaved)
	require.True(t, out.Success)
	assert.Equal(t, "SAP: Orden guardada", out.Message)
	assert.Empty(t, s.CallsFor(pathOrderID))
}

func TestReleaseOrder_SaveFailure_SurfacesStatusText(t *testing.T) {
	s := sapgui.NewFakeSession()
	s.FailOn[pathSaveButton] = errors.New("save rejected")
	s.Status = "La orden tiene errores de liberación"

	steps, err := testBuilder().ReleaseOrder(ReleaseRequest{IDSAP: "000123"})
	require.NoError(t, err)
	out := runScript(t, s, steps, FallbackSaved)

	require.False(t, out.Success)
	assert.Equal(t, "Error SAP: La orden tiene errores de liberación", out.Message)
}
