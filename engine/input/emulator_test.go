package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phases(src TouchSource) []common.TouchPhase {
	var out []common.TouchPhase
	for i := range src.TouchCount() {
		out = append(out, src.Touch(i).Phase)
	}
	return out
}

func TestEmulator_PrimaryLifecycle(t *testing.T) {
	t.Parallel()

	e := NewEmulator(WithScreenHeight(600))
	e.Advance()
	assert.Zero(t, e.TouchCount())

	e.PointerDown(ButtonPrimary, 100, 100)
	e.Advance()
	require.Equal(t, 1, e.TouchCount())
	assert.Equal(t, common.Touch{FingerID: 0, Position: mgl32.Vec2{100, 500}, Phase: common.TouchBegan}, e.Touch(0))

	e.Advance()
	assert.Equal(t, []common.TouchPhase{common.TouchStationary}, phases(e))

	e.PointerMove(200, 50)
	e.Advance()
	assert.Equal(t, []common.TouchPhase{common.TouchMoved}, phases(e))
	assert.Equal(t, mgl32.Vec2{200, 550}, e.Touch(0).Position)

	e.PointerUp(ButtonPrimary)
	e.Advance()
	assert.Equal(t, []common.TouchPhase{common.TouchEnded}, phases(e))

	e.Advance()
	assert.Zero(t, e.TouchCount())
}

func TestEmulator_ClickWithinOneFrameStillBegins(t *testing.T) {
	t.Parallel()

	e := NewEmulator()
	e.PointerDown(ButtonPrimary, 10, 10)
	e.PointerUp(ButtonPrimary)

	e.Advance()
	assert.Equal(t, []common.TouchPhase{common.TouchBegan}, phases(e))
	e.Advance()
	assert.Equal(t, []common.TouchPhase{common.TouchEnded}, phases(e))
	e.Advance()
	assert.Zero(t, e.TouchCount())
}

func TestEmulator_MoveBeforeFirstFrameIsReportedAsMoved(t *testing.T) {
	t.Parallel()

	e := NewEmulator(WithScreenHeight(600))
	e.PointerDown(ButtonPrimary, 100, 100)
	e.PointerMove(160, 100)

	e.Advance()
	require.Equal(t, 1, e.TouchCount())
	assert.Equal(t, common.Touch{FingerID: 0, Position: mgl32.Vec2{100, 500}, Phase: common.TouchBegan}, e.Touch(0))

	e.Advance()
	assert.Equal(t, common.Touch{FingerID: 0, Position: mgl32.Vec2{160, 500}, Phase: common.TouchMoved}, e.Touch(0))
}

func TestEmulator_SecondaryPinch(t *testing.T) {
	t.Parallel()

	e := NewEmulator(WithScreenHeight(400), WithPinchSpread(100))
	e.PointerDown(ButtonSecondary, 300, 200)
	e.Advance()
	require.Equal(t, 2, e.TouchCount())
	assert.Equal(t, []common.TouchPhase{common.TouchBegan, common.TouchBegan}, phases(e))
	assert.InDelta(t, 100, common.Distance2(e.Touch(0).Position, e.Touch(1).Position), 1e-4)

	e.PointerMove(340, 260)
	e.Advance()
	assert.Equal(t, []common.TouchPhase{common.TouchMoved, common.TouchMoved}, phases(e))
	assert.InDelta(t, 180, common.Distance2(e.Touch(0).Position, e.Touch(1).Position), 1e-4)

	e.PointerMove(0, 200)
	e.Advance()
	assert.InDelta(t, 2, common.Distance2(e.Touch(0).Position, e.Touch(1).Position), 1e-4, "spread never collapses")

	e.PointerUp(ButtonSecondary)
	e.Advance()
	assert.Equal(t, []common.TouchPhase{common.TouchEnded, common.TouchEnded}, phases(e))
}

func TestFrame(t *testing.T) {
	t.Parallel()

	f := Frame{{FingerID: 3, Phase: common.TouchMoved}}
	assert.Equal(t, 1, f.TouchCount())
	assert.Equal(t, 3, f.Touch(0).FingerID)
}
