package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-3)

func TestNewCamera_DefaultPoseLooksDownNegativeZ(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithController(NewOrbitController()))

	if diff := cmp.Diff(mgl32.Vec3{}, c.Position(), approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{0, 0, -1}, c.Forward(), approx); diff != "" {
		t.Errorf("forward mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 1280.0/720.0, c.Aspect(), 1e-5)
}

func TestCamera_FollowsOrbit(t *testing.T) {
	t.Parallel()

	ctrl := NewOrbitController()
	c := NewCamera(WithController(ctrl))

	ctrl.SetState(OrbitState{Radius: 2, Azimuth: math.Pi / 2})
	c.Update()

	if diff := cmp.Diff(mgl32.Vec3{2, 0, -2}, c.Position(), approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{-1, 0, 0}, c.Forward(), approx); diff != "" {
		t.Errorf("forward mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, c.Position(), c.Pose().Position)
}

func TestScreenPointToRay(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithController(NewOrbitController()), WithScreenSize(800, 600))

	center := c.ScreenPointToRay(400, 300)
	if diff := cmp.Diff(mgl32.Vec3{0, 0, -1}, center.Direction, approx); diff != "" {
		t.Errorf("center direction mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, -0.1, center.Origin.Z(), 1e-3, "rays start on the near plane")

	t.Run("round trips through WorldToScreen", func(t *testing.T) {
		for _, px := range []mgl32.Vec2{{0, 0}, {800, 600}, {123, 456}} {
			ray := c.ScreenPointToRay(px.X(), px.Y())
			screen, ok := c.WorldToScreen(ray.Point(5))
			require.True(t, ok)
			assert.InDelta(t, px.X(), screen.X(), 0.05)
			assert.InDelta(t, px.Y(), screen.Y(), 0.05)
		}
	})
}

func TestWorldToScreen_BehindCamera(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithController(NewOrbitController()))

	screen, ok := c.WorldToScreen(mgl32.Vec3{0, 0, -5})
	require.True(t, ok)
	assert.InDelta(t, 640, screen.X(), 1e-2)
	assert.InDelta(t, 360, screen.Y(), 1e-2)

	_, ok = c.WorldToScreen(mgl32.Vec3{0, 0, 5})
	assert.False(t, ok)
}

func TestFrustum(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithController(NewOrbitController()))
	f := c.Frustum()
	assert.True(t, f.ContainsSphere(mgl32.Vec3{0, 0, -3}, 0.5))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 3}, 0.5))
}

func TestOrbitController_Bounds(t *testing.T) {
	t.Parallel()

	ctrl := NewOrbitController(WithRadiusBounds(1, 3), WithElevationBounds(-0.5, 0.5), WithSpeeds(0.2, 0.1))

	ctrl.Zoom(1000)
	assert.Equal(t, float32(1), ctrl.State().Radius)
	ctrl.Zoom(-1000)
	assert.Equal(t, float32(3), ctrl.State().Radius)

	ctrl.Orbit(0, 10)
	assert.Equal(t, float32(0.5), ctrl.State().Elevation)
	ctrl.Orbit(0, -10)
	assert.Equal(t, float32(-0.5), ctrl.State().Elevation)

	ctrl.Orbit(-1, 0)
	ctrl.Orbit(1, 0)
	assert.InDelta(t, 0, ctrl.State().Azimuth, 1e-6)

	assert.InDelta(t, 3, ctrl.Position().Sub(ctrl.Target()).Len(), 1e-4)
}

func TestOrbitController_ElevationRaisesCamera(t *testing.T) {
	t.Parallel()

	ctrl := NewOrbitController(WithTarget(mgl32.Vec3{}), WithOrbitState(OrbitState{Radius: 2, Elevation: math.Pi / 6}))

	if diff := cmp.Diff(mgl32.Vec3{0, 1, float32(math.Sqrt(3))}, ctrl.Position(), approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}

	ctrl.Orbit(5, 5)
	ctrl.Zoom(3)
	ctrl.Reset()
	assert.Equal(t, OrbitState{Radius: 2, Elevation: math.Pi / 6}, ctrl.State())
}
