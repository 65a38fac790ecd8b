package placement

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/ar"
	"github.com/Carmen-Shannon/oxy-ar/engine/camera"
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCamera struct {
	pose common.Pose
}

func (c fixedCamera) Pose() common.Pose { return c.pose }
func (c fixedCamera) Forward() mgl32.Vec3 {
	return c.pose.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}
func (c fixedCamera) ScreenSize() (int, int) { return 1080, 1920 }
func (c fixedCamera) ScreenPointToRay(x, y float32) common.Ray {
	return common.Ray{Origin: c.pose.Position, Direction: c.Forward()}
}

type noHits struct{ calls int }

func (n *noHits) Raycast(common.Ray, ar.TrackableType) []ar.Hit {
	n.calls++
	return nil
}

type slot struct{ obj game_object.GameObject }

func (s *slot) GetCurrentModel() game_object.GameObject { return s.obj }

func TestResetPosition_FallbackWithoutHits(t *testing.T) {
	t.Parallel()

	cam := fixedCamera{pose: common.Pose{
		Position: mgl32.Vec3{0.5, 1.6, 2},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(30), mgl32.Vec3{0, 1, 0}),
	}}
	obj := game_object.NewGameObject()
	rays := &noHits{}
	r := NewResolver(cam, rays, &slot{obj: obj})

	for range 3 {
		require.Equal(t, Fallback, r.ResetPosition())

		want := cam.pose.Position.Add(cam.Forward().Mul(1.98))
		if diff := cmp.Diff(want, obj.Position(), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("position mismatch (-want +got):\n%s", diff)
		}
		assert.True(t, cam.pose.Rotation.ApproxEqualThreshold(obj.Rotation(), 1e-6))
	}
	assert.Equal(t, 3, rays.calls)
}

func TestResetPosition_HitsNearestPlane(t *testing.T) {
	t.Parallel()

	// camera at the origin tilted down toward a floor and a closer table
	ctrl := camera.NewOrbitController(camera.WithTarget(mgl32.Vec3{0, -2, -0.001}), camera.WithOrbitState(camera.OrbitState{Radius: 2, Elevation: 1.4}))
	cam := camera.NewCamera(camera.WithController(ctrl))
	tracker := ar.NewTracker(ar.WithFloorPlane(-2, mgl32.Vec2{20, 20}))
	table := tracker.AddPlane(common.Pose{Position: mgl32.Vec3{0, -1, 0}, Rotation: mgl32.QuatIdent()}, mgl32.Vec2{4, 4}, ar.AlignmentHorizontalUp)

	obj := game_object.NewGameObject()
	r := NewResolver(cam, tracker, &slot{obj: obj})

	require.Equal(t, HitPlane, r.ResetPosition())
	assert.InDelta(t, -1, obj.Position().Y(), 1e-3)
	assert.Equal(t, mgl32.QuatIdent(), obj.Rotation())

	tracker.RemovePlane(table)
	require.Equal(t, HitPlane, r.ResetPosition())
	assert.InDelta(t, -2, obj.Position().Y(), 1e-3)
}

func TestResetPosition_Options(t *testing.T) {
	t.Parallel()

	cam := fixedCamera{pose: common.IdentityPose()}
	tracker := ar.NewTracker(ar.WithFloorPlane(-1, mgl32.Vec2{1, 1}))
	obj := game_object.NewGameObject()

	r := NewResolver(cam, tracker, &slot{obj: obj}, WithFallbackDistance(3), WithTrackableMask(ar.TrackableAll))
	assert.Equal(t, Fallback, r.ResetPosition(), "forward ray is parallel to the floor")
	assert.Equal(t, mgl32.Vec3{0, 0, -3}, obj.Position())

	assert.Equal(t, NoModel, NewResolver(cam, tracker, &slot{}).ResetPosition())
	assert.Panics(t, func() { NewResolver(nil, tracker, &slot{}) })
}
