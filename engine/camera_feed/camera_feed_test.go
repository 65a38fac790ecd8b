package camera_feed

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-ar/engine/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProvider remembers the devices it opened.
type recordingProvider struct {
	Provider
	opened []Device
}

func (r *recordingProvider) Open(name string, width, height, fps int) (Device, error) {
	d, err := r.Provider.Open(name, width, height, fps)
	if err == nil {
		r.opened = append(r.opened, d)
	}
	return d, err
}

// run ticks the feed every step from start until the state is terminal or end is reached.
func run(f Feed, start, end, step time.Duration) time.Duration {
	now := start
	for ; now <= end; now += step {
		if f.Tick(now).Terminal() {
			return now
		}
	}
	return now
}

func TestFeed_BringUp(t *testing.T) {
	t.Parallel()

	loading := panel.NewFlag("loading", false)
	provider := &recordingProvider{Provider: NewSyntheticProvider(WithWarmupPolls(3), WithRotationAngle(90))}
	f := NewFeed(NewStaticPermissions(), provider, WithLoadingIndicator(loading))

	f.Start(0)
	assert.True(t, loading.Visible())
	assert.Equal(t, StateDelaying, f.Tick(500*time.Millisecond))

	assert.Equal(t, StateAwaitingFrames, f.Tick(time.Second), "permission and device open resolve in the same tick")
	require.Len(t, provider.opened, 1)
	assert.Nil(t, f.Device(), "device is not exposed before it runs")

	assert.Equal(t, StateAwaitingFrames, f.Tick(1100*time.Millisecond))
	assert.Equal(t, StateAwaitingFrames, f.Tick(1200*time.Millisecond))
	assert.Equal(t, StateRunning, f.Tick(1300*time.Millisecond))

	assert.False(t, loading.Visible())
	assert.NoError(t, f.Err())
	assert.Equal(t, float32(-90), f.PreviewRotation())
	require.NotNil(t, f.Frame())
	assert.Equal(t, 1280, f.Frame().Bounds().Dx())

	f.Start(2 * time.Second)
	assert.Equal(t, StateRunning, f.State(), "Start is ignored once started")

	f.Stop()
	assert.Equal(t, StateStopped, f.State())
	assert.Nil(t, f.Frame())
	assert.Equal(t, warmupSize, provider.opened[0].Width(), "a stopped device reports warm-up size")
}

func TestFeed_StartTimeout(t *testing.T) {
	t.Parallel()

	loading := panel.NewFlag("loading", false)
	provider := &recordingProvider{Provider: NewSyntheticProvider(WithWarmupPolls(-1))}
	f := NewFeed(NewStaticPermissions(), provider, WithLoadingIndicator(loading))

	f.Start(0)
	at := run(f, 0, 30*time.Second, 100*time.Millisecond)

	assert.Equal(t, StateFailed, f.State())
	assert.ErrorIs(t, f.Err(), ErrCameraStartTimeout)
	assert.False(t, loading.Visible())
	assert.GreaterOrEqual(t, at, DefaultDelay+DefaultTimeout)
	assert.Less(t, at, DefaultDelay+DefaultTimeout+200*time.Millisecond)

	require.Len(t, provider.opened, 1)
	assert.Equal(t, warmupSize, provider.opened[0].Width())
	assert.Nil(t, f.Device())
}

func TestFeed_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		permissions PermissionBroker
		provider    Provider
		want        error
		failsBy     time.Duration
	}{
		{
			name:        "permission never granted",
			permissions: NewStaticPermissions(WithDenied()),
			provider:    NewSyntheticProvider(),
			want:        ErrPermissionDenied,
			failsBy:     DefaultDelay + DefaultTimeout,
		},
		{
			name:        "no camera device",
			permissions: NewStaticPermissions(WithGranted(PermissionCamera)),
			provider:    NewSyntheticProvider(WithNoDevices()),
			want:        ErrNoCameraDevice,
			failsBy:     DefaultDelay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loading := panel.NewFlag("loading", false)
			f := NewFeed(tt.permissions, tt.provider, WithLoadingIndicator(loading))
			f.Start(0)

			at := run(f, 0, 20*time.Second, 50*time.Millisecond)
			assert.Equal(t, StateFailed, f.State())
			assert.ErrorIs(t, f.Err(), tt.want)
			assert.Equal(t, tt.failsBy, at)
			assert.False(t, loading.Visible())
		})
	}
}

func TestFeed_SlowPermissionGrant(t *testing.T) {
	t.Parallel()

	f := NewFeed(
		NewStaticPermissions(WithGrantAfterPolls(10)),
		NewSyntheticProvider(WithWarmupPolls(0)),
		WithDelay(0),
		WithTimeout(2*time.Second),
	)
	f.Start(0)
	run(f, 0, 10*time.Second, 100*time.Millisecond)
	assert.Equal(t, StateRunning, f.State())
}

func TestFeed_StopDuringBringUp(t *testing.T) {
	t.Parallel()

	loading := panel.NewFlag("loading", false)
	f := NewFeed(NewStaticPermissions(), NewSyntheticProvider(), WithLoadingIndicator(loading))
	f.Start(0)
	f.Tick(100 * time.Millisecond)

	f.Stop()
	assert.Equal(t, StateStopped, f.State())
	assert.False(t, loading.Visible())
	assert.Equal(t, StateStopped, f.Tick(5*time.Second))

	assert.Panics(t, func() { NewFeed(nil, NewSyntheticProvider()) })
}
