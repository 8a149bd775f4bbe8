package render

import (
	"math"
	"testing"
	"time"

	"github.com/aharden/lumen/pkg/core"
	"github.com/aharden/lumen/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIntegrator struct{}

func (stubIntegrator) CastRay(ray core.Ray, sc *scene.Scene, sampler core.Sampler, bouncesLeft int) core.Spectrum {
	return core.NewSpectrum(1, 1, 1)
}

func buildTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	light := scene.NewSphere(core.NewVec3(0, 0, -20), 2, scene.NewLight(core.NewSpectrum(1, 1, 1)))
	sc, err := scene.NewScene([]scene.Primitive{light})
	require.NoError(t, err)
	return sc
}

func TestSchedulerRenderFillsBufferAndReportsProgress(t *testing.T) {
	sc := buildTestScene(t)
	cam := NewCamera(8, 8, math.Pi/2, Vec3{})
	s := NewScheduler(8, 8, 2)

	cfg := Config{SamplesPerPixel: 1, MaxBounces: 1}
	s.Render(cam, sc, stubIntegrator{}, cfg, ModeFull, 1)

	assert.False(t, s.IsRendering())
	assert.Equal(t, uint32(100), s.Progress())

	dst := make([]byte, 8*8*4)
	s.Buffer.Snapshot(dst)
	assert.Equal(t, byte(255), dst[0])
}

func TestSchedulerSingleThreadedCompletesAllRows(t *testing.T) {
	sc := buildTestScene(t)
	cam := NewCamera(4, 4, math.Pi/2, Vec3{})
	s := NewScheduler(4, 4, 1)

	cfg := Config{SamplesPerPixel: 1, MaxBounces: 1, SingleThreaded: true}
	s.Render(cam, sc, stubIntegrator{}, cfg, ModeFull, 1)

	assert.Equal(t, uint32(100), s.Progress())
}

func TestSchedulerInterruptStopsPromptly(t *testing.T) {
	sc := buildTestScene(t)
	cam := NewCamera(64, 64, math.Pi/2, Vec3{})
	s := NewScheduler(64, 64, 4)
	cfg := Config{SamplesPerPixel: 1, MaxBounces: 1}

	done := make(chan bool)
	go func() {
		s.Render(cam, sc, stubIntegrator{}, cfg, ModeFull, 1)
		done <- true
	}()

	s.Interrupt()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("render did not stop after interrupt")
	}
	assert.False(t, s.IsRendering())
}
