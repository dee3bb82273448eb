package motion

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/singhit/internal/testutil"
)

// fakeTimer mimics the engine: stopping only succeeds while running
type fakeTimer struct {
	mu      sync.Mutex
	running bool
	stops   int
}

func (f *fakeTimer) StopTimer() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return false
	}
	f.running = false
	f.stops++
	return true
}

type DetectorSuite struct {
	suite.Suite
	timer    *fakeTimer
	detector *Detector
}

func TestDetectorSuite(t *testing.T) {
	suite.Run(t, new(DetectorSuite))
}

func (s *DetectorSuite) SetupTest() {
	s.timer = &fakeTimer{running: true}
	s.detector = NewDetector(s.timer, 0, testutil.NopLogger())
}

func (s *DetectorSuite) TestMagnitude() {
	s.InDelta(5.0, Sample{X: 3, Y: 4}.Magnitude(), 1e-9)
	s.InDelta(0.0, Sample{}.Magnitude(), 1e-9)
}

func (s *DetectorSuite) TestDefaultThreshold() {
	s.Equal(DefaultThreshold, s.detector.Threshold())
}

func (s *DetectorSuite) TestJitterIgnored() {
	s.False(s.detector.Observe(Sample{X: 0.5, Y: 0.5, Z: 0.5}))
	s.False(s.detector.Observe(Sample{X: 1.5}))
	s.True(s.timer.running)
}

func (s *DetectorSuite) TestMovementStopsTimer() {
	s.True(s.detector.Observe(Sample{X: 1.2, Y: 1.2}))
	s.False(s.timer.running)
	s.Equal(1, s.timer.stops)
}

func (s *DetectorSuite) TestStoppedTimerNotStoppedAgain() {
	s.timer.running = false

	s.False(s.detector.Observe(Sample{Z: 9}))
	s.Equal(0, s.timer.stops)
}

func (s *DetectorSuite) TestNaNIgnored() {
	s.False(s.detector.Observe(Sample{X: math.NaN()}))
	s.True(s.timer.running)
}

func (s *DetectorSuite) TestCustomThreshold() {
	d := NewDetector(s.timer, 3, testutil.NopLogger())

	s.False(d.Observe(Sample{X: 2}))
	s.True(d.Observe(Sample{X: 4}))
}

func (s *DetectorSuite) TestWatchUntilClosed() {
	samples := make(chan Sample, 3)
	samples <- Sample{X: 0.1}
	samples <- Sample{X: 2}
	samples <- Sample{X: 5}
	close(samples)

	err := s.detector.Watch(context.Background(), samples)

	s.NoError(err)
	s.Equal(1, s.timer.stops)
}

func (s *DetectorSuite) TestWatchStopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.detector.Watch(ctx, make(chan Sample))

	s.ErrorIs(err, context.Canceled)
}
