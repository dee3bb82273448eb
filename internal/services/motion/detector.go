package motion

import (
	"context"
	"log/slog"
	"math"
)

// DefaultThreshold is the acceleration, in m/s², treated as a deliberate
// pick-up of the device rather than jitter
const DefaultThreshold = 1.5

// Sample is one device acceleration reading in m/s², gravity excluded
type Sample struct {
	X, Y, Z float64
}

// Magnitude returns the length of the acceleration vector
func (s Sample) Magnitude() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// TimerStopper is the part of the engine the detector drives
type TimerStopper interface {
	StopTimer() bool
}

// Detector stops the game timer when the device is moved
type Detector struct {
	stopper   TimerStopper
	threshold float64
	logger    *slog.Logger
}

// NewDetector creates a detector. A non-positive threshold selects
// DefaultThreshold.
func NewDetector(stopper TimerStopper, threshold float64, logger *slog.Logger) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{
		stopper:   stopper,
		threshold: threshold,
		logger:    logger.With(slog.String("component", "motion")),
	}
}

// Threshold returns the configured trigger level
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// Observe feeds one sample and reports whether it stopped a running timer
func (d *Detector) Observe(sample Sample) bool {
	magnitude := sample.Magnitude()
	if math.IsNaN(magnitude) || magnitude <= d.threshold {
		return false
	}
	if !d.stopper.StopTimer() {
		return false
	}
	d.logger.Info("timer stopped by motion", slog.Float64("magnitude", magnitude))
	return true
}

// Watch observes samples until the channel closes or ctx is done
func (d *Detector) Watch(ctx context.Context, samples <-chan Sample) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sample, ok := <-samples:
			if !ok {
				return nil
			}
			d.Observe(sample)
		}
	}
}
