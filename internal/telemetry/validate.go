package telemetry

import (
	"errors"
	"fmt"
)

// Heart rate plausibility window. Readings outside it are sensor noise.
const (
	MinValidHeartRate = 30
	MaxValidHeartRate = 250
)

// ErrNoSession is returned when a decoded activity carries no session summary.
var ErrNoSession = errors.New("activity has no session record")

// Validate checks the session for fields required by downstream analysis.
func (s Session) Validate() error {
	if s.StartTime.IsZero() {
		return errors.New("session has no start time")
	}
	if s.TimerSeconds <= 0 && s.ElapsedSeconds <= 0 {
		return fmt.Errorf("session has non-positive duration (timer=%v elapsed=%v)", s.TimerSeconds, s.ElapsedSeconds)
	}
	return nil
}

// ValidHeartRate reports whether the sample carries a plausible HR reading.
func (s Sample) ValidHeartRate() bool {
	return s.HeartRate != nil && *s.HeartRate >= MinValidHeartRate && *s.HeartRate <= MaxValidHeartRate
}

// HasPosition reports whether the sample carries a GPS fix.
func (s Sample) HasPosition() bool {
	return s.Lat != nil && s.Lng != nil
}
