package service

import "time"

// Clock abstracts time for the coordinator and the mutation service so tests
// can drive retry schedules without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock implementation used outside tests.
var SystemClock Clock = systemClock{}

// Backoff computes the retry delay schedule for transient push failures:
// Base doubled per attempt, capped at Cap. The schedule is pure data; the
// coordinator never sleeps on it, it persists the next attempt time and lets
// a later cycle pick the event up.
type Backoff struct {
	Base time.Duration
	Cap  time.Duration
}

// Delay returns the wait before attempt retryCount+1, where retryCount is
// the number of failures so far (1 for the first retry).
func (b Backoff) Delay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}

	delay := b.Base
	for i := 1; i < retryCount; i++ {
		delay *= 2
		if delay >= b.Cap {
			return b.Cap
		}
	}
	if delay > b.Cap {
		return b.Cap
	}
	return delay
}
