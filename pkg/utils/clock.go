package utils

import "time"

// Clock lets services read the current time without calling time.Now directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
