package adapters

import (
	"time"

	"ncd-ifconfig/internal/domain/interfaces"
)

// RealClock reads the system clock
type RealClock struct{}

// NewRealClock creates a new RealClock
func NewRealClock() interfaces.Clock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
