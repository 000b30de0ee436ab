package service

import "time"

// SystemClock implements ports.Clock with wall-clock time.
type SystemClock struct{}

// NewSystemClock creates a wall-clock time source.
func NewSystemClock() SystemClock { return SystemClock{} }

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }
