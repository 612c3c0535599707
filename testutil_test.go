package taskpool

import "time"

// Shared polling parameters for require.Eventually calls across this
// package's tests.
const (
	timeoutShort = 2 * time.Second
	tickShort    = 5 * time.Millisecond
)
