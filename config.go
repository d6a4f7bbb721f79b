package keel

import "time"

// Config holds global tunables for the runtime
var Config config = config{
	slowStepWarning: 100 * time.Millisecond,
}

type config struct {
	slowStepWarning time.Duration
}

// SetSlowStepWarning sets the step duration above which a warning is logged
func (c *config) SetSlowStepWarning(d time.Duration) {
	c.slowStepWarning = d
}

func (c *config) SlowStepWarning() time.Duration {
	return c.slowStepWarning
}
