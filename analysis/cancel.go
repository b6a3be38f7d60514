package analysis

import "sync/atomic"

// cancelFlag is the process-wide cooperative cancellation signal shared by
// all parallel phases of one Analyzer. It is polled at unit boundaries only;
// in-flight decode or scoring work is never interrupted.
type cancelFlag struct {
	set atomic.Bool
}

func (c *cancelFlag) cancel()         { c.set.Store(true) }
func (c *cancelFlag) reset()          { c.set.Store(false) }
func (c *cancelFlag) cancelled() bool { return c.set.Load() }
