// Package streak keeps a habit's current and record streak counters in step
// with completion toggles.
//
// The counter follows the direction of the latest toggle only. It does not check
// that completed dates are adjacent or end today, so toggling a day far in the
// past still moves Current.
package streak

type Counter struct {
	Current int `json:"current_streak"`
	Record  int `json:"record_streak"`
}

// Apply returns the counter after a completion changed to done.
func (c Counter) Apply(done bool) Counter {
	if c.Current < 0 {
		c.Current = 0
	}
	if done {
		c.Current++
		if c.Current > c.Record {
			c.Record = c.Current
		}
		return c
	}
	if c.Current > 0 {
		c.Current--
	}
	return c
}
