// Package clock provides the single injectable time source used by
// pkg/defaults to stamp the athena.generated label. Compile output must be
// byte-for-byte deterministic except for that one label, so nothing else in
// the pipeline is allowed to call time.Now directly.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System is the real wall clock, used by cmd/athena.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed pins Now to a constant instant, for deterministic tests.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }
