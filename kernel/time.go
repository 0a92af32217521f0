package kernel

import "fmt"

// Time is simulated time in picoseconds.
type Time int64

const (
	Picosecond  Time = 1
	Nanosecond       = 1000 * Picosecond
	Microsecond      = 1000 * Nanosecond
)

// Nanoseconds returns t as a whole number of nanoseconds, truncating.
func (t Time) Nanoseconds() int64 {
	return int64(t / Nanosecond)
}

func (t Time) String() string {
	if t%Nanosecond == 0 {
		return fmt.Sprintf("%d ns", int64(t/Nanosecond))
	}
	return fmt.Sprintf("%d ps", int64(t))
}
