package entry

import "time"

// Clock abstracts the current time so tests can drive timestamps directly.
type Clock interface {
	Now() time.Time
}

// RealClock uses the actual system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
