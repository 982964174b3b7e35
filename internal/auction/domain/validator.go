package domain

import "time"

// Clock is the time source used by the lifecycle checks
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Validator holds the time-window predicates of the auction. It has no state besides the clock.
type Validator struct {
	clock Clock
}

func NewValidator(clock Clock) *Validator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Validator{clock: clock}
}

// Now returns the validator's current time
func (v *Validator) Now() time.Time {
	return v.clock.Now()
}

// AssertActive succeeds while now is strictly before the deadline
func (v *Validator) AssertActive(deadline time.Time) error {
	if v.clock.Now().Before(deadline) {
		return nil
	}
	return ErrAuctionInactive
}

// AssertInactive succeeds once the deadline has been reached
func (v *Validator) AssertInactive(deadline time.Time) error {
	if v.clock.Now().Before(deadline) {
		return ErrAuctionActive
	}
	return nil
}
