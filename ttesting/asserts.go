// Package ttesting contains small assertion helpers shared by the tests of
// this module. Each assertion runs as a named subtest.
package ttesting

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// Epsilon is the tolerance used by the float assertions.
const Epsilon = 1e-9

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		assert.Equal(t, want, got)
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		assert.Equal(t, want, got)
	})
}

func AssertEqualFloat64(t *testing.T, name string, got, want float64) {
	t.Run(name, func(t *testing.T) {
		assert.InDelta(t, want, got, Epsilon)
	})
}

func AssertInRangeFloat64(t *testing.T, name string, got, wantMin, wantMax float64) {
	t.Run(name, func(t *testing.T) {
		if got < wantMin-Epsilon || got > wantMax+Epsilon {
			t.Errorf("got %g; want [%g,%g]", got, wantMin, wantMax)
		}
	})
}

// AssertCause checks that the root cause of err, as reported by
// errors.Cause, is want.
func AssertCause(t *testing.T, name string, err, want error) {
	t.Run(name, func(t *testing.T) {
		if !assert.Error(t, err) {
			return
		}
		assert.Equal(t, want, errors.Cause(err), "error %q", err)
	})
}
