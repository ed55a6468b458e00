package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaceSleepsForInterval(t *testing.T) {
	var slept []time.Duration
	th := New(time.Second)
	th.Sleep = func(d time.Duration) { slept = append(slept, d) }

	th.Pace()
	th.Pace()

	assert.Equal(t, []time.Duration{time.Second, time.Second}, slept)
}

func TestPaceZeroIntervalDoesNotSleep(t *testing.T) {
	th := New(0)
	th.Sleep = func(time.Duration) { t.Fatal("sleep called with zero interval") }
	th.Pace()
}
