package debounce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DavidOsipov/Aegis-Animator/internal/debounce"
	"github.com/DavidOsipov/Aegis-Animator/pkg/adapters/memory"
)

func TestScheduleFiresAfterDelay(t *testing.T) {
	host := memory.NewHost()
	d := debounce.New(host, 100*time.Millisecond)

	fired := 0
	d.Schedule(func() { fired++ })

	host.Advance(50 * time.Millisecond)
	assert.Zero(t, fired)

	host.Advance(60 * time.Millisecond)
	assert.Equal(t, 1, fired)
}

func TestRescheduleRestartsDelay(t *testing.T) {
	host := memory.NewHost()
	d := debounce.New(host, 100*time.Millisecond)

	fired := 0
	d.Schedule(func() { fired++ })
	host.Advance(80 * time.Millisecond)
	d.Schedule(func() { fired++ })
	host.Advance(80 * time.Millisecond)
	assert.Zero(t, fired, "the first schedule was replaced")

	host.Advance(30 * time.Millisecond)
	assert.Equal(t, 1, fired)
}

func TestCancelDropsPendingAction(t *testing.T) {
	host := memory.NewHost()
	d := debounce.New(host, 100*time.Millisecond)

	fired := 0
	d.Schedule(func() { fired++ })
	d.Cancel()
	host.Advance(time.Second)
	assert.Zero(t, fired)

	// Cancel with nothing pending is a no-op.
	d.Cancel()
}
