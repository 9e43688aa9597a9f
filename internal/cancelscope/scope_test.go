package cancelscope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancelRunsCleanupsInReverseOrder(t *testing.T) {
	s := New()
	var order []int
	s.OnCancel(func() { order = append(order, 1) })
	s.OnCancel(func() { order = append(order, 2) })
	s.OnCancel(func() { order = append(order, 3) })

	s.Cancel()
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.True(t, s.Canceled())
}

func TestCancelIsIdempotent(t *testing.T) {
	s := New()
	calls := 0
	s.OnCancel(func() { calls++ })

	s.Cancel()
	s.Cancel()
	assert.Equal(t, 1, calls)
}

func TestLateRegistrationRunsImmediately(t *testing.T) {
	s := New()
	s.Cancel()

	ran := false
	s.OnCancel(func() { ran = true })
	assert.True(t, ran, "a cleanup registered after cancel must not leak")
}
