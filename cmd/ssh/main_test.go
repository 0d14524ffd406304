package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	w, h, err := s.getSize()
	assert.NoError(t, err)
	assert.Equal(t, []int{80, 24}, []int{w, h})

	s.update(120, 40)
	w, h, _ = s.getSize()
	assert.Equal(t, []int{120, 40}, []int{w, h})
}
