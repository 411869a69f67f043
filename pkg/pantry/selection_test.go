package pantry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	sel := NewSelection()

	sel.Select("a", true)
	sel.Select("a", true) // re-including is idempotent
	assert.True(t, sel.Has("a"))
	assert.Equal(t, 1, sel.Len())

	sel.Select("a", false)
	assert.False(t, sel.Has("a"))

	// excluding something never included is a no-op
	sel.Select("b", false)
	assert.Equal(t, 0, sel.Len())
}
