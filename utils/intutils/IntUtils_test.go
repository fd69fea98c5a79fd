package intutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProd(t *testing.T) {
	assert.Equal(t, 1, Prod(nil))
	assert.Equal(t, 24, Prod([]int{2, 3, 4}))
	assert.Equal(t, 0, Prod([]int{2, 0, 4}))
}

func TestClip(t *testing.T) {
	assert.Equal(t, 0, Clip(-1, 0, 9))
	assert.Equal(t, 9, Clip(10, 0, 9))
	assert.Equal(t, 4, Clip(4, 0, 9))
}
