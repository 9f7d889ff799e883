package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/pointer"
)

func TestToAndVal(t *testing.T) {
	p := pointer.To(5)
	assert.Equal(t, 5, *p)
	assert.Equal(t, 5, pointer.Val(p))

	var missing *string
	assert.Equal(t, "", pointer.Val(missing))
}
