package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/pkg/slice"
)

/*
TestMap checks element transformation and the non-nil empty result.
*/
func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))

	empty := slice.Map[int, string](nil, strconv.Itoa)
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
	assert.NotNil(t, slice.Filter(nil, even))
}
