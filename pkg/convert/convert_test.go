package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/convert"
)

/*
TestToInt checks that references convert leniently.
*/
func TestToInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{"3.5", 0},
		{"-1", -1},
		{"3000000000", 3000000000},
		{"99999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.ToInt(tt.in))
		})
	}
}

func TestToIntD(t *testing.T) {
	assert.Equal(t, 9, convert.ToIntD("nope", 9))
	assert.Equal(t, 9, convert.ToIntD("", 9))
	assert.Equal(t, 3, convert.ToIntD("3", 9))
}
