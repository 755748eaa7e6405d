package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Float", 3.1, "3.1"},
		{"WholeFloat", 42.0, "42"},
		{"Int", 7, "7"},
		{"NumericString", "2.75", "2.75"},
		{"NonNumericString", "n/a", ""},
		{"Nil", nil, ""},
		{"Bool", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NumberString(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "12", ToString(12))
}
