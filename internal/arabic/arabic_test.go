package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain latin untouched", "Ahmed Ali", "Ahmed Ali"},
		{"tatweel stripped", "محـــمد", "محمد"},
		{"whitespace collapsed", "  محمد   علي ", "محمد علي"},
		{"mixed", "د. محـمد  العتيبي", "د. محمد العتيبي"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "محـــمد   بن  علي"
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}
