package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsBrotli(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"gzip, deflate", false},
		{"br", true},
		{"gzip, BR", true},
		{"gzip;q=1.0, br;q=0.8", true},
		{"br;q=0", false},
		{"br;q=abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptsBrotli(tt.header))
		})
	}
}
