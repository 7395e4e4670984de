package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Software engineer", expected: "Software engineer"},
		{name: "formatting tags", input: "Hello <b>world</b>", expected: "Hello world"},
		{name: "script removed", input: `Bio<script>alert('xss')</script>`, expected: "Bio"},
		{name: "punctuation kept", input: "O'Brien & Sons", expected: "O'Brien & Sons"},
		{name: "trimmed", input: "  spaced  ", expected: "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.input))
		})
	}
}
