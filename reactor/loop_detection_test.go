package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionSignatureDeterministic(t *testing.T) {
	a := actionSignature("search_internet", map[string]any{"query": "go", "limit": 5})
	b := actionSignature("search_internet", map[string]any{"limit": 5, "query": "go"})
	assert.Equal(t, a, b, "key order must not change the signature")

	c := actionSignature("search_internet", map[string]any{"query": "rust"})
	assert.NotEqual(t, a, c)

	d := actionSignature("get_url_content", map[string]any{"query": "go", "limit": 5})
	assert.NotEqual(t, a, d, "tool name is part of the signature")
}

func TestDetectRepeatedActions(t *testing.T) {
	tests := []struct {
		name   string
		sigs   []string
		window int
		want   bool
	}{
		{"too few actions", []string{"a", "a"}, 4, false},
		{"same action repeated", []string{"a", "a", "a", "a"}, 4, true},
		{"alternating pair", []string{"a", "b", "a", "b"}, 4, true},
		{"no pattern", []string{"a", "b", "c", "d"}, 4, false},
		{"pattern only at start", []string{"a", "a", "b", "c"}, 4, false},
		{"triple pattern", []string{"a", "b", "c", "a", "b", "c"}, 6, true},
		{"zero window", []string{"a"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectRepeatedActions(tt.sigs, tt.window))
		})
	}
}
