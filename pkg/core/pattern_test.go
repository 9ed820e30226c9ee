package core_test

import (
	"testing"

	"github.com/aretw0/carte/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"Soup*", "Soup", true},
		{"Soup*", "SoupDeLuxe", true},
		{"Soup*", "ChickenSoup", false},
		{"S?up", "Soup", true},
		{"S?up", "Ssoup", false},
		{"S?up", "Sup", false},
		{"oup", "Soup", false},
		{"*", "", true},
		{"*", "anything at all", true},
		{"?", "", false},
		{"*Soup", "ChickenSoup", true},
		{"C*n*p", "ChickenSoup", true},
		{"a.c", "abc", false},
		{"a.c", "a.c", true},
		{"Борщ?", "Борщи", true},
		{"", "", true},
		{"", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.value, func(t *testing.T) {
			p := core.CompilePattern(tt.pattern)
			assert.Equal(t, tt.want, p.Match(tt.value))
		})
	}
}

func TestPattern_IsWildcard(t *testing.T) {
	assert.True(t, core.CompilePattern("So*").IsWildcard())
	assert.True(t, core.CompilePattern("S?").IsWildcard())
	assert.False(t, core.CompilePattern("Soup").IsWildcard())
	assert.Equal(t, "So*", core.CompilePattern("So*").String())
}
