package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListLenient(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"json array", `["a","b","c"]`, []string{"a", "b", "c"}},
		{"empty json array", `[]`, []string{}},
		{"json string", `"single"`, []string{"single"}},
		{"plain text", "just text", []string{"just text"}},
		{"malformed json", `["a",`, []string{`["a",`}},
		{"json number", `42`, []string{"42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseListLenient(tt.raw))
		})
	}
}

func TestParseListStrict(t *testing.T) {
	got, err := ParseListStrict(`["a.jpg","b.jpg"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got)

	got, err = ParseListStrict("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseListStrict("a.jpg")
	assert.Error(t, err)

	_, err = ParseListStrict(`{"a":1}`)
	assert.Error(t, err)
}
