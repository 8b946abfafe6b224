package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Lake View Villa", "lake-view-villa"},
		{"punctuation", "St. Mary's Chapel!", "st-mary-s-chapel"},
		{"collapsed separators", "a  --  b", "a-b"},
		{"leading and trailing junk", "  Harbor House  ", "harbor-house"},
		{"digits", "Tower 42", "tower-42"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
