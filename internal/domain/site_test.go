package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteReferenceIsZero(t *testing.T) {
	tests := []struct {
		name string
		ref  SiteReference
		want bool
	}{
		{name: "both blank", ref: SiteReference{}, want: true},
		{name: "whitespace only", ref: SiteReference{ID: "  ", Name: " \t"}, want: true},
		{name: "id set", ref: SiteReference{ID: "S1"}, want: false},
		{name: "name set", ref: SiteReference{Name: "Alpha"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.IsZero())
		})
	}
}
