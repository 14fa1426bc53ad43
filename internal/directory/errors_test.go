package directory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMessages(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     Kind
	}{
		{
			name:     "resource mapping phrase",
			messages: []string{"Resource mapping failed for input id"},
			want:     KindNotFound,
		},
		{
			name:     "internal server error phrase",
			messages: []string{"Internal Server Error"},
			want:     KindNotFound,
		},
		{
			name:     "phrase buried in a longer message",
			messages: []string{"upstream said: resource mapping failed (id=42)"},
			want:     KindNotFound,
		},
		{
			name:     "second message matches",
			messages: []string{"validation failed", "internal server error"},
			want:     KindNotFound,
		},
		{
			name:     "unrelated error is generic",
			messages: []string{"capacity must be positive"},
			want:     KindRemote,
		},
		{
			name:     "empty set is generic",
			messages: nil,
			want:     KindRemote,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMessages(tt.messages))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(&Error{Kind: KindNotFound}))
	assert.Equal(t, KindRemote, KindOf(&Error{Kind: KindRemote}))
	assert.Equal(t, KindTransport, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("resolve site: %w", &Error{Kind: KindNotFound})
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: KindRemote, Op: "upsertRoom", Status: 400, Messages: []string{"bad enum"}}
	assert.Contains(t, err.Error(), "upsertRoom")
	assert.Contains(t, err.Error(), "bad enum")
	assert.Contains(t, err.Error(), "400")
}
