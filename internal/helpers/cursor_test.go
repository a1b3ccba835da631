package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCursor_RoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 30, 15, 123456000, time.UTC)

	decoded, err := DecodeCursor(EncodeCursor(createdAt, "item-42"))

	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(decoded.CreatedAt))
	assert.Equal(t, "item-42", decoded.ID)
}

func TestCursor_IsOpaque(t *testing.T) {
	cursor := EncodeCursor(time.Now(), "abc")
	assert.NotContains(t, cursor, "__")
	assert.NotContains(t, cursor, ":")
}

func TestDecodeCursor_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{name: "not base64", cursor: "%%%"},
		{name: "missing separator", cursor: "MjAyNC0wMS0wMVQwMDowMDowMFo"},
		{name: "bad timestamp", cursor: "eWVzdGVyZGF5X19hYmM"},
		{name: "empty id", cursor: "MjAyNC0wMS0wMVQwMDowMDowMFpfXw"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.cursor)
			assert.ErrorIs(t, err, ErrInvalidCursor)
		})
	}
}
