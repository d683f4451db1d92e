package timeparse

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_KnownLayouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{
			name:  "html datetime-local",
			value: "2024-01-01T08:30",
			want:  time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "with seconds",
			value: "2024-03-15 17:45:12",
			want:  time.Date(2024, 3, 15, 17, 45, 12, 0, time.UTC),
		},
		{
			name:  "without seconds",
			value: "2024-12-31 23:59",
			want:  time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, value := range []string{"01/01/2024", "", "2024-01-01", "2024-01-01T08:30:00Z", "tomorrow"} {
		_, err := Parse(value)
		require.Error(t, err, value)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), value)
		assert.Equal(t, value, parseErr.Value)
		assert.Contains(t, err.Error(), "does not match any known format")
	}
}

func TestParseInLocation(t *testing.T) {
	loc := time.FixedZone("plant", 3*60*60)

	got, err := ParseInLocation("2024-01-01 00:00", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.True(t, time.Date(2023, 12, 31, 21, 0, 0, 0, time.UTC).Equal(got))

	utc, err := ParseInLocation("2024-01-01 00:00", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, utc.Location())
}
