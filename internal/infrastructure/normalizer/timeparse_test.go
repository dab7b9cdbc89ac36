package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeFromEpoch(t *testing.T) {
	got := TimeFromEpoch(1755223200) // 2025-08-15 09:00:00 +07
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.August, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 9, got.Hour())

	_, offset := got.Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestTimeFromEpoch_NonPositive(t *testing.T) {
	assert.True(t, TimeFromEpoch(0).IsZero())
	assert.True(t, TimeFromEpoch(-5).IsZero())
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in       string
		wantOK   bool
		wantHour int
	}{
		{"2025-08-15T09:30:00+07:00", true, 9},
		{"2025-08-15T09:30:00.000+07:00", true, 9},
		{"2025-08-15 09:30:00 +0700", true, 9},
		{"2025-08-15T09:30:00", true, 9},
		{"2025-08-15 09:30:00", true, 9},
		{"2025-08-15", true, 0},
		{"", false, 0},
		{"not a date", false, 0},
		{"15/08/2025", false, 0},
	}
	for _, tt := range tests {
		got, ok := ParseTime(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.wantHour, got.Hour(), "input %q", tt.in)
		} else {
			assert.True(t, got.IsZero(), "input %q", tt.in)
		}
	}
}

func TestParseTime_ZonelessAssumesIndochina(t *testing.T) {
	got, ok := ParseTime("2025-08-15 09:30:00")
	assert.True(t, ok)

	_, offset := got.Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestParseTime_ExplicitZoneWins(t *testing.T) {
	got, ok := ParseTime("2025-08-15T09:30:00Z")
	assert.True(t, ok)

	_, offset := got.Zone()
	assert.Equal(t, 0, offset, "an explicit UTC offset must not be rewritten")
}
