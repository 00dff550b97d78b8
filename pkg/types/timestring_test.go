package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)
	assert.Equal(t, "10:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("10:65")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("not-a-time")
	assert.Error(t, err)
}

func TestTimeString_At(t *testing.T) {
	ts := TimeString("10:00")
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	combined, err := ts.At(date)
	require.NoError(t, err)

	assert.Equal(t, 2025, combined.Year())
	assert.Equal(t, time.October, combined.Month())
	assert.Equal(t, 15, combined.Day())
	assert.Equal(t, 10, combined.Hour())
	assert.Equal(t, 0, combined.Minute())
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	shifted, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", shifted.String())

	shifted, err = ts.AddMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "10:00", shifted.String())
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("11:00").IsAfter(TimeString("10:59")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Постгрес может вернуть время с секундами
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, "10:00", ts.String())

	require.NoError(t, ts.Scan([]byte("14:30")))
	assert.Equal(t, "14:30", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, "09:15", ts.String())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_JSON(t *testing.T) {
	ts := TimeString("10:00")

	data, err := ts.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"10:00"`, string(data))

	var parsed TimeString
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"18:45"`)))
	assert.Equal(t, "18:45", parsed.String())

	assert.Error(t, parsed.UnmarshalJSON([]byte(`"bad"`)))
}
