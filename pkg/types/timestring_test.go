package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid evening", input: "23:59"},
		{name: "midnight", input: "00:00"},
		{name: "day boundary", input: "24:00"},
		{name: "no leading zero", input: "9:00", wantErr: true},
		{name: "minutes overflow", input: "10:60", wantErr: true},
		{name: "hours overflow", input: "25:00", wantErr: true},
		{name: "past day boundary", input: "24:01", wantErr: true},
		{name: "garbage", input: "abcde", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)

	got, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "11:15", got.String())

	// Ровно до границы суток - допустимо
	late, err := NewTimeStringFromString("23:00")
	require.NoError(t, err)
	got, err = late.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "24:00", got.String())

	// За границу суток - ошибка
	_, err = late.AddMinutes(61)
	assert.ErrorIs(t, err, ErrOutOfDay)
}

func TestTimeString_Comparison(t *testing.T) {
	early := TimeString("09:00")
	late := TimeString("17:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
	assert.False(t, early.IsAfter(early))
}

func TestTimeString_OnDate(t *testing.T) {
	ts := TimeString("14:45")
	date := time.Date(2026, 3, 9, 23, 11, 7, 0, time.UTC)

	got, err := ts.OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 14, 45, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:15:00"))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan([]byte("19:05")))
	assert.Equal(t, "19:05", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC)))
	assert.Equal(t, "07:30", ts.String())

	assert.Error(t, ts.Scan(42))
}
