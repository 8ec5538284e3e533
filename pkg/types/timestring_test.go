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
		{name: "valid morning time", input: "09:30"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "24:00"},
		{name: "valid last minute", input: "23:59"},
		{name: "invalid hour", input: "25:00", wantErr: true},
		{name: "invalid minute", input: "10:60", wantErr: true},
		{name: "24 with minutes", input: "24:30", wantErr: true},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		minutes int
		want    string
		wantErr bool
	}{
		{name: "within hour", start: "10:00", minutes: 30, want: "10:30"},
		{name: "across hour", start: "10:45", minutes: 30, want: "11:15"},
		{name: "to end of day", start: "22:00", minutes: 120, want: "24:00"},
		{name: "past end of day", start: "23:30", minutes: 60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := NewTimeStringFromString(tt.start)
			require.NoError(t, err)

			got, err := start.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Comparison(t *testing.T) {
	early, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	late, err := NewTimeStringFromString("18:30")
	require.NoError(t, err)

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsAfter(late))
	assert.False(t, early.IsBefore(early))
	assert.False(t, early.IsAfter(early))
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "plain string", value: "10:30", want: "10:30"},
		{name: "with seconds", value: "10:30:00", want: "10:30"},
		{name: "bytes", value: []byte("08:15:00"), want: "08:15"},
		{name: "time value", value: time.Date(0, 1, 1, 14, 45, 0, 0, time.UTC), want: "14:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TimeString
			require.NoError(t, ts.Scan(tt.value))
			assert.Equal(t, tt.want, ts.String())
		})
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 15, 13, 5, 0, 0, time.UTC))
	assert.Equal(t, "13:05", ts.String())
}
