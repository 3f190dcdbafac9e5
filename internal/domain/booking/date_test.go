package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.January, 31)

	assert.Equal(t, NewDate(2024, time.February, 1), d.AddDays(1))
	assert.Equal(t, NewDate(2023, time.December, 31), d.AddDays(-31))
	assert.Equal(t, time.Wednesday, d.Weekday())
	assert.Equal(t, "2024-01-31", d.String())
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.January, 2)
	b := NewDate(2024, time.January, 3)
	c := NewDate(2024, time.February, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, b.Before(a))
	assert.True(t, a.Equal(NewDate(2024, time.January, 2)))
}

func TestDateOf(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:30 local is still the same civil date regardless of what UTC says.
	instant := time.Date(2024, time.July, 4, 23, 30, 0, 0, loc)
	assert.Equal(t, NewDate(2024, time.July, 4), DateOf(instant))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    WeekdaySet
		wantErr bool
	}{
		{name: "basic", in: "wednesday,thursday", want: NewWeekdaySet(time.Wednesday, time.Thursday)},
		{name: "case and spacing", in: " Monday , FRIDAY ", want: NewWeekdaySet(time.Monday, time.Friday)},
		{name: "duplicates collapse", in: "monday,monday", want: NewWeekdaySet(time.Monday)},
		{name: "empty", in: "", want: NewWeekdaySet()},
		{name: "trailing comma", in: "sunday,", want: NewWeekdaySet(time.Sunday)},
		{name: "unknown day", in: "wednesday,someday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdaySetString(t *testing.T) {
	s := NewWeekdaySet(time.Thursday, time.Monday)
	assert.Equal(t, "monday,thursday", s.String())
}
