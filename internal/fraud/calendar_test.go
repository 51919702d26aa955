package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [3]int
		wantErr bool
	}{
		{name: "iso date", input: "2024-03-09", want: [3]int{2024, 3, 9}},
		{name: "slash separator", input: "2024/03/09", want: [3]int{2024, 3, 9}},
		{name: "leading blanks and trailing text", input: "  2024.3.9xyz", want: [3]int{2024, 3, 9}},
		{name: "out of range values still parse", input: "2024-13-40", want: [3]int{2024, 13, 40}},
		{name: "missing day", input: "2024-03", wantErr: true},
		{name: "not a date", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "two separators", input: "2024-/03-09", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m, d, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, [3]int{y, m, d})
		})
	}
}

func TestDayNumber(t *testing.T) {
	assert.Equal(t, 2451545, DayNumber(2000, 1, 1))
	assert.Equal(t, DayNumber(2024, 2, 29)+1, DayNumber(2024, 3, 1))
	assert.Equal(t, DayNumber(2023, 12, 31)+1, DayNumber(2024, 1, 1))
}

func TestDayDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-02-28", "2024-03-01", 2},
		{"2024-03-01", "2024-02-28", 2},
		{"2023-12-31", "2024-01-01", 1},
		{"2024-01-01", "2024-03-01", 60},
		{"2024-05-05", "2024-05-05", 0},
		{"garbage", "2024-01-01", 0},
		{"2024-01-01", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, DayDistance(tt.a, tt.b))
		})
	}
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-03-09", 6}, // Saturday
		{"2024-03-10", 0}, // Sunday
		{"2024-03-11", 1},
		{"2000-01-01", 6},
		{"2024-02-29", 4},
		{"not-a-date", 1},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekdayIndex(tt.date))
		})
	}

	assert.True(t, IsWeekend("2024-03-09"))
	assert.True(t, IsWeekend("2024-03-10"))
	assert.False(t, IsWeekend("2024-03-11"))
	assert.False(t, IsWeekend("bad"))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-03", MonthKey("2024-03-09"))
	assert.Equal(t, "2024-03", MonthKey("2024-03xx"))
	assert.Equal(t, "2024", MonthKey("2024"))
}
