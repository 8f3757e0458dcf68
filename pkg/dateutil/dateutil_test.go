package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{
			name:        "Exact birthday",
			birthDate:   time.Date(1970, 6, 15, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedAge: 55,
		},
		{
			name:        "Day before birthday",
			birthDate:   time.Date(1970, 6, 15, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			expectedAge: 54,
		},
		{
			name:        "Month after birthday",
			birthDate:   time.Date(1970, 6, 15, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			expectedAge: 55,
		},
		{
			name:        "Leap day birth checked on 28 February",
			birthDate:   time.Date(1964, 2, 29, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestFirstOfMonth(t *testing.T) {
	got := FirstOfMonth(time.Date(2025, 3, 27, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestBirthdayIn(t *testing.T) {
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), BirthdayIn(time.Date(1964, 2, 29, 0, 0, 0, 0, time.UTC), 2025))
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), BirthdayIn(time.Date(1964, 2, 29, 0, 0, 0, 0, time.UTC), 2028))
	assert.Equal(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC), BirthdayIn(time.Date(1970, 6, 15, 0, 0, 0, 0, time.UTC), 2030))
}
