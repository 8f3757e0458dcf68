package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// FirstOfMonth truncates t to midnight UTC on the first day of its month
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// BirthdayIn returns the date of the birthday falling in year. A 29 February
// birthday falls on 28 February in non-leap years.
func BirthdayIn(birthDate time.Time, year int) time.Time {
	d := time.Date(year, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if d.Month() != birthDate.Month() {
		return time.Date(year, birthDate.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return d
}
