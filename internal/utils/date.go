package util

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// DateKey is a calendar day in the application time zone, formatted YYYY-MM-DD.
type DateKey string

func ParseDateKey(s string) (DateKey, error) {
	if _, err := time.ParseInLocation(DateLayout, s, appLocation); err != nil {
		return "", ErrInvalidDate
	}
	return DateKey(s), nil
}

func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.In(appLocation).Format(DateLayout))
}

func Today() DateKey {
	return DateKeyOf(time.Now())
}

func (d DateKey) Time() time.Time {
	t, _ := time.ParseInLocation(DateLayout, string(d), appLocation)
	return t
}

func (d DateKey) AddDays(n int) DateKey {
	return DateKeyOf(d.Time().AddDate(0, 0, n))
}

func (d DateKey) String() string {
	return string(d)
}
