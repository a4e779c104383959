package util

import (
	"os"
	"strings"
	"time"
)

// LocalDateTime decodes request timestamps written without an offset as wall
// clock time in the app timezone.
type LocalDateTime struct {
	time.Time
}

const layout = "2006-01-02T15:04:05"

var appLocation *time.Location

func init() {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		name = "America/Sao_Paulo"
	}
	var err error
	appLocation, err = time.LoadLocation(name)
	if err != nil {
		appLocation = time.FixedZone("BRT", -3*60*60)
	}
}

func Location() *time.Location {
	return appLocation
}

func ToTimePtr(ldt *LocalDateTime) *time.Time {
	if ldt == nil {
		return nil
	}
	t := ldt.Time
	return &t
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, appLocation)
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}
