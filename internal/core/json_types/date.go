package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Zoneless inputs are interpreted as America/Sao_Paulo local time, the
// timezone of the service desk the registry serves.
var defaultZone = time.FixedZone("UTC-3", -3*60*60)

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err == nil {
		return parsedDate, nil
	}

	// The registry emits LocalDateTime without a zone; the dashboard's
	// datetime-local inputs omit seconds as well.
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	} {
		parsedDate, err = time.ParseInLocation(layout, str, defaultZone)
		if err == nil {
			return parsedDate, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// DateTime marshals in the registry's LocalDateTime shape and accepts every
// datetime form seen on the wire.
type DateTime struct {
	Date time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Date: t}
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("datetime must be a JSON string: %s", data)
	}

	parsedDate, err := parseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}

	*t = DateTime{Date: parsedDate}
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02T15:04:05"))
}
