package dto

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout задаёт формат календарной даты в JSON.
const DateLayout = "2006-01-02"

// Date представляет календарную дату без времени, сериализуемую как "YYYY-MM-DD".
type Date time.Time

// NewDate отбрасывает время суток и возвращает дату в UTC.
func NewDate(t time.Time) Date {
	return Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// Time возвращает дату как time.Time.
func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}

	*d = Date(t)
	return nil
}
