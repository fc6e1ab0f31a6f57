package repository

import (
	"fmt"
	"time"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// timeLayouts covers what the two drivers hand back for timestamp columns
// stored as text.
var timeLayouts = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// timeDest scans DATETIME (time.Time) and TEXT timestamps alike.
type timeDest struct{ t *time.Time }

func (d timeDest) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d.t = v.UTC()
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into time", src)
	}
}

func (d timeDest) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// dateDest scans a nullable DATE column into a *model.Date.
type dateDest struct{ d **model.Date }

func (d dateDest) Scan(src any) error {
	if src == nil {
		*d.d = nil
		return nil
	}
	var v model.Date
	if err := v.Scan(src); err != nil {
		return err
	}
	*d.d = &v
	return nil
}

// stringDest scans a nullable text column into a *string.
type stringDest struct{ s **string }

func (d stringDest) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d.s = nil
	case string:
		*d.s = &v
	case []byte:
		s := string(v)
		*d.s = &s
	default:
		s := fmt.Sprint(v)
		*d.s = &s
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
