package doctpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Amount is a monetary value in reais. It decodes from JSON numbers and from
// numeric strings in either "1500.50" or "1.500,50" form. Missing or
// unparseable values decode as zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = Amount(ParseAmount(s))
		return nil
	}
	if f, err := strconv.ParseFloat(string(data), 64); err == nil {
		*a = Amount(f)
	}
	return nil
}

// Float returns the amount as a float64.
func (a Amount) Float() float64 { return float64(a) }

// ParseAmount reads a user-entered amount. A comma marks the decimal
// separator, in which case dots are thousands separators. Currency symbols
// and spaces are ignored. Unparseable input yields 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Date is a calendar date without time-of-day or zone.
type Date struct {
	t time.Time
}

const (
	isoDate      = "2006-01-02"
	displayDate  = "02/01/2006"
	fileNameDate = "02-01-2006"
)

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp. For timestamps the
// date is taken as written, without converting zones.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(isoDate, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	if len(s) >= len(isoDate) {
		if t, err := time.Parse(isoDate, s[:len(isoDate)]); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("doctpl: invalid date %q", s)
}

func (d Date) IsZero() bool    { return d.t.IsZero() }
func (d Date) Year() int       { return d.t.Year() }
func (d Date) Time() time.Time { return d.t }

// Display formats the date as DD/MM/YYYY.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(displayDate)
}

// FileStamp formats the date as DD-MM-YYYY for use in file names.
func (d Date) FileStamp() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(fileNameDate)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(isoDate)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("doctpl: date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// LineItems is an ordered collection of proposal items. In JSON it is an
// object keyed by item id; key order is preserved. An array of items with a
// "key" field is accepted as well.
type LineItems []LineItem

// Selected returns the selected items in order.
func (li LineItems) Selected() []LineItem {
	var out []LineItem
	for _, it := range li {
		if it.Selected {
			out = append(out, it)
		}
	}
	return out
}

func (li *LineItems) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("doctpl: line items: %w", err)
	}

	switch tok {
	case nil:
		*li = nil
		return nil

	case json.Delim('['):
		var arr []struct {
			Key string `json:"key"`
			LineItem
		}
		if err := json.Unmarshal(data, &arr); err != nil {
			return fmt.Errorf("doctpl: line items: %w", err)
		}
		out := make(LineItems, 0, len(arr))
		for i, e := range arr {
			item := e.LineItem
			item.Key = e.Key
			if item.Key == "" {
				item.Key = strconv.Itoa(i)
			}
			out = append(out, item)
		}
		*li = out
		return nil

	case json.Delim('{'):
		var out LineItems
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return fmt.Errorf("doctpl: line items: %w", err)
			}
			key, _ := kt.(string)
			var item LineItem
			if err := dec.Decode(&item); err != nil {
				return fmt.Errorf("doctpl: line item %q: %w", key, err)
			}
			item.Key = key
			out = append(out, item)
		}
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("doctpl: line items: %w", err)
		}
		*li = out
		return nil
	}

	return fmt.Errorf("doctpl: line items must be an object or an array")
}

func (li LineItems) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, it := range li {
		if i > 0 {
			buf.WriteByte(',')
		}
		key := it.Key
		if key == "" {
			key = strconv.Itoa(i)
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
