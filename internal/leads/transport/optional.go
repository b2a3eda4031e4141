package transport

import (
	"bytes"
	"encoding/json"
	"time"
)

// The optional types below distinguish "absent", "present and usable", and
// "present but malformed". Partial updates apply usable fields and silently
// drop malformed ones instead of rejecting the whole request, so the
// unmarshalers never return an error for a wrong JSON type.

type OptionalString struct {
	Value string
	Set   bool
	Valid bool
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		// null normalizes to the empty string.
		o.Value = ""
		o.Valid = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		o.Valid = false
		return nil
	}
	o.Value = s
	o.Valid = true
	return nil
}

// OptionalInt accepts only integral JSON numbers. Floats, strings and null
// are present-but-invalid.
type OptionalInt struct {
	Value int
	Set   bool
	Valid bool
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true

	// json.Number also decodes from a quoted numeric string, which must stay
	// invalid here: only a bare number token counts.
	if t := bytes.TrimSpace(data); len(t) == 0 || t[0] == '"' {
		o.Valid = false
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		o.Valid = false
		return nil
	}
	v, err := n.Int64()
	if err != nil {
		o.Valid = false
		return nil
	}
	o.Value = int(v)
	o.Valid = true
	return nil
}

// OptionalStrings accepts only a JSON array of strings.
type OptionalStrings struct {
	Value []string
	Set   bool
	Valid bool
}

func (o *OptionalStrings) UnmarshalJSON(data []byte) error {
	o.Set = true

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		o.Valid = false
		return nil
	}
	if items == nil {
		items = []string{}
	}
	o.Value = items
	o.Valid = true
	return nil
}

// OptionalTime accepts RFC 3339 timestamps or bare dates, and null to clear.
type OptionalTime struct {
	Value *time.Time
	Set   bool
	Valid bool
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		o.Valid = true
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		o.Valid = false
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			o.Value = &t
			o.Valid = true
			return nil
		}
	}
	o.Valid = false
	return nil
}
