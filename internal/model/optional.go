package model

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type OptionalString struct {
	Set   bool
	Value *string
}

func SomeString(v string) OptionalString {
	return OptionalString{Set: true, Value: &v}
}

func NullString() OptionalString {
	return OptionalString{Set: true}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Normalized returns Value with the empty string folded into nil.
func (o OptionalString) Normalized() *string {
	if o.Value == nil || *o.Value == "" {
		return nil
	}
	v := *o.Value
	return &v
}
