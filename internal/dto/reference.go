package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID accepts both 7 and "7" on the wire; form posts send ids as strings.
type ID uint

func (id *ID) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*id = ID(n)
	return nil
}

func (id *ID) Ptr() *uint {
	if id == nil {
		return nil
	}
	v := uint(*id)
	return &v
}

// Ref is either a bare id or the referenced entity. It is expanded whenever
// the target still exists; a deleted target leaves only the id.
type Ref[T any] struct {
	ID    uint
	Value *T
}

func RefOf[T any](id uint, v *T) Ref[T] {
	return Ref[T]{ID: id, Value: v}
}

func (r Ref[T]) Expanded() bool {
	return r.Value != nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	return json.Marshal(r.ID)
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var head struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(b, &head); err != nil {
			return err
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		r.ID, r.Value = head.ID, &v
		return nil
	}

	var id ID
	if err := id.UnmarshalJSON(b); err != nil {
		return err
	}
	r.ID, r.Value = uint(id), nil
	return nil
}

// OptionalFloat tells an absent field apart from an explicit null.
type OptionalFloat struct {
	Set   bool
	Value *float64
}

func (o *OptionalFloat) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(bytes.TrimSpace(b)) == "null" {
		o.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
