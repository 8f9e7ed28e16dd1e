package shared

import (
	"bytes"
	"encoding/json"
)

// Optional phân biệt 3 trạng thái của một field trong PATCH body:
//   - absent: key không có trong JSON
//   - null:   key có nhưng giá trị là null
//   - value:  key có giá trị
type Optional[T any] struct {
	value T
	set   bool
	valid bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true, valid: true}
}

func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the key was present, null or not.
func (o Optional[T]) IsSet() bool { return o.set }

func (o Optional[T]) IsNull() bool { return o.set && !o.valid }

func (o Optional[T]) IsAbsent() bool { return !o.set }

// Get returns the value only when one was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

// UnmarshalJSON chỉ được gọi khi key xuất hiện trong body,
// nên field absent giữ nguyên zero value (set=false).
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value, o.valid = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}

// IsZero lets `json:",omitzero"` drop absent fields on encode.
func (o Optional[T]) IsZero() bool { return !o.set }

// MarshalJSON encodes both absent and null as null. Fields that must keep
// the three states on the wire need the omitzero tag.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
