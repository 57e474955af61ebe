package schema

import (
	"bytes"
	"encoding/json"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that remembers key insertion order. Setting an
// existing key replaces its value in place, like a JavaScript object.
type Object struct {
	members *orderedmap.OrderedMap[string, any]
}

func NewObject() *Object {
	return &Object{members: orderedmap.New[string, any]()}
}

func (o *Object) Set(key string, value any) {
	o.members.Set(key, value)
}

func (o *Object) Get(key string) (any, bool) {
	return o.members.Get(key)
}

func (o *Object) Keys() []string {
	keys := make([]string, 0, o.members.Len())
	for pair := o.members.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (o *Object) Len() int {
	return o.members.Len()
}

// MarshalJSON writes members in insertion order without HTML escaping.
// Non-finite numbers become null, as JSON.stringify does.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for pair := o.members.Oldest(); pair != nil; pair = pair.Next() {
		if pair != o.members.Oldest() {
			buf.WriteByte(',')
		}
		if err := encodeMember(&buf, enc, pair.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')

		value := pair.Value
		if n, ok := value.(float64); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
			value = nil
		}
		if err := encodeMember(&buf, enc, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeMember drops the newline Encode ends every value with.
func encodeMember(buf *bytes.Buffer, enc *json.Encoder, v any) error {
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Serialize maps the forest to a plain JSON object keyed by field keys.
// Nested fields recurse; scalar fields contribute their default value.
// A later sibling with a duplicate key overwrites the earlier one.
func Serialize(forest Forest) *Object {
	result := NewObject()
	for _, f := range forest {
		if children, ok := f.Payload.(Children); ok {
			result.Set(f.Key, Serialize(Forest(children)))
			continue
		}
		value, _ := f.Value()
		result.Set(f.Key, value)
	}
	return result
}
