package schema

import (
	"fmt"
	"strconv"
)

type Type string

const (
	String Type = "String"
	Number Type = "Number"
	Nested Type = "Nested"
)

// Types lists every field type in the order the editor cycles through them.
var Types = []Type{String, Number, Nested}

func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Next returns the type following t in Types, wrapping around.
func (t Type) Next() Type {
	for i, cur := range Types {
		if cur == t {
			return Types[(i+1)%len(Types)]
		}
	}
	return String
}

// Payload is the type-tagged content of a field. Scalar fields carry a
// default value, nested fields carry their children; never both.
type Payload interface {
	Type() Type
	payload()
}

type StringValue string

type NumberValue float64

// Children is the ordered payload of a Nested field.
type Children []*Field

func (StringValue) Type() Type { return String }
func (NumberValue) Type() Type { return Number }
func (Children) Type() Type    { return Nested }

func (StringValue) payload() {}
func (NumberValue) payload() {}
func (Children) payload()    {}

// DefaultPayload returns the payload a freshly created field of type t holds.
func DefaultPayload(t Type) Payload {
	switch t {
	case Number:
		return NumberValue(0)
	case Nested:
		return Children{}
	default:
		return StringValue("")
	}
}

// Field is a node of the schema tree. A Field without a payload behaves as
// an empty String field.
type Field struct {
	ID      string
	Key     string
	Payload Payload
}

func (f *Field) Type() Type {
	if f.Payload == nil {
		return String
	}
	return f.Payload.Type()
}

func (f *Field) IsNested() bool {
	return f.Type() == Nested
}

// Value returns the scalar default value of a String or Number field.
func (f *Field) Value() (any, bool) {
	switch p := f.Payload.(type) {
	case nil:
		return "", true
	case StringValue:
		return string(p), true
	case NumberValue:
		return float64(p), true
	}
	return nil, false
}

// Children returns the children of a Nested field, nil otherwise.
func (f *Field) Children() []*Field {
	if c, ok := f.Payload.(Children); ok {
		return c
	}
	return nil
}

// ValueString renders the scalar value the way the editor displays it.
func (f *Field) ValueString() string {
	switch p := f.Payload.(type) {
	case nil:
		return `""`
	case StringValue:
		return strconv.Quote(string(p))
	case NumberValue:
		return strconv.FormatFloat(float64(p), 'f', -1, 64)
	case Children:
		return fmt.Sprintf("{%d}", len(p))
	}
	return ""
}

func (f *Field) String() string {
	return fmt.Sprintf("%s<%s>", f.Key, f.Type())
}

// Forest is the ordered sequence of top-level fields.
type Forest []*Field
