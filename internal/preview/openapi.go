package preview

import (
	"k8s.io/kube-openapi/pkg/validation/spec"

	"github.com/flavono123/schemabuilder/internal/schema"
)

// OpenAPISchema describes the forest as an OpenAPI object schema whose
// property defaults are the field values.
func OpenAPISchema(fields schema.Forest) *spec.Schema {
	result := new(spec.Schema).Typed("object", "")
	for _, f := range fields {
		result.SetProperty(f.Key, *propertySchema(f))
	}
	return result
}

func propertySchema(f *schema.Field) *spec.Schema {
	switch p := f.Payload.(type) {
	case schema.Children:
		return OpenAPISchema(schema.Forest(p))
	case schema.NumberValue:
		return new(spec.Schema).Typed("number", "").WithDefault(float64(p))
	}
	value, _ := f.Value()
	return new(spec.Schema).Typed("string", "").WithDefault(value)
}
