package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/flavono123/schemabuilder/internal/schema"
)

const DefaultIndent = 2

var ErrUnknownFormat = errors.New("unknown preview format")

type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	OpenAPI Format = "openapi"
	// Patch is the JSON merge patch turning the previous document into the
	// current one.
	Patch Format = "patch"
)

var Formats = []Format{JSON, YAML, OpenAPI, Patch}

func ParseFormat(s string) (Format, error) {
	if s == "" {
		return JSON, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) Next() Format {
	for i, cur := range Formats {
		if cur == f {
			return Formats[(i+1)%len(Formats)]
		}
	}
	return JSON
}

// Ext is the file extension used when exporting f.
func (f Format) Ext() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

type Options struct {
	Format Format
	Indent int
}

// Input is what a preview is rendered from.
type Input struct {
	Fields schema.Forest
	// Previous is the document before the last edit; nil means empty.
	Previous *schema.Object
}

// Render renders the forest as text in the requested format.
func Render(in Input, opts Options) (string, error) {
	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	switch opts.Format {
	case "", JSON:
		return marshalJSON(schema.Serialize(in.Fields), indent)
	case YAML:
		return renderYAML(schema.Serialize(in.Fields), indent)
	case OpenAPI:
		return marshalJSON(OpenAPISchema(in.Fields), indent)
	case Patch:
		return renderPatch(in, indent)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}

// Stats is the preview footer: top-level field count and compact JSON size.
type Stats struct {
	Fields int
	Size   int
}

func ComputeStats(fields schema.Forest) (Stats, error) {
	compact, err := marshalJSON(schema.Serialize(fields), 0)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Fields: len(fields), Size: utf8.RuneCountInString(compact)}, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("Fields: %d  Size: %d chars", s.Fields, s.Size)
}

func marshalJSON(v any, indent int) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to marshal preview: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func renderYAML(obj *schema.Object, indent int) (string, error) {
	data, err := yaml.MarshalWithOptions(toMapSlice(obj), yaml.Indent(indent))
	if err != nil {
		return "", fmt.Errorf("failed to marshal yaml preview: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func toMapSlice(obj *schema.Object) yaml.MapSlice {
	result := yaml.MapSlice{}
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		if nested, ok := value.(*schema.Object); ok {
			value = toMapSlice(nested)
		}
		result = append(result, yaml.MapItem{Key: key, Value: value})
	}
	return result
}

func renderPatch(in Input, indent int) (string, error) {
	previous := in.Previous
	if previous == nil {
		previous = schema.NewObject()
	}
	from, err := previous.MarshalJSON()
	if err != nil {
		return "", err
	}
	to, err := schema.Serialize(in.Fields).MarshalJSON()
	if err != nil {
		return "", err
	}

	patch, err := jsonpatch.CreateMergePatch(from, to)
	if err != nil {
		return "", fmt.Errorf("failed to create merge patch: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, patch, "", strings.Repeat(" ", indent)); err != nil {
		return "", fmt.Errorf("failed to indent merge patch: %w", err)
	}
	return buf.String(), nil
}
