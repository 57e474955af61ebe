package schema

import (
	"net/url"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"github.com/go-openapi/jsonreference"
)

// WalkFunc is called for every field with the keys leading to it, the field
// key included. Returning false skips the field's children.
type WalkFunc func(f *Field, path []string) bool

// Walk visits the forest depth-first in sibling order.
func Walk(forest Forest, fn WalkFunc) {
	walk(forest, nil, fn)
}

func walk(fields []*Field, prefix []string, fn WalkFunc) {
	for _, f := range fields {
		path := make([]string, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = f.Key
		if !fn(f, path) {
			continue
		}
		walk(f.Children(), path, fn)
	}
}

// PathTo returns the chain of fields from the top level down to the field
// with the given id, both ends included.
func PathTo(forest Forest, id string) ([]*Field, bool) {
	for _, f := range forest {
		if f.ID == id {
			return []*Field{f}, true
		}
		if chain, ok := PathTo(f.Children(), id); ok {
			return append([]*Field{f}, chain...), true
		}
	}
	return nil, false
}

// Pointer renders a key path as a JSON reference fragment, e.g.
// ["address", "city"] becomes "#/address/city".
func Pointer(path []string) string {
	if len(path) == 0 {
		return "#"
	}
	tokens := make([]string, len(path))
	for i, key := range path {
		tokens[i] = jsonpointer.Escape(key)
	}

	u := url.URL{Fragment: "/" + strings.Join(tokens, "/")}
	ref, err := jsonreference.New(u.String())
	if err != nil {
		return u.String()
	}
	return ref.String()
}

// ResolveRef finds the field whose serialized value sits at ref. Among
// siblings sharing a key the last one wins, matching Serialize.
func ResolveRef(forest Forest, ref string) (*Field, bool) {
	parsed, err := jsonreference.New(ref)
	if err != nil || !parsed.HasFragmentOnly {
		return nil, false
	}
	tokens := parsed.GetPointer().DecodedTokens()
	if len(tokens) == 0 {
		return nil, false
	}

	var found *Field
	fields := []*Field(forest)
	for i, token := range tokens {
		found = nil
		for _, f := range fields {
			if f.Key == token {
				found = f
			}
		}
		if found == nil {
			return nil, false
		}
		if i < len(tokens)-1 {
			if !found.IsNested() {
				return nil, false
			}
			fields = found.Children()
		}
	}
	return found, true
}
