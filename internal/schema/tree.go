package schema

// Result tells whether a mutation changed the forest.
type Result uint8

const (
	Applied Result = iota
	// NotFound means no field carries the addressed id.
	NotFound
	// Rejected means the field exists but cannot take the mutation,
	// e.g. adding a child to a scalar field.
	Rejected
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case NotFound:
		return "not found"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

func (r Result) OK() bool {
	return r == Applied
}

// Update overrides attributes of a field. Nil members are left untouched.
// Replacing the payload is how a field changes type, so the old type's
// value or children never survive the change.
type Update struct {
	Key     *string
	Payload Payload
}

func SetKey(key string) Update {
	return Update{Key: &key}
}

func SetPayload(p Payload) Update {
	return Update{Payload: p}
}

// FindFieldByID searches depth-first in sibling order and returns the first
// field with the given id.
func FindFieldByID(forest Forest, id string) (*Field, bool) {
	for _, f := range forest {
		if f.ID == id {
			return f, true
		}
		if found, ok := FindFieldByID(f.Children(), id); ok {
			return found, true
		}
	}
	return nil, false
}

// AddField appends a new String field to the top level when parentID is
// empty, otherwise to the children of the Nested field with that id.
// The forest is returned unchanged when the parent is missing or not Nested.
func (fac *Factory) AddField(forest Forest, parentID string) (Forest, *Field, Result) {
	if parentID == "" {
		field := fac.CreateField(String)
		return append(forest, field), field, Applied
	}

	parent, ok := FindFieldByID(forest, parentID)
	if !ok {
		return forest, nil, NotFound
	}
	children, ok := parent.Payload.(Children)
	if !ok {
		return forest, nil, Rejected
	}

	field := fac.CreateField(String)
	parent.Payload = append(children, field)
	return forest, field, Applied
}

// AddField adds a field with a uuid id; see Factory.AddField.
func AddField(forest Forest, parentID string) (Forest, *Field, Result) {
	return defaultFactory.AddField(forest, parentID)
}

// UpdateField merges u into the field with the given id. Children payloads
// must be empty: fields only enter the tree through AddField, which keeps
// ids unique and the tree acyclic.
func UpdateField(forest Forest, id string, u Update) (Forest, Result) {
	field, ok := FindFieldByID(forest, id)
	if !ok {
		return forest, NotFound
	}
	if c, ok := u.Payload.(Children); ok && len(c) > 0 {
		return forest, Rejected
	}

	if u.Key != nil {
		field.Key = *u.Key
	}
	if u.Payload != nil {
		if _, ok := u.Payload.(Children); ok {
			field.Payload = Children{}
		} else {
			field.Payload = u.Payload
		}
	}
	return forest, Applied
}

// ChangeType switches the field to t and resets its payload to the default
// of t, dropping the previous value or children.
func ChangeType(forest Forest, id string, t Type) (Forest, Result) {
	return UpdateField(forest, id, SetPayload(DefaultPayload(t)))
}

// DeleteField removes every field with the given id together with its
// subtree. All branches are visited, so duplicated ids would all go.
func DeleteField(forest Forest, id string) (Forest, Result) {
	kept, removed := removeByID(forest, id)
	if removed == 0 {
		return forest, NotFound
	}
	return kept, Applied
}

func removeByID(fields []*Field, id string) ([]*Field, int) {
	kept := make([]*Field, 0, len(fields))
	removed := 0
	for _, f := range fields {
		if f.ID == id {
			removed++
			continue
		}
		if children, ok := f.Payload.(Children); ok {
			keptChildren, n := removeByID(children, id)
			if n > 0 {
				f.Payload = Children(keptChildren)
				removed += n
			}
		}
		kept = append(kept, f)
	}
	return kept, removed
}
