package session

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/flavono123/schemabuilder/internal/schema"
)

var (
	ErrNotFound  = errors.New("field not found")
	ErrNotNested = errors.New("field is not nested")
	ErrNoValue   = errors.New("nested fields have no value")
)

// Session owns one forest being edited. Sessions never share fields.
type Session struct {
	factory  *schema.Factory
	fields   schema.Forest
	previous *schema.Object
	revision int
	logger   *log.Logger
}

// Options configures a session.
type Options struct {
	IDs    schema.IDGenerator
	Logger *log.Logger
	// Example seeds the session with a small name/address schema instead of
	// a single empty field.
	Example bool
}

// New creates a session holding one default String field.
func New(opts ...Options) *Session {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		factory: schema.NewFactory(opt.IDs),
		logger:  logger,
	}
	if opt.Example {
		s.fields = exampleFields(s.factory)
	} else {
		s.fields = schema.Forest{s.factory.CreateField(schema.String)}
	}
	return s
}

// Fields returns the current forest. Callers must not mutate it.
func (s *Session) Fields() schema.Forest {
	return s.fields
}

// JSON serializes the current forest.
func (s *Session) JSON() *schema.Object {
	return schema.Serialize(s.fields)
}

// Previous returns the serialized forest as it was before the last applied
// mutation, or nil before any mutation.
func (s *Session) Previous() *schema.Object {
	return s.previous
}

// Revision counts applied mutations.
func (s *Session) Revision() int {
	return s.revision
}

// Find returns the field with the given id.
func (s *Session) Find(id string) (*schema.Field, error) {
	field, ok := schema.FindFieldByID(s.fields, id)
	if !ok {
		return nil, fmt.Errorf("find %q: %w", id, ErrNotFound)
	}
	return field, nil
}

// Add appends a new String field under parentID, or at the top level when
// parentID is empty.
func (s *Session) Add(parentID string) (*schema.Field, error) {
	before := s.JSON()
	fields, field, result := s.factory.AddField(s.fields, parentID)
	if err := s.commit("add", parentID, result, ErrNotNested); err != nil {
		return nil, err
	}
	s.fields = fields
	s.previous = before
	return field, nil
}

// Rename sets the key of a field.
func (s *Session) Rename(id, key string) error {
	return s.update("rename", id, schema.SetKey(key), nil)
}

// ChangeType switches a field to t with the default payload of t.
func (s *Session) ChangeType(id string, t schema.Type) error {
	return s.update("change type", id, schema.SetPayload(schema.DefaultPayload(t)), nil)
}

// SetValue sets the default value of a scalar field from user input.
// Number fields fall back to 0 when raw does not parse as a finite number.
func (s *Session) SetValue(id, raw string) error {
	field, err := s.Find(id)
	if err != nil {
		return err
	}

	var payload schema.Payload
	switch field.Type() {
	case schema.String:
		payload = schema.StringValue(raw)
	case schema.Number:
		payload = schema.NumberValue(parseNumber(raw))
	default:
		return fmt.Errorf("set value %q: %w", id, ErrNoValue)
	}
	return s.update("set value", id, schema.SetPayload(payload), ErrNoValue)
}

// Delete removes a field and its subtree.
func (s *Session) Delete(id string) error {
	before := s.JSON()
	fields, result := schema.DeleteField(s.fields, id)
	if err := s.commit("delete", id, result, nil); err != nil {
		return err
	}
	s.fields = fields
	s.previous = before
	return nil
}

func (s *Session) update(op, id string, u schema.Update, rejected error) error {
	before := s.JSON()
	fields, result := schema.UpdateField(s.fields, id, u)
	if err := s.commit(op, id, result, rejected); err != nil {
		return err
	}
	s.fields = fields
	s.previous = before
	return nil
}

func (s *Session) commit(op, id string, result schema.Result, rejected error) error {
	switch result {
	case schema.Applied:
		s.revision++
		s.logger.Debug("field mutation", "op", op, "id", id, "revision", s.revision)
		return nil
	case schema.NotFound:
		s.logger.Debug("field mutation skipped", "op", op, "id", id, "result", result)
		return fmt.Errorf("%s %q: %w", op, id, ErrNotFound)
	default:
		s.logger.Debug("field mutation skipped", "op", op, "id", id, "result", result)
		if rejected == nil {
			rejected = errors.New(result.String())
		}
		return fmt.Errorf("%s %q: %w", op, id, rejected)
	}
}

func parseNumber(raw string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	// n == 0 also folds -0 into 0
	if err != nil || n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func exampleFields(fac *schema.Factory) schema.Forest {
	name := fac.CreateField(schema.String)
	name.Key = "name"
	name.Payload = schema.StringValue("Alice")

	city := fac.CreateField(schema.String)
	city.Key = "city"
	city.Payload = schema.StringValue("NYC")

	address := fac.CreateField(schema.Nested)
	address.Key = "address"
	address.Payload = schema.Children{city}

	return schema.Forest{name, address}
}
