package schema

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

const KeyPrefix = "field_"

var ErrUnknownIDStrategy = errors.New("unknown id strategy")

// IDGenerator hands out field ids. Ids must never repeat within a session.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SnowflakeGenerator renders snowflake ids in base36.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

func NewSnowflakeGenerator(nodeNumber int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) NewID() string {
	return g.node.Generate().Base36()
}

// SequenceGenerator counts up from 1. Not safe for concurrent use.
type SequenceGenerator struct {
	last int
}

func (g *SequenceGenerator) NewID() string {
	g.last++
	return strconv.Itoa(g.last)
}

// NewIDGenerator builds the generator named by strategy: "uuid",
// "snowflake" or "sequence". An empty strategy means "uuid".
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", "uuid":
		return UUIDGenerator{}, nil
	case "snowflake":
		return NewSnowflakeGenerator(0)
	case "sequence":
		return &SequenceGenerator{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIDStrategy, strategy)
}

// Factory creates fields with ids from its generator.
type Factory struct {
	ids IDGenerator
}

func NewFactory(ids IDGenerator) *Factory {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Factory{ids: ids}
}

// CreateField returns a field of type t with a fresh id, the default key
// "field_<id>" and the default payload of t.
func (f *Factory) CreateField(t Type) *Field {
	id := f.ids.NewID()
	return &Field{
		ID:      id,
		Key:     KeyPrefix + id,
		Payload: DefaultPayload(t),
	}
}

var defaultFactory = NewFactory(UUIDGenerator{})

// CreateField creates a field with a uuid id.
func CreateField(t Type) *Field {
	return defaultFactory.CreateField(t)
}
