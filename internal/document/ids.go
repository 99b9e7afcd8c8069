package document

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"blockslash/internal/config"
)

// IDGenerator hands out block ids
type IDGenerator interface {
	NextID() string
}

// AutoIncrementGenerator yields "0", "1", "2", ... Ids only stay unique
// within one session, which is enough while nothing is persisted.
type AutoIncrementGenerator struct {
	next atomic.Int64
}

func (g *AutoIncrementGenerator) NextID() string {
	return strconv.FormatInt(g.next.Add(1)-1, 10)
}

// UUIDGenerator yields random v4 UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}

// NewIDGenerator returns the generator named by kind
func NewIDGenerator(kind string) (IDGenerator, error) {
	switch kind {
	case config.IDGeneratorAutoIncrement, "":
		return &AutoIncrementGenerator{}, nil
	case config.IDGeneratorUUID:
		return UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownIDGenerator, kind)
	}
}
