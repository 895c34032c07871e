package kernel

import (
	"fmt"
	"strconv"
	"sync"

	"waterdelivery/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
)

// ErrIDIsNotConstructed is returned for the zero ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or IDFrom")

var (
	nodeMu sync.Mutex
	node   *snowflake.Node
)

// ID is a positive 64-bit identifier. Orders and order items receive snowflake
// IDs; customers, drivers, addresses and products keep the IDs of the systems
// that own them.
type ID struct {
	value int64
}

// SetNode selects the snowflake node used by NewID. Each process writing to the
// same database must use a distinct node number (0..1023).
func SetNode(n int64) error {
	nd, err := snowflake.NewNode(n)
	if err != nil {
		return errs.NewValueIsOutOfRangeErrorWithCause("snowflake node", n, 0, 1023, err)
	}

	nodeMu.Lock()
	node = nd
	nodeMu.Unlock()
	return nil
}

// NewID generates a fresh, time-ordered ID.
func NewID() ID {
	nodeMu.Lock()
	defer nodeMu.Unlock()

	if node == nil {
		// node 0 cannot fail
		node, _ = snowflake.NewNode(0)
	}
	return ID{value: node.Generate().Int64()}
}

// IDFrom restores an ID issued elsewhere.
func IDFrom(v int64) (ID, error) {
	if v <= 0 {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", v))
	}
	return ID{value: v}, nil
}

// MustID is IDFrom for literals and tests.
func MustID(v int64) ID {
	id, err := IDFrom(v)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseID parses a decimal ID from text, e.g. a path parameter.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return IDFrom(v)
}

func (i ID) Int64() int64 {
	return i.value
}

func (i ID) String() string {
	return strconv.FormatInt(i.value, 10)
}

func (i ID) IsEqual(other ID) bool {
	return i.value == other.value
}

func (i ID) Validate() error {
	if i.value <= 0 {
		return ErrIDIsNotConstructed
	}
	return nil
}

// Ptr returns nil for the zero ID, which maps absent optional references.
func (i ID) Ptr() *ID {
	if i.value <= 0 {
		return nil
	}
	return &i
}
