// Package id issues the ULIDs that key journal import runs.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out monotonic ULIDs: two IDs from the same millisecond
// still sort in issue order. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewGenerator seeds from crypto/rand. A nil clock means time.Now.
func NewGenerator(now func() time.Time) *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{
		now:     now,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.entropy)
	if err != nil {
		// only on entropy overflow within one millisecond
		panic(err)
	}
	return id.String()
}

var std = NewGenerator(nil)

// New returns a ULID from the process-wide generator.
func New() string {
	return std.New()
}

// Time returns the millisecond timestamp embedded in a ULID string.
func Time(s string) (time.Time, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()).UTC(), nil
}
