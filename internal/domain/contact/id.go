package contact

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

// IDLength is the number of hex characters in a contact id.
const IDLength = 8

// IDGenerator produces contact ids. Implementations need not guarantee
// uniqueness; callers accept the collision risk.
type IDGenerator interface {
	NewID() string
}

// HexIDGenerator builds ids by concatenating the hex form of random 32-bit
// integers until Length characters are available, then truncating.
type HexIDGenerator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	length int
}

// NewHexIDGenerator returns a generator reading from src. A nil src uses
// a randomly seeded PCG source.
func NewHexIDGenerator(src rand.Source, length int) *HexIDGenerator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if length <= 0 {
		length = IDLength
	}
	return &HexIDGenerator{rnd: rand.New(src), length: length}
}

var DefaultIDGenerator IDGenerator = NewHexIDGenerator(nil, IDLength)

func (g *HexIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	for sb.Len() < g.length {
		sb.WriteString(strconv.FormatUint(uint64(g.rnd.Uint32()), 16))
	}
	return sb.String()[:g.length]
}

// IsValidID reports whether id looks like a generated contact id.
func IsValidID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		ch := id[i]
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') {
			return false
		}
	}
	return true
}
