// Package idgen generates short identifiers and collision-free display
// names for the dock tree and file tree managers.
package idgen

import (
	"encoding/base32"
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const defaultLen = 7

var shortEncoding = base32.HexEncoding.WithPadding(base32.NoPadding)

// Fresh returns a random, URL-safe short identifier prefixed "t_".
// length is the number of characters after the prefix; 0 uses the
// default of 7.
func Fresh(length int) string {
	if length <= 0 {
		length = defaultLen
	}
	id := uuid.New()
	encoded := strings.ToLower(shortEncoding.EncodeToString(id[:]))
	if len(encoded) < length {
		length = len(encoded)
	}
	return "t_" + encoded[:length]
}

// Seeded returns a deterministic short identifier derived from seed,
// using a xorshift64* PRNG initialised from an FNV-1a hash of seed.
// Equal seeds always produce equal output, so tree nodes built from
// the same source data get reproducible ids.
func Seeded(seed string, length int) string {
	if length <= 0 {
		length = defaultLen
	}
	state := fnvSeed(seed)

	var sb strings.Builder
	sb.WriteString("t_")
	for sb.Len() < length+2 {
		state = xorshift64star(state)
		sb.WriteString(strconv.FormatUint(state, 36))
	}
	out := sb.String()
	if len(out) > length+2 {
		out = out[:length+2]
	}
	return out
}

func fnvSeed(seed string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	state := h.Sum64()
	if state == 0 {
		// xorshift64* is undefined at state 0; nudge it off zero.
		state = 0x9e3779b97f4a7c15
	}
	return state
}

// xorshift64star advances the generator state and returns the next
// pseudo-random value. See Vigna, "An experimental exploration of
// Marsaglia's xorshift generators, scrambled".
func xorshift64star(x uint64) uint64 {
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	return x * 0x2545F4914F6CDD1D
}

var trailingSuffix = regexp.MustCompile(`^(.*) \((\d+)\)$`)

// UniqueName appends or increments a " (N)" suffix on base until the
// result is absent from existing, comparing case-sensitively.
func UniqueName(base string, existing map[string]bool) string {
	if !existing[base] {
		return base
	}

	stem := base
	if m := trailingSuffix.FindStringSubmatch(base); m != nil {
		stem = m[1]
	}

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", stem, n)
		if !existing[candidate] {
			return candidate
		}
	}
}
