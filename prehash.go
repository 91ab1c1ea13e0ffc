package bucketset

import (
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// PreHash condenses an arbitrarily large value into a fixed-width,
// printable key suitable for Update.
//
// Update's cost is linear in key length, so toggling multi-kilobyte values
// directly makes the value the dominant cost of every digest operation.
// PreHash applies xxHash3-128 and renders the result as a 32-character hex
// string, bounding per-update cost regardless of value size.
//
// Replicas only stay comparable if they agree on representation: if one
// endpoint pre-hashes a value before toggling it, every endpoint must.
// Mixing pre-hashed and raw forms of the same value produces digests that
// legitimately diverge.
//
// Do not use PreHash when values are already short stable keys; it only
// adds a hashing pass and widens short keys to 32 bytes.
func PreHash(value []byte) string {
	h := xxh3.Hash128(value)
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(h.Hi >> (56 - 8*i))
		buf[8+i] = byte(h.Lo >> (56 - 8*i))
	}
	return hex.EncodeToString(buf[:])
}
