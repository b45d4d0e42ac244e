package random

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Seed returns a crypto-sourced int64 suitable for seeding a run's deck
// shuffle. Runs record their seed so a deck order can be replayed.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	seed := int64(binary.BigEndian.Uint64(buf[:]) &^ (1 << 63))
	if seed == 0 {
		return 1
	}
	return seed
}

// Code returns a short human-readable share code (no 0/O/1/I).
func Code(length int) string {
	if length <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(letters)))
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = letters[0]
			continue
		}
		out[i] = letters[n.Int64()]
	}
	return string(out)
}
