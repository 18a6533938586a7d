package random

import (
	"crypto/rand"
	"fmt"

	"github.com/holiman/uint256"
)

// Secret returns a uniformly random non-zero 256-bit value suitable as a
// commitment secret.
func Secret() (*uint256.Int, error) {
	var buf [32]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("failed to generate random number: %w", err)
		}
		v := new(uint256.Int).SetBytes32(buf[:])
		if !v.IsZero() {
			return v, nil
		}
	}
}
