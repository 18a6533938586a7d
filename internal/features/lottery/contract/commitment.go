package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Commit returns the commitment for a secret random value held by account:
// keccak256 over the 32-byte big-endian value followed by the 20-byte address.
func Commit(random *uint256.Int, account common.Address) common.Hash {
	value := random.Bytes32()
	return crypto.Keccak256Hash(value[:], account.Bytes())
}

// Matches reports whether random, held by account, opens commitment.
func Matches(commitment common.Hash, random *uint256.Int, account common.Address) bool {
	if random == nil {
		return false
	}
	return Commit(random, account) == commitment
}
