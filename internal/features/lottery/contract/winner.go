package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CombineSeed folds the charity's random value into the XOR of all
// revealed values. XOR keeps the seed independent of reveal order, and a
// single honest contributor is enough to make it unpredictable.
func CombineSeed(charityRandom, revealed *uint256.Int) *uint256.Int {
	return new(uint256.Int).Xor(charityRandom, revealed)
}

// SelectWinner picks revealers[seed mod len(revealers)]. It returns the
// zero address for an empty list.
func SelectWinner(seed *uint256.Int, revealers []common.Address) common.Address {
	if len(revealers) == 0 {
		return common.Address{}
	}
	n := uint256.NewInt(uint64(len(revealers)))
	index := new(uint256.Int).Mod(seed, n)
	return revealers[index.Uint64()]
}

// Shares is the division of a pot between the three beneficiaries.
type Shares struct {
	Charity *uint256.Int
	Winner  *uint256.Int
	Owner   *uint256.Int
}

// SplitPot divides pot in proportion to the configured splits. Charity and
// winner shares round down; the owner receives the remainder so the three
// shares always add up to pot.
func SplitPot(pot *uint256.Int, cfg Config) Shares {
	total := new(uint256.Int).SetUint64(cfg.CharitySplit)
	total.Add(total, uint256.NewInt(cfg.WinnerSplit))
	total.Add(total, uint256.NewInt(cfg.OwnerSplit))
	if total.IsZero() {
		return Shares{Charity: new(uint256.Int), Winner: new(uint256.Int), Owner: new(uint256.Int).Set(pot)}
	}

	charity, _ := new(uint256.Int).MulDivOverflow(pot, uint256.NewInt(cfg.CharitySplit), total)
	winner, _ := new(uint256.Int).MulDivOverflow(pot, uint256.NewInt(cfg.WinnerSplit), total)
	owner := new(uint256.Int).Sub(pot, charity)
	owner.Sub(owner, winner)
	return Shares{Charity: charity, Winner: winner, Owner: owner}
}
