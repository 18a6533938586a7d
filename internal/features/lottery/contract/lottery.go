// Package contract implements the commit-reveal charity lottery as a pure
// state machine. Every operation receives the caller and the current
// timestamp explicitly, validates everything up front and only then mutates
// the lottery, so a rejected call leaves no trace.
package contract

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Phase is the lifecycle position of a lottery.
type Phase string

const (
	PhaseCreated   Phase = "created"   // deployed, not configured
	PhaseLive      Phase = "live"      // configured and accepting calls
	PhaseCancelled Phase = "cancelled" // terminal, deposits refundable
	PhaseEnded     Phase = "ended"     // terminal, winner resolved
)

// Terminal reports whether no further lottery transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseCancelled || p == PhaseEnded
}

// EndAuthority decides who may resolve the winner once end time has passed.
type EndAuthority string

const (
	EndByCharity EndAuthority = "charity"
	EndByAnyone  EndAuthority = "anyone"
)

// NoRevealersPolicy decides what End does when nobody revealed.
type NoRevealersPolicy string

const (
	// NoRevealersReject rejects End; the round can still be cancelled.
	NoRevealersReject NoRevealersPolicy = "reject"
	// NoRevealersRefund ends the round without a winner and keeps every
	// deposit withdrawable by its owner.
	NoRevealersRefund NoRevealersPolicy = "refund"
)

// Policy holds the deployment choices that are not part of the round
// configuration.
type Policy struct {
	EndAuthority EndAuthority      `json:"end_authority"`
	NoRevealers  NoRevealersPolicy `json:"no_revealers"`
}

// DefaultPolicy lets only the charity end the round and rejects End when
// nobody revealed.
func DefaultPolicy() Policy {
	return Policy{EndAuthority: EndByCharity, NoRevealers: NoRevealersReject}
}

// Validate checks that both policy fields hold known values.
func (p Policy) Validate() error {
	switch p.EndAuthority {
	case EndByCharity, EndByAnyone:
	default:
		return ErrInvalidPolicy
	}
	switch p.NoRevealers {
	case NoRevealersReject, NoRevealersRefund:
	default:
		return ErrInvalidPolicy
	}
	return nil
}

// Config is the round configuration fixed by Start.
type Config struct {
	Charity       common.Address `json:"charity"`
	CharitySplit  uint64         `json:"charity_split"`
	WinnerSplit   uint64         `json:"winner_split"`
	OwnerSplit    uint64         `json:"owner_split"`
	ValuePerEntry *uint256.Int   `json:"value_per_entry"`
	StartTime     uint64         `json:"start_time"`
	RevealTime    uint64         `json:"reveal_time"`
	EndTime       uint64         `json:"end_time"`
}

// Call carries the identity and timestamp an operation executes under.
// Time is the externally supplied block or transaction timestamp in seconds.
type Call struct {
	Caller common.Address
	Time   uint64
}

// Lottery is the persistent state of one lottery instance.
type Lottery struct {
	ID     string         `json:"id"`
	Owner  common.Address `json:"owner"`
	Phase  Phase          `json:"phase"`
	Policy Policy         `json:"policy"`
	Config Config         `json:"config"`

	CharityCommitment common.Hash                     `json:"charity_commitment"`
	Commitments       map[common.Address]common.Hash  `json:"commitments"`
	Reveals           map[common.Address]*uint256.Int `json:"reveals"`

	// Revealers lists successful reveals in the order they happened.
	Revealers []common.Address `json:"revealers"`

	// Balances is the funding ledger. Pot always equals the sum of Balances.
	Balances map[common.Address]*uint256.Int `json:"balances"`
	Pot      *uint256.Int                    `json:"pot"`

	// Payments holds the ids of external payments already credited.
	Payments map[string]bool `json:"payments,omitempty"`

	TotalEntries      uint64       `json:"total_entries"`
	TotalParticipants uint64       `json:"total_participants"`
	TotalRevealers    uint64       `json:"total_revealers"`
	TotalRevealed     *uint256.Int `json:"total_revealed"`

	Winner common.Address `json:"winner"`
}

// New returns an unconfigured lottery owned by owner.
func New(id string, owner common.Address, policy Policy) *Lottery {
	return &Lottery{
		ID:            id,
		Owner:         owner,
		Phase:         PhaseCreated,
		Policy:        policy,
		Commitments:   make(map[common.Address]common.Hash),
		Reveals:       make(map[common.Address]*uint256.Int),
		Balances:      make(map[common.Address]*uint256.Int),
		Payments:      make(map[string]bool),
		Pot:           new(uint256.Int),
		TotalRevealed: new(uint256.Int),
	}
}

// Cancelled reports whether the lottery refuses participation: before the
// first successful Start and after Cancel.
func (l *Lottery) Cancelled() bool {
	return l.Phase == PhaseCreated || l.Phase == PhaseCancelled
}

// Seeded reports whether the charity has committed its random value.
func (l *Lottery) Seeded() bool {
	return l.CharityCommitment != (common.Hash{})
}

// Balance returns a copy of account's ledger balance.
func (l *Lottery) Balance(account common.Address) *uint256.Int {
	if b, ok := l.Balances[account]; ok && b != nil {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int)
}

// HasRevealed reports whether account revealed successfully.
func (l *Lottery) HasRevealed(account common.Address) bool {
	_, ok := l.Reveals[account]
	return ok
}

// normalize fills maps and counters left nil by decoding older snapshots.
func (l *Lottery) normalize() {
	if l.Commitments == nil {
		l.Commitments = make(map[common.Address]common.Hash)
	}
	if l.Reveals == nil {
		l.Reveals = make(map[common.Address]*uint256.Int)
	}
	if l.Balances == nil {
		l.Balances = make(map[common.Address]*uint256.Int)
	}
	if l.Payments == nil {
		l.Payments = make(map[string]bool)
	}
	if l.Pot == nil {
		l.Pot = new(uint256.Int)
	}
	if l.TotalRevealed == nil {
		l.TotalRevealed = new(uint256.Int)
	}
}

// UnmarshalJSON decodes a stored snapshot and fills anything it left empty.
func (l *Lottery) UnmarshalJSON(data []byte) error {
	type snapshot Lottery
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = Lottery(s)
	l.normalize()
	return nil
}
