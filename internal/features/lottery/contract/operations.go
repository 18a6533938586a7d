package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Start configures the lottery and opens it. Only the owner may call it,
// and only once.
func (l *Lottery) Start(call Call, cfg Config) error {
	l.normalize()
	if call.Caller != l.Owner {
		return ErrNotOwner
	}
	if l.Phase != PhaseCreated {
		return ErrAlreadyStarted
	}
	if err := l.Policy.Validate(); err != nil {
		return err
	}
	if err := validateConfig(cfg, call.Time); err != nil {
		return err
	}

	cfg.ValuePerEntry = new(uint256.Int).Set(cfg.ValuePerEntry)
	l.Config = cfg
	l.Phase = PhaseLive
	l.TotalEntries = 0
	l.TotalParticipants = 0
	l.TotalRevealers = 0
	l.TotalRevealed = new(uint256.Int)
	return nil
}

// Kickoff is an alias of Start.
func (l *Lottery) Kickoff(call Call, cfg Config) error {
	return l.Start(call, cfg)
}

func validateConfig(cfg Config, now uint64) error {
	if cfg.Charity == (common.Address{}) {
		return ErrZeroCharity
	}
	if cfg.CharitySplit == 0 || cfg.WinnerSplit == 0 || cfg.OwnerSplit == 0 {
		return ErrZeroSplit
	}
	if cfg.ValuePerEntry == nil || cfg.ValuePerEntry.IsZero() {
		return ErrZeroValuePerEntry
	}
	if cfg.StartTime <= now {
		return ErrStartNotInFuture
	}
	if cfg.RevealTime <= cfg.StartTime {
		return ErrRevealNotAfterStart
	}
	if cfg.EndTime <= cfg.RevealTime {
		return ErrEndNotAfterReveal
	}
	return nil
}

// requireLive rejects calls on a lottery that is not accepting them.
func (l *Lottery) requireLive() error {
	switch l.Phase {
	case PhaseLive:
		return nil
	case PhaseCreated:
		return ErrNotStarted
	case PhaseCancelled:
		return ErrCancelled
	default:
		return ErrEnded
	}
}

func (l *Lottery) requireCommitWindow(now uint64) error {
	if now < l.Config.StartTime {
		return ErrBeforeStart
	}
	if now >= l.Config.RevealTime {
		return ErrCommitClosed
	}
	return nil
}

func (l *Lottery) requireRevealWindow(now uint64) error {
	if now < l.Config.RevealTime {
		return ErrBeforeReveal
	}
	if now >= l.Config.EndTime {
		return ErrRevealClosed
	}
	return nil
}

// Seed stores the charity's one-time commitment.
func (l *Lottery) Seed(call Call, hashedRandom common.Hash) error {
	l.normalize()
	if err := l.requireLive(); err != nil {
		return err
	}
	if call.Caller != l.Config.Charity {
		return ErrNotCharity
	}
	if err := l.requireCommitWindow(call.Time); err != nil {
		return err
	}
	if l.Seeded() {
		return ErrAlreadySeeded
	}
	if hashedRandom == (common.Hash{}) {
		return ErrZeroCommitment
	}

	l.CharityCommitment = hashedRandom
	return nil
}

// Participate records the caller's one-time commitment. Funding is separate,
// see Deposit.
func (l *Lottery) Participate(call Call, hashedRandom common.Hash) error {
	l.normalize()
	if err := l.requireLive(); err != nil {
		return err
	}
	if err := l.requireCommitWindow(call.Time); err != nil {
		return err
	}
	if !l.Seeded() {
		return ErrCharityNotSeeded
	}
	if _, ok := l.Commitments[call.Caller]; ok {
		return ErrAlreadyCommitted
	}
	if hashedRandom == (common.Hash{}) {
		return ErrZeroCommitment
	}

	l.Commitments[call.Caller] = hashedRandom
	l.TotalParticipants++
	return nil
}

// Reveal discloses the caller's random value. It must open the caller's
// commitment.
func (l *Lottery) Reveal(call Call, random *uint256.Int) error {
	l.normalize()
	if err := l.requireLive(); err != nil {
		return err
	}
	commitment, ok := l.Commitments[call.Caller]
	if !ok {
		return ErrNotParticipant
	}
	if err := l.requireRevealWindow(call.Time); err != nil {
		return err
	}
	if l.HasRevealed(call.Caller) {
		return ErrAlreadyRevealed
	}
	if random == nil {
		return ErrMissingRandom
	}
	if !Matches(commitment, random, call.Caller) {
		return ErrCommitmentMismatch
	}

	value := new(uint256.Int).Set(random)
	l.Reveals[call.Caller] = value
	l.Revealers = append(l.Revealers, call.Caller)
	l.TotalRevealers++
	l.TotalRevealed.Xor(l.TotalRevealed, value)
	return nil
}

// End resolves the winner from the charity's random value and every
// successful reveal, then splits the pot. It returns the winner, which is
// the zero address when the round ends without one.
func (l *Lottery) End(call Call, charityRandom *uint256.Int) (common.Address, error) {
	l.normalize()
	switch l.Phase {
	case PhaseCreated:
		return common.Address{}, ErrNotStarted
	case PhaseCancelled:
		return common.Address{}, ErrCancelled
	case PhaseEnded:
		return common.Address{}, ErrAlreadyEnded
	}
	if l.Policy.EndAuthority != EndByAnyone && call.Caller != l.Config.Charity {
		return common.Address{}, ErrNotCharity
	}
	if call.Time < l.Config.EndTime {
		return common.Address{}, ErrBeforeEnd
	}
	if !l.Seeded() {
		return common.Address{}, ErrCharityNotSeeded
	}
	if charityRandom == nil {
		return common.Address{}, ErrMissingRandom
	}
	if !Matches(l.CharityCommitment, charityRandom, l.Config.Charity) {
		return common.Address{}, ErrCommitmentMismatch
	}

	if len(l.Revealers) == 0 {
		if l.Policy.NoRevealers != NoRevealersRefund {
			return common.Address{}, ErrNoRevealers
		}
		l.Phase = PhaseEnded
		l.Winner = common.Address{}
		return l.Winner, nil
	}

	seed := CombineSeed(charityRandom, l.TotalRevealed)
	winner := SelectWinner(seed, l.Revealers)
	shares := SplitPot(l.Pot, l.Config)

	l.Balances = make(map[common.Address]*uint256.Int)
	l.credit(l.Config.Charity, shares.Charity)
	l.credit(winner, shares.Winner)
	l.credit(l.Owner, shares.Owner)
	l.Winner = winner
	l.Phase = PhaseEnded
	return winner, nil
}

// Cancel stops the round and makes every deposit refundable. Owner or
// charity may cancel until a winner has been resolved.
func (l *Lottery) Cancel(call Call) error {
	l.normalize()
	switch l.Phase {
	case PhaseCreated:
		return ErrNotStarted
	case PhaseCancelled:
		return ErrAlreadyCancelled
	case PhaseEnded:
		return ErrAlreadyEnded
	}
	if call.Caller != l.Owner && call.Caller != l.Config.Charity {
		return ErrNotOwnerOrCharity
	}

	l.Phase = PhaseCancelled
	return nil
}

// Deposit credits amount to the caller's ledger balance and adds one entry
// per full ValuePerEntry.
func (l *Lottery) Deposit(call Call, amount *uint256.Int) error {
	l.normalize()
	if err := l.requireLive(); err != nil {
		return err
	}
	if call.Time >= l.Config.EndTime {
		return ErrDepositsClosed
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	pot, overflow := new(uint256.Int).AddOverflow(l.Pot, amount)
	if overflow {
		return ErrAmountOverflow
	}
	entries := new(uint256.Int).Div(amount, l.Config.ValuePerEntry)
	if !entries.IsUint64() {
		return ErrAmountOverflow
	}
	total := l.TotalEntries + entries.Uint64()
	if total < l.TotalEntries {
		return ErrAmountOverflow
	}

	l.credit(call.Caller, amount)
	l.Pot = pot
	l.TotalEntries = total
	return nil
}

// DepositPayment is Deposit for an external payment identified by
// paymentID. Each payment is credited at most once per lottery.
func (l *Lottery) DepositPayment(call Call, paymentID string, amount *uint256.Int) error {
	l.normalize()
	if paymentID == "" {
		return ErrMissingPaymentID
	}
	if l.Payments[paymentID] {
		return ErrDuplicatePayment
	}
	if err := l.Deposit(call, amount); err != nil {
		return err
	}
	l.Payments[paymentID] = true
	return nil
}

// Withdraw releases the caller's whole balance once the lottery is
// cancelled or ended and returns the amount released.
func (l *Lottery) Withdraw(call Call) (*uint256.Int, error) {
	l.normalize()
	if !l.Phase.Terminal() {
		return nil, ErrNotTerminal
	}
	balance := l.Balance(call.Caller)
	if balance.IsZero() {
		return nil, ErrNothingToWithdraw
	}

	delete(l.Balances, call.Caller)
	l.Pot.Sub(l.Pot, balance)
	return balance, nil
}

// credit adds amount to account without touching Pot. Callers keep Pot
// equal to the sum of balances.
func (l *Lottery) credit(account common.Address, amount *uint256.Int) {
	if amount.IsZero() {
		return
	}
	current, ok := l.Balances[account]
	if !ok || current == nil {
		l.Balances[account] = new(uint256.Int).Set(amount)
		return
	}
	current.Add(current, amount)
}
