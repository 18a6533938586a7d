package contract

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	now      uint64 = 1_700_000_000
	interval uint64 = 60
)

var (
	owner    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	charity  = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	stranger = common.HexToAddress("0x00000000000000000000000000000000000000ff")
	players  = []common.Address{
		common.HexToAddress("0x0000000000000000000000000000000000000101"),
		common.HexToAddress("0x0000000000000000000000000000000000000102"),
		common.HexToAddress("0x0000000000000000000000000000000000000103"),
		common.HexToAddress("0x0000000000000000000000000000000000000104"),
	}
	secrets = []*uint256.Int{
		uint256.MustFromDecimal("81129638414606681695789005144064"),
		uint256.MustFromDecimal("4294967297"),
		uint256.MustFromHex("0xdeadbeefcafebabe0011223344556677"),
		uint256.NewInt(7),
	}
	charitySecret = uint256.MustFromHex("0x1234567890abcdef1234567890abcdef")
	deposits      = []uint64{10000, 15000, 20000, 25000}
)

func validConfig() Config {
	start := now + interval
	return Config{
		Charity:       charity,
		CharitySplit:  49,
		WinnerSplit:   49,
		OwnerSplit:    2,
		ValuePerEntry: uint256.NewInt(1000),
		StartTime:     start,
		RevealTime:    start + interval,
		EndTime:       start + 2*interval,
	}
}

func at(caller common.Address, t uint64) Call {
	return Call{Caller: caller, Time: t}
}

func started(t *testing.T, policy Policy) *Lottery {
	t.Helper()
	l := New("round-1", owner, policy)
	require.NoError(t, l.Start(at(owner, now), validConfig()))
	return l
}

// funded returns a lottery in its commit window with the charity seeded and
// every player committed and funded.
func funded(t *testing.T, policy Policy) *Lottery {
	t.Helper()
	l := started(t, policy)
	cfg := l.Config
	require.NoError(t, l.Seed(at(charity, cfg.StartTime), Commit(charitySecret, charity)))
	for i, p := range players {
		require.NoError(t, l.Participate(at(p, cfg.StartTime+1), Commit(secrets[i], p)))
	}
	for i, p := range players {
		require.NoError(t, l.Deposit(at(p, cfg.StartTime+2), uint256.NewInt(deposits[i])))
	}
	return l
}

func revealFirstThree(t *testing.T, l *Lottery) {
	t.Helper()
	for i, p := range players[:3] {
		require.NoError(t, l.Reveal(at(p, l.Config.RevealTime), secrets[i]))
	}
}

func requirePotBalanced(t *testing.T, l *Lottery) {
	t.Helper()
	sum := new(uint256.Int)
	for _, b := range l.Balances {
		sum.Add(sum, b)
	}
	require.True(t, sum.Eq(l.Pot), "pot %s != sum of balances %s", l.Pot, sum)
}

func TestNewLotteryDefaults(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())

	assert.Equal(t, PhaseCreated, l.Phase)
	assert.True(t, l.Cancelled())
	assert.Equal(t, common.Address{}, l.Winner)
	assert.Zero(t, l.TotalEntries)
	assert.Zero(t, l.TotalParticipants)
	assert.Zero(t, l.TotalRevealers)
	assert.True(t, l.TotalRevealed.IsZero())
}

func TestStart(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())
	cfg := validConfig()

	require.NoError(t, l.Start(at(owner, now), cfg))
	assert.Equal(t, PhaseLive, l.Phase)
	assert.False(t, l.Cancelled())
	assert.Equal(t, cfg.Charity, l.Config.Charity)
	assert.Equal(t, uint64(49), l.Config.CharitySplit)
	assert.Equal(t, uint64(49), l.Config.WinnerSplit)
	assert.Equal(t, uint64(2), l.Config.OwnerSplit)
	assert.Equal(t, uint64(1000), l.Config.ValuePerEntry.Uint64())
	assert.Equal(t, cfg.StartTime, l.Config.StartTime)
	assert.Equal(t, cfg.RevealTime, l.Config.RevealTime)
	assert.Equal(t, cfg.EndTime, l.Config.EndTime)

	assert.ErrorIs(t, l.Start(at(owner, now), cfg), ErrAlreadyStarted)
	assert.ErrorIs(t, l.Kickoff(at(owner, now), cfg), ErrAlreadyStarted)
}

func TestStartCopiesValuePerEntry(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())
	cfg := validConfig()
	require.NoError(t, l.Start(at(owner, now), cfg))

	cfg.ValuePerEntry.SetUint64(1)
	assert.Equal(t, uint64(1000), l.Config.ValuePerEntry.Uint64())
}

func TestStartRejectsNonOwner(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())

	err := l.Start(at(charity, now), validConfig())
	require.ErrorIs(t, err, ErrNotOwner)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindAuthorization, kind)
	assert.Equal(t, PhaseCreated, l.Phase)
}

func TestStartRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero charity", func(c *Config) { c.Charity = common.Address{} }, ErrZeroCharity},
		{"zero charity split", func(c *Config) { c.CharitySplit = 0 }, ErrZeroSplit},
		{"zero winner split", func(c *Config) { c.WinnerSplit = 0 }, ErrZeroSplit},
		{"zero owner split", func(c *Config) { c.OwnerSplit = 0 }, ErrZeroSplit},
		{"zero value per entry", func(c *Config) { c.ValuePerEntry = new(uint256.Int) }, ErrZeroValuePerEntry},
		{"missing value per entry", func(c *Config) { c.ValuePerEntry = nil }, ErrZeroValuePerEntry},
		{"zero start", func(c *Config) { c.StartTime = 0 }, ErrStartNotInFuture},
		{"zero reveal", func(c *Config) { c.RevealTime = 0 }, ErrRevealNotAfterStart},
		{"zero end", func(c *Config) { c.EndTime = 0 }, ErrEndNotAfterReveal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("round-1", owner, DefaultPolicy())
			cfg := validConfig()
			tt.mutate(&cfg)

			err := l.Start(at(owner, now), cfg)
			require.ErrorIs(t, err, tt.want)
			kind, _ := KindOf(err)
			assert.Equal(t, KindValidation, kind)

			assert.True(t, l.Cancelled())
			assert.Equal(t, PhaseCreated, l.Phase)
			assert.Equal(t, Config{}, l.Config)
			assert.Zero(t, l.TotalEntries)
			assert.Zero(t, l.TotalParticipants)
			assert.Zero(t, l.TotalRevealers)
		})
	}
}

func TestStartRejectsInvalidDates(t *testing.T) {
	future := now + interval
	tests := []struct {
		name               string
		start, reveal, end uint64
	}{
		{"start in past", now - 1, future + interval, future + 2*interval},
		{"start now", now, future + interval, future + 2*interval},
		{"reveal before start", future + interval, future, future + 2*interval},
		{"reveal equals start", future, future, future + interval},
		{"end before reveal", future, future + 2*interval, future + interval},
		{"end equals reveal", future, future + interval, future + interval},
		{"all equal", future, future, future},
		{"reversed", future + 2*interval, future + interval, future},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("round-1", owner, DefaultPolicy())
			cfg := validConfig()
			cfg.StartTime, cfg.RevealTime, cfg.EndTime = tt.start, tt.reveal, tt.end

			require.Error(t, l.Start(at(owner, now), cfg))
			assert.Equal(t, PhaseCreated, l.Phase)
		})
	}
}

func TestStartRejectsInvalidPolicy(t *testing.T) {
	l := New("round-1", owner, Policy{EndAuthority: "nobody", NoRevealers: NoRevealersReject})
	assert.ErrorIs(t, l.Start(at(owner, now), validConfig()), ErrInvalidPolicy)
}

func TestSeedWindow(t *testing.T) {
	l := started(t, DefaultPolicy())
	hash := Commit(charitySecret, charity)

	assert.ErrorIs(t, l.Seed(at(charity, l.Config.StartTime-1), hash), ErrBeforeStart)
	assert.ErrorIs(t, l.Seed(at(charity, l.Config.RevealTime), hash), ErrCommitClosed)
	assert.False(t, l.Seeded())

	require.NoError(t, l.Seed(at(charity, l.Config.StartTime), hash))
	assert.Equal(t, hash, l.CharityCommitment)
	assert.ErrorIs(t, l.Seed(at(charity, l.Config.StartTime+1), hash), ErrAlreadySeeded)
}

func TestSeedRejections(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())
	assert.ErrorIs(t, l.Seed(at(charity, now), Commit(charitySecret, charity)), ErrNotStarted)

	l = started(t, DefaultPolicy())
	start := l.Config.StartTime
	assert.ErrorIs(t, l.Seed(at(owner, start), Commit(charitySecret, owner)), ErrNotCharity)
	assert.ErrorIs(t, l.Seed(at(stranger, start), Commit(charitySecret, stranger)), ErrNotCharity)
	assert.ErrorIs(t, l.Seed(at(charity, start), common.Hash{}), ErrZeroCommitment)

	require.NoError(t, l.Cancel(at(owner, start)))
	assert.ErrorIs(t, l.Seed(at(charity, start), Commit(charitySecret, charity)), ErrCancelled)
}

func TestParticipate(t *testing.T) {
	l := started(t, DefaultPolicy())
	cfg := l.Config
	p := players[0]
	hash := Commit(secrets[0], p)

	assert.ErrorIs(t, l.Participate(at(p, cfg.StartTime), hash), ErrCharityNotSeeded)
	require.NoError(t, l.Seed(at(charity, cfg.StartTime), Commit(charitySecret, charity)))

	assert.ErrorIs(t, l.Participate(at(p, cfg.StartTime-1), hash), ErrBeforeStart)
	assert.ErrorIs(t, l.Participate(at(p, cfg.RevealTime), hash), ErrCommitClosed)
	assert.ErrorIs(t, l.Participate(at(p, cfg.StartTime), common.Hash{}), ErrZeroCommitment)

	require.NoError(t, l.Participate(at(p, cfg.StartTime), hash))
	assert.Equal(t, uint64(1), l.TotalParticipants)
	assert.Equal(t, hash, l.Commitments[p])

	assert.ErrorIs(t, l.Participate(at(p, cfg.StartTime+1), hash), ErrAlreadyCommitted)
	assert.Equal(t, uint64(1), l.TotalParticipants)
}

func TestCommitRevealRoundTrip(t *testing.T) {
	l := funded(t, DefaultPolicy())
	p := players[1]

	assert.ErrorIs(t, l.Reveal(at(p, l.Config.RevealTime-1), secrets[1]), ErrBeforeReveal)
	require.NoError(t, l.Reveal(at(p, l.Config.RevealTime), secrets[1]))
	assert.True(t, l.HasRevealed(p))
	assert.Equal(t, uint64(1), l.TotalRevealers)
	assert.Equal(t, []common.Address{p}, l.Revealers)
	assert.True(t, l.TotalRevealed.Eq(secrets[1]))

	err := l.Reveal(at(p, l.Config.RevealTime+1), secrets[1])
	require.ErrorIs(t, err, ErrAlreadyRevealed)
	kind, _ := KindOf(err)
	assert.Equal(t, KindState, kind)
	assert.Equal(t, uint64(1), l.TotalRevealers)
}

func TestRevealRejectsMismatchAndStrangers(t *testing.T) {
	l := funded(t, DefaultPolicy())
	cfg := l.Config

	for _, ts := range []uint64{cfg.StartTime, cfg.RevealTime, cfg.EndTime - 1, cfg.EndTime + interval} {
		assert.Error(t, l.Reveal(at(players[0], ts), secrets[1]))
		assert.Error(t, l.Reveal(at(stranger, ts), secrets[0]))
	}
	assert.ErrorIs(t, l.Reveal(at(players[0], cfg.RevealTime), secrets[1]), ErrCommitmentMismatch)
	assert.ErrorIs(t, l.Reveal(at(stranger, cfg.RevealTime), secrets[0]), ErrNotParticipant)
	assert.ErrorIs(t, l.Reveal(at(players[0], cfg.RevealTime), nil), ErrMissingRandom)
	assert.ErrorIs(t, l.Reveal(at(players[0], cfg.EndTime), secrets[0]), ErrRevealClosed)

	// a value committed by another account does not open this account's commitment
	assert.ErrorIs(t, l.Reveal(at(players[1], cfg.RevealTime), secrets[0]), ErrCommitmentMismatch)
	assert.Zero(t, l.TotalRevealers)
	assert.Empty(t, l.Revealers)
}

func TestDepositCountsEntries(t *testing.T) {
	l := started(t, DefaultPolicy())
	p := players[0]

	require.NoError(t, l.Deposit(at(p, now+1), uint256.NewInt(2500)))
	require.NoError(t, l.Deposit(at(p, now+2), uint256.NewInt(999)))
	assert.Equal(t, uint64(2), l.TotalEntries)
	assert.Equal(t, uint64(3499), l.Balance(p).Uint64())
	assert.Equal(t, uint64(3499), l.Pot.Uint64())

	assert.ErrorIs(t, l.Deposit(at(p, now), new(uint256.Int)), ErrZeroAmount)
	assert.ErrorIs(t, l.Deposit(at(p, now), nil), ErrZeroAmount)
	assert.ErrorIs(t, l.Deposit(at(p, l.Config.EndTime), uint256.NewInt(1000)), ErrDepositsClosed)
}

func TestDepositRejectsOverflow(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())
	cfg := validConfig()
	cfg.ValuePerEntry = new(uint256.Int).Lsh(uint256.NewInt(1), 200)
	require.NoError(t, l.Start(at(owner, now), cfg))
	all := new(uint256.Int).SetAllOne()

	require.NoError(t, l.Deposit(at(players[0], now), all))
	assert.Equal(t, uint64(1)<<56-1, l.TotalEntries)
	assert.ErrorIs(t, l.Deposit(at(players[1], now), uint256.NewInt(1)), ErrAmountOverflow)
	assert.True(t, l.Balance(players[1]).IsZero())
	requirePotBalanced(t, l)
}

func TestDepositRejectsEntryOverflow(t *testing.T) {
	l := started(t, DefaultPolicy())

	err := l.Deposit(at(players[0], now), new(uint256.Int).SetAllOne())
	assert.ErrorIs(t, err, ErrAmountOverflow)
	assert.True(t, l.Pot.IsZero())
	assert.Zero(t, l.TotalEntries)
}

func TestDepositPaymentCreditsOnce(t *testing.T) {
	l := started(t, DefaultPolicy())
	p := players[0]

	require.NoError(t, l.DepositPayment(at(p, now), "pay-1", uint256.NewInt(2000)))
	assert.ErrorIs(t, l.DepositPayment(at(p, now+1), "pay-1", uint256.NewInt(2000)), ErrDuplicatePayment)
	assert.ErrorIs(t, l.DepositPayment(at(p, now+1), "", uint256.NewInt(2000)), ErrMissingPaymentID)
	assert.Equal(t, uint64(2000), l.Balance(p).Uint64())
	assert.Equal(t, uint64(2), l.TotalEntries)

	// a rejected deposit does not burn its payment id
	assert.ErrorIs(t, l.DepositPayment(at(p, now+1), "pay-2", new(uint256.Int)), ErrZeroAmount)
	assert.False(t, l.Payments["pay-2"])
	require.NoError(t, l.DepositPayment(at(p, now+2), "pay-2", uint256.NewInt(500)))
	assert.Equal(t, uint64(2500), l.Pot.Uint64())
	requirePotBalanced(t, l)

	data, err := json.Marshal(l)
	require.NoError(t, err)
	var restored Lottery
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.ErrorIs(t, restored.DepositPayment(at(p, now+3), "pay-2", uint256.NewInt(500)), ErrDuplicatePayment)
}

func TestDepositRejectedBeforeStartAndAfterCancel(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())
	assert.ErrorIs(t, l.Deposit(at(players[0], now), uint256.NewInt(1000)), ErrNotStarted)

	l = started(t, DefaultPolicy())
	require.NoError(t, l.Cancel(at(charity, now)))
	assert.ErrorIs(t, l.Deposit(at(players[0], now), uint256.NewInt(1000)), ErrCancelled)
}

func TestCancelBeforeStart(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())
	assert.ErrorIs(t, l.Cancel(at(owner, now)), ErrNotStarted)
}

func TestCancelByOwnerAndCharity(t *testing.T) {
	for _, caller := range []common.Address{owner, charity} {
		l := started(t, DefaultPolicy())
		require.NoError(t, l.Cancel(at(caller, now)))
		assert.True(t, l.Cancelled())
		assert.Equal(t, PhaseCancelled, l.Phase)
		assert.ErrorIs(t, l.Cancel(at(caller, now)), ErrAlreadyCancelled)

		cfg := l.Config
		assert.ErrorIs(t, l.Seed(at(charity, cfg.StartTime), Commit(charitySecret, charity)), ErrCancelled)
		assert.ErrorIs(t, l.Participate(at(players[0], cfg.StartTime), Commit(secrets[0], players[0])), ErrCancelled)
		assert.ErrorIs(t, l.Reveal(at(players[0], cfg.RevealTime), secrets[0]), ErrCancelled)
		_, err := l.End(at(charity, cfg.EndTime), charitySecret)
		assert.ErrorIs(t, err, ErrCancelled)
	}
}

func TestCancelRejectsOthers(t *testing.T) {
	l := funded(t, DefaultPolicy())
	assert.ErrorIs(t, l.Cancel(at(players[0], now)), ErrNotOwnerOrCharity)
	assert.ErrorIs(t, l.Cancel(at(stranger, now)), ErrNotOwnerOrCharity)
	assert.Equal(t, PhaseLive, l.Phase)
}

func TestCancelAfterSeed(t *testing.T) {
	l := started(t, DefaultPolicy())
	require.NoError(t, l.Seed(at(charity, l.Config.StartTime), Commit(charitySecret, charity)))
	require.NoError(t, l.Cancel(at(owner, l.Config.StartTime)))
	assert.True(t, l.Cancelled())
}

func TestRefundAfterFunding(t *testing.T) {
	l := funded(t, DefaultPolicy())
	require.NoError(t, l.Cancel(at(owner, l.Config.StartTime+3)))

	for i, p := range players {
		assert.Equal(t, deposits[i], l.Balance(p).Uint64(), "refund balance %d", i)
	}
	assert.Equal(t, uint64(70), l.TotalEntries)
	requirePotBalanced(t, l)
}

func TestRefundAfterRevelation(t *testing.T) {
	l := funded(t, DefaultPolicy())
	revealFirstThree(t, l)
	require.NoError(t, l.Cancel(at(owner, l.Config.RevealTime+1)))
	assert.True(t, l.Cancelled())

	for i, p := range players {
		assert.Equal(t, deposits[i], l.Balance(p).Uint64(), "refund balance %d", i)
	}
	requirePotBalanced(t, l)
}

func TestWithdrawAfterCancel(t *testing.T) {
	l := funded(t, DefaultPolicy())
	_, err := l.Withdraw(at(players[0], l.Config.StartTime+3))
	assert.ErrorIs(t, err, ErrNotTerminal)

	require.NoError(t, l.Cancel(at(charity, l.Config.StartTime+3)))
	amount, err := l.Withdraw(at(players[0], l.Config.StartTime+4))
	require.NoError(t, err)
	assert.Equal(t, deposits[0], amount.Uint64())
	assert.True(t, l.Balance(players[0]).IsZero())
	requirePotBalanced(t, l)

	_, err = l.Withdraw(at(players[0], l.Config.StartTime+5))
	assert.ErrorIs(t, err, ErrNothingToWithdraw)
}

func TestEndHappyPath(t *testing.T) {
	l := funded(t, DefaultPolicy())
	revealFirstThree(t, l)

	_, err := l.End(at(charity, l.Config.EndTime-1), charitySecret)
	require.ErrorIs(t, err, ErrBeforeEnd)

	winner, err := l.End(at(charity, l.Config.EndTime), charitySecret)
	require.NoError(t, err)
	assert.Contains(t, players[:3], winner)
	assert.NotEqual(t, players[3], winner)
	assert.Equal(t, winner, l.Winner)
	assert.Equal(t, PhaseEnded, l.Phase)
	assert.False(t, l.Cancelled())

	assert.ErrorIs(t, l.Cancel(at(owner, l.Config.EndTime+1)), ErrAlreadyEnded)
	_, err = l.End(at(charity, l.Config.EndTime+1), charitySecret)
	assert.ErrorIs(t, err, ErrAlreadyEnded)
}

func TestEndSplitsPot(t *testing.T) {
	l := funded(t, DefaultPolicy())
	revealFirstThree(t, l)

	winner, err := l.End(at(charity, l.Config.EndTime), charitySecret)
	require.NoError(t, err)

	// pot 70000: 49% charity, 49% winner, 2% owner
	assert.Equal(t, uint64(34300), l.Balance(charity).Uint64())
	assert.Equal(t, uint64(34300), l.Balance(winner).Uint64())
	assert.Equal(t, uint64(1400), l.Balance(owner).Uint64())
	for _, p := range players {
		if p != winner {
			assert.True(t, l.Balance(p).IsZero())
		}
	}
	requirePotBalanced(t, l)

	amount, err := l.Withdraw(at(winner, l.Config.EndTime+1))
	require.NoError(t, err)
	assert.Equal(t, uint64(34300), amount.Uint64())
	requirePotBalanced(t, l)
}

func TestEndSelectsFromSeed(t *testing.T) {
	l := funded(t, DefaultPolicy())
	revealFirstThree(t, l)

	revealed := new(uint256.Int)
	for _, s := range secrets[:3] {
		revealed.Xor(revealed, s)
	}
	seed := new(uint256.Int).Xor(charitySecret, revealed)
	index := new(uint256.Int).Mod(seed, uint256.NewInt(3)).Uint64()

	winner, err := l.End(at(charity, l.Config.EndTime), charitySecret)
	require.NoError(t, err)
	assert.Equal(t, players[index], winner)
}

func TestEndRejections(t *testing.T) {
	l := New("round-1", owner, DefaultPolicy())
	_, err := l.End(at(charity, now), charitySecret)
	assert.ErrorIs(t, err, ErrNotStarted)

	l = funded(t, DefaultPolicy())
	revealFirstThree(t, l)
	end := l.Config.EndTime

	_, err = l.End(at(owner, end), charitySecret)
	assert.ErrorIs(t, err, ErrNotCharity)
	_, err = l.End(at(players[0], end), charitySecret)
	assert.ErrorIs(t, err, ErrNotCharity)
	_, err = l.End(at(charity, end), secrets[0])
	assert.ErrorIs(t, err, ErrCommitmentMismatch)
	_, err = l.End(at(charity, end), nil)
	assert.ErrorIs(t, err, ErrMissingRandom)

	assert.Equal(t, PhaseLive, l.Phase)
	assert.Equal(t, common.Address{}, l.Winner)
}

func TestEndByAnyone(t *testing.T) {
	l := funded(t, Policy{EndAuthority: EndByAnyone, NoRevealers: NoRevealersReject})
	revealFirstThree(t, l)

	winner, err := l.End(at(stranger, l.Config.EndTime), charitySecret)
	require.NoError(t, err)
	assert.Contains(t, players[:3], winner)
}

func TestEndWithoutRevealersRejects(t *testing.T) {
	l := funded(t, DefaultPolicy())

	_, err := l.End(at(charity, l.Config.EndTime), charitySecret)
	require.ErrorIs(t, err, ErrNoRevealers)
	assert.Equal(t, PhaseLive, l.Phase)

	require.NoError(t, l.Cancel(at(owner, l.Config.EndTime)))
	for i, p := range players {
		assert.Equal(t, deposits[i], l.Balance(p).Uint64())
	}
}

func TestEndWithoutRevealersRefunds(t *testing.T) {
	l := funded(t, Policy{EndAuthority: EndByCharity, NoRevealers: NoRevealersRefund})

	winner, err := l.End(at(charity, l.Config.EndTime), charitySecret)
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, winner)
	assert.Equal(t, PhaseEnded, l.Phase)
	for i, p := range players {
		amount, err := l.Withdraw(at(p, l.Config.EndTime+1))
		require.NoError(t, err)
		assert.Equal(t, deposits[i], amount.Uint64())
	}
	assert.True(t, l.Pot.IsZero())
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(ErrAlreadyCommitted)
	assert.True(t, ok)
	assert.Equal(t, KindState, kind)

	_, ok = KindOf(assert.AnError)
	assert.False(t, ok)
}

func TestSnapshotSurvivesJSON(t *testing.T) {
	l := funded(t, DefaultPolicy())
	revealFirstThree(t, l)

	data, err := json.Marshal(l)
	require.NoError(t, err)

	var restored Lottery
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, l.Revealers, restored.Revealers)
	assert.True(t, l.Pot.Eq(restored.Pot))
	assert.True(t, l.TotalRevealed.Eq(restored.TotalRevealed))
	assert.Equal(t, l.Commitments, restored.Commitments)
	requirePotBalanced(t, &restored)

	// the restored copy keeps playing by the same rules
	winner, err := restored.End(at(charity, restored.Config.EndTime), charitySecret)
	require.NoError(t, err)
	assert.Equal(t, SelectWinner(CombineSeed(charitySecret, l.TotalRevealed), l.Revealers), winner)
}

func TestSnapshotFillsMissingFields(t *testing.T) {
	var l Lottery
	require.NoError(t, json.Unmarshal([]byte(`{"id":"round-1","phase":"created"}`), &l))

	assert.NotNil(t, l.Commitments)
	assert.NotNil(t, l.Reveals)
	assert.NotNil(t, l.Balances)
	assert.NotNil(t, l.Payments)
	assert.True(t, l.Pot.IsZero())
	assert.True(t, l.Balance(stranger).IsZero())
}
