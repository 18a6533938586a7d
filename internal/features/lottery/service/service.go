package service

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/models"
	"charity-lottery-backend/internal/features/lottery/repository"
)

type lotteryService struct {
	repo      repository.LotteryRepository
	clock     Clock
	publisher EventPublisher
	policy    contract.Policy
	logger    zerolog.Logger
}

// NewLotteryService wires the service. policy fills whatever Create leaves
// unset. A nil clock means the system clock, a nil publisher drops events.
func NewLotteryService(
	repo repository.LotteryRepository,
	clock Clock,
	publisher EventPublisher,
	policy contract.Policy,
	logger zerolog.Logger,
) LotteryService {
	if clock == nil {
		clock = SystemClock{}
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &lotteryService{
		repo:      repo,
		clock:     clock,
		publisher: publisher,
		policy:    policy,
		logger:    logger,
	}
}

func (s *lotteryService) Create(ctx context.Context, owner common.Address, policy *contract.Policy) (*contract.Lottery, error) {
	if owner == (common.Address{}) {
		return nil, ErrNoOwner
	}
	p := s.policy
	if policy != nil {
		if policy.EndAuthority != "" {
			p.EndAuthority = policy.EndAuthority
		}
		if policy.NoRevealers != "" {
			p.NoRevealers = policy.NoRevealers
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lottery id: %w", err)
	}

	l := contract.New(id.String(), owner, p)
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create lottery: %w", err)
	}

	s.logger.Info().
		Str("lottery_id", l.ID).
		Str("owner", owner.Hex()).
		Str("end_authority", string(p.EndAuthority)).
		Str("no_revealers", string(p.NoRevealers)).
		Msg("Lottery created")
	s.publish(ctx, l, models.Event{Type: models.EventCreated, Account: owner.Hex(), Time: s.clock.Now()})
	return l, nil
}

func (s *lotteryService) Start(ctx context.Context, id string, caller common.Address, cfg contract.Config) (*contract.Lottery, error) {
	call := s.call(caller)
	l, err := s.apply(ctx, id, call, "start", func(l *contract.Lottery) error {
		return l.Start(call, cfg)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, l, models.Event{Type: models.EventStarted, Account: caller.Hex(), Time: call.Time})
	return l, nil
}

func (s *lotteryService) Seed(ctx context.Context, id string, caller common.Address, hashedRandom common.Hash) (*contract.Lottery, error) {
	call := s.call(caller)
	l, err := s.apply(ctx, id, call, "seed", func(l *contract.Lottery) error {
		return l.Seed(call, hashedRandom)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, l, models.Event{Type: models.EventSeeded, Account: caller.Hex(), Time: call.Time})
	return l, nil
}

func (s *lotteryService) Participate(ctx context.Context, id string, caller common.Address, hashedRandom common.Hash) (*contract.Lottery, error) {
	call := s.call(caller)
	l, err := s.apply(ctx, id, call, "participate", func(l *contract.Lottery) error {
		return l.Participate(call, hashedRandom)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, l, models.Event{Type: models.EventParticipated, Account: caller.Hex(), Time: call.Time})
	return l, nil
}

func (s *lotteryService) Reveal(ctx context.Context, id string, caller common.Address, random *uint256.Int) (*contract.Lottery, error) {
	call := s.call(caller)
	l, err := s.apply(ctx, id, call, "reveal", func(l *contract.Lottery) error {
		return l.Reveal(call, random)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, l, models.Event{Type: models.EventRevealed, Account: caller.Hex(), Time: call.Time})
	return l, nil
}

func (s *lotteryService) End(ctx context.Context, id string, caller common.Address, charityRandom *uint256.Int) (*contract.Lottery, error) {
	call := s.call(caller)
	l, err := s.apply(ctx, id, call, "end", func(l *contract.Lottery) error {
		_, err := l.End(call, charityRandom)
		return err
	})
	if err != nil {
		return nil, err
	}

	event := models.Event{Type: models.EventEnded, Account: caller.Hex(), Amount: l.Pot.Dec(), Time: call.Time}
	if l.Winner != (common.Address{}) {
		event.Winner = l.Winner.Hex()
	}
	s.logger.Info().
		Str("lottery_id", id).
		Str("winner", event.Winner).
		Str("pot", event.Amount).
		Uint64("revealers", l.TotalRevealers).
		Msg("Lottery ended")
	s.publish(ctx, l, event)
	return l, nil
}

func (s *lotteryService) Cancel(ctx context.Context, id string, caller common.Address) (*contract.Lottery, error) {
	call := s.call(caller)
	l, err := s.apply(ctx, id, call, "cancel", func(l *contract.Lottery) error {
		return l.Cancel(call)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, l, models.Event{Type: models.EventCancelled, Account: caller.Hex(), Amount: l.Pot.Dec(), Time: call.Time})
	return l, nil
}

func (s *lotteryService) Deposit(ctx context.Context, id, paymentID string, from common.Address, amount *uint256.Int) (*contract.Lottery, error) {
	call := s.call(from)
	l, err := s.apply(ctx, id, call, "deposit", func(l *contract.Lottery) error {
		return l.DepositPayment(call, paymentID, amount)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, l, models.Event{Type: models.EventDeposited, Account: from.Hex(), Amount: amount.Dec(), Payment: paymentID, Time: call.Time})
	return l, nil
}

func (s *lotteryService) Withdraw(ctx context.Context, id string, caller common.Address) (*uint256.Int, error) {
	call := s.call(caller)
	var amount *uint256.Int
	l, err := s.apply(ctx, id, call, "withdraw", func(l *contract.Lottery) error {
		var err error
		amount, err = l.Withdraw(call)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, l, models.Event{Type: models.EventPayout, Account: caller.Hex(), Amount: amount.Dec(), Time: call.Time})
	return amount, nil
}

func (s *lotteryService) Balance(ctx context.Context, id string, account common.Address) (*uint256.Int, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return l.Balance(account), nil
}

func (s *lotteryService) Get(ctx context.Context, id string) (*contract.Lottery, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery %s: %w", id, err)
	}
	return l, nil
}

func (s *lotteryService) List(ctx context.Context) ([]*contract.Lottery, error) {
	lotteries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lotteries: %w", err)
	}
	return lotteries, nil
}

func (s *lotteryService) call(caller common.Address) contract.Call {
	return contract.Call{Caller: caller, Time: s.clock.Now()}
}

// apply runs op on the stored lottery inside one repository update.
// Rejections are returned as is so callers can inspect their kind.
func (s *lotteryService) apply(ctx context.Context, id string, call contract.Call, op string, fn repository.UpdateFunc) (*contract.Lottery, error) {
	l, err := s.repo.Update(ctx, id, fn)
	if err != nil {
		event := s.logger.Warn()
		if kind, ok := contract.KindOf(err); ok {
			event = s.logger.Info().Str("kind", string(kind))
		}
		event.
			Str("lottery_id", id).
			Str("op", op).
			Str("caller", call.Caller.Hex()).
			Uint64("time", call.Time).
			Err(err).
			Msg("Lottery call rejected")
		return nil, err
	}

	s.logger.Debug().
		Str("lottery_id", id).
		Str("op", op).
		Str("caller", call.Caller.Hex()).
		Uint64("time", call.Time).
		Str("phase", string(l.Phase)).
		Msg("Lottery updated")
	return l, nil
}

// publish stamps the event with the lottery's id and phase. The transition
// is already committed, so delivery failures are only logged.
func (s *lotteryService) publish(ctx context.Context, l *contract.Lottery, event models.Event) {
	event.LotteryID = l.ID
	event.Phase = string(l.Phase)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error().
			Err(err).
			Str("lottery_id", l.ID).
			Str("event", string(event.Type)).
			Msg("Failed to publish lottery event")
	}
}
