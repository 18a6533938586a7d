package service

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/models"
)

// LotteryService runs lottery operations against stored state. Every
// mutating call is stamped with the service clock and applied atomically.
type LotteryService interface {
	Create(ctx context.Context, owner common.Address, policy *contract.Policy) (*contract.Lottery, error)
	Start(ctx context.Context, id string, caller common.Address, cfg contract.Config) (*contract.Lottery, error)
	Seed(ctx context.Context, id string, caller common.Address, hashedRandom common.Hash) (*contract.Lottery, error)
	Participate(ctx context.Context, id string, caller common.Address, hashedRandom common.Hash) (*contract.Lottery, error)
	Reveal(ctx context.Context, id string, caller common.Address, random *uint256.Int) (*contract.Lottery, error)
	End(ctx context.Context, id string, caller common.Address, charityRandom *uint256.Int) (*contract.Lottery, error)
	Cancel(ctx context.Context, id string, caller common.Address) (*contract.Lottery, error)
	// Deposit credits an external payment to from. A paymentID is credited
	// at most once per lottery.
	Deposit(ctx context.Context, id, paymentID string, from common.Address, amount *uint256.Int) (*contract.Lottery, error)
	Withdraw(ctx context.Context, id string, caller common.Address) (*uint256.Int, error)
	Balance(ctx context.Context, id string, account common.Address) (*uint256.Int, error)
	Get(ctx context.Context, id string) (*contract.Lottery, error)
	List(ctx context.Context) ([]*contract.Lottery, error)
}

// Clock supplies the timestamp, in unix seconds, operations run at
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// EventPublisher delivers committed transitions to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.Event) error {
	return nil
}
