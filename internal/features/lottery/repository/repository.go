package repository

import (
	"context"
	"errors"

	"charity-lottery-backend/internal/features/lottery/contract"
)

var (
	ErrLotteryNotFound = errors.New("lottery not found")
	ErrLotteryExists   = errors.New("lottery already exists")
	ErrUpdateConflict  = errors.New("lottery changed concurrently, retries exhausted")
)

// UpdateFunc mutates a lottery in place. Returning an error aborts the
// update and nothing is written.
type UpdateFunc func(l *contract.Lottery) error

// LotteryRepository stores lottery snapshots. Update is an atomic
// read-modify-write: concurrent updates of one lottery are serialized.
type LotteryRepository interface {
	Create(ctx context.Context, l *contract.Lottery) error
	Get(ctx context.Context, id string) (*contract.Lottery, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*contract.Lottery, error)
	List(ctx context.Context) ([]*contract.Lottery, error)
}
