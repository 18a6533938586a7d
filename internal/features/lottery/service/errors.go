package service

import (
	"errors"

	"charity-lottery-backend/internal/features/lottery/repository"
)

var (
	ErrNotFound = repository.ErrLotteryNotFound
	ErrConflict = repository.ErrUpdateConflict
	ErrNoOwner  = errors.New("lottery owner cannot be the zero address")
)
