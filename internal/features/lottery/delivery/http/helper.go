package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	apperrors "charity-lottery-backend/internal/common/errors"
	"charity-lottery-backend/internal/common/middleware"
	"charity-lottery-backend/internal/common/validation"
	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/mapper"
	"charity-lottery-backend/internal/features/lottery/models"
	lotteryservice "charity-lottery-backend/internal/features/lottery/service"
)

type commitFunc func(ctx context.Context, id string, caller common.Address, hashedRandom common.Hash) (*contract.Lottery, error)

// commit handles the two commitment routes, seed and participate
func (h *LotteryHandler) commit(c *gin.Context, op commitFunc) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	var input models.CommitmentRequest
	if !bind(c, &input) {
		return
	}
	hashedRandom, err := validation.ParseHash(input.HashedRandom, "hashed_random")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("hashed_random", err.Error()))
		return
	}

	l, err := op(c.Request.Context(), id, callerOf(c), hashedRandom)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToLotteryResponse(l))
}

func lotteryID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := validation.ValidateLotteryID(id); err != nil {
		_ = c.Error(apperrors.NewValidationError("id", err.Error()))
		return "", false
	}
	return id, true
}

func bind(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return false
	}
	return true
}

func callerOf(c *gin.Context) common.Address {
	caller, _ := middleware.CallerFrom(c)
	return caller
}

// fail attaches err, translated to an AppError, for the Errors middleware
func fail(c *gin.Context, err error) {
	_ = c.Error(toAppError(c.Param("id"), err))
}

func toAppError(id string, err error) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	if kind, ok := contract.KindOf(err); ok {
		switch kind {
		case contract.KindAuthorization:
			return apperrors.NewRejectionError(apperrors.ErrCodeNotAuthorized, string(kind), err)
		case contract.KindPhase:
			return apperrors.NewRejectionError(apperrors.ErrCodeLotteryPhase, string(kind), err)
		case contract.KindValidation:
			return apperrors.NewRejectionError(apperrors.ErrCodeValidation, string(kind), err)
		case contract.KindState:
			return apperrors.NewRejectionError(apperrors.ErrCodeLotteryState, string(kind), err)
		}
	}

	switch {
	case errors.Is(err, lotteryservice.ErrNotFound):
		return apperrors.NewLotteryNotFoundError(id)
	case errors.Is(err, lotteryservice.ErrConflict):
		return apperrors.Wrap(err, apperrors.ErrCodeStorageConflict, "Lottery is busy, retry the call")
	case errors.Is(err, lotteryservice.ErrNoOwner):
		return apperrors.NewValidationError("X-Caller", err.Error())
	default:
		return apperrors.NewStorageError("lottery", err)
	}
}
