package contract

import "errors"

// Kind classifies why an operation was rejected.
type Kind string

const (
	KindAuthorization Kind = "authorization"
	KindPhase         Kind = "phase"
	KindValidation    Kind = "validation"
	KindState         Kind = "state"
)

// Error is a rejection of a contract operation. Rejections never mutate state.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf reports the rejection kind of err, if err is a contract rejection.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

// Authorization errors
var (
	ErrNotOwner          = newError(KindAuthorization, "caller is not the owner")
	ErrNotCharity        = newError(KindAuthorization, "caller is not the charity")
	ErrNotOwnerOrCharity = newError(KindAuthorization, "caller is neither owner nor charity")
	ErrNotParticipant    = newError(KindAuthorization, "caller has no commitment")
)

// Phase errors
var (
	ErrNotStarted       = newError(KindPhase, "lottery has not been started")
	ErrCancelled        = newError(KindPhase, "lottery is cancelled")
	ErrEnded            = newError(KindPhase, "lottery has ended")
	ErrNotTerminal      = newError(KindPhase, "funds are locked until the lottery is cancelled or ended")
	ErrBeforeStart      = newError(KindPhase, "commit window has not opened")
	ErrCommitClosed     = newError(KindPhase, "commit window has closed")
	ErrBeforeReveal     = newError(KindPhase, "reveal window has not opened")
	ErrRevealClosed     = newError(KindPhase, "reveal window has closed")
	ErrBeforeEnd        = newError(KindPhase, "lottery cannot be ended before end time")
	ErrDepositsClosed   = newError(KindPhase, "lottery no longer accepts deposits")
	ErrCharityNotSeeded = newError(KindPhase, "charity has not seeded the round")
)

// Validation errors
var (
	ErrZeroCharity         = newError(KindValidation, "charity must be a non-zero account")
	ErrZeroSplit           = newError(KindValidation, "every split must be greater than zero")
	ErrZeroValuePerEntry   = newError(KindValidation, "value per entry must be greater than zero")
	ErrStartNotInFuture    = newError(KindValidation, "start time must be in the future")
	ErrRevealNotAfterStart = newError(KindValidation, "reveal time must be after start time")
	ErrEndNotAfterReveal   = newError(KindValidation, "end time must be after reveal time")
	ErrZeroCommitment      = newError(KindValidation, "commitment must not be zero")
	ErrMissingRandom       = newError(KindValidation, "random value is required")
	ErrCommitmentMismatch  = newError(KindValidation, "random value does not match commitment")
	ErrZeroAmount          = newError(KindValidation, "amount must be greater than zero")
	ErrAmountOverflow      = newError(KindValidation, "amount overflows the ledger")
	ErrInvalidPolicy       = newError(KindValidation, "invalid lottery policy")
	ErrMissingPaymentID    = newError(KindValidation, "payment id is required")
)

// State errors
var (
	ErrAlreadyStarted    = newError(KindState, "lottery has already been started")
	ErrAlreadySeeded     = newError(KindState, "charity has already seeded")
	ErrAlreadyCommitted  = newError(KindState, "account has already committed")
	ErrAlreadyRevealed   = newError(KindState, "account has already revealed")
	ErrAlreadyCancelled  = newError(KindState, "lottery is already cancelled")
	ErrAlreadyEnded      = newError(KindState, "lottery has already ended")
	ErrNoRevealers       = newError(KindState, "no participant revealed")
	ErrNothingToWithdraw = newError(KindState, "balance is zero")
	ErrDuplicatePayment  = newError(KindState, "payment has already been credited")
)
