package workers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	go_redis "github.com/redis/go-redis/v9"

	"charity-lottery-backend/internal/common/logger"
	"charity-lottery-backend/internal/common/validation"
	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/repository"
	"charity-lottery-backend/internal/platform/redis"
)

const (
	DefaultPaymentsStream = "lottery:payments"
	DefaultConsumerGroup  = "lottery_backend_consumers"
	DefaultConsumerName   = "lottery_worker_1"
)

// Depositor credits a confirmed payment to a lottery
type Depositor interface {
	Deposit(ctx context.Context, id, paymentID string, from common.Address, amount *uint256.Int) (*contract.Lottery, error)
}

// PaymentStreamWorker turns confirmed payments from a redis stream into
// lottery deposits. Messages carry lottery_id, payment_id, from and amount.
// A message is acknowledged once it is credited, malformed, or rejected by
// the lottery. Anything else stays pending and is claimed again after
// minIdle.
type PaymentStreamWorker struct {
	rdb       *redis.Client
	depositor Depositor
	stream    string
	group     string
	consumer  string
	block     time.Duration
	minIdle   time.Duration
	backoff   time.Duration
}

func NewPaymentStreamWorker(rdb *redis.Client, depositor Depositor, stream, group, consumer string) *PaymentStreamWorker {
	if stream == "" {
		stream = DefaultPaymentsStream
	}
	if group == "" {
		group = DefaultConsumerGroup
	}
	if consumer == "" {
		consumer = DefaultConsumerName
	}
	return &PaymentStreamWorker{
		rdb:       rdb,
		depositor: depositor,
		stream:    stream,
		group:     group,
		consumer:  consumer,
		block:     5 * time.Second,
		minIdle:   30 * time.Second,
		backoff:   time.Second,
	}
}

// Start consumes the stream until ctx is cancelled.
func (w *PaymentStreamWorker) Start(ctx context.Context) {
	if err := w.ensureGroup(ctx); err != nil {
		logger.Error().Err(err).Str("stream", w.stream).Msg("Error creating consumer group")
	}

	logger.Info().Str("stream", w.stream).Str("group", w.group).Msg("Starting payment stream worker")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Stopping payment stream worker")
			return
		default:
			if _, err := w.reclaim(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("Error reclaiming pending payments")
			}
			if _, err := w.poll(ctx, w.block); err != nil {
				if ctx.Err() != nil {
					continue
				}
				logger.Error().Err(err).Msg("Error reading payment stream")
				select {
				case <-ctx.Done():
					return
				case <-time.After(w.backoff):
				}
			}
		}
	}
}

func (w *PaymentStreamWorker) ensureGroup(ctx context.Context) error {
	err := w.rdb.XGroupCreateMkStream(ctx, w.stream, w.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// poll reads one batch and handles it. A negative block returns at once
// when the stream is empty.
func (w *PaymentStreamWorker) poll(ctx context.Context, block time.Duration) (int, error) {
	entries, err := w.rdb.XReadGroup(ctx, &go_redis.XReadGroupArgs{
		Group:    w.group,
		Consumer: w.consumer,
		Streams:  []string{w.stream, ">"},
		Count:    16,
		Block:    block,
	}).Result()
	if errors.Is(err, go_redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	handled := 0
	for _, stream := range entries {
		handled += w.handle(ctx, stream.Messages)
	}
	return handled, nil
}

// reclaim takes over payments left pending for at least minIdle, by this
// or any other consumer, and retries them.
func (w *PaymentStreamWorker) reclaim(ctx context.Context) (int, error) {
	msgs, _, err := w.rdb.XAutoClaim(ctx, &go_redis.XAutoClaimArgs{
		Stream:   w.stream,
		Group:    w.group,
		Consumer: w.consumer,
		MinIdle:  w.minIdle,
		Start:    "0-0",
		Count:    16,
	}).Result()
	if errors.Is(err, go_redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return w.handle(ctx, msgs), nil
}

// handle processes msgs and acknowledges the settled ones. It returns how
// many were acknowledged.
func (w *PaymentStreamWorker) handle(ctx context.Context, msgs []go_redis.XMessage) int {
	acked := 0
	for _, msg := range msgs {
		if !w.processMessage(ctx, msg.ID, msg.Values) {
			continue
		}
		if err := w.rdb.XAck(ctx, w.stream, w.group, msg.ID).Err(); err != nil {
			logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to ack payment")
			continue
		}
		acked++
	}
	return acked
}

// processMessage credits one payment and reports whether the message is
// settled. Only storage or context failures leave it pending.
func (w *PaymentStreamWorker) processMessage(ctx context.Context, id string, values map[string]interface{}) bool {
	lotteryID, _ := values["lottery_id"].(string)
	paymentID, _ := values["payment_id"].(string)
	fromRaw, _ := values["from"].(string)
	amountRaw, _ := values["amount"].(string)

	log := logger.ForLottery(lotteryID).With().Str("message_id", id).Str("payment_id", paymentID).Logger()

	if err := validation.ValidateLotteryID(lotteryID); err != nil {
		log.Warn().Err(err).Msg("Dropping payment")
		return true
	}
	if err := validation.ValidatePaymentID(paymentID, "payment_id"); err != nil {
		log.Warn().Err(err).Msg("Dropping payment")
		return true
	}
	from, err := validation.ParseNonZeroAddress(fromRaw, "from")
	if err != nil {
		log.Warn().Err(err).Msg("Dropping payment")
		return true
	}
	amount, err := validation.ParsePositiveUint256(amountRaw, "amount")
	if err != nil {
		log.Warn().Err(err).Msg("Dropping payment")
		return true
	}

	if _, err := w.depositor.Deposit(ctx, lotteryID, paymentID, from, amount); err != nil {
		if kind, ok := contract.KindOf(err); ok {
			log.Warn().Err(err).Str("kind", string(kind)).Str("from", from.Hex()).Str("amount", amount.Dec()).Msg("Payment rejected")
			return true
		}
		if errors.Is(err, repository.ErrLotteryNotFound) {
			log.Warn().Err(err).Msg("Dropping payment for unknown lottery")
			return true
		}
		log.Error().Err(err).Str("from", from.Hex()).Str("amount", amount.Dec()).Msg("Payment left pending")
		return false
	}

	log.Info().Str("from", from.Hex()).Str("amount", amount.Dec()).Msg("Payment deposited")
	return true
}
