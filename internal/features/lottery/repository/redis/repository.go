package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/repository"
)

const (
	keyPrefixLottery = "lottery:"
	keyAllLotteries  = "lotteries:all"
	maxUpdateRetries = 16
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisLotteryRepository(client *redis.Client) repository.LotteryRepository {
	return &redisRepository{client: client}
}

func makeLotteryKey(id string) string {
	return keyPrefixLottery + id
}

func (r *redisRepository) Create(ctx context.Context, l *contract.Lottery) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal lottery: %w", err)
	}

	ok, err := r.client.SetNX(ctx, makeLotteryKey(l.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store lottery: %w", err)
	}
	if !ok {
		return repository.ErrLotteryExists
	}
	if err := r.client.SAdd(ctx, keyAllLotteries, l.ID).Err(); err != nil {
		return fmt.Errorf("failed to index lottery: %w", err)
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, id string) (*contract.Lottery, error) {
	data, err := r.client.Get(ctx, makeLotteryKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrLotteryNotFound
	}
	if err != nil {
		return nil, err
	}

	var l contract.Lottery
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lottery %s: %w", id, err)
	}
	return &l, nil
}

// Update runs fn inside WATCH/MULTI on the lottery key and retries when
// another writer got there first.
func (r *redisRepository) Update(ctx context.Context, id string, fn repository.UpdateFunc) (*contract.Lottery, error) {
	key := makeLotteryKey(id)
	var updated *contract.Lottery

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return repository.ErrLotteryNotFound
		}
		if err != nil {
			return err
		}

		var l contract.Lottery
		if err := json.Unmarshal(data, &l); err != nil {
			return fmt.Errorf("failed to unmarshal lottery %s: %w", id, err)
		}
		if err := fn(&l); err != nil {
			return err
		}

		out, err := json.Marshal(&l)
		if err != nil {
			return fmt.Errorf("failed to marshal lottery: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &l
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, repository.ErrUpdateConflict
}

func (r *redisRepository) List(ctx context.Context) ([]*contract.Lottery, error) {
	ids, err := r.client.SMembers(ctx, keyAllLotteries).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*contract.Lottery{}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = makeLotteryKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	lotteries := make([]*contract.Lottery, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var l contract.Lottery
		if err := json.Unmarshal([]byte(s), &l); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lottery %s: %w", ids[i], err)
		}
		lotteries = append(lotteries, &l)
	}
	return lotteries, nil
}
