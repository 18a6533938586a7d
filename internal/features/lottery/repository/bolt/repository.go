package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/repository"
)

// BucketLotteries holds one JSON snapshot per lottery id.
const BucketLotteries = "lotteries"

type boltRepository struct {
	db *bolt.DB
}

// NewBoltLotteryRepository expects BucketLotteries to exist.
func NewBoltLotteryRepository(db *bolt.DB) repository.LotteryRepository {
	return &boltRepository{db: db}
}

func (r *boltRepository) Create(ctx context.Context, l *contract.Lottery) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal lottery: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLotteries))
		if b.Get([]byte(l.ID)) != nil {
			return repository.ErrLotteryExists
		}
		return b.Put([]byte(l.ID), data)
	})
}

func (r *boltRepository) Get(ctx context.Context, id string) (*contract.Lottery, error) {
	var l *contract.Lottery
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		l, err = decode(tx.Bucket([]byte(BucketLotteries)), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Update runs fn inside a bolt write transaction; bolt allows a single
// writer so updates are serialized.
func (r *boltRepository) Update(ctx context.Context, id string, fn repository.UpdateFunc) (*contract.Lottery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var updated *contract.Lottery
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLotteries))
		l, err := decode(b, id)
		if err != nil {
			return err
		}
		if err := fn(l); err != nil {
			return err
		}
		data, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("failed to marshal lottery: %w", err)
		}
		if err := b.Put([]byte(id), data); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns lotteries in key order.
func (r *boltRepository) List(ctx context.Context) ([]*contract.Lottery, error) {
	lotteries := []*contract.Lottery{}
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketLotteries)).ForEach(func(k, v []byte) error {
			var l contract.Lottery
			if err := json.Unmarshal(v, &l); err != nil {
				return fmt.Errorf("failed to unmarshal lottery %s: %w", k, err)
			}
			lotteries = append(lotteries, &l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return lotteries, nil
}

func decode(b *bolt.Bucket, id string) (*contract.Lottery, error) {
	data := b.Get([]byte(id))
	if data == nil {
		return nil, repository.ErrLotteryNotFound
	}
	var l contract.Lottery
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lottery %s: %w", id, err)
	}
	return &l, nil
}
