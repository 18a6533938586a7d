// Package repositorytest holds the behaviour every LotteryRepository
// implementation must share.
package repositorytest

import (
	"context"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/repository"
)

const now uint64 = 1_700_000_000

var (
	owner   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	charity = common.HexToAddress("0x00000000000000000000000000000000000000c1")
)

// LiveLottery returns a started lottery with id.
func LiveLottery(t *testing.T, id string) *contract.Lottery {
	t.Helper()
	l := contract.New(id, owner, contract.DefaultPolicy())
	err := l.Start(contract.Call{Caller: owner, Time: now}, contract.Config{
		Charity:       charity,
		CharitySplit:  49,
		WinnerSplit:   49,
		OwnerSplit:    2,
		ValuePerEntry: uint256.NewInt(1000),
		StartTime:     now + 60,
		RevealTime:    now + 120,
		EndTime:       now + 180,
	})
	require.NoError(t, err)
	return l
}

func deposit(from common.Address, amount uint64) repository.UpdateFunc {
	return func(l *contract.Lottery) error {
		return l.Deposit(contract.Call{Caller: from, Time: now + 61}, uint256.NewInt(amount))
	}
}

// Run exercises a fresh repository from newRepo.
func Run(t *testing.T, newRepo func(t *testing.T) repository.LotteryRepository) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		repo := newRepo(t)
		l := LiveLottery(t, "0001")
		require.NoError(t, repo.Create(ctx, l))

		got, err := repo.Get(ctx, "0001")
		require.NoError(t, err)
		assert.Equal(t, l.ID, got.ID)
		assert.Equal(t, contract.PhaseLive, got.Phase)
		assert.Equal(t, l.Config.Charity, got.Config.Charity)
		assert.True(t, l.Config.ValuePerEntry.Eq(got.Config.ValuePerEntry))

		assert.ErrorIs(t, repo.Create(ctx, l), repository.ErrLotteryExists)
	})

	t.Run("GetMissing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrLotteryNotFound)

		_, err = repo.Update(ctx, "missing", deposit(owner, 1))
		assert.ErrorIs(t, err, repository.ErrLotteryNotFound)
	})

	t.Run("UpdatePersists", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, LiveLottery(t, "0001")))
		player := common.HexToAddress("0x0101")

		updated, err := repo.Update(ctx, "0001", deposit(player, 2500))
		require.NoError(t, err)
		assert.Equal(t, uint64(2), updated.TotalEntries)

		got, err := repo.Get(ctx, "0001")
		require.NoError(t, err)
		assert.Equal(t, uint64(2500), got.Balance(player).Uint64())
		assert.Equal(t, uint64(2500), got.Pot.Uint64())
	})

	t.Run("RejectedUpdateWritesNothing", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, LiveLottery(t, "0001")))

		_, err := repo.Update(ctx, "0001", func(l *contract.Lottery) error {
			l.Pot = uint256.NewInt(999)
			return contract.ErrZeroAmount
		})
		assert.ErrorIs(t, err, contract.ErrZeroAmount)

		got, err := repo.Get(ctx, "0001")
		require.NoError(t, err)
		assert.True(t, got.Pot.IsZero())
	})

	t.Run("ConcurrentUpdatesSerialize", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, LiveLottery(t, "0001")))

		const writers = 8
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				player := common.BytesToAddress([]byte{0x01, byte(i + 1)})
				if _, err := repo.Update(ctx, "0001", deposit(player, 1000)); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := repo.Get(ctx, "0001")
		require.NoError(t, err)
		assert.Equal(t, uint64(writers*1000), got.Pot.Uint64())
		assert.Equal(t, uint64(writers), got.TotalEntries)
		assert.Len(t, got.Balances, writers)
	})

	t.Run("List", func(t *testing.T) {
		repo := newRepo(t)
		empty, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		for _, id := range []string{"0002", "0001", "0003"} {
			require.NoError(t, repo.Create(ctx, LiveLottery(t, id)))
		}
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "0001", all[0].ID)
		assert.Equal(t, "0002", all[1].ID)
		assert.Equal(t, "0003", all[2].ID)
	})
}
