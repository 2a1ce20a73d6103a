package ipld_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	"github.com/tokenvest/vesting-actors/actors/util/adt"
	"github.com/tokenvest/vesting-actors/support/ipld"
	tutil "github.com/tokenvest/vesting-actors/support/testing"
)

func TestADTStoreRoundTrip(t *testing.T) {
	store := ipld.NewADTStore(context.Background())

	table, err := adt.MakeEmptyBalanceTable(store)
	require.NoError(t, err)
	account := tutil.NewIDAddr(t, 101)
	require.NoError(t, table.Set(account, abi.NewTokenAmount(123)))

	balance, err := adt.AsBalanceTable(store, table.Root()).Get(account)
	require.NoError(t, err)
	assert.Equal(t, abi.NewTokenAmount(123), balance)
}

// Concurrent writers with disjoint structures must be safe on the sync store,
// modelling independent containers sharing one block store.
func TestSyncStoreConcurrentUse(t *testing.T) {
	store := ipld.NewSyncADTStore(context.Background())

	const writers = 8
	const entriesPerWriter = 50

	roots := make([]adt.Map, writers)
	var grp errgroup.Group
	for i := 0; i < writers; i++ {
		i := i
		grp.Go(func() error {
			m, err := adt.MakeEmptyMap(store)
			if err != nil {
				return err
			}
			for j := 0; j < entriesPerWriter; j++ {
				amount := abi.NewTokenAmount(int64(i*entriesPerWriter + j))
				if err := m.Put(stringKey(fmt.Sprintf("w%d-%d", i, j)), &amount); err != nil {
					return err
				}
			}
			roots[i] = *m
			return nil
		})
	}
	require.NoError(t, grp.Wait())

	// Every writer's entries are intact and distinct.
	for i := 0; i < writers; i++ {
		m := roots[i]
		keys, err := m.CollectKeys()
		require.NoError(t, err)
		assert.Len(t, keys, entriesPerWriter)

		var amount abi.TokenAmount
		found, err := m.Get(stringKey(fmt.Sprintf("w%d-%d", i, entriesPerWriter-1)), &amount)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, abi.NewTokenAmount(int64(i*entriesPerWriter+entriesPerWriter-1)), amount)
	}
}

type stringKey string

func (k stringKey) Key() string {
	return string(k)
}
