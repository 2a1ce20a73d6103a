package adt_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	"github.com/tokenvest/vesting-actors/actors/util/adt"
	"github.com/tokenvest/vesting-actors/support/ipld"
	tutil "github.com/tokenvest/vesting-actors/support/testing"
)

func TestBalanceTable(t *testing.T) {
	buildTable := func(t *testing.T) *adt.BalanceTable {
		store := ipld.NewADTStore(context.Background())
		table, err := adt.MakeEmptyBalanceTable(store)
		require.NoError(t, err)
		return table
	}

	t.Run("absent keys read as zero", func(t *testing.T) {
		table := buildTable(t)
		balance, err := table.Get(tutil.NewIDAddr(t, 101))
		require.NoError(t, err)
		assert.Equal(t, big.Zero(), balance)
	})

	t.Run("set and add", func(t *testing.T) {
		table := buildTable(t)
		account := tutil.NewIDAddr(t, 101)

		require.NoError(t, table.Set(account, abi.NewTokenAmount(100)))
		balance, err := table.Get(account)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(100), balance)

		require.NoError(t, table.Add(account, abi.NewTokenAmount(50)))
		require.NoError(t, table.Add(account, abi.NewTokenAmount(-150)))
		balance, err = table.Get(account)
		require.NoError(t, err)
		assert.Equal(t, big.Zero(), balance)
	})

	t.Run("subtract with minimum", func(t *testing.T) {
		table := buildTable(t)
		account := tutil.NewIDAddr(t, 101)
		require.NoError(t, table.Set(account, abi.NewTokenAmount(100)))

		// Subtraction stops at the floor.
		sub, err := table.SubtractWithMinimum(account, abi.NewTokenAmount(80), abi.NewTokenAmount(30))
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(70), sub)

		// Nothing left above the floor.
		sub, err = table.SubtractWithMinimum(account, abi.NewTokenAmount(10), abi.NewTokenAmount(30))
		require.NoError(t, err)
		assert.Equal(t, big.Zero(), sub)

		balance, err := table.Get(account)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(30), balance)
	})

	t.Run("balances are independent per account", func(t *testing.T) {
		table := buildTable(t)
		a := tutil.NewIDAddr(t, 101)
		b := tutil.NewIDAddr(t, 102)

		require.NoError(t, table.Set(a, abi.NewTokenAmount(7)))
		require.NoError(t, table.Set(b, abi.NewTokenAmount(11)))

		balance, err := table.Get(a)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(7), balance)
		balance, err = table.Get(b)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(11), balance)
	})

	t.Run("roots are stable across reload", func(t *testing.T) {
		store := ipld.NewADTStore(context.Background())
		table, err := adt.MakeEmptyBalanceTable(store)
		require.NoError(t, err)
		account := tutil.NewIDAddr(t, 101)
		require.NoError(t, table.Set(account, abi.NewTokenAmount(42)))

		reloaded := adt.AsBalanceTable(store, table.Root())
		balance, err := reloaded.Get(account)
		require.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(42), balance)
	})
}
