package adt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	"github.com/tokenvest/vesting-actors/actors/util/adt"
	"github.com/tokenvest/vesting-actors/support/ipld"
	tutil "github.com/tokenvest/vesting-actors/support/testing"
)

func TestMapRoundTrip(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	m, err := adt.MakeEmptyMap(store)
	require.NoError(t, err)

	a := tutil.NewIDAddr(t, 101)
	b := tutil.NewIDAddr(t, 102)

	putAmount := func(key adt.Keyer, v int64) {
		amount := abi.NewTokenAmount(v)
		require.NoError(t, m.Put(key, &amount))
	}

	putAmount(adt.AddrKey(a), 7)
	putAmount(adt.AddrKey(b), 11)

	var out abi.TokenAmount
	found, err := m.Get(adt.AddrKey(a), &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, abi.NewTokenAmount(7), out)

	// Reloading from the flushed root observes the same entries.
	reloaded := adt.AsMap(store, m.Root())
	keys, err := reloaded.CollectKeys()
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	// Overwrite is in place, not a second entry.
	putAmount(adt.AddrKey(a), 9)
	found, err = m.Get(adt.AddrKey(a), &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, abi.NewTokenAmount(9), out)

	// Deletion removes exactly the targeted key.
	require.NoError(t, m.Delete(adt.AddrKey(a)))
	found, err = m.Get(adt.AddrKey(a), &out)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = m.Get(adt.AddrKey(b), &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, abi.NewTokenAmount(11), out)

	keys, err = m.CollectKeys()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}
