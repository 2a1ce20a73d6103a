package adt

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
)

// A specialization of a map of addresses to token amounts.
// Absent keys are interpreted as a zero balance.
type BalanceTable Map

// Interprets a store as balance table with root `r`.
func AsBalanceTable(s Store, r cid.Cid) *BalanceTable {
	return &BalanceTable{
		root:  r,
		store: s,
	}
}

// Creates a new balance table backed by an empty map.
func MakeEmptyBalanceTable(s Store) (*BalanceTable, error) {
	m, err := MakeEmptyMap(s)
	if err != nil {
		return nil, err
	}
	return (*BalanceTable)(m), nil
}

// Returns the root cid of underlying HAMT.
func (t *BalanceTable) Root() cid.Cid {
	return t.root
}

// Gets the balance for a key, which is zero if the key has never been credited.
func (t *BalanceTable) Get(key addr.Address) (abi.TokenAmount, error) {
	var value abi.TokenAmount
	found, err := (*Map)(t).Get(AddrKey(key), &value)
	if err != nil {
		return big.Zero(), err // The errors from Map carry good information, no need to wrap here.
	}
	if !found {
		return big.Zero(), nil
	}
	return value, nil
}

// Sets the balance for an address, overwriting any previous balance.
func (t *BalanceTable) Set(key addr.Address, value abi.TokenAmount) error {
	return (*Map)(t).Put(AddrKey(key), &value)
}

// Adds an amount to a balance.
func (t *BalanceTable) Add(key addr.Address, value abi.TokenAmount) error {
	prev, err := t.Get(key)
	if err != nil {
		return err
	}
	sum := big.Add(prev, value)
	return (*Map)(t).Put(AddrKey(key), &sum)
}

// Subtracts up to the specified amount from a balance, without reducing the balance below some minimum.
// Returns the amount subtracted (always positive or zero).
func (t *BalanceTable) SubtractWithMinimum(key addr.Address, req abi.TokenAmount, floor abi.TokenAmount) (abi.TokenAmount, error) {
	prev, err := t.Get(key)
	if err != nil {
		return big.Zero(), err
	}
	available := big.Max(big.Zero(), big.Sub(prev, floor))
	sub := big.Min(available, req)
	if sub.Sign() > 0 {
		err = t.Add(key, sub.Neg())
		if err != nil {
			return big.Zero(), err
		}
	}
	return sub, nil
}
