package abi

import (
	"strconv"

	"github.com/filecoin-project/go-state-types/big"
)

// The abi package contains definitions of the primitive types that cross the
// runtime boundary and are used within actor code.

// Timestamp is an absolute time in seconds since the ledger epoch. It acts as
// the proxy for wall-clock time within actor code; the runtime samples it once
// per invocation, so all reads within one operation observe the same instant.
type Timestamp uint64

func (t Timestamp) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// Duration is a span of time in seconds.
type Duration uint64

func (d Duration) String() string {
	return strconv.FormatUint(uint64(d), 10)
}

// AssetID identifies a single fungible asset type held in custody.
// A vesting container is bound to exactly one asset for its whole lifetime.
type AssetID string

// ActorID is a sequential number assigned to an actor when created by the
// registry. This ID is embedded in ID-type addresses.
type ActorID uint64

func (e ActorID) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// MethodNum identifies a method in an actor's export table.
type MethodNum uint64

func (e MethodNum) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// TokenAmount is an amount of tokens of some asset type. It is used in all
// custody accounting and vesting computation.
//
// The big.Int alias is used rather than a new type because the latter
// introduces incredible amounts of noise converting to and from types in
// order to manipulate values. We give up some type safety for ergonomics.
type TokenAmount = big.Int

func NewTokenAmount(t int64) TokenAmount {
	return big.NewInt(t)
}
