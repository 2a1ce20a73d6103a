package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	builtin "github.com/tokenvest/vesting-actors/actors/builtin"
	adt "github.com/tokenvest/vesting-actors/actors/util/adt"
)

type StateSummary struct {
	Owner          addr.Address
	Asset          abi.AssetID
	StreamCount    uint64
	TotalCommitted abi.TokenAmount
	TotalClaimed   abi.TokenAmount
	// Sum of amounts not yet claimed, which the container's custody account
	// must always cover.
	PendingObligations abi.TokenAmount
}

// Checks internal container invariants and builds a summary of the state.
func CheckStateInvariants(st *State, store adt.Store, now abi.Timestamp) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		Owner:              st.Owner,
		Asset:              st.Asset,
		TotalCommitted:     big.Zero(),
		TotalClaimed:       big.Zero(),
		PendingObligations: big.Zero(),
	}

	acc.Require(st.Owner != addr.Undef, "container owner is undefined")
	acc.Require(st.Asset != "", "container asset is empty")
	acc.Require(st.Credential.Holder != addr.Undef, "withdrawal credential holder is undefined")
	acc.Require(len(st.Credential.Digest) > 0, "withdrawal credential digest is empty")

	streams := adt.AsMap(store, st.Streams)
	var stream VestingStream
	err := streams.ForEach(&stream, func(key string) error {
		keyAddr, err := addr.NewFromBytes([]byte(key))
		acc.RequireNoError(err, "stream key is not an address")
		acc.Require(keyAddr == stream.Beneficiary, "stream key %v does not match beneficiary %v", keyAddr, stream.Beneficiary)

		acc.Require(stream.Amount.Sign() > 0, "stream for %v has non-positive amount %v", stream.Beneficiary, stream.Amount)
		acc.Require(stream.Duration > 0, "stream for %v has zero duration", stream.Beneficiary)
		acc.Require(stream.Cliff <= stream.Duration, "stream for %v has cliff %v beyond duration %v",
			stream.Beneficiary, stream.Cliff, stream.Duration)

		vested := stream.VestedAmount(now)
		acc.Require(stream.Claimed.Sign() >= 0, "stream for %v has negative claimed %v", stream.Beneficiary, stream.Claimed)
		acc.Require(stream.Claimed.LessThanEqual(vested), "stream for %v claimed %v exceeds vested %v",
			stream.Beneficiary, stream.Claimed, vested)
		acc.Require(vested.LessThanEqual(stream.Amount), "stream for %v vested %v exceeds amount %v",
			stream.Beneficiary, vested, stream.Amount)

		summary.StreamCount++
		summary.TotalCommitted = big.Add(summary.TotalCommitted, stream.Amount)
		summary.TotalClaimed = big.Add(summary.TotalClaimed, stream.Claimed)
		summary.PendingObligations = big.Add(summary.PendingObligations, big.Sub(stream.Amount, stream.Claimed))
		return nil
	})
	acc.RequireNoError(err, "error iterating streams")

	return summary, acc
}
