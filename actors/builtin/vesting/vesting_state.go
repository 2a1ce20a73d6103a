package vesting

import (
	address "github.com/filecoin-project/go-address"
	big "github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	errors "github.com/pkg/errors"
	"golang.org/x/xerrors"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	crypto "github.com/tokenvest/vesting-actors/actors/crypto"
	adt "github.com/tokenvest/vesting-actors/actors/util/adt"
)

type State struct {
	// The principal allowed to add streams to this container.
	Owner address.Address

	// The single fungible asset type this container custodies. Immutable.
	Asset abi.AssetID

	// Capability authorizing debits of the container's own custody account,
	// created once at construction. It carries no other authority.
	Credential crypto.WithdrawalCredential

	// Beneficiary address -> VestingStream. At most one stream per beneficiary.
	Streams cid.Cid
}

// A single beneficiary's release schedule and claim history.
// All fields except Claimed are fixed at creation.
type VestingStream struct {
	Beneficiary address.Address
	Amount      abi.TokenAmount
	StartTime   abi.Timestamp
	Cliff       abi.Duration
	Duration    abi.Duration
	Claimed     abi.TokenAmount
}

// VestedAmount returns the cumulative amount unlocked by the schedule as of
// `now`, regardless of how much has been claimed.
//
// The curve is step-then-linear: zero before the cliff, then a continuous
// linear ramp from stream start (the cliff period's proportional share is
// paid out immediately once the cliff passes), reaching Amount at
// StartTime+Duration. The intermediate product is computed with big.Int so
// amount*elapsed cannot overflow for any u64 inputs.
func (s *VestingStream) VestedAmount(now abi.Timestamp) abi.TokenAmount {
	if now < s.StartTime {
		return big.Zero()
	}
	elapsed := abi.Duration(now - s.StartTime)
	if elapsed < s.Cliff {
		return big.Zero()
	}
	if elapsed >= s.Duration {
		return s.Amount
	}
	vested := big.Div(big.Mul(s.Amount, big.NewIntUnsigned(uint64(elapsed))), big.NewIntUnsigned(uint64(s.Duration)))
	// Guard against rounding overshoot; vesting never exceeds the committed amount.
	return big.Min(vested, s.Amount)
}

// ClaimableAmount returns the vested amount not yet withdrawn, floored at zero.
func (s *VestingStream) ClaimableAmount(now abi.Timestamp) abi.TokenAmount {
	return big.Max(big.Zero(), big.Sub(s.VestedAmount(now), s.Claimed))
}

func getStream(streams *adt.Map, beneficiary address.Address) (VestingStream, bool, error) {
	var out VestingStream
	found, err := streams.Get(adt.AddrKey(beneficiary), &out)
	if err != nil {
		return VestingStream{}, false, errors.Wrapf(err, "failed to read stream for %v", beneficiary)
	}
	return out, found, nil
}

func putStream(streams *adt.Map, stream *VestingStream) error {
	if err := streams.Put(adt.AddrKey(stream.Beneficiary), stream); err != nil {
		return xerrors.Errorf("failed to write stream for %v: %w", stream.Beneficiary, err)
	}
	return nil
}
