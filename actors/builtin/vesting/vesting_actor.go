package vesting

import (
	addr "github.com/filecoin-project/go-address"
	big "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	builtin "github.com/tokenvest/vesting-actors/actors/builtin"
	crypto "github.com/tokenvest/vesting-actors/actors/crypto"
	vmr "github.com/tokenvest/vesting-actors/actors/runtime"
	adt "github.com/tokenvest/vesting-actors/actors/util/adt"
)

// Exit codes specific to the vesting container actor.
const (
	// The caller is not the container's recorded owner.
	ErrNotOwner = exitcode.FirstActorSpecificExitCode + iota
	// A stream start time in the past, or a cliff longer than the duration.
	ErrInvalidTime
	// A zero vesting duration.
	ErrInvalidDuration
	// A zero stream amount.
	ErrZeroAmount
	// A stream for the beneficiary already exists in the container.
	ErrStreamAlreadyExists
	// No stream exists for the beneficiary.
	ErrStreamNotFound
)

// The vesting container actor holds streams for one asset type on behalf of
// one owner, and settles claims against the container's custody account.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.AddStream,
		3:                         a.ClaimTokens,
		4:                         a.VestedBalance,
		5:                         a.ClaimableBalance,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.VestingActorCodeID
}

var _ vmr.VMActor = Actor{}

type ConstructorParams struct {
	Owner addr.Address
	Asset abi.AssetID
}

func (a Actor) Constructor(rt vmr.Runtime, params *ConstructorParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.RegistryActorAddr)

	if params.Owner == addr.Undef {
		rt.Abortf(exitcode.ErrIllegalArgument, "container owner must be defined")
	}
	if params.Asset == "" {
		rt.Abortf(exitcode.ErrIllegalArgument, "container asset must be non-empty")
	}

	emptyStreams, err := adt.MakeEmptyMap(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to create empty streams map")

	// The withdrawal credential is the only authority under which this
	// container's custody can ever be debited.
	digest := rt.Syscalls().HashBlake2b(crypto.CredentialPreimage(rt.Message().Receiver(), params.Asset))

	st := State{
		Owner: params.Owner,
		Asset: params.Asset,
		Credential: crypto.WithdrawalCredential{
			Holder: rt.Message().Receiver(),
			Digest: digest[:],
		},
		Streams: emptyStreams.Root(),
	}
	rt.State().Create(&st)
	return nil
}

type AddStreamParams struct {
	Beneficiary addr.Address
	Amount      abi.TokenAmount
	StartTime   abi.Timestamp
	Duration    abi.Duration
	Cliff       abi.Duration
}

// AddStream schedules a new release stream and escrows its full amount from
// the owner's custody into the container's.
//
// The stream record is inserted before the owner's balance is checked; an
// abort after insertion discards the whole invocation, so the operation is
// all-or-nothing regardless.
func (a Actor) AddStream(rt vmr.Runtime, params *AddStreamParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()
	now := rt.CurrTime()

	var st State
	rt.State().Transaction(&st, func() interface{} {
		if caller != st.Owner {
			rt.Abortf(ErrNotOwner, "caller %v is not container owner %v", caller, st.Owner)
		}
		if params.StartTime < now {
			rt.Abortf(ErrInvalidTime, "start time %v is in the past (now %v)", params.StartTime, now)
		}
		if params.Duration == 0 {
			rt.Abortf(ErrInvalidDuration, "vesting duration must be non-zero")
		}
		if params.Duration < params.Cliff {
			rt.Abortf(ErrInvalidTime, "cliff %v exceeds duration %v", params.Cliff, params.Duration)
		}
		if params.Amount.Sign() <= 0 {
			rt.Abortf(ErrZeroAmount, "stream amount must be positive, got %v", params.Amount)
		}

		streams := adt.AsMap(adt.AsStore(rt), st.Streams)
		_, found, err := getStream(streams, params.Beneficiary)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load stream for %v", params.Beneficiary)
		if found {
			rt.Abortf(ErrStreamAlreadyExists, "stream for beneficiary %v already exists", params.Beneficiary)
		}

		err = putStream(streams, &VestingStream{
			Beneficiary: params.Beneficiary,
			Amount:      params.Amount,
			StartTime:   params.StartTime,
			Cliff:       params.Cliff,
			Duration:    params.Duration,
			Claimed:     big.Zero(),
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to put stream for %v", params.Beneficiary)
		st.Streams = streams.Root()
		return nil
	})

	if rt.BalanceOf(caller, st.Asset).LessThan(params.Amount) {
		rt.Abortf(exitcode.ErrInsufficientFunds, "owner custody balance below stream amount %v", params.Amount)
	}

	code := rt.PullFunds(caller, st.Asset, params.Amount)
	builtin.RequireSuccess(rt, code, "failed to escrow %v of %s from %v", params.Amount, st.Asset, caller)

	rt.Log(rtt.INFO, "stream added: beneficiary %v amount %v start %v duration %v cliff %v",
		params.Beneficiary, params.Amount, params.StartTime, params.Duration, params.Cliff)
	return nil
}

// ClaimTokens withdraws everything currently claimable by the caller.
// A claim with nothing vested still succeeds and performs a zero-value
// transfer, leaving all balances unchanged.
func (a Actor) ClaimTokens(rt vmr.Runtime, _ *adt.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	beneficiary := rt.Message().Caller()
	now := rt.CurrTime()

	var st State
	var claimable abi.TokenAmount
	rt.State().Transaction(&st, func() interface{} {
		streams := adt.AsMap(adt.AsStore(rt), st.Streams)
		stream, found, err := getStream(streams, beneficiary)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load stream for %v", beneficiary)
		if !found {
			rt.Abortf(ErrStreamNotFound, "no stream for beneficiary %v", beneficiary)
		}

		claimable = stream.ClaimableAmount(now)
		stream.Claimed = big.Add(stream.Claimed, claimable)

		err = putStream(streams, &stream)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update stream for %v", beneficiary)
		st.Streams = streams.Root()
		return nil
	})

	container := rt.Message().Receiver()
	if rt.BalanceOf(container, st.Asset).LessThan(claimable) {
		// Should be impossible under correct accounting; indicates a bug or
		// external tampering with the container's custody.
		rt.Abortf(exitcode.ErrInsufficientFunds, "container custody below claimable %v", claimable)
	}

	code := rt.PushFunds(st.Credential, beneficiary, st.Asset, claimable)
	builtin.RequireSuccess(rt, code, "failed to transfer claim of %v to %v", claimable, beneficiary)

	rt.Log(rtt.DEBUG, "claim settled: beneficiary %v amount %v at %v", beneficiary, claimable, now)
	return &claimable
}

type BeneficiaryParams struct {
	Beneficiary addr.Address
}

// VestedBalance returns the cumulative amount unlocked for a beneficiary as
// of now, regardless of how much has been claimed.
func (a Actor) VestedBalance(rt vmr.Runtime, params *BeneficiaryParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	stream := a.loadStream(rt, params.Beneficiary)
	vested := stream.VestedAmount(rt.CurrTime())
	return &vested
}

// ClaimableBalance returns the vested amount a beneficiary has not yet withdrawn.
func (a Actor) ClaimableBalance(rt vmr.Runtime, params *BeneficiaryParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	stream := a.loadStream(rt, params.Beneficiary)
	claimable := stream.ClaimableAmount(rt.CurrTime())
	return &claimable
}

func (a Actor) loadStream(rt vmr.Runtime, beneficiary addr.Address) VestingStream {
	var st State
	rt.State().Readonly(&st)
	streams := adt.AsMap(adt.AsStore(rt), st.Streams)
	stream, found, err := getStream(streams, beneficiary)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load stream for %v", beneficiary)
	if !found {
		rt.Abortf(ErrStreamNotFound, "no stream for beneficiary %v", beneficiary)
	}
	return stream
}
