package registry

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	builtin "github.com/tokenvest/vesting-actors/actors/builtin"
	vesting "github.com/tokenvest/vesting-actors/actors/builtin/vesting"
	vmr "github.com/tokenvest/vesting-actors/actors/runtime"
	adt "github.com/tokenvest/vesting-actors/actors/util/adt"
)

// The first container ID the registry assigns.
const FirstContainerID = builtin.FirstNonSingletonActorId

// The registry actor creates vesting containers and maintains the thin
// owner-indexed lookup over them. Each creation yields a distinct container;
// "the" container for an owner means the most recently created one.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.CreateContainer,
		3:                         a.ContainerFor,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.RegistryActorCodeID
}

var _ vmr.VMActor = Actor{}

func (a Actor) Constructor(rt vmr.Runtime, _ *adt.EmptyValue) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	st, err := ConstructState(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.State().Create(st)
	return nil
}

type CreateContainerParams struct {
	Asset abi.AssetID
}

type ContainerReturn struct {
	Container addr.Address
}

// CreateContainer creates a new vesting container bound to the given asset,
// owned by the caller, with an empty stream map. No balance is moved.
func (a Actor) CreateContainer(rt vmr.Runtime, params *CreateContainerParams) *ContainerReturn {
	rt.ValidateImmediateCallerAcceptAny()
	owner := rt.Message().Caller()

	if params.Asset == "" {
		rt.Abortf(exitcode.ErrIllegalArgument, "container asset must be non-empty")
	}

	var containerAddr addr.Address
	var st State
	rt.State().Transaction(&st, func() interface{} {
		var err error
		containerAddr, err = st.MapOwnerToNewID()
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to allocate container address")
		return nil
	})

	rt.CreateActor(builtin.VestingActorCodeID, containerAddr)

	_, code := rt.Send(containerAddr, builtin.MethodsVesting.Constructor, &vesting.ConstructorParams{
		Owner: owner,
		Asset: params.Asset,
	})
	builtin.RequireSuccess(rt, code, "container constructor failed")

	rt.State().Transaction(&st, func() interface{} {
		store := adt.AsStore(rt)

		entries := adt.AsArray(store, st.Entries)
		err := entries.Append(&ContainerEntry{
			Owner:     owner,
			Container: containerAddr,
			Asset:     params.Asset,
			CreatedAt: rt.CurrTime(),
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to append container entry")
		st.Entries = entries.Root()

		byOwner := adt.AsMap(store, st.LatestByOwner)
		err = byOwner.Put(adt.AddrKey(owner), &containerAddr)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to index container by owner")
		st.LatestByOwner = byOwner.Root()
		return nil
	})

	rt.Log(rtt.INFO, "container %v created for owner %v asset %s", containerAddr, owner, params.Asset)
	return &ContainerReturn{Container: containerAddr}
}

type OwnerParams struct {
	Owner addr.Address
}

// ContainerFor returns the most recently created container for an owner.
func (a Actor) ContainerFor(rt vmr.Runtime, params *OwnerParams) *ContainerReturn {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.State().Readonly(&st)
	container, found, err := st.LatestContainer(adt.AsStore(rt), params.Owner)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to look up container for %v", params.Owner)
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "no container for owner %v", params.Owner)
	}
	return &ContainerReturn{Container: container}
}
