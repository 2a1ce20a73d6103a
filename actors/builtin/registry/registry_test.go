package registry_test

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	"github.com/tokenvest/vesting-actors/actors/builtin"
	"github.com/tokenvest/vesting-actors/actors/builtin/registry"
	"github.com/tokenvest/vesting-actors/actors/builtin/vesting"
	"github.com/tokenvest/vesting-actors/actors/util/adt"
	"github.com/tokenvest/vesting-actors/support/mock"
	tutil "github.com/tokenvest/vesting-actors/support/testing"
)

func TestRegistryExports(t *testing.T) {
	mock.CheckActorExports(t, registry.Actor{})
}

func TestRegistryConstruction(t *testing.T) {
	actor := registry.Actor{}

	t.Run("construction initializes empty state", func(t *testing.T) {
		rt := mock.NewBuilder(builtin.RegistryActorAddr).
			WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
			WithActorType(builtin.RegistryActorCodeID).
			Build(t)

		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		ret := rt.Call(actor.Constructor, nil)
		assert.Nil(t, ret)
		rt.Verify()

		var st registry.State
		rt.GetState(&st)
		assert.Equal(t, abi.ActorID(registry.FirstContainerID), st.NextID)

		length, err := adt.AsArray(adt.AsStore(rt), st.Entries).Length()
		require.NoError(t, err)
		assert.Zero(t, length)
	})

	t.Run("fails when caller is not the system actor", func(t *testing.T) {
		rt := mock.NewBuilder(builtin.RegistryActorAddr).
			WithCaller(tutil.NewIDAddr(t, 101), builtin.AccountActorCodeID).
			WithActorType(builtin.RegistryActorCodeID).
			Build(t)

		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbort(exitcode.SysErrForbidden, func() {
			rt.Call(actor.Constructor, nil)
		})
		rt.Verify()
	})
}

func TestCreateContainer(t *testing.T) {
	owner := tutil.NewIDAddr(t, 101)

	t.Run("creates and constructs a container", func(t *testing.T) {
		rt, h := constructRegistry(t)
		now := abi.Timestamp(5000)
		rt.SetCurrTime(now)

		container := h.createContainer(rt, owner, "TOK")
		assert.Equal(t, tutil.NewIDAddr(t, registry.FirstContainerID), container)

		var st registry.State
		rt.GetState(&st)
		assert.Equal(t, abi.ActorID(registry.FirstContainerID+1), st.NextID)

		entries := adt.AsArray(adt.AsStore(rt), st.Entries)
		length, err := entries.Length()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), length)

		var entry registry.ContainerEntry
		found, err := entries.Get(0, &entry)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, owner, entry.Owner)
		assert.Equal(t, container, entry.Container)
		assert.Equal(t, abi.AssetID("TOK"), entry.Asset)
		assert.Equal(t, now, entry.CreatedAt)

		latest, found, err := st.LatestContainer(adt.AsStore(rt), owner)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, container, latest)
	})

	t.Run("every creation yields a distinct container and latest wins", func(t *testing.T) {
		rt, h := constructRegistry(t)

		first := h.createContainer(rt, owner, "TOK")
		second := h.createContainer(rt, owner, "GOV")
		assert.NotEqual(t, first, second)

		var st registry.State
		rt.GetState(&st)
		length, err := adt.AsArray(adt.AsStore(rt), st.Entries).Length()
		require.NoError(t, err)
		assert.Equal(t, uint64(2), length)

		latest, found, err := st.LatestContainer(adt.AsStore(rt), owner)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, second, latest)
	})

	t.Run("rejects an empty asset", func(t *testing.T) {
		rt, h := constructRegistry(t)
		rt.SetCaller(owner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(h.CreateContainer, &registry.CreateContainerParams{Asset: ""})
		})
		rt.Verify()
	})
}

func TestContainerFor(t *testing.T) {
	owner := tutil.NewIDAddr(t, 101)

	t.Run("returns the latest container for an owner", func(t *testing.T) {
		rt, h := constructRegistry(t)
		container := h.createContainer(rt, owner, "TOK")

		rt.ExpectValidateCallerAny()
		ret := rt.Call(h.ContainerFor, &registry.OwnerParams{Owner: owner}).(*registry.ContainerReturn)
		rt.Verify()
		assert.Equal(t, container, ret.Container)
	})

	t.Run("aborts for an owner with no container", func(t *testing.T) {
		rt, h := constructRegistry(t)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrNotFound, func() {
			rt.Call(h.ContainerFor, &registry.OwnerParams{Owner: owner})
		})
		rt.Verify()
	})
}

type registryHarness struct {
	registry.Actor
	t *testing.T
}

func constructRegistry(t *testing.T) (*mock.Runtime, *registryHarness) {
	rt := mock.NewBuilder(builtin.RegistryActorAddr).
		WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
		WithActorType(builtin.RegistryActorCodeID).
		Build(t)

	h := &registryHarness{t: t}
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Constructor, nil)
	assert.Nil(t, ret)
	rt.Verify()
	return rt, h
}

func (h *registryHarness) createContainer(rt *mock.Runtime, owner addr.Address, asset abi.AssetID) addr.Address {
	var st registry.State
	rt.GetState(&st)
	expectedAddr := tutil.NewIDAddr(h.t, uint64(st.NextID))

	rt.SetCaller(owner, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	rt.ExpectCreateActor(builtin.VestingActorCodeID, expectedAddr)
	rt.ExpectSend(expectedAddr, builtin.MethodsVesting.Constructor, &vesting.ConstructorParams{
		Owner: owner,
		Asset: asset,
	}, nil, exitcode.Ok)

	ret := rt.Call(h.CreateContainer, &registry.CreateContainerParams{Asset: asset}).(*registry.ContainerReturn)
	rt.Verify()
	assert.Equal(h.t, expectedAddr, ret.Container)
	return ret.Container
}
