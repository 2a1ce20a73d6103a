package registry

import (
	address "github.com/filecoin-project/go-address"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	adt "github.com/tokenvest/vesting-actors/actors/util/adt"
)

type State struct {
	// Creation-ordered journal of every container ever created. AMT[ContainerEntry].
	Entries cid.Cid

	// Owner address -> most recently created container address. HAMT.
	LatestByOwner cid.Cid

	// The next actor ID to assign to a new container.
	NextID abi.ActorID
}

// A record of one container creation.
type ContainerEntry struct {
	Owner     address.Address
	Container address.Address
	Asset     abi.AssetID
	CreatedAt abi.Timestamp
}

func ConstructState(store adt.Store) (*State, error) {
	emptyEntries, err := adt.MakeEmptyArray(store)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty entries array: %w", err)
	}
	emptyByOwner, err := adt.MakeEmptyMap(store)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty owner index: %w", err)
	}
	return &State{
		Entries:       emptyEntries.Root(),
		LatestByOwner: emptyByOwner.Root(),
		NextID:        abi.ActorID(FirstContainerID),
	}, nil
}

// MapOwnerToNewID assigns the next container ID, returning its ID address.
func (st *State) MapOwnerToNewID() (address.Address, error) {
	id := st.NextID
	st.NextID++
	return address.NewIDAddress(uint64(id))
}

// LatestContainer looks up the most recently created container for an owner.
func (st *State) LatestContainer(store adt.Store, owner address.Address) (address.Address, bool, error) {
	byOwner := adt.AsMap(store, st.LatestByOwner)
	var container address.Address
	found, err := byOwner.Get(adt.AddrKey(owner), &container)
	if err != nil {
		return address.Undef, false, xerrors.Errorf("failed to read owner index for %v: %w", owner, err)
	}
	return container, found, nil
}
