package mock

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	cid "github.com/ipfs/go-cid"
	blake2b "github.com/minio/blake2b-simd"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
)

// Build for fluent initialization of a mock runtime.
type RuntimeBuilder struct {
	ctx          context.Context
	now          abi.Timestamp
	receiver     addr.Address
	receiverType cid.Cid
	caller       addr.Address
	callerType   cid.Cid
	hasher       HasherFunc
}

type HasherFunc = func(data []byte) [32]byte

// Initializes a RuntimeBuilder.
func NewBuilder(receiver addr.Address) RuntimeBuilder {
	return RuntimeBuilder{
		ctx:      context.Background(),
		receiver: receiver,
		hasher:   blake2b.Sum256,
	}
}

// Build creates a mock runtime object with the configured values.
func (b RuntimeBuilder) Build(t testing.TB) *Runtime {
	m := &Runtime{
		ctx:           b.ctx,
		now:           b.now,
		receiver:      b.receiver,
		receiverType:  b.receiverType,
		caller:        b.caller,
		callerType:    b.callerType,
		actorCodeCIDs: make(map[addr.Address]cid.Cid),
		syscalls:      syscaller{Hasher: b.hasher},
		state:         cid.Undef,
		custody:       make(map[abi.AssetID]cid.Cid),
		store:         make(map[cid.Cid][]byte),
		t:             t,
	}
	if b.callerType.Defined() {
		m.actorCodeCIDs[b.caller] = b.callerType
	}
	return m
}

func (b RuntimeBuilder) WithCurrTime(now abi.Timestamp) RuntimeBuilder {
	b.now = now
	return b
}

func (b RuntimeBuilder) WithCaller(address addr.Address, code cid.Cid) RuntimeBuilder {
	b.caller = address
	b.callerType = code
	return b
}

func (b RuntimeBuilder) WithActorType(code cid.Cid) RuntimeBuilder {
	b.receiverType = code
	return b
}

func (b RuntimeBuilder) WithHasher(f HasherFunc) RuntimeBuilder {
	b.hasher = f
	return b
}
