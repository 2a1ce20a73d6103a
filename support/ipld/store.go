package ipld

import (
	"context"
	"sync"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	ipld "github.com/ipfs/go-ipld-format"

	"github.com/tokenvest/vesting-actors/actors/util/adt"
)

// Creates a new, empty, unsynchronized IPLD store in memory.
// This store is appropriate for most kinds of testing.
func NewADTStore(ctx context.Context) adt.Store {
	return adt.WrapBlockStore(ctx, NewBlockStoreInMemory())
}

// Creates a new, empty IPLD store in memory that is safe for concurrent use.
func NewSyncADTStore(ctx context.Context) adt.Store {
	return adt.WrapBlockStore(ctx, NewSyncBlockStoreInMemory())
}

type BlockStoreInMemory struct {
	data map[cid.Cid]block.Block
}

func NewBlockStoreInMemory() *BlockStoreInMemory {
	return &BlockStoreInMemory{make(map[cid.Cid]block.Block)}
}

func (mb *BlockStoreInMemory) Get(c cid.Cid) (block.Block, error) {
	d, ok := mb.data[c]
	if ok {
		return d, nil
	}
	return nil, ipld.ErrNotFound
}

func (mb *BlockStoreInMemory) Put(b block.Block) error {
	mb.data[b.Cid()] = b
	return nil
}

var _ ipldcbor.IpldBlockstore = (*BlockStoreInMemory)(nil)

// SyncBlockStoreInMemory is a blockstore that is safe for concurrent use,
// serializing all access behind a mutex. This is the lock scope required for
// operations on different containers sharing one store.
type SyncBlockStoreInMemory struct {
	bs *BlockStoreInMemory
	mu sync.Mutex
}

func NewSyncBlockStoreInMemory() *SyncBlockStoreInMemory {
	return &SyncBlockStoreInMemory{bs: NewBlockStoreInMemory()}
}

func (ss *SyncBlockStoreInMemory) Get(c cid.Cid) (block.Block, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.bs.Get(c)
}

func (ss *SyncBlockStoreInMemory) Put(b block.Block) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.bs.Put(b)
}

var _ ipldcbor.IpldBlockstore = (*SyncBlockStoreInMemory)(nil)
