package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs
var SystemActorCodeID cid.Cid
var AccountActorCodeID cid.Cid
var RegistryActorCodeID cid.Cid
var VestingActorCodeID cid.Cid

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	makeBuiltin := func(s string) cid.Cid {
		c, err := builder.Sum([]byte(s))
		if err != nil {
			panic(err)
		}
		return c
	}

	SystemActorCodeID = makeBuiltin("vest/1/system")
	AccountActorCodeID = makeBuiltin("vest/1/account")
	RegistryActorCodeID = makeBuiltin("vest/1/registry")
	VestingActorCodeID = makeBuiltin("vest/1/container")
}
