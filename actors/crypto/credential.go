package crypto

import (
	"bytes"

	addr "github.com/filecoin-project/go-address"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
)

// Domain separation prefix for withdrawal credential digests.
const withdrawalCredentialTag = "vest/1/withdrawal:"

// WithdrawalCredential is an explicit capability value held by a vesting
// container. It authorizes exactly one kind of operation: debiting the
// custody account of the holder it names. It carries no other authority.
//
// The digest binds the holder address to the asset the container custodies,
// computed with the runtime's syscall hasher at construction time. The
// custody ledger recomputes the digest when the credential is presented.
type WithdrawalCredential struct {
	Holder addr.Address
	Digest []byte
}

// CredentialPreimage assembles the bytes bound by a withdrawal credential
// digest for the given holder and asset.
func CredentialPreimage(holder addr.Address, asset abi.AssetID) []byte {
	var buf bytes.Buffer
	buf.WriteString(withdrawalCredentialTag)
	buf.Write(holder.Bytes())
	buf.WriteString(string(asset))
	return buf.Bytes()
}

// Authorizes checks that the credential names the given holder/asset pair and
// that its digest matches the hash of the corresponding preimage.
func (c *WithdrawalCredential) Authorizes(holder addr.Address, asset abi.AssetID, hash func([]byte) [32]byte) bool {
	if c.Holder != holder {
		return false
	}
	expected := hash(CredentialPreimage(holder, asset))
	return bytes.Equal(c.Digest, expected[:])
}
