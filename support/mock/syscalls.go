package mock

import (
	runtime "github.com/tokenvest/vesting-actors/actors/runtime"
)

// Syscall implementation for the mock runtime. The hash function is
// substitutable so tests can exercise credential checks against a
// deterministic digest.
type syscaller struct {
	Hasher HasherFunc
}

var _ runtime.Syscalls = &syscaller{}

func (s *syscaller) HashBlake2b(data []byte) [32]byte {
	return s.Hasher(data)
}
