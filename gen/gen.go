package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	registry "github.com/tokenvest/vesting-actors/actors/builtin/registry"
	vesting "github.com/tokenvest/vesting-actors/actors/builtin/vesting"
	crypto "github.com/tokenvest/vesting-actors/actors/crypto"
)

func main() {
	// Common types
	if err := gen.WriteTupleEncodersToFile("./actors/crypto/cbor_gen.go", "crypto",
		crypto.WithdrawalCredential{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vesting/cbor_gen.go", "vesting",
		// actor state
		vesting.State{},
		vesting.VestingStream{},
		// method params
		vesting.ConstructorParams{},
		vesting.AddStreamParams{},
		vesting.BeneficiaryParams{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/registry/cbor_gen.go", "registry",
		// actor state
		registry.State{},
		registry.ContainerEntry{},
		// method params
		registry.CreateContainerParams{},
		registry.ContainerReturn{},
		registry.OwnerParams{},
	); err != nil {
		panic(err)
	}
}
