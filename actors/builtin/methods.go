package builtin

import (
	abi "github.com/tokenvest/vesting-actors/actors/abi"
)

const (
	MethodConstructor = abi.MethodNum(1)
)

type registryMethods struct {
	Constructor     abi.MethodNum
	CreateContainer abi.MethodNum
	ContainerFor    abi.MethodNum
}

var MethodsRegistry = registryMethods{MethodConstructor, 2, 3}

type vestingMethods struct {
	Constructor      abi.MethodNum
	AddStream        abi.MethodNum
	ClaimTokens      abi.MethodNum
	VestedBalance    abi.MethodNum
	ClaimableBalance abi.MethodNum
}

var MethodsVesting = vestingMethods{MethodConstructor, 2, 3, 4, 5}
