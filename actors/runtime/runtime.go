package runtime

import (
	"bytes"
	"context"
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	crypto "github.com/tokenvest/vesting-actors/actors/crypto"
)

// Runtime is the interface through which actor code observes and affects the
// world: the clock, the custody ledger, persistent state, and other actors.
// This is everything that is accessible to actors, beyond parameters.
//
// Abortf halts the current invocation; the host discards every state and
// custody change made within it. Actors rely on this for the all-or-nothing
// semantics of stream creation and claim settlement.
type Runtime interface {
	// Information related to the current message being executed.
	Message() Message

	// The current time in seconds, sampled once per invocation and constant
	// throughout it. Monotonically non-decreasing across invocations.
	CurrTime() abi.Timestamp

	// Validates the caller against some predicate.
	// Exported actor methods must invoke at least one caller validation before returning.
	ValidateImmediateCallerAcceptAny()
	ValidateImmediateCallerIs(addrs ...addr.Address)

	// The custody ledger balance of an account for an asset.
	BalanceOf(account addr.Address, asset abi.AssetID) abi.TokenAmount

	// Moves funds from the calling principal's custody account into the
	// receiver's. The runtime rejects any `from` other than the caller.
	// Returns SysErrInsufficientFunds if the caller's balance is short.
	PullFunds(from addr.Address, asset abi.AssetID, amount abi.TokenAmount) exitcode.ExitCode

	// Moves funds out of the custody account named by the credential, into
	// `to`. The credential is validated against the receiver and asset; it is
	// the only authority under which the receiver's custody can be debited.
	PushFunds(cred crypto.WithdrawalCredential, to addr.Address, asset abi.AssetID, amount abi.TokenAmount) exitcode.ExitCode

	// Provides a handle for the actor's state object.
	State() StateHandle

	Store() Store

	// Sends a message to another actor, returning the exit code and return value envelope.
	// If the invoked method does not return successfully, its state changes
	// (and that of any messages it sent in turn) will be rolled back.
	Send(toAddr addr.Address, methodNum abi.MethodNum, params CBORMarshaler) (SendReturn, exitcode.ExitCode)

	// Halts execution upon an error from which the receiver cannot recover.
	// The caller will receive the exitcode and an empty return value. State
	// changes made within this call will be rolled back.
	// This method does not return.
	// The message and args are for diagnostic purposes and do not persist.
	// They should be suitable for passing to fmt.Errorf(msg, args...).
	Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{})

	// Computes an address for a new actor. The returned address is intended
	// to uniquely refer to the actor it is assigned to.
	NewActorAddress() addr.Address

	// Creates an actor with code `codeID` at `address`, with empty state.
	// May only be called by the registry actor.
	CreateActor(codeID cid.Cid, address addr.Address)

	// Provides the system call interface.
	Syscalls() Syscalls

	// Provides a Go context for use by HAMT, etc.
	// The runtime is intended to provide an idealised machine abstraction,
	// with infinite storage etc, so this context should not be used by actor
	// code directly.
	Context() context.Context

	// Log allows actor code to record structured diagnostics through the host.
	Log(level rtt.LogLevel, msg string, args ...interface{})

	// Starts a new tracing span. The span must be End()ed explicitly,
	// typically with a deferred invocation.
	StartSpan(name string) TraceSpan
}

// Store defines the storage module exposed to actors.
type Store interface {
	// Retrieves and deserializes an object from the store into `o`. Returns whether successful.
	Get(c cid.Cid, o CBORUnmarshaler) bool
	// Serializes and stores an object, returning its CID.
	Put(x CBORMarshaler) cid.Cid
}

// Message contains information available to the actor about the executing message.
type Message interface {
	// The address of the immediate calling principal. Always an authenticated address.
	Caller() addr.Address

	// The address of the actor receiving the message.
	Receiver() addr.Address
}

// Pure functions implemented as primitives by the runtime.
type Syscalls interface {
	// Hashes input data using blake2b with 256 bit output.
	HashBlake2b(data []byte) [32]byte
}

// The return type from a message send from one actor to another. This abstracts over the internal representation of
// the return, in particular whether it has been serialized to bytes or just passed through.
// Production code is expected to de/serialize, but test and other code may pass the value straight through.
type SendReturn interface {
	Into(CBORUnmarshaler) error
}

// Provides (minimal) tracing facilities to actor code.
type TraceSpan interface {
	// Ends the span
	End()
}

// StateHandle provides mutable, exclusive access to actor state.
type StateHandle interface {
	// Create initializes the state object.
	// This is only valid in a constructor function and when the state has not yet been initialized.
	Create(obj CBORMarshaler)

	// Readonly loads a readonly copy of the state into the argument.
	//
	// Any modification to the state is illegal and will result in an abort.
	Readonly(obj CBORUnmarshaler)

	// Transaction loads a mutable version of the state into the `obj` argument and protects
	// the execution from side effects (including message send).
	//
	// The second argument is a function which allows the caller to mutate the state.
	// The return value from that function will be returned from the call to Transaction().
	//
	// If the state is modified after this function returns, execution will abort.
	Transaction(obj CBORer, f func() interface{}) interface{}
}

// VMActor is the interface all actor code types satisfy: a method dispatch
// table plus the code ID the actor is registered under.
type VMActor interface {
	Exports() []interface{}
	Code() cid.Cid
}

// These interfaces are intended to match those from whyrusleeping/cbor-gen, such that code generated from that
// system is automatically usable here (but not mandatory).
type CBORMarshaler interface {
	MarshalCBOR(w io.Writer) error
}

type CBORUnmarshaler interface {
	UnmarshalCBOR(r io.Reader) error
}

type CBORer interface {
	CBORMarshaler
	CBORUnmarshaler
}

// Wraps already-serialized bytes as CBOR-marshalable.
type CBORBytes []byte

func (b CBORBytes) MarshalCBOR(w io.Writer) error {
	_, err := w.Write(b)
	return err
}

func (b *CBORBytes) UnmarshalCBOR(r io.Reader) error {
	var c bytes.Buffer
	_, err := c.ReadFrom(r)
	*b = c.Bytes()
	return err
}
