package mock

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"runtime/debug"
	"testing"

	addr "github.com/filecoin-project/go-address"
	big "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"

	abi "github.com/tokenvest/vesting-actors/actors/abi"
	builtin "github.com/tokenvest/vesting-actors/actors/builtin"
	crypto "github.com/tokenvest/vesting-actors/actors/crypto"
	runtime "github.com/tokenvest/vesting-actors/actors/runtime"
	adt "github.com/tokenvest/vesting-actors/actors/util/adt"
)

// A mock runtime for unit testing of actors in isolation.
// The mock allows direct specification of the runtime context as observable
// by an actor, supports the storage interface, implements the custody ledger
// concretely over an in-memory balance table, and mocks out the remaining
// side-effect-inducing calls.
type Runtime struct {
	// Execution context
	ctx           context.Context
	now           abi.Timestamp
	receiver      addr.Address
	receiverType  cid.Cid
	caller        addr.Address
	callerType    cid.Cid
	actorCodeCIDs map[addr.Address]cid.Cid
	newActorAddr  addr.Address

	syscalls syscaller

	// Actor state
	state cid.Cid

	// Custody ledger: a balance table root per asset type.
	custody map[abi.AssetID]cid.Cid

	// VM implementation
	inCall        bool
	store         map[cid.Cid][]byte
	inTransaction bool

	// Expectations
	t                        testing.TB
	expectValidateCallerAny  bool
	expectValidateCallerAddr []addr.Address
	expectSends              []*expectedMessage
	expectCreateActor        *expectCreateActor
}

type expectedMessage struct {
	// expectedMessage values
	to     addr.Address
	method abi.MethodNum
	params runtime.CBORMarshaler

	// returns from applying expectedMessage
	sendReturn runtime.SendReturn
	exitCode   exitcode.ExitCode
}

func (m *expectedMessage) Equal(to addr.Address, method abi.MethodNum, params runtime.CBORMarshaler) bool {
	return m.to == to && m.method == method && reflect.DeepEqual(m.params, params)
}

func (m *expectedMessage) String() string {
	return fmt.Sprintf("to: %v method: %v params: %v sendReturn: %v exitCode: %v", m.to, m.method, m.params, m.sendReturn, m.exitCode)
}

type expectCreateActor struct {
	// Expected code CID.
	codeID cid.Cid
	// Expected address.
	address addr.Address
}

var _ runtime.Runtime = &Runtime{}
var _ runtime.StateHandle = &Runtime{}
var typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
var typeOfCborUnmarshaler = reflect.TypeOf((*runtime.CBORUnmarshaler)(nil)).Elem()
var typeOfCborMarshaler = reflect.TypeOf((*runtime.CBORMarshaler)(nil)).Elem()

var cidBuilder = cid.V1Builder{
	Codec:    cid.DagCBOR,
	MhType:   mh.SHA2_256,
	MhLength: 0, // default
}

///// Implementation of the runtime API /////

func (rt *Runtime) Message() runtime.Message {
	rt.requireInCall()
	return rt
}

func (rt *Runtime) CurrTime() abi.Timestamp {
	rt.requireInCall()
	return rt.now
}

func (rt *Runtime) ValidateImmediateCallerAcceptAny() {
	rt.requireInCall()
	if !rt.expectValidateCallerAny {
		rt.failTest("unexpected validate-caller-any")
	}
	rt.expectValidateCallerAny = false
}

func (rt *Runtime) ValidateImmediateCallerIs(addrs ...addr.Address) {
	rt.requireInCall()
	rt.checkArgument(len(addrs) > 0, "addrs must be non-empty")
	// Check and clear expectations.
	if len(rt.expectValidateCallerAddr) == 0 {
		rt.failTest("unexpected validate caller addrs")
		return
	}
	if !reflect.DeepEqual(rt.expectValidateCallerAddr, addrs) {
		rt.failTest("unexpected validate caller addrs %v, expected %v", addrs, rt.expectValidateCallerAddr)
		return
	}
	defer func() {
		rt.expectValidateCallerAddr = nil
	}()

	// Implement method.
	for _, expected := range addrs {
		if rt.caller == expected {
			return
		}
	}
	rt.Abortf(exitcode.SysErrForbidden, "caller address %v forbidden, allowed: %v", rt.caller, addrs)
}

///// Custody ledger implementation /////

func (rt *Runtime) BalanceOf(account addr.Address, asset abi.AssetID) abi.TokenAmount {
	rt.requireInCall()
	return rt.custodyBalance(account, asset)
}

func (rt *Runtime) PullFunds(from addr.Address, asset abi.AssetID, amount abi.TokenAmount) exitcode.ExitCode {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	// A principal's custody account can be debited only by its own call.
	if from != rt.caller {
		rt.Abortf(exitcode.SysErrForbidden, "cannot pull funds from %v on behalf of caller %v", from, rt.caller)
	}
	return rt.transferFunds(from, rt.receiver, asset, amount)
}

func (rt *Runtime) PushFunds(cred crypto.WithdrawalCredential, to addr.Address, asset abi.AssetID, amount abi.TokenAmount) exitcode.ExitCode {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	if !cred.Authorizes(rt.receiver, asset, rt.syscalls.HashBlake2b) {
		rt.Abortf(exitcode.SysErrForbidden, "credential does not authorize debit of %v for %s", rt.receiver, asset)
	}
	return rt.transferFunds(rt.receiver, to, asset, amount)
}

func (rt *Runtime) transferFunds(from, to addr.Address, asset abi.AssetID, amount abi.TokenAmount) exitcode.ExitCode {
	if amount.Sign() < 0 {
		rt.Abortf(exitcode.SysErrorIllegalArgument, "cannot transfer negative amount %v", amount)
	}
	table := rt.custodyTable(asset)
	balance, err := table.Get(from)
	rt.require(err == nil, "failed to read custody balance of %v: %v", from, err)
	if balance.LessThan(amount) {
		return exitcode.SysErrInsufficientFunds
	}
	err = table.Set(from, big.Sub(balance, amount))
	rt.require(err == nil, "failed to debit custody of %v: %v", from, err)
	err = table.Add(to, amount)
	rt.require(err == nil, "failed to credit custody of %v: %v", to, err)
	rt.custody[asset] = table.Root()
	return exitcode.Ok
}

func (rt *Runtime) custodyTable(asset abi.AssetID) *adt.BalanceTable {
	root, ok := rt.custody[asset]
	if !ok {
		table, err := adt.MakeEmptyBalanceTable(adt.AsStore(rt))
		rt.require(err == nil, "failed to create custody table: %v", err)
		rt.custody[asset] = table.Root()
		return table
	}
	return adt.AsBalanceTable(adt.AsStore(rt), root)
}

func (rt *Runtime) custodyBalance(account addr.Address, asset abi.AssetID) abi.TokenAmount {
	balance, err := rt.custodyTable(asset).Get(account)
	rt.require(err == nil, "failed to read custody balance of %v: %v", account, err)
	return balance
}

func (rt *Runtime) State() runtime.StateHandle {
	rt.requireInCall()
	return rt
}

func (rt *Runtime) Store() runtime.Store {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	return rt
}

func (rt *Runtime) Send(toAddr addr.Address, methodNum abi.MethodNum, params runtime.CBORMarshaler) (runtime.SendReturn, exitcode.ExitCode) {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	if len(rt.expectSends) == 0 {
		rt.failTestNow("unexpected send to: %v method: %v, params: %v", toAddr, methodNum, params)
	}
	expectedMsg := rt.expectSends[0]

	if !expectedMsg.Equal(toAddr, methodNum, params) {
		rt.failTest("send does not match expectation.\n"+
			"Call     - to: %v method: %v params: %v\n"+
			"Expected - %v", toAddr, methodNum, params, rt.expectSends[0])
	}

	defer func() {
		rt.expectSends = rt.expectSends[1:]
	}()
	return expectedMsg.sendReturn, expectedMsg.exitCode
}

func (rt *Runtime) NewActorAddress() addr.Address {
	rt.requireInCall()
	if rt.newActorAddr == addr.Undef {
		rt.failTestNow("unexpected call to new actor address")
	}
	defer func() { rt.newActorAddr = addr.Undef }()
	return rt.newActorAddr
}

func (rt *Runtime) CreateActor(codeID cid.Cid, address addr.Address) {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	if rt.expectCreateActor == nil {
		rt.failTestNow("unexpected call to create actor")
	}
	if !rt.expectCreateActor.codeID.Equals(codeID) || rt.expectCreateActor.address != address {
		rt.failTest("unexpected actor being created, expected code: %s address: %s, actual code: %s address: %s",
			rt.expectCreateActor.codeID, rt.expectCreateActor.address, codeID, address)
	}
	rt.actorCodeCIDs[address] = codeID
	defer func() {
		rt.expectCreateActor = nil
	}()
}

func (rt *Runtime) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	rt.requireInCall()
	rt.t.Logf("Mock Runtime Abort ExitCode: %v Reason: %s", errExitCode, fmt.Sprintf(msg, args...))
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (rt *Runtime) Syscalls() runtime.Syscalls {
	rt.requireInCall()
	return &rt.syscalls
}

func (rt *Runtime) Context() context.Context {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	return rt.ctx
}

func (rt *Runtime) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	if rt.receiverType.Defined() && level < builtin.GetActorLogLevelByCode(rt.receiverType, rtt.DEBUG) {
		return
	}
	rt.t.Logf(msg, args...)
}

func (rt *Runtime) StartSpan(_ string) runtime.TraceSpan {
	rt.requireInCall()
	return &TraceSpan{}
}

func (rt *Runtime) checkArgument(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.SysErrorIllegalArgument, msg, args...)
	}
}

///// Store implementation /////

func (rt *Runtime) Get(c cid.Cid, o runtime.CBORUnmarshaler) bool {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	data, found := rt.store[c]
	if found {
		err := o.UnmarshalCBOR(bytes.NewReader(data))
		if err != nil {
			rt.Abortf(exitcode.ErrSerialization, err.Error())
		}
	}
	return found
}

func (rt *Runtime) Put(o runtime.CBORMarshaler) cid.Cid {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	r := bytes.Buffer{}
	err := o.MarshalCBOR(&r)
	if err != nil {
		rt.Abortf(exitcode.ErrSerialization, err.Error())
	}
	data := r.Bytes()
	key, err := cidBuilder.Sum(data)
	if err != nil {
		rt.Abortf(exitcode.ErrSerialization, err.Error())
	}
	rt.store[key] = data
	return key
}

///// Message implementation /////

func (rt *Runtime) Caller() addr.Address {
	return rt.caller
}

func (rt *Runtime) Receiver() addr.Address {
	return rt.receiver
}

///// State handle implementation /////

func (rt *Runtime) Create(obj runtime.CBORMarshaler) {
	if rt.state.Defined() {
		rt.Abortf(exitcode.SysErrorIllegalActor, "state already constructed")
	}
	rt.state = rt.Store().Put(obj)
}

func (rt *Runtime) Readonly(st runtime.CBORUnmarshaler) {
	found := rt.Store().Get(rt.state, st)
	if !found {
		rt.Abortf(exitcode.SysErrorIllegalActor, "actor state not found: %v", rt.state)
	}
}

func (rt *Runtime) Transaction(st runtime.CBORer, f func() interface{}) interface{} {
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "nested transaction")
	}
	rt.Readonly(st)
	rt.inTransaction = true
	defer func() { rt.inTransaction = false }()
	ret := f()
	rt.state = rt.Put(st)
	return ret
}

///// Trace span implementation /////

type TraceSpan struct {
}

func (t TraceSpan) End() {
	// no-op
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

///// Inspection facilities /////

func (rt *Runtime) StateRoot() cid.Cid {
	return rt.state
}

func (rt *Runtime) GetState(o runtime.CBORUnmarshaler) {
	data, found := rt.store[rt.state]
	if !found {
		rt.failTestNow("can't find state at root %v", rt.state) // something internal is messed up
	}
	err := o.UnmarshalCBOR(bytes.NewReader(data))
	if err != nil {
		rt.failTestNow("error loading state: %v", err)
	}
}

func (rt *Runtime) GetCustody(account addr.Address, asset abi.AssetID) abi.TokenAmount {
	return rt.custodyBalance(account, asset)
}

func (rt *Runtime) GetCurrTime() abi.Timestamp {
	return rt.now
}

///// Mocking facilities /////

func (rt *Runtime) SetCaller(address addr.Address, actorType cid.Cid) {
	rt.caller = address
	rt.callerType = actorType
	rt.actorCodeCIDs[address] = actorType
}

func (rt *Runtime) SetCustody(account addr.Address, asset abi.AssetID, amount abi.TokenAmount) {
	table := rt.custodyTable(asset)
	err := table.Set(account, amount)
	rt.require(err == nil, "failed to set custody balance of %v: %v", account, err)
	rt.custody[asset] = table.Root()
}

func (rt *Runtime) SetCurrTime(now abi.Timestamp) {
	rt.now = now
}

func (rt *Runtime) SetNewActorAddress(actAddr addr.Address) {
	rt.require(actAddr.Protocol() == addr.Actor || actAddr.Protocol() == addr.ID,
		"new actor address must be protocol Actor or ID, got protocol: %v", actAddr.Protocol())
	rt.newActorAddr = actAddr
}

func (rt *Runtime) SetHasher(f HasherFunc) {
	rt.syscalls.Hasher = f
}

func (rt *Runtime) ExpectValidateCallerAny() {
	rt.expectValidateCallerAny = true
}

func (rt *Runtime) ExpectValidateCallerAddr(addrs ...addr.Address) {
	rt.require(len(addrs) > 0, "addrs must be non-empty")
	rt.expectValidateCallerAddr = addrs[:]
}

func (rt *Runtime) ExpectSend(toAddr addr.Address, methodNum abi.MethodNum, params runtime.CBORMarshaler, ret runtime.CBORMarshaler, exitCode exitcode.ExitCode) {
	// append to the send queue
	rt.expectSends = append(rt.expectSends, &expectedMessage{
		to:         toAddr,
		method:     methodNum,
		params:     params,
		sendReturn: ReturnWrapper{ret},
		exitCode:   exitCode,
	})
}

func (rt *Runtime) ExpectCreateActor(codeID cid.Cid, address addr.Address) {
	rt.expectCreateActor = &expectCreateActor{
		codeID:  codeID,
		address: address,
	}
}

// Verifies that expected calls were received, and resets all expectations.
func (rt *Runtime) Verify() {
	if rt.expectValidateCallerAny {
		rt.failTest("expected ValidateCallerAny, not received")
	}
	if len(rt.expectValidateCallerAddr) > 0 {
		rt.failTest("expected ValidateCallerAddr %v, not received", rt.expectValidateCallerAddr)
	}
	if len(rt.expectSends) > 0 {
		rt.failTest("expected all messages to be sent, unsent messages %v", rt.expectSends)
	}
	if rt.expectCreateActor != nil {
		rt.failTest("expected actor to be created, uncreated actor code: %v, address %v",
			rt.expectCreateActor.codeID, rt.expectCreateActor.address)
	}

	rt.Reset()
}

// Resets expectations
func (rt *Runtime) Reset() {
	rt.expectValidateCallerAny = false
	rt.expectValidateCallerAddr = nil
	rt.expectSends = nil
	rt.expectCreateActor = nil
}

// Calls f() expecting it to invoke Runtime.Abortf() with a specified exit code.
// The actor state and all custody balances are rolled back, modelling the
// host's all-or-nothing treatment of aborted invocations.
func (rt *Runtime) ExpectAbort(expected exitcode.ExitCode, f func()) {
	prevState := rt.state
	prevCustody := make(map[abi.AssetID]cid.Cid, len(rt.custody))
	for k, v := range rt.custody {
		prevCustody[k] = v
	}

	defer func() {
		r := recover()
		if r == nil {
			rt.failTest("expected abort with code %v but call succeeded", expected)
			return
		}
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		if a.code != expected {
			rt.failTest("abort expected code %v, got %v %s", expected, a.code, a.msg)
		}
		// Roll back state and custody changes.
		rt.state = prevState
		rt.custody = prevCustody
	}()
	f()
}

func (rt *Runtime) Call(method interface{}, params interface{}) interface{} {
	meth := reflect.ValueOf(method)
	rt.verifyExportedMethodType(meth)

	// There's no panic recovery here. If an abort is expected, this call will be inside an ExpectAbort block.
	// If not expected, the panic will escape and cause the test to fail.

	rt.inCall = true
	defer func() { rt.inCall = false }()
	var arg reflect.Value
	if params != nil {
		arg = reflect.ValueOf(params)
	} else {
		arg = reflect.ValueOf(adt.Empty)
	}
	ret := meth.Call([]reflect.Value{reflect.ValueOf(rt), arg})
	return ret[0].Interface()
}

// Checks that all exported methods of an actor have the expected signature.
func CheckActorExports(t *testing.T, act interface{ Exports() []interface{} }) {
	for num, method := range act.Exports() {
		if method == nil {
			continue
		}
		t.Run(fmt.Sprintf("method%d", num), func(t *testing.T) {
			rt := Runtime{t: t}
			rt.verifyExportedMethodType(reflect.ValueOf(method))
		})
	}
}

func (rt *Runtime) verifyExportedMethodType(meth reflect.Value) {
	t := meth.Type()
	rt.require(t.Kind() == reflect.Func, "%v is not a function", meth)
	rt.require(t.NumIn() == 2, "exported method %v must have two parameters, got %v", meth, t.NumIn())
	rt.require(t.In(0) == typeOfRuntimeInterface, "exported method first parameter must be runtime, got %v", t.In(0))
	rt.require(t.In(1).Kind() == reflect.Ptr, "exported method second parameter must be pointer to params, got %v", t.In(1))
	rt.require(t.In(1).Implements(typeOfCborUnmarshaler), "exported method second parameter must be CBOR-unmarshalable params, got %v", t.In(1))
	rt.require(t.NumOut() == 1, "exported method must return a single value")
	rt.require(t.Out(0).Implements(typeOfCborMarshaler), "exported method must return CBOR-marshalable value")
}

func (rt *Runtime) requireInCall() {
	rt.require(rt.inCall, "invalid runtime invocation outside of method call")
}

func (rt *Runtime) require(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.failTestNow(msg, args...)
	}
}

func (rt *Runtime) failTest(msg string, args ...interface{}) {
	rt.t.Logf(msg, args...)
	rt.t.Logf("%s", debug.Stack())
	rt.t.Fail()
}

func (rt *Runtime) failTestNow(msg string, args ...interface{}) {
	rt.t.Logf(msg, args...)
	rt.t.Logf("%s", debug.Stack())
	rt.t.FailNow()
}

type ReturnWrapper struct {
	V runtime.CBORMarshaler
}

func (r ReturnWrapper) Into(o runtime.CBORUnmarshaler) error {
	b := bytes.Buffer{}
	err := r.V.MarshalCBOR(&b)
	if err != nil {
		return err
	}
	err = o.UnmarshalCBOR(&b)
	return err
}
