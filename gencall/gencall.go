// Package gencall emits calls into the garbage collector's tracing runtime.
// Every emitter function appends the instructions for tracing exactly one
// field slot to a block of a trace function.
package gencall

import (
	"actorc/genname"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Names of the runtime entry points called by trace functions.
const (
	// RuntimeTraceTag marks an object reachable without following its fields.
	RuntimeTraceTag = "rt_trace_tag"

	// RuntimeTraceActor marks a reference into another actor's heap.
	RuntimeTraceActor = "rt_trace_actor"

	// RuntimeTraceKnown traces an object with a statically known trace
	// function.
	RuntimeTraceKnown = "rt_trace_known"

	// RuntimeTraceUnknown traces an object through its own descriptor.
	RuntimeTraceUnknown = "rt_trace_unknown"
)

// Emitter declares the runtime tracing functions in a module and emits calls
// to them.
type Emitter struct {
	mod *ir.Module

	// TraceType is the signature shared by every trace function: it takes
	// the object to trace as an opaque byte pointer.
	TraceType *types.FuncType

	// runtime holds the declared runtime entry points by name.
	runtime map[string]*ir.Func

	// traceFuncs holds the trace functions of layouts by layout name.  A
	// trace function may be declared (eg. referenced by a sibling layout)
	// before its body is built.
	traceFuncs map[string]*ir.Func
}

// NewEmitter creates a new emitter for the given module.
func NewEmitter(mod *ir.Module) *Emitter {
	return &Emitter{
		mod:        mod,
		TraceType:  types.NewFunc(types.Void, types.I8Ptr),
		runtime:    make(map[string]*ir.Func),
		traceFuncs: make(map[string]*ir.Func),
	}
}

// TraceFunc returns the trace function of the layout with the given canonical
// name, declaring it if it does not exist yet.
func (e *Emitter) TraceFunc(layoutName string) *ir.Func {
	if fn, ok := e.traceFuncs[layoutName]; ok {
		return fn
	}

	fn := e.mod.NewFunc(genname.TraceName(layoutName), types.Void, ir.NewParam("arg", types.I8Ptr))
	e.traceFuncs[layoutName] = fn
	return fn
}

// Discard removes the body of the trace function of the named layout, leaving
// only its declaration.  It does nothing if the function was never declared.
func (e *Emitter) Discard(layoutName string) {
	if fn, ok := e.traceFuncs[layoutName]; ok {
		fn.Blocks = nil
	}
}

// TraceTag emits a tag trace of the field at the given slot address.
func (e *Emitter) TraceTag(b *ir.Block, slot value.Value) {
	b.NewCall(e.runtimeFunc(RuntimeTraceTag, types.I8Ptr), e.objectArg(b, slot))
}

// TraceActor emits an actor trace of the field at the given slot address.
func (e *Emitter) TraceActor(b *ir.Block, slot value.Value) {
	b.NewCall(e.runtimeFunc(RuntimeTraceActor, types.I8Ptr), e.objectArg(b, slot))
}

// TraceUnknown emits a dynamic trace of the field at the given slot address:
// the runtime finds the trace function through the object's descriptor.
func (e *Emitter) TraceUnknown(b *ir.Block, slot value.Value) {
	b.NewCall(e.runtimeFunc(RuntimeTraceUnknown, types.I8Ptr), e.objectArg(b, slot))
}

// TraceKnown emits a trace of the field at the given slot address using the
// trace function of the named layout.  The callee only needs to be declared.
func (e *Emitter) TraceKnown(b *ir.Block, slot value.Value, calleeLayout string) {
	callee := e.TraceFunc(calleeLayout)
	rt := e.runtimeFunc(RuntimeTraceKnown, types.I8Ptr, types.NewPointer(e.TraceType))
	b.NewCall(rt, e.objectArg(b, slot), callee)
}

// -----------------------------------------------------------------------------

// runtimeFunc returns a runtime entry point, declaring it on first use.
func (e *Emitter) runtimeFunc(name string, params ...types.Type) *ir.Func {
	if fn, ok := e.runtime[name]; ok {
		return fn
	}

	irParams := make([]*ir.Param, len(params))
	for i, p := range params {
		irParams[i] = ir.NewParam("", p)
	}

	fn := e.mod.NewFunc(name, types.Void, irParams...)
	e.runtime[name] = fn
	return fn
}

// objectArg loads the reference stored in a field slot and casts it to the
// opaque pointer type the runtime expects.
func (e *Emitter) objectArg(b *ir.Block, slot value.Value) value.Value {
	fieldType := slot.Type().(*types.PointerType).ElemType
	field := b.NewLoad(fieldType, slot)

	if fieldType.Equal(types.I8Ptr) {
		return field
	}

	return b.NewBitCast(field, types.I8Ptr)
}
