// Package generate decides the machine representation of type-checked types.
// Composite types (tuples, data types, classes and actors) receive a named
// LLVM struct layout together with a trace function that tells the garbage
// collector how to traverse every field of an instance.  All layouts are
// memoized by canonical name in the Generator for the whole backend phase of a
// compilation unit.
package generate

import (
	"fmt"

	"actorc/codegen"
	"actorc/gencall"
	"actorc/genname"
	"actorc/report"
	"actorc/types"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"go.uber.org/zap"
)

// Namer computes the canonical name of a type.  Names must be deterministic
// and collision-free: two types share a layout exactly when their names are
// equal.
type Namer interface {
	TypeName(t types.Type) (string, error)
}

// Reifier substitutes type arguments for the type parameters of a generic
// definition.  It must not have side effects.
type Reifier interface {
	Reify(t types.Type, params []*types.TypeParam, args []types.Type) types.Type
}

// ReifyFunc adapts a function to the Reifier interface.
type ReifyFunc func(t types.Type, params []*types.TypeParam, args []types.Type) types.Type

func (f ReifyFunc) Reify(t types.Type, params []*types.TypeParam, args []types.Type) types.Type {
	return f(t, params, args)
}

// FinishFunc verifies a newly built function of a module.
type FinishFunc func(mod *ir.Module, fn *ir.Func) error

// -----------------------------------------------------------------------------

// Generator is the per-compilation-unit state of the backend: the LLVM module
// under construction and the table of layouts built into it.  A Generator is
// not safe for concurrent use; independent compilation units use independent
// generators.
type Generator struct {
	// mod is the LLVM module being generated.
	mod *ir.Module

	// layouts is the table of all registered layouts by canonical name.  It
	// contains both pending and complete layouts.
	layouts map[string]*Layout

	// journal lists the names of registered layouts in registration order.
	// A failed construction removes everything registered since it began.
	journal []string

	// completed lists the complete layouts in completion order.  The index
	// of a layout in this list determines its descriptor id.
	completed []*Layout

	// gaps lists the fields of complete layouts whose trace strategy could
	// not be decided statically.
	gaps []TraceGap

	// descType is the struct type of every type descriptor.
	descType *lltypes.StructType

	// descPtr is the type of slot 0 of every layout.
	descPtr *lltypes.PointerType

	// objectPtr is the representation of every type whose concrete layout is
	// unknown statically: traits, unions, intersections and structural types.
	objectPtr *lltypes.PointerType

	calls   *gencall.Emitter
	namer   Namer
	reifier Reifier
	finish  FinishFunc
	onICE   func(msg string)
	log     *zap.Logger

	// descriptors indicates whether type descriptors are emitted.
	descriptors bool

	// finished is set once the descriptor table has been emitted.
	finished bool
}

// Option configures a Generator.
type Option func(g *Generator)

// WithNamer sets the namer used to compute canonical names.
func WithNamer(n Namer) Option {
	return func(g *Generator) { g.namer = n }
}

// WithReifier sets the reifier used to instantiate field types.
func WithReifier(r Reifier) Option {
	return func(g *Generator) { g.reifier = r }
}

// WithFinisher sets the verification pass run over every trace function.  A
// nil finisher disables verification.
func WithFinisher(f FinishFunc) Option {
	return func(g *Generator) { g.finish = f }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithICEHandler sets the function invoked on internal compiler errors.  The
// handler must not return normally.
func WithICEHandler(h func(msg string)) Option {
	return func(g *Generator) { g.onICE = h }
}

// WithDescriptors sets whether type descriptors are emitted.
func WithDescriptors(enabled bool) Option {
	return func(g *Generator) { g.descriptors = enabled }
}

// NewGenerator creates a new generator with an empty module.
func NewGenerator(opts ...Option) *Generator {
	mod := ir.NewModule()

	g := &Generator{
		mod:         mod,
		layouts:     make(map[string]*Layout),
		calls:       gencall.NewEmitter(mod),
		namer:       genname.NewNamer(genname.DefaultMaxLen),
		reifier:     ReifyFunc(types.Reify),
		finish:      codegen.FinishFunc,
		onICE:       func(msg string) { report.ReportICE("%s", msg) },
		log:         zap.NewNop(),
		descriptors: true,
	}

	for _, opt := range opts {
		opt(g)
	}

	// %__Descriptor = type { i32 id, i32 kind, i32 fields, void (i8*)* trace }
	g.descType = lltypes.NewStruct()
	mod.NewTypeDef("__Descriptor", g.descType)
	g.descType.Fields = []lltypes.Type{
		lltypes.I32,
		lltypes.I32,
		lltypes.I32,
		lltypes.NewPointer(g.calls.TraceType),
	}
	g.descPtr = lltypes.NewPointer(g.descType)

	// %__object = type { %__Descriptor* }
	objType := lltypes.NewStruct(g.descPtr)
	mod.NewTypeDef("__object", objType)
	g.objectPtr = lltypes.NewPointer(objType)

	return g
}

// Module returns the LLVM module being generated.
func (g *Generator) Module() *ir.Module {
	return g.mod
}

// ObjectPtr returns the representation used for types with no fixed layout.
func (g *Generator) ObjectPtr() lltypes.Type {
	return g.objectPtr
}

// DescriptorPtr returns the type of slot 0 of every layout.
func (g *Generator) DescriptorPtr() lltypes.Type {
	return g.descPtr
}

// Layout returns the registered layout with the given canonical name.
func (g *Generator) Layout(name string) (*Layout, bool) {
	l, ok := g.layouts[name]
	return l, ok
}

// Layouts returns all complete layouts in completion order.
func (g *Generator) Layouts() []*Layout {
	return append([]*Layout(nil), g.completed...)
}

// Gaps returns the fields whose trace strategy is unresolved.
func (g *Generator) Gaps() []TraceGap {
	return append([]TraceGap(nil), g.gaps...)
}

// -----------------------------------------------------------------------------

// ice reports an internal compiler error.  It never returns.
func (g *Generator) ice(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	g.log.Error("internal compiler error", zap.String("msg", msg))
	g.onICE(msg)

	panic("internal compiler error handler returned: " + msg)
}

// repr returns the representative string of a possibly nil type.
func repr(t types.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.Repr()
}
