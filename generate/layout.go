package generate

import (
	"actorc/genname"
	"actorc/types"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"go.uber.org/zap"
)

// LayoutKind is the kind of composite type a layout represents.  Its value is
// stored in the kind field of the layout's descriptor.
type LayoutKind int

// Enumeration of layout kinds.
const (
	LayoutTuple LayoutKind = iota
	LayoutData
	LayoutClass
	LayoutActor
)

func (lk LayoutKind) String() string {
	switch lk {
	case LayoutTuple:
		return "tuple"
	case LayoutData:
		return "data"
	case LayoutClass:
		return "class"
	case LayoutActor:
		return "actor"
	}

	return "unknown"
}

// layoutKindOf returns the layout kind of a definition kind.
func layoutKindOf(dk types.DefKind) LayoutKind {
	switch dk {
	case types.DefData:
		return LayoutData
	case types.DefActor:
		return LayoutActor
	}

	return LayoutClass
}

// layoutState indicates whether the construction of a layout has finished.
type layoutState int

const (
	// layoutPending means the layout is registered but its fields are still
	// being resolved.  Recursive references to it resolve to its pointer type.
	layoutPending layoutState = iota

	// layoutComplete means the layout's struct body and trace function are
	// both built.
	layoutComplete
)

// Layout is the machine representation of a composite type: a named struct
// whose slot 0 holds the type's descriptor pointer and whose remaining slots
// hold its fields in declaration order.
type Layout struct {
	// Name is the canonical name of the represented type.
	Name string

	// Kind is the kind of the represented type.
	Kind LayoutKind

	// Source is the type this layout was built for.
	Source types.Type

	// Fields are the reified field types in declaration order.  Field i is
	// stored in slot i+1.
	Fields []types.Type

	// Type is the named struct type of the layout.  It is opaque while the
	// layout is pending.
	Type *lltypes.StructType

	// Ptr is the pointer type used to refer to instances of the layout.
	Ptr *lltypes.PointerType

	// Trace is the trace procedure of the layout.  It is nil while the
	// layout is pending.
	Trace *TraceProc

	// ID is the descriptor id of the layout.  Ids start from 1 and are
	// assigned in completion order.
	ID int32

	// Descriptor is the global holding the layout's descriptor.  It is nil if
	// descriptor emission is disabled.
	Descriptor *ir.Global

	// Instance is the singleton instance of a user-defined data type.
	Instance *ir.Global

	state layoutState
}

// Complete returns whether construction of the layout has finished.
func (l *Layout) Complete() bool {
	return l.state == layoutComplete
}

// SlotCount returns the number of slots of the layout including the
// descriptor slot.
func (l *Layout) SlotCount() int {
	return len(l.Fields) + 1
}

// -----------------------------------------------------------------------------

// makeObject returns the layout of a nominal type, building it if necessary.
func (g *Generator) makeObject(nt *types.NominalType) (*Layout, error) {
	name, err := g.namer.TypeName(nt)
	if err != nil {
		return nil, &GenError{Kind: ErrNameNotComputable, Type: nt, Err: err}
	}

	if l, ok := g.layouts[name]; ok {
		return l, nil
	}

	return g.buildLayout(name, layoutKindOf(nt.Def.Kind), nt, g.fieldTypes(nt))
}

// makeTuple returns the layout of a tuple type, building it if necessary.
func (g *Generator) makeTuple(tt *types.TupleType) (*Layout, error) {
	name, err := g.namer.TypeName(tt)
	if err != nil {
		return nil, &GenError{Kind: ErrNameNotComputable, Type: tt, Err: err}
	}

	if l, ok := g.layouts[name]; ok {
		return l, nil
	}

	return g.buildLayout(name, LayoutTuple, tt, tt.Elems)
}

// fieldTypes returns the types of the data fields of a nominal type in
// declaration order with the type's arguments substituted for the type
// parameters of its definition.  Data types never have fields.
func (g *Generator) fieldTypes(nt *types.NominalType) []types.Type {
	if nt.Def.Kind == types.DefData {
		return nil
	}

	fields := nt.Def.Fields()
	ftypes := make([]types.Type, len(fields))
	for i, field := range fields {
		if len(nt.Def.TypeParams) == 0 {
			ftypes[i] = field.Type
		} else {
			ftypes[i] = g.reifier.Reify(field.Type, nt.Def.TypeParams, nt.TypeArgs)
		}
	}

	return ftypes
}

// buildLayout builds a new layout.  The layout is registered as pending before
// any field is resolved so that recursive references to it terminate.  If any
// step fails, every layout registered since this call began is removed.
func (g *Generator) buildLayout(name string, kind LayoutKind, src types.Type, fields []types.Type) (*Layout, error) {
	st := lltypes.NewStruct()
	st.Opaque = true
	g.mod.NewTypeDef(name, st)

	l := &Layout{
		Name:   name,
		Kind:   kind,
		Source: src,
		Fields: fields,
		Type:   st,
		Ptr:    lltypes.NewPointer(st),
		state:  layoutPending,
	}

	mark := len(g.journal)
	g.layouts[name] = l
	g.journal = append(g.journal, name)

	g.log.Debug("layout pending", zap.String("layout", name), zap.Stringer("kind", kind))

	slots := make([]lltypes.Type, len(fields)+1)
	slots[0] = g.descPtr
	for i, ft := range fields {
		llft, err := g.GenType(ft)
		if err != nil {
			g.rollback(mark)
			return nil, &GenError{Kind: ErrFieldFailed, Layout: name, Type: ft, Field: i, Err: err}
		}

		slots[i+1] = llft
	}

	st.Fields = slots
	st.Opaque = false

	trace, err := g.buildTrace(l)
	if err != nil {
		g.rollback(mark)
		return nil, err
	}

	l.Trace = trace
	g.completeLayout(l)
	return l, nil
}

// rollback removes every layout registered since the journal had length mark,
// along with all the module entities built for them.
func (g *Generator) rollback(mark int) {
	discarded := make(map[string]struct{}, len(g.journal)-mark)
	for _, name := range g.journal[mark:] {
		discarded[name] = struct{}{}
		l := g.layouts[name]
		delete(g.layouts, name)

		g.removeTypeDef(l.Type)
		g.calls.Discard(name)
		if l.Descriptor != nil {
			g.removeGlobal(l.Descriptor)
		}
		if l.Instance != nil {
			g.removeGlobal(l.Instance)
		}
	}

	g.log.Debug("layouts discarded", zap.String("layouts", genname.Describe(g.journal[mark:])))
	g.journal = g.journal[:mark]

	// Layouts registered before the mark are either complete or still
	// pending; so the discarded layouts form a suffix of completion order.
	n := len(g.completed)
	for n > 0 {
		if _, ok := discarded[g.completed[n-1].Name]; !ok {
			break
		}
		n--
	}
	g.completed = g.completed[:n]

	gaps := g.gaps[:0]
	for _, gap := range g.gaps {
		if _, ok := discarded[gap.Layout]; !ok {
			gaps = append(gaps, gap)
		}
	}
	g.gaps = gaps
}

// removeTypeDef removes a named type from the module.
func (g *Generator) removeTypeDef(t lltypes.Type) {
	for i, def := range g.mod.TypeDefs {
		if def == t {
			g.mod.TypeDefs = append(g.mod.TypeDefs[:i], g.mod.TypeDefs[i+1:]...)
			return
		}
	}
}

// removeGlobal removes a global from the module.
func (g *Generator) removeGlobal(glob *ir.Global) {
	for i, def := range g.mod.Globals {
		if def == glob {
			g.mod.Globals = append(g.mod.Globals[:i], g.mod.Globals[i+1:]...)
			return
		}
	}
}
