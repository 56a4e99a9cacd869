package generate

import (
	"actorc/types"

	"fortio.org/safecast"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"go.uber.org/zap"
)

// Strategy is the way the garbage collector traverses a field.
type Strategy int

// Enumeration of trace strategies.
const (
	// TraceNone means the field holds no traceable reference.
	TraceNone Strategy = iota

	// TraceTag means the referenced object is marked reachable but its
	// fields are never followed.
	TraceTag

	// TraceKnown means the field is traced with a statically known trace
	// function.
	TraceKnown

	// TraceUnknown means the field is traced through the descriptor of the
	// object it refers to.
	TraceUnknown

	// TraceActor means the field refers into another actor's heap.
	TraceActor

	// TraceUnresolved means no strategy could be decided statically.  Nothing
	// is emitted for such fields.
	TraceUnresolved
)

func (s Strategy) String() string {
	switch s {
	case TraceNone:
		return "none"
	case TraceTag:
		return "tag"
	case TraceKnown:
		return "known"
	case TraceUnknown:
		return "unknown"
	case TraceActor:
		return "actor"
	case TraceUnresolved:
		return "unresolved"
	}

	return "invalid"
}

// Traverses returns whether the strategy follows the referenced object.
func (s Strategy) Traverses() bool {
	switch s {
	case TraceKnown, TraceUnknown, TraceActor:
		return true
	}

	return false
}

// emits returns whether a runtime call is emitted for the strategy.
func (s Strategy) emits() bool {
	return s == TraceTag || s.Traverses()
}

// SlotTrace records how one slot of a layout is traced.
type SlotTrace struct {
	// Slot is the index of the slot in the layout.  It is always at least 1.
	Slot int

	// Strategy is the trace strategy of the slot.
	Strategy Strategy

	// Callee is the name of the layout whose trace function is used for a
	// known trace.
	Callee string
}

// TraceProc is the trace procedure of a layout.
type TraceProc struct {
	// Fn is the trace function.  Its single parameter is the object to trace
	// as an opaque byte pointer.
	Fn *ir.Func

	// Slots records the trace of every field slot in order.
	Slots []SlotTrace
}

// TraceGap is a field whose trace strategy could not be decided statically.
type TraceGap struct {
	// Layout is the name of the layout containing the field.
	Layout string

	// Slot is the slot index of the field.
	Slot int

	// Type is the type of the field.
	Type types.Type
}

// -----------------------------------------------------------------------------

// buildTrace builds the trace function of a layout whose struct body is
// complete.
func (g *Generator) buildTrace(l *Layout) (*TraceProc, error) {
	fn := g.calls.TraceFunc(l.Name)
	entry := fn.NewBlock("entry")

	object := entry.NewBitCast(fn.Params[0], l.Ptr)
	object.SetName("object")

	proc := &TraceProc{Fn: fn, Slots: make([]SlotTrace, len(l.Fields))}
	for i, ft := range l.Fields {
		st, err := g.classify(i+1, ft)
		if err != nil {
			return nil, &GenError{Kind: ErrFieldFailed, Layout: l.Name, Type: ft, Field: i, Err: err}
		}

		proc.Slots[i] = st
		if !st.Strategy.emits() {
			continue
		}

		slot := entry.NewGetElementPtr(l.Type, object, slotIndex(0), slotIndex(st.Slot))

		switch st.Strategy {
		case TraceTag:
			g.calls.TraceTag(entry, slot)
		case TraceKnown:
			g.calls.TraceKnown(entry, slot, st.Callee)
		case TraceUnknown:
			g.calls.TraceUnknown(entry, slot)
		case TraceActor:
			g.calls.TraceActor(entry, slot)
		}
	}

	entry.NewRet(nil)

	if g.finish != nil {
		if err := g.finish(g.mod, fn); err != nil {
			return nil, &GenError{Kind: ErrVerifyFailed, Layout: l.Name, Type: l.Source, Err: err}
		}
	}

	return proc, nil
}

// classify decides the trace strategy of a field of the given type.
func (g *Generator) classify(slot int, ft types.Type) (SlotTrace, error) {
	st := SlotTrace{Slot: slot}

	switch v := ft.(type) {
	case *types.UnionType:
		switch {
		case types.IsBool(v):
			st.Strategy = TraceNone
		case types.IsTag(v):
			st.Strategy = TraceUnresolved
		default:
			st.Strategy = TraceUnknown
		}
	case *types.IsectType, *types.StructuralType:
		if types.IsTag(ft) {
			st.Strategy = TraceTag
		} else {
			st.Strategy = TraceUnknown
		}
	case *types.TupleType:
		name, err := g.namer.TypeName(v)
		if err != nil {
			return st, &GenError{Kind: ErrNameNotComputable, Type: v, Err: err}
		}

		st.Strategy = TraceKnown
		st.Callee = name
	case *types.NominalType:
		switch v.Def.Kind {
		case types.DefData:
			st.Strategy = TraceNone
		case types.DefActor:
			st.Strategy = TraceActor
		case types.DefTrait:
			if types.IsTag(v) {
				st.Strategy = TraceTag
			} else {
				st.Strategy = TraceUnknown
			}
		case types.DefClass:
			if types.IsTag(v) {
				st.Strategy = TraceTag
				break
			}

			name, err := g.namer.TypeName(v)
			if err != nil {
				return st, &GenError{Kind: ErrNameNotComputable, Type: v, Err: err}
			}

			st.Strategy = TraceKnown
			st.Callee = name
		default:
			g.ice("definition `%s` has invalid kind %d", v.Def.Name, int(v.Def.Kind))
		}
	default:
		g.ice("unable to classify field of type `%s`", repr(ft))
	}

	return st, nil
}

// completeLayout marks a layout complete and emits its descriptor.
func (g *Generator) completeLayout(l *Layout) {
	l.state = layoutComplete
	g.completed = append(g.completed, l)

	id, err := safecast.Conv[int32](len(g.completed))
	if err != nil {
		g.ice("too many layouts: %s", err)
	}
	l.ID = id

	for _, st := range l.Trace.Slots {
		if st.Strategy == TraceUnresolved {
			gap := TraceGap{Layout: l.Name, Slot: st.Slot, Type: l.Fields[st.Slot-1]}
			g.gaps = append(g.gaps, gap)

			g.log.Warn(
				"field trace unresolved",
				zap.String("layout", l.Name),
				zap.Int("slot", st.Slot),
				zap.String("type", gap.Type.Repr()),
			)
		}
	}

	if g.descriptors {
		g.emitDescriptor(l)
	}

	g.log.Debug(
		"layout complete",
		zap.String("layout", l.Name),
		zap.Int32("id", l.ID),
		zap.Int("slots", l.SlotCount()),
	)
}

// slotIndex returns a GEP index constant.
func slotIndex(n int) *constant.Int {
	idx, err := safecast.Conv[int64](n)
	if err != nil {
		panic(err)
	}

	return constant.NewInt(lltypes.I32, idx)
}
