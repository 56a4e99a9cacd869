package generate

import (
	"actorc/genname"

	"fortio.org/safecast"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"go.uber.org/zap"
)

// Names of the globals emitted by Finish.
const (
	DescriptorTableName = "__descriptor_table"
	DescriptorCountName = "__descriptor_count"
)

// emitDescriptor emits the descriptor of a complete layout.  User-defined data
// types also receive their singleton instance.
func (g *Generator) emitDescriptor(l *Layout) {
	fieldCount, err := safecast.Conv[int64](len(l.Fields))
	if err != nil {
		g.ice("layout `%s` has too many fields: %s", l.Name, err)
	}

	init := constant.NewStruct(
		g.descType,
		constant.NewInt(lltypes.I32, int64(l.ID)),
		constant.NewInt(lltypes.I32, int64(l.Kind)),
		constant.NewInt(lltypes.I32, fieldCount),
		l.Trace.Fn,
	)

	l.Descriptor = g.mod.NewGlobalDef(genname.DescName(l.Name), init)
	l.Descriptor.Immutable = true

	if l.Kind == LayoutData {
		l.Instance = g.mod.NewGlobalDef(genname.InstName(l.Name), constant.NewStruct(l.Type, l.Descriptor))
		l.Instance.Immutable = true
	}
}

// Finish emits the table of all descriptors in id order along with its length.
// It must be called once every type of the compilation unit has been
// generated.  Calling it again has no effect.
func (g *Generator) Finish() {
	if g.finished || !g.descriptors {
		return
	}
	g.finished = true

	count, err := safecast.Conv[uint64](len(g.completed))
	if err != nil {
		g.ice("invalid descriptor count: %s", err)
	}

	tableType := lltypes.NewArray(count, g.descPtr)

	var init constant.Constant
	if count == 0 {
		init = constant.NewZeroInitializer(tableType)
	} else {
		elems := make([]constant.Constant, len(g.completed))
		for i, l := range g.completed {
			elems[i] = l.Descriptor
		}

		init = constant.NewArray(tableType, elems...)
	}

	table := g.mod.NewGlobalDef(DescriptorTableName, init)
	table.Immutable = true

	countGlob := g.mod.NewGlobalDef(DescriptorCountName, constant.NewInt(lltypes.I32, int64(count)))
	countGlob.Immutable = true

	g.log.Debug("descriptor table emitted", zap.Uint64("count", count))
}
