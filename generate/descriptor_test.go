package generate

import (
	"testing"

	"actorc/codegen"
	"actorc/types"

	"github.com/llir/llvm/ir/constant"
	"github.com/stretchr/testify/require"
)

// descFields returns the id, kind and field count stored in a descriptor.
func descFields(t *testing.T, l *Layout) (int64, int64, int64) {
	t.Helper()

	init, ok := l.Descriptor.Init.(*constant.Struct)
	require.True(t, ok)
	require.Len(t, init.Fields, 4)
	require.Same(t, l.Trace.Fn, init.Fields[3])

	get := func(c constant.Constant) int64 {
		i, ok := c.(*constant.Int)
		require.True(t, ok)
		return i.X.Int64()
	}

	return get(init.Fields[0]), get(init.Fields[1]), get(init.Fields[2])
}

func TestDescriptors(t *testing.T) {
	g := newGen(t)

	tParam := &types.TypeParam{Name: "T"}
	box := newDef(types.DefClass, "Box", []*types.TypeParam{tParam}, types.NewParamRef(tParam, types.CapNone))
	point := newDef(types.DefClass, "Point", nil, universe.Type("I64"), universe.Type("I64"))
	counter := newDef(types.DefActor, "Counter", nil, universe.Type("U64"))

	mustGen(t, g, use(box, use(point)))
	mustGen(t, g, types.NewTuple(universe.Type("I32"), use(counter)))
	mustGen(t, g, universe.Type("None"))

	layouts := g.Layouts()
	require.Len(t, layouts, 5)

	// ids follow completion order: fields complete before their parents
	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.Name
		require.Equal(t, int32(i+1), l.ID)
	}
	require.Equal(t, []string{
		"test.Point",
		"test.Box[test.Point#ref]",
		"test.Counter",
		"(builtin.I32#val,test.Counter#tag)",
		"builtin.None",
	}, names)

	cases := []struct {
		name   string
		kind   LayoutKind
		fields int64
	}{
		{"test.Point", LayoutClass, 2},
		{"test.Box[test.Point#ref]", LayoutClass, 1},
		{"test.Counter", LayoutActor, 1},
		{"(builtin.I32#val,test.Counter#tag)", LayoutTuple, 2},
		{"builtin.None", LayoutData, 0},
	}
	for _, c := range cases {
		l := mustLayout(t, g, c.name)
		id, kind, fields := descFields(t, l)
		require.Equal(t, int64(l.ID), id, c.name)
		require.Equal(t, int64(c.kind), kind, c.name)
		require.Equal(t, c.fields, fields, c.name)
	}

	none := mustLayout(t, g, "builtin.None")
	require.NotNil(t, none.Instance)
	require.Equal(t, "builtin.None$inst", none.Instance.Name())
	inst, ok := none.Instance.Init.(*constant.Struct)
	require.True(t, ok)
	require.Same(t, none.Descriptor, inst.Fields[0])
}

func TestFinish(t *testing.T) {
	g := newGen(t)

	point := newDef(types.DefClass, "Point", nil, universe.Type("I64"))
	mustGen(t, g, types.NewTuple(universe.Type("I32"), use(point)))

	g.Finish()
	globals := len(g.Module().Globals)

	var table, count bool
	for _, glob := range g.Module().Globals {
		switch glob.Name() {
		case DescriptorTableName:
			table = true
			arr, ok := glob.Init.(*constant.Array)
			require.True(t, ok)
			require.Len(t, arr.Elems, 2)
			require.Same(t, mustLayout(t, g, "test.Point").Descriptor, arr.Elems[0])
		case DescriptorCountName:
			count = true
			require.Equal(t, int64(2), glob.Init.(*constant.Int).X.Int64())
		}
	}
	require.True(t, table)
	require.True(t, count)

	g.Finish()
	require.Len(t, g.Module().Globals, globals)

	// every trace function in the finished module passes verification
	for _, l := range g.Layouts() {
		require.NoError(t, codegen.FinishFunc(g.Module(), l.Trace.Fn))
	}
}

func TestDescriptorsDisabled(t *testing.T) {
	g := newGen(t, WithDescriptors(false))

	mustGen(t, g, universe.Type("None"))
	mustGen(t, g, universe.Type("String"))
	g.Finish()

	require.Empty(t, g.Module().Globals)
	for _, l := range g.Layouts() {
		require.Nil(t, l.Descriptor)
		require.Nil(t, l.Instance)
		require.NotZero(t, l.ID)
	}
}
