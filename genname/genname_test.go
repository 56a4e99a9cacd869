package genname

import (
	"errors"
	"strings"
	"testing"

	"actorc/types"

	"github.com/stretchr/testify/require"
)

var (
	i32Def   = &types.Definition{Name: "I32", Package: "builtin", Kind: types.DefData}
	pointDef = &types.Definition{Name: "Point", Package: "shapes", Kind: types.DefClass}
	tParam   = &types.TypeParam{Name: "T"}
	boxDef   = &types.Definition{Name: "Box", Package: "shapes", Kind: types.DefClass, TypeParams: []*types.TypeParam{tParam}}
)

func TestTypeName(t *testing.T) {
	i32 := types.NewNominal(i32Def, types.CapVal)
	point := types.NewNominal(pointDef, types.CapRef)

	type testCase struct {
		typ  types.Type
		want string
	}
	tcs := []testCase{
		{i32, "builtin.I32"},
		{types.NewNominal(pointDef, types.CapTag), "shapes.Point"},
		{types.NewNominal(boxDef, types.CapRef, point), "shapes.Box[shapes.Point#ref]"},
		{types.NewNominal(boxDef, types.CapRef, types.NewNominal(pointDef, types.CapTag)), "shapes.Box[shapes.Point#tag]"},
		{types.NewTuple(i32, point), "(builtin.I32#val,shapes.Point#ref)"},
		{types.NewUnion(i32, point), "(builtin.I32#val|shapes.Point#ref)"},
		{types.NewIsect(point, types.NewStructural(types.CapRef, "apply")), "(shapes.Point#ref&{apply}#ref)"},
		{types.NewStructural(types.CapTag, "a", "b"), "{a b}"},
	}
	for _, tc := range tcs {
		t.Run(tc.want, func(t *testing.T) {
			n := NewNamer(0)
			name, err := n.TypeName(tc.typ)
			require.NoError(t, err)
			require.Equal(t, tc.want, name)
		})
	}
}

func TestTypeNameDistinguishesInstantiations(t *testing.T) {
	n := NewNamer(DefaultMaxLen)
	a, err := n.TypeName(types.NewNominal(boxDef, types.CapRef, types.NewNominal(i32Def, types.CapVal)))
	require.NoError(t, err)
	b, err := n.TypeName(types.NewNominal(boxDef, types.CapRef, types.NewNominal(pointDef, types.CapRef)))
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	// identical instantiations built from different nodes share a name
	c, err := n.TypeName(types.NewNominal(boxDef, types.CapVal, types.NewNominal(i32Def, types.CapVal)))
	require.NoError(t, err)
	require.Equal(t, a, c)
}

func TestTypeNameNotComputable(t *testing.T) {
	tcs := map[string]types.Type{
		"unreified param": types.NewParamRef(tParam, types.CapNone),
		"nested param":    types.NewTuple(types.NewParamRef(tParam, types.CapRef)),
		"missing def":     &types.NominalType{Cap: types.CapRef},
		"arity":           types.NewNominal(boxDef, types.CapRef),
		"nil":             nil,
	}
	for name, typ := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := NewNamer(0).TypeName(typ)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrNotComputable))

			var ne *NameError
			require.True(t, errors.As(err, &ne))
		})
	}
}

func TestTypeNameShortens(t *testing.T) {
	elems := make([]types.Type, 20)
	for i := range elems {
		elems[i] = types.NewNominal(pointDef, types.CapRef)
	}
	long := types.NewTuple(elems...)

	n := NewNamer(64)
	name, err := n.TypeName(long)
	require.NoError(t, err)
	require.Len(t, name, 64)
	require.True(t, strings.HasPrefix(name, "(shapes.Point#ref,"))
	require.Contains(t, name, "$")

	// deterministic across namers
	again, err := NewNamer(64).TypeName(types.NewTuple(elems...))
	require.NoError(t, err)
	require.Equal(t, name, again)

	// a different long name hashes differently
	other, err := n.TypeName(types.NewTuple(append(elems, types.NewNominal(i32Def, types.CapVal))...))
	require.NoError(t, err)
	require.NotEqual(t, name, other)
}

func TestSymbolNames(t *testing.T) {
	require.Equal(t, "shapes.Point$trace", TraceName("shapes.Point"))
	require.Equal(t, "shapes.Point$desc", DescName("shapes.Point"))
	require.Equal(t, "builtin.None$inst", InstName("builtin.None"))
	require.Equal(t, "`a`, `b`", Describe([]string{"a", "b"}))
}
