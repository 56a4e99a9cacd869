package types

import (
	"testing"

	"actorc/common"

	"github.com/stretchr/testify/require"
)

func dataDef(name string) *Definition {
	return &Definition{Name: name, Package: common.BuiltinPackage, Kind: DefData}
}

func TestIsBool(t *testing.T) {
	trueT := NewNominal(dataDef("True"), CapVal)
	falseT := NewNominal(dataDef("False"), CapVal)
	i32 := NewNominal(dataDef("I32"), CapVal)

	userTrue := NewNominal(&Definition{Name: "True", Package: "user", Kind: DefData}, CapVal)

	type testCase struct {
		name string
		typ  Type
		want bool
	}
	tcs := []testCase{
		{"true|false", NewUnion(trueT, falseT), true},
		{"false|true", NewUnion(falseT, trueT), true},
		{"true|true", NewUnion(trueT, trueT), false},
		{"three members", NewUnion(trueT, falseT, i32), false},
		{"user package", NewUnion(userTrue, falseT), false},
		{"not a union", NewIsect(trueT, falseT), false},
		{"nominal", trueT, false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsBool(tc.typ))
		})
	}
}

func TestCapForType(t *testing.T) {
	cls := &Definition{Name: "C", Kind: DefClass}
	tr := &Definition{Name: "T", Kind: DefTrait}

	require.Equal(t, CapTag, CapForType(NewNominal(cls, CapTag)))
	require.Equal(t, CapRef, CapForType(NewStructural(CapRef, "apply")))
	require.Equal(t, CapTag, CapForType(NewUnion(NewNominal(cls, CapTag), NewNominal(tr, CapTag))))
	require.Equal(t, CapNone, CapForType(NewUnion(NewNominal(cls, CapTag), NewNominal(tr, CapRef))))
	require.Equal(t, CapBox, CapForType(NewIsect(NewNominal(tr, CapBox), NewStructural(CapBox))))
	require.Equal(t, CapNone, CapForType(NewTuple(NewNominal(cls, CapTag))))
	require.True(t, IsTag(NewNominal(cls, CapTag)))
	require.False(t, IsTag(NewUnion(NewNominal(cls, CapTag), NewNominal(tr, CapRef))))
}

func TestReify(t *testing.T) {
	param := &TypeParam{Name: "T"}
	other := &TypeParam{Name: "U"}
	box := &Definition{Name: "Box", Kind: DefClass, TypeParams: []*TypeParam{param}}
	point := &Definition{Name: "Point", Kind: DefClass}
	pointRef := NewNominal(point, CapRef)

	t.Run("param", func(t *testing.T) {
		got := Reify(NewParamRef(param, CapNone), box.TypeParams, []Type{pointRef})
		require.Same(t, pointRef, got)
	})

	t.Run("param with cap", func(t *testing.T) {
		got := Reify(NewParamRef(param, CapTag), box.TypeParams, []Type{pointRef})
		require.Equal(t, "Point tag", got.Repr())
		require.Equal(t, CapRef, pointRef.Cap)
	})

	t.Run("unmatched param", func(t *testing.T) {
		ref := NewParamRef(other, CapNone)
		require.Same(t, ref, Reify(ref, box.TypeParams, []Type{pointRef}))
	})

	t.Run("nested", func(t *testing.T) {
		orig := NewTuple(NewNominal(box, CapRef, NewParamRef(param, CapNone)), NewParamRef(param, CapVal))
		got := Reify(orig, box.TypeParams, []Type{pointRef})
		require.Equal(t, "(Box[Point ref] ref, Point val)", got.Repr())
		require.Equal(t, "(Box[T] ref, T val)", orig.Repr())
	})

	t.Run("no params", func(t *testing.T) {
		orig := NewParamRef(param, CapNone)
		require.Same(t, orig, Reify(orig, nil, nil))
	})
}

func TestApplyCapDistributes(t *testing.T) {
	a := &Definition{Name: "A", Kind: DefClass}
	b := &Definition{Name: "B", Kind: DefTrait}

	u := ApplyCap(NewUnion(NewNominal(a, CapRef), NewNominal(b, CapRef)), CapTag)
	require.Equal(t, CapTag, CapForType(u))

	tup := NewTuple(NewNominal(a, CapRef))
	require.Same(t, tup, ApplyCap(tup, CapTag))
}

func TestDefinitionFields(t *testing.T) {
	i32 := NewNominal(dataDef("I32"), CapVal)
	def := &Definition{
		Name: "Point",
		Kind: DefClass,
		Members: []*Member{
			{Kind: MemberNew, Name: "create"},
			{Kind: MemberVar, Name: "x", Type: i32},
			{Kind: MemberFun, Name: "len"},
			{Kind: MemberLet, Name: "y", Type: i32},
		},
	}

	fields := def.Fields()
	require.Len(t, fields, 2)
	require.Equal(t, "x", fields[0].Name)
	require.Equal(t, "y", fields[1].Name)
}
