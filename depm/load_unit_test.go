package depm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"actorc/common"
	"actorc/genname"
	"actorc/report"
	"actorc/types"

	"github.com/stretchr/testify/require"
)

const shapesUnit = `
name = "shapes"
actorc-version = "0.1.0"

[options]
max-name-len = 80
verify = false

[[definitions]]
name = "Box"
kind = "class"
type-params = ["T"]
methods = ["get"]

  [[definitions.fields]]
  name = "v"
  type = "T"
  mutable = true

[[definitions]]
name = "Point"
kind = "class"
constructors = ["create"]

  [[definitions.fields]]
  name = "x"
  type = "I64"

  [[definitions.fields]]
  name = "y"
  type = "I64"

[[definitions]]
name = "Counter"
kind = "actor"
behaviours = ["incr"]

  [[definitions.fields]]
  name = "count"
  type = "U64"
  mutable = true

[[uses]]
type = "Box[Point]"

[[uses]]
type = "(I32, Counter)"

[[uses]]
type = "(Point | Counter) tag"
`

func writeUnit(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test"+common.UnitFileExt)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadUnit(t *testing.T) {
	u, err := LoadUnit(writeUnit(t, shapesUnit))
	require.NoError(t, err)

	require.Equal(t, "shapes", u.Name)
	require.True(t, filepath.IsAbs(u.AbsPath))
	require.Equal(t, Options{MaxNameLen: 80, Descriptors: true, Verify: false}, u.Options)

	require.Len(t, u.Defs, 3)
	box, point, counter := u.Defs[0], u.Defs[1], u.Defs[2]

	require.Equal(t, "shapes.Box", box.FullName())
	require.Equal(t, types.DefClass, box.Kind)
	require.Len(t, box.TypeParams, 1)
	require.Len(t, box.Members, 2)

	fields := box.Fields()
	require.Len(t, fields, 1)
	require.Equal(t, types.MemberVar, fields[0].Kind)
	ref, ok := fields[0].Type.(*types.TypeParamRef)
	require.True(t, ok)
	require.Same(t, box.TypeParams[0], ref.Param)

	require.Len(t, point.Fields(), 2)
	require.Equal(t, types.MemberLet, point.Fields()[0].Kind)
	require.Len(t, point.Members, 3)
	require.Equal(t, types.MemberNew, point.Members[2].Kind)

	require.Equal(t, types.DefActor, counter.Kind)
	require.Equal(t, types.MemberBe, counter.Members[1].Kind)

	require.Len(t, u.Uses, 3)
	require.Equal(t, "Box[Point]", u.Uses[0].Expr)

	boxUse, ok := u.Uses[0].Type.(*types.NominalType)
	require.True(t, ok)
	require.Same(t, box, boxUse.Def)
	require.Equal(t, types.CapRef, boxUse.Cap)
	require.Same(t, point, boxUse.TypeArgs[0].(*types.NominalType).Def)

	tuple, ok := u.Uses[1].Type.(*types.TupleType)
	require.True(t, ok)
	require.Equal(t, types.CapVal, tuple.Elems[0].(*types.NominalType).Cap)
	require.Equal(t, types.CapTag, tuple.Elems[1].(*types.NominalType).Cap)

	union, ok := u.Uses[2].Type.(*types.UnionType)
	require.True(t, ok)
	require.True(t, types.IsTag(union))
}

func TestLoadUnitDefaults(t *testing.T) {
	u, err := LoadUnit(writeUnit(t, `
name = "empty"
actorc-version = "0.1.0"
`))
	require.NoError(t, err)

	require.Equal(t, Options{MaxNameLen: genname.DefaultMaxLen, Descriptors: true, Verify: true}, u.Options)
	require.Empty(t, u.Defs)
	require.Empty(t, u.Uses)
}

func TestLoadUnitBuiltins(t *testing.T) {
	u, err := LoadUnit(writeUnit(t, `
name = "b"
actorc-version = "0.1.0"

[[uses]]
type = "Bool"

[[uses]]
type = "String"

[[uses]]
type = "Any box"
`))
	require.NoError(t, err)

	require.True(t, types.IsBool(u.Uses[0].Type))

	str := u.Uses[1].Type.(*types.NominalType)
	require.Equal(t, common.BuiltinPackage+".String", str.Def.FullName())
	require.Len(t, str.Def.Fields(), 2)

	anyType := u.Uses[2].Type.(*types.NominalType)
	require.Equal(t, types.DefTrait, anyType.Def.Kind)
	require.Equal(t, types.CapBox, anyType.Cap)
}

func TestLoadUnitErrors(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		where string
		msg   string
	}{
		{
			"missing name",
			`actorc-version = "0.1.0"`,
			"unit", "missing unit name",
		},
		{
			"reserved name",
			`name = "builtin"`,
			"unit", "unit name `builtin` is reserved",
		},
		{
			"unknown kind",
			"name = \"u\"\n[[definitions]]\nname = \"A\"\nkind = \"struct\"",
			"definition `A`", "unknown definition kind `struct`",
		},
		{
			"duplicate definition",
			"name = \"u\"\n[[definitions]]\nname = \"A\"\nkind = \"class\"\n[[definitions]]\nname = \"A\"\nkind = \"class\"",
			"definition `A`", "multiple definitions with the same name",
		},
		{
			"shadows builtin",
			"name = \"u\"\n[[definitions]]\nname = \"I32\"\nkind = \"class\"",
			"definition `I32`", "definition shadows a built-in type",
		},
		{
			"data fields",
			"name = \"u\"\n[[definitions]]\nname = \"D\"\nkind = \"data\"\n[[definitions.fields]]\nname = \"x\"\ntype = \"I32\"",
			"definition `D`", "data types cannot declare fields",
		},
		{
			"class behaviours",
			"name = \"u\"\n[[definitions]]\nname = \"C\"\nkind = \"class\"\nbehaviours = [\"run\"]",
			"definition `C`", "only actors can declare behaviours",
		},
		{
			"duplicate member",
			"name = \"u\"\n[[definitions]]\nname = \"C\"\nkind = \"class\"\nmethods = [\"x\"]\n[[definitions.fields]]\nname = \"x\"\ntype = \"I32\"",
			"definition `C`", "multiple members named `x`",
		},
		{
			"duplicate type parameter",
			"name = \"u\"\n[[definitions]]\nname = \"C\"\nkind = \"class\"\ntype-params = [\"T\", \"T\"]",
			"definition `C`", "multiple type parameters named `T`",
		},
		{
			"negative max len",
			"name = \"u\"\n[options]\nmax-name-len = -1",
			"options", "max-name-len must not be negative",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseUnit("/test.unit.toml", []byte(c.text))
			require.Error(t, err)

			var ue *UnitError
			require.True(t, errors.As(err, &ue), "got %v", err)
			require.Equal(t, c.where, ue.Where)
			require.Equal(t, c.msg, ue.Message)
		})
	}
}

func TestLoadUnitExprErrors(t *testing.T) {
	cases := []struct {
		name  string
		use   string
		msg   string
		start int
		end   int
	}{
		{"undefined", "Box[Missing]", "undefined type `Missing`", 4, 11},
		{"arity", "Box[I32, I32]", "type `Box` expects 1 type arguments but received 2", 0, 13},
		{"alias args", "Bool[I32]", "type `Bool` does not accept type arguments", 0, 9},
		{"tuple cap", "(I32, I64) tag", "capabilities cannot be applied to tuples", 0, 14},
		{"syntax", "Box[", "unexpected end of type expression", 4, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			text := "name = \"u\"\n[[definitions]]\nname = \"Box\"\nkind = \"class\"\ntype-params = [\"T\"]\n[[uses]]\ntype = \"" + c.use + "\""
			_, err := ParseUnit("/test.unit.toml", []byte(text))
			require.Error(t, err)

			var ee *ExprError
			require.True(t, errors.As(err, &ee), "got %v", err)
			require.Equal(t, "use 1", ee.Where)
			require.Equal(t, c.use, ee.Expr)
			require.Equal(t, c.msg, ee.Err.Message)
			require.Equal(t, &report.TextSpan{StartCol: c.start, EndCol: c.end}, ee.Err.Span)
		})
	}
}

func TestFieldTypeParamScope(t *testing.T) {
	_, err := ParseUnit("/test.unit.toml", []byte(`
name = "u"

[[definitions]]
name = "Box"
kind = "class"
type-params = ["T"]

[[uses]]
type = "T"
`))

	var ee *ExprError
	require.True(t, errors.As(err, &ee))
	require.Equal(t, "undefined type `T`", ee.Err.Message)
}
