package depm

import (
	"actorc/common"
	"actorc/types"
)

// builtinDataNames lists the built-in data types in declaration order.
var builtinDataNames = []string{
	"True", "False", "None",
	"I8", "U8", "I16", "U16", "I32", "U32", "I64", "U64", "I128", "U128",
	"F16", "F32", "F64",
}

// Universe is the set of definitions visible in every compilation unit without
// being declared: the built-in value types, `String`, `Any` and the `Bool`
// alias.
type Universe struct {
	// Defs is the map of all built-in definitions by name.
	Defs map[string]*types.Definition

	// Aliases is the map of all built-in type aliases by name.
	Aliases map[string]types.Type
}

// NewUniverse creates a new universe.
func NewUniverse() *Universe {
	u := &Universe{
		Defs:    make(map[string]*types.Definition),
		Aliases: make(map[string]types.Type),
	}

	for _, name := range builtinDataNames {
		u.define(name, types.DefData)
	}

	u.define("Any", types.DefTrait)

	str := u.define("String", types.DefClass)
	str.Members = []*types.Member{
		{Kind: types.MemberVar, Name: "_size", Type: u.Type("U64")},
		{Kind: types.MemberVar, Name: "_alloc", Type: u.Type("U64")},
		{Kind: types.MemberFun, Name: "size"},
		{Kind: types.MemberFun, Name: "string"},
	}

	u.Aliases["Bool"] = types.NewUnion(u.Type("True"), u.Type("False"))

	return u
}

// GetDef attempts to get a built-in definition by name.
func (u *Universe) GetDef(name string) (*types.Definition, bool) {
	def, ok := u.Defs[name]
	return def, ok
}

// GetAlias attempts to get a built-in alias by name.
func (u *Universe) GetAlias(name string) (types.Type, bool) {
	t, ok := u.Aliases[name]
	return t, ok
}

// Type returns the type of a non-generic built-in definition with its default
// capability.  It panics if no such definition exists.
func (u *Universe) Type(name string) types.Type {
	def, ok := u.Defs[name]
	if !ok {
		panic("no builtin named " + name)
	}

	return types.NewNominal(def, def.Kind.DefaultCap())
}

// define adds a new built-in definition.
func (u *Universe) define(name string, kind types.DefKind) *types.Definition {
	def := &types.Definition{Name: name, Package: common.BuiltinPackage, Kind: kind}
	u.Defs[name] = def
	return def
}
