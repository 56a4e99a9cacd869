package types

import "actorc/common"

// IsBool returns whether a type is the builtin boolean: exactly the union of
// the builtin `True` and `False` data types.
func IsBool(t Type) bool {
	ut, ok := t.(*UnionType)
	if !ok || len(ut.Members) != 2 {
		return false
	}

	seenTrue, seenFalse := false, false
	for _, m := range ut.Members {
		nt, ok := m.(*NominalType)
		if !ok || nt.Def == nil || nt.Def.Kind != DefData || nt.Def.Package != common.BuiltinPackage {
			return false
		}

		switch nt.Def.Name {
		case "True":
			seenTrue = true
		case "False":
			seenFalse = true
		}
	}

	return seenTrue && seenFalse
}
