package types

// Cap is a reference capability attached to a type use.  It must be one of the
// enumerated capabilities below.  CapNone means no capability was written: on
// a type parameter reference it means "whatever capability the type argument
// carries".
type Cap int

// Enumeration of reference capabilities.
const (
	CapNone Cap = iota
	CapIso
	CapTrn
	CapRef
	CapVal
	CapBox
	CapTag
)

var capNames = map[Cap]string{
	CapIso: "iso",
	CapTrn: "trn",
	CapRef: "ref",
	CapVal: "val",
	CapBox: "box",
	CapTag: "tag",
}

func (c Cap) String() string {
	if name, ok := capNames[c]; ok {
		return name
	}

	return ""
}

// ParseCap converts a capability keyword into a Cap.
func ParseCap(name string) (Cap, bool) {
	for c, cname := range capNames {
		if cname == name {
			return c, true
		}
	}

	return CapNone, false
}

// CapForType returns the capability a type resolves to.  Nominal, structural
// and type parameter uses carry their own capability.  Unions and
// intersections resolve to the capability shared by all of their members, or
// CapNone if the members disagree.  Tuples never carry a capability.
func CapForType(t Type) Cap {
	switch v := t.(type) {
	case *NominalType:
		return v.Cap
	case *StructuralType:
		return v.Cap
	case *TypeParamRef:
		return v.Cap
	case *UnionType:
		return commonCap(v.Members)
	case *IsectType:
		return commonCap(v.Members)
	}

	return CapNone
}

// IsTag returns whether a type resolves to the `tag` capability.
func IsTag(t Type) bool {
	return CapForType(t) == CapTag
}

func commonCap(members []Type) Cap {
	if len(members) == 0 {
		return CapNone
	}

	first := CapForType(members[0])
	for _, m := range members[1:] {
		if CapForType(m) != first {
			return CapNone
		}
	}

	return first
}
