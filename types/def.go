package types

// DefKind identifies what kind of definition a nominal type refers to.  It
// must be one of the enumerated definition kinds.
type DefKind int

// Enumeration of definition kinds.
const (
	DefTrait DefKind = iota
	DefData
	DefClass
	DefActor
)

func (dk DefKind) String() string {
	switch dk {
	case DefTrait:
		return "trait"
	case DefData:
		return "data"
	case DefClass:
		return "class"
	case DefActor:
		return "actor"
	default:
		return "<invalid>"
	}
}

// ParseDefKind converts a definition kind keyword into a DefKind.
func ParseDefKind(name string) (DefKind, bool) {
	switch name {
	case "trait":
		return DefTrait, true
	case "data":
		return DefData, true
	case "class":
		return DefClass, true
	case "actor":
		return DefActor, true
	}

	return 0, false
}

// DefaultCap returns the capability a use of a definition gets when none is
// written explicitly.
func (dk DefKind) DefaultCap() Cap {
	switch dk {
	case DefActor:
		return CapTag
	case DefData:
		return CapVal
	default:
		return CapRef
	}
}

// -----------------------------------------------------------------------------

// Definition is a type definition: a trait, data type, class or actor.
// Definitions are shared read-only by every instantiation.
type Definition struct {
	Name    string
	Package string
	Kind    DefKind

	// TypeParams are the generic parameters of the definition in order.
	TypeParams []*TypeParam

	// Members are the fields and methods of the definition in declaration
	// order.
	Members []*Member
}

// FullName returns the package-qualified name of the definition.
func (d *Definition) FullName() string {
	if d.Package == "" {
		return d.Name
	}

	return d.Package + "." + d.Name
}

// Fields returns the data members of the definition in declaration order.
func (d *Definition) Fields() []*Member {
	var fields []*Member
	for _, m := range d.Members {
		if m.IsField() {
			fields = append(fields, m)
		}
	}

	return fields
}

// TypeParam is a generic type parameter of a definition.  Type parameters are
// compared by identity.
type TypeParam struct {
	Name string
}

// MemberKind is the kind of a definition member.
type MemberKind int

// Enumeration of member kinds.
const (
	MemberVar MemberKind = iota // mutable field
	MemberLet                   // immutable field
	MemberFun                   // synchronous method
	MemberBe                    // behaviour (asynchronous actor method)
	MemberNew                   // constructor
)

// Member is a single member of a definition.  Type is only set for fields.
type Member struct {
	Kind MemberKind
	Name string
	Type Type
}

// IsField returns whether the member is a data field (var or let).
func (m *Member) IsField() bool {
	return m.Kind == MemberVar || m.Kind == MemberLet
}
