// Package genname computes canonical names for types.  A canonical name
// identifies a fully instantiated type: two type uses receive the same name
// exactly when they must share a memory layout.
package genname

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"actorc/types"
	"actorc/util"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"lukechampine.com/blake3"
)

// ErrNotComputable is wrapped by every error returned from TypeName.
var ErrNotComputable = errors.New("canonical name not computable")

// NameError reports a type that cannot be given a canonical name.
type NameError struct {
	Type   types.Type
	Reason string
}

func (ne *NameError) Error() string {
	if ne.Type == nil {
		return fmt.Sprintf("%s: %s", ErrNotComputable, ne.Reason)
	}

	return fmt.Sprintf("%s for `%s`: %s", ErrNotComputable, ne.Type.Repr(), ne.Reason)
}

func (ne *NameError) Unwrap() error {
	return ErrNotComputable
}

// DefaultMaxLen is the canonical name length above which names are shortened.
const DefaultMaxLen = 120

// memoSize is the number of type nodes whose names are remembered.
const memoSize = 1024

// hashLen is the number of hex characters of the hash suffix.
const hashLen = 32

// Namer computes canonical names.  Computed names are memoized per type node:
// type nodes are immutable so the memo never needs invalidation.
type Namer struct {
	// MaxLen is the length above which a name is replaced by a prefix of the
	// name followed by a hash of the full name.  Zero disables shortening.
	MaxLen int

	memo *simplelru.LRU[types.Type, string]
}

// NewNamer creates a new namer with the given maximum name length.
func NewNamer(maxLen int) *Namer {
	memo, err := simplelru.NewLRU[types.Type, string](memoSize, nil)
	if err != nil {
		panic(err)
	}

	return &Namer{MaxLen: maxLen, memo: memo}
}

// TypeName returns the canonical name of a type.  The top-level capability of
// the type is not part of its name: a `ref` and a `tag` use of the same class
// share one layout.  Capabilities of type arguments and tuple elements are
// part of the name since they change how fields are traced.
func (n *Namer) TypeName(t types.Type) (string, error) {
	if t == nil {
		return "", &NameError{Reason: "missing type"}
	}

	if name, ok := n.memo.Get(t); ok {
		return name, nil
	}

	name, err := n.mangle(t)
	if err != nil {
		return "", err
	}

	name = n.shorten(name)
	n.memo.Add(t, name)
	return name, nil
}

// mangle builds the full, unshortened name of a type.
func (n *Namer) mangle(t types.Type) (string, error) {
	switch v := t.(type) {
	case *types.NominalType:
		if v.Def == nil {
			return "", &NameError{Type: t, Reason: "nominal type has no definition"}
		}

		if len(v.TypeArgs) != len(v.Def.TypeParams) {
			return "", &NameError{
				Type:   t,
				Reason: fmt.Sprintf("expected %d type arguments but got %d", len(v.Def.TypeParams), len(v.TypeArgs)),
			}
		}

		if len(v.TypeArgs) == 0 {
			return v.Def.FullName(), nil
		}

		args, err := n.argNames(v.TypeArgs)
		if err != nil {
			return "", err
		}

		return v.Def.FullName() + "[" + strings.Join(args, ",") + "]", nil
	case *types.TupleType:
		elems, err := n.argNames(v.Elems)
		if err != nil {
			return "", err
		}

		return "(" + strings.Join(elems, ",") + ")", nil
	case *types.UnionType:
		members, err := n.argNames(v.Members)
		if err != nil {
			return "", err
		}

		return "(" + strings.Join(members, "|") + ")", nil
	case *types.IsectType:
		members, err := n.argNames(v.Members)
		if err != nil {
			return "", err
		}

		return "(" + strings.Join(members, "&") + ")", nil
	case *types.StructuralType:
		return "{" + strings.Join(v.Methods, " ") + "}", nil
	case *types.TypeParamRef:
		return "", &NameError{Type: t, Reason: "type parameter was not reified"}
	}

	return "", &NameError{Type: t, Reason: "unknown type shape"}
}

// argNames mangles a list of nested types, keeping their capabilities.
func (n *Namer) argNames(typs []types.Type) ([]string, error) {
	return util.MapErr(typs, func(t types.Type) (string, error) {
		name, err := n.mangle(t)
		return withCap(name, t), err
	})
}

func withCap(name string, t types.Type) string {
	switch v := t.(type) {
	case *types.NominalType:
		if v.Cap != types.CapNone {
			return name + "#" + v.Cap.String()
		}
	case *types.StructuralType:
		if v.Cap != types.CapNone {
			return name + "#" + v.Cap.String()
		}
	}

	return name
}

// shorten replaces over-long names by a prefix plus a blake3 hash of the full
// name.
func (n *Namer) shorten(name string) string {
	if n.MaxLen <= 0 || len(name) <= n.MaxLen {
		return name
	}

	sum := blake3.Sum256([]byte(name))
	suffix := hex.EncodeToString(sum[:hashLen/2])

	prefixLen := n.MaxLen - hashLen - 1
	if prefixLen < 0 {
		prefixLen = 0
	}

	return name[:prefixLen] + "$" + suffix
}

// -----------------------------------------------------------------------------

// TraceName returns the symbol name of the trace function of a layout.
func TraceName(layoutName string) string {
	return layoutName + "$trace"
}

// DescName returns the symbol name of the descriptor of a layout.
func DescName(layoutName string) string {
	return layoutName + "$desc"
}

// InstName returns the symbol name of the singleton instance of a data layout.
func InstName(layoutName string) string {
	return layoutName + "$inst"
}

// Describe returns a short human readable list of names, used in diagnostics.
func Describe(names []string) string {
	return strings.Join(util.Map(names, func(s string) string { return "`" + s + "`" }), ", ")
}
