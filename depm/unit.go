package depm

import (
	"fmt"

	"actorc/report"
	"actorc/types"
)

// Unit is a compilation unit: a set of type definitions together with the
// types whose representations must be generated.
type Unit struct {
	// Name is the name of the unit.  It is also the package of all the
	// definitions the unit declares.
	Name string

	// AbsPath is the absolute path to the unit file.
	AbsPath string

	// Version is the compiler version the unit was written for.
	Version string

	// Options are the code generation options of the unit.
	Options Options

	// Defs is the list of definitions declared by the unit in declaration
	// order.
	Defs []*types.Definition

	// Uses is the list of types to generate in order.
	Uses []*Use

	// defTable maps the names of the unit's definitions to the definitions.
	defTable map[string]*types.Definition

	universe *Universe
}

// Options are the code generation options of a unit.
type Options struct {
	// MaxNameLen is the length above which canonical names are shortened.
	// Zero disables shortening.
	MaxNameLen int

	// Descriptors indicates whether type descriptors are emitted.
	Descriptors bool

	// Verify indicates whether trace functions are verified.
	Verify bool
}

// Use is a type the unit requires a representation for.
type Use struct {
	// Expr is the source text of the type expression.
	Expr string

	// Type is the resolved type.
	Type types.Type
}

// LookupDef looks up a definition visible in the unit: either one the unit
// declares or a built-in definition.
func (u *Unit) LookupDef(name string) (*types.Definition, bool) {
	if def, ok := u.defTable[name]; ok {
		return def, true
	}

	return u.universe.GetDef(name)
}

// -----------------------------------------------------------------------------

// UnitError is an error in the structure of a unit file.
type UnitError struct {
	// Where describes the element of the unit the error is attached to.
	Where string

	Message string
}

func (ue *UnitError) Error() string {
	return fmt.Sprintf("%s: %s", ue.Where, ue.Message)
}

// ExprError is an error in a type expression of a unit file.
type ExprError struct {
	// Where describes the element of the unit containing the expression.
	Where string

	// Expr is the source text of the type expression.
	Expr string

	Err *report.LocalCompileError
}

func (ee *ExprError) Error() string {
	return fmt.Sprintf("%s: `%s`: %s", ee.Where, ee.Expr, ee.Err)
}

func (ee *ExprError) Unwrap() error {
	return ee.Err
}
