package depm

import (
	"fmt"
	"os"
	"path/filepath"

	"actorc/common"
	"actorc/genname"
	"actorc/report"
	"actorc/types"
	"actorc/util"

	"github.com/pelletier/go-toml"
)

// tomlUnit represents a unit as it is encoded in TOML.
type tomlUnit struct {
	Name        string       `toml:"name"`
	Version     string       `toml:"actorc-version"`
	Options     *tomlOptions `toml:"options"`
	Definitions []*tomlDef   `toml:"definitions"`
	Uses        []*tomlUse   `toml:"uses"`
}

// tomlOptions represents the options table of a unit.  Absent options take
// their default value.
type tomlOptions struct {
	MaxNameLen  *int  `toml:"max-name-len"`
	Descriptors *bool `toml:"descriptors"`
	Verify      *bool `toml:"verify"`
}

// tomlDef represents a type definition.
type tomlDef struct {
	Name         string       `toml:"name"`
	Kind         string       `toml:"kind"`
	TypeParams   []string     `toml:"type-params,omitempty"`
	Constructors []string     `toml:"constructors,omitempty"`
	Methods      []string     `toml:"methods,omitempty"`
	Behaviours   []string     `toml:"behaviours,omitempty"`
	Fields       []*tomlField `toml:"fields"`
}

// tomlField represents a data field of a definition.
type tomlField struct {
	Name    string `toml:"name"`
	Type    string `toml:"type"`
	Mutable bool   `toml:"mutable"`
}

// tomlUse represents a required type.
type tomlUse struct {
	Type string `toml:"type"`
}

// LoadUnit loads and validates a unit file.
func LoadUnit(path string) (*Unit, error) {
	abspath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid unit path `%s`: %w", path, err)
	}

	buff, err := os.ReadFile(abspath)
	if err != nil {
		return nil, fmt.Errorf("unable to read unit file: %w", err)
	}

	return ParseUnit(abspath, buff)
}

// ParseUnit decodes and validates the contents of a unit file.  abspath is
// only used to identify the unit.
func ParseUnit(abspath string, buff []byte) (*Unit, error) {
	tu := &tomlUnit{}
	if err := toml.Unmarshal(buff, tu); err != nil {
		return nil, fmt.Errorf("error parsing unit file: %w", err)
	}

	u := &Unit{
		AbsPath:  abspath,
		defTable: make(map[string]*types.Definition),
		universe: NewUniverse(),
	}

	if err := validateUnit(u, tu); err != nil {
		return nil, err
	}

	// all definitions are declared before any type expression is resolved so
	// that definitions may refer to each other in any order
	for _, td := range tu.Definitions {
		if err := u.declareDef(td); err != nil {
			return nil, err
		}
	}

	for i, td := range tu.Definitions {
		if err := u.defineMembers(u.Defs[i], td); err != nil {
			return nil, err
		}
	}

	for i, tuse := range tu.Uses {
		where := fmt.Sprintf("use %d", i+1)
		typ, err := u.resolveText(where, tuse.Type, nil)
		if err != nil {
			return nil, err
		}

		u.Uses = append(u.Uses, &Use{Expr: tuse.Type, Type: typ})
	}

	return u, nil
}

// validateUnit checks that the top level unit contents are valid.
func validateUnit(u *Unit, tu *tomlUnit) error {
	if tu.Name == "" {
		return &UnitError{Where: "unit", Message: "missing unit name"}
	}

	if !IsValidIdentifier(tu.Name) {
		return &UnitError{Where: "unit", Message: "unit name must be a valid identifier"}
	}

	if tu.Name == common.BuiltinPackage {
		return &UnitError{Where: "unit", Message: fmt.Sprintf("unit name `%s` is reserved", tu.Name)}
	}

	if tu.Version != common.Version {
		report.ReportCompileWarning(u.AbsPath, "unit", "version of unit `%s` (v%s) does not match current compiler version (v%s)",
			tu.Name,
			tu.Version,
			common.Version,
		)
	}

	u.Name = tu.Name
	u.Version = tu.Version
	u.Options = Options{
		MaxNameLen:  genname.DefaultMaxLen,
		Descriptors: true,
		Verify:      true,
	}

	if opts := tu.Options; opts != nil {
		if opts.MaxNameLen != nil {
			if *opts.MaxNameLen < 0 {
				return &UnitError{Where: "options", Message: "max-name-len must not be negative"}
			}

			u.Options.MaxNameLen = *opts.MaxNameLen
		}

		if opts.Descriptors != nil {
			u.Options.Descriptors = *opts.Descriptors
		}

		if opts.Verify != nil {
			u.Options.Verify = *opts.Verify
		}
	}

	return nil
}

// declareDef declares a definition without resolving any of its members.
func (u *Unit) declareDef(td *tomlDef) error {
	where := fmt.Sprintf("definition `%s`", td.Name)

	if !IsValidIdentifier(td.Name) {
		return &UnitError{Where: where, Message: "definition name must be a valid identifier"}
	}

	if _, ok := u.defTable[td.Name]; ok {
		return &UnitError{Where: where, Message: "multiple definitions with the same name"}
	}

	if _, ok := u.universe.GetDef(td.Name); ok {
		return &UnitError{Where: where, Message: "definition shadows a built-in type"}
	}

	if _, ok := u.universe.GetAlias(td.Name); ok {
		return &UnitError{Where: where, Message: "definition shadows a built-in type"}
	}

	kind, ok := types.ParseDefKind(td.Kind)
	if !ok {
		return &UnitError{Where: where, Message: fmt.Sprintf("unknown definition kind `%s`", td.Kind)}
	}

	def := &types.Definition{Name: td.Name, Package: u.Name, Kind: kind}

	for i, pname := range td.TypeParams {
		if !IsValidIdentifier(pname) {
			return &UnitError{Where: where, Message: fmt.Sprintf("invalid type parameter name `%s`", pname)}
		}

		if util.Contains(td.TypeParams[:i], pname) {
			return &UnitError{Where: where, Message: fmt.Sprintf("multiple type parameters named `%s`", pname)}
		}

		def.TypeParams = append(def.TypeParams, &types.TypeParam{Name: pname})
	}

	u.defTable[def.Name] = def
	u.Defs = append(u.Defs, def)
	return nil
}

// defineMembers resolves and adds the members of a declared definition.
func (u *Unit) defineMembers(def *types.Definition, td *tomlDef) error {
	where := fmt.Sprintf("definition `%s`", def.Name)

	if len(td.Fields) > 0 && (def.Kind == types.DefData || def.Kind == types.DefTrait) {
		return &UnitError{Where: where, Message: fmt.Sprintf("%s types cannot declare fields", def.Kind)}
	}

	if len(td.Behaviours) > 0 && def.Kind != types.DefActor {
		return &UnitError{Where: where, Message: "only actors can declare behaviours"}
	}

	seen := make(map[string]struct{})
	define := func(m *types.Member) error {
		if !IsValidIdentifier(m.Name) {
			return &UnitError{Where: where, Message: fmt.Sprintf("invalid member name `%s`", m.Name)}
		}

		if _, ok := seen[m.Name]; ok {
			return &UnitError{Where: where, Message: fmt.Sprintf("multiple members named `%s`", m.Name)}
		}

		seen[m.Name] = struct{}{}
		def.Members = append(def.Members, m)
		return nil
	}

	for _, tf := range td.Fields {
		fwhere := fmt.Sprintf("%s, field `%s`", where, tf.Name)
		ftype, err := u.resolveText(fwhere, tf.Type, def.TypeParams)
		if err != nil {
			return err
		}

		kind := types.MemberLet
		if tf.Mutable {
			kind = types.MemberVar
		}

		if err := define(&types.Member{Kind: kind, Name: tf.Name, Type: ftype}); err != nil {
			return err
		}
	}

	for _, name := range td.Constructors {
		if err := define(&types.Member{Kind: types.MemberNew, Name: name}); err != nil {
			return err
		}
	}

	for _, name := range td.Methods {
		if err := define(&types.Member{Kind: types.MemberFun, Name: name}); err != nil {
			return err
		}
	}

	for _, name := range td.Behaviours {
		if err := define(&types.Member{Kind: types.MemberBe, Name: name}); err != nil {
			return err
		}
	}

	return nil
}
