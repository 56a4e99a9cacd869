package depm

import (
	"io"

	"actorc/common"
	"actorc/genname"

	"github.com/pelletier/go-toml"
)

// WriteUnitTemplate writes a starter unit file for a unit with the given name.
func WriteUnitTemplate(w io.Writer, name string) error {
	maxNameLen := genname.DefaultMaxLen
	enabled := true

	tu := &tomlUnit{
		Name:    name,
		Version: common.Version,
		Options: &tomlOptions{
			MaxNameLen:  &maxNameLen,
			Descriptors: &enabled,
			Verify:      &enabled,
		},
		Definitions: []*tomlDef{
			{
				Name:         "Point",
				Kind:         "class",
				Constructors: []string{"create"},
				Methods:      []string{"len"},
				Fields: []*tomlField{
					{Name: "x", Type: "I64"},
					{Name: "y", Type: "I64"},
				},
			},
		},
		Uses: []*tomlUse{
			{Type: "Point"},
			{Type: "(I32, Point)"},
		},
	}

	return toml.NewEncoder(w).Order(toml.OrderPreserve).Encode(tu)
}
