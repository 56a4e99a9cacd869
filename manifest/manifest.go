// Package manifest records the layouts generated for a compilation unit in a
// compact binary form that runtime tooling can read without parsing LLVM IR.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"actorc/common"
	"actorc/generate"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is the current manifest format version.  It is incremented
// whenever the encoding of Manifest changes.
const SchemaVersion uint16 = 1

// Manifest describes every layout of a compilation unit.
type Manifest struct {
	Schema   uint16
	Compiler string
	Unit     string
	Layouts  []Layout
	Gaps     []Gap
}

// Layout describes one layout.
type Layout struct {
	Name  string
	Kind  string
	ID    int32
	Slots []Slot
}

// Slot describes one field slot of a layout.  The descriptor slot is not
// listed.
type Slot struct {
	Index    uint32
	LLVMType string
	Strategy string

	// Callee is the name of the layout traced with for known traces.
	Callee string `msgpack:",omitempty"`
}

// Gap describes a field whose trace strategy is unresolved.
type Gap struct {
	Layout string
	Slot   uint32
	Type   string
}

// Build creates the manifest of a unit from its finished generator.
func Build(unit string, g *generate.Generator) (*Manifest, error) {
	m := &Manifest{
		Schema:   SchemaVersion,
		Compiler: common.CompilerID,
		Unit:     unit,
	}

	for _, l := range g.Layouts() {
		ml := Layout{
			Name:  l.Name,
			Kind:  l.Kind.String(),
			ID:    l.ID,
			Slots: make([]Slot, len(l.Trace.Slots)),
		}

		for i, st := range l.Trace.Slots {
			index, err := safecast.Conv[uint32](st.Slot)
			if err != nil {
				return nil, fmt.Errorf("layout `%s`: %w", l.Name, err)
			}

			ml.Slots[i] = Slot{
				Index:    index,
				LLVMType: l.Type.Fields[st.Slot].String(),
				Strategy: st.Strategy.String(),
				Callee:   st.Callee,
			}
		}

		m.Layouts = append(m.Layouts, ml)
	}

	for _, gap := range g.Gaps() {
		slot, err := safecast.Conv[uint32](gap.Slot)
		if err != nil {
			return nil, fmt.Errorf("layout `%s`: %w", gap.Layout, err)
		}

		m.Gaps = append(m.Gaps, Gap{Layout: gap.Layout, Slot: slot, Type: gap.Type.Repr()})
	}

	return m, nil
}

// Write writes a manifest to the given path.  The file is replaced atomically.
func Write(path string, m *Manifest) error {
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}

	if err := msgpack.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}

	if err := os.Rename(f.Name(), path); err != nil {
		os.Remove(f.Name())
		return err
	}

	return nil
}

// Read reads a manifest from the given path.
func Read(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Manifest{}
	if err := msgpack.NewDecoder(f).Decode(m); err != nil {
		return nil, err
	}

	if m.Schema != SchemaVersion {
		return nil, fmt.Errorf("unsupported manifest schema version %d", m.Schema)
	}

	return m, nil
}
