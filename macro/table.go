package macro

import (
	"fmt"
	"io"
	"strings"

	"github.com/kbfw/corekbd/keymap"
	"gopkg.in/yaml.v3"
)

// tableDocument is the on-disk shape of a macro table file: one entry
// per macro id, each a list of "OP:NAME" tokens terminated implicitly
// by end of the list (an explicit "END" token is also accepted).
type tableDocument struct {
	Macros []struct {
		ID  uint16   `yaml:"id"`
		Ops []string `yaml:"ops"`
	} `yaml:"macros"`
}

// LoadYAMLTable parses a YAML macro table into id -> byte stream, using
// keymap's key-name table to resolve each operand (spec §4.4, §6).
func LoadYAMLTable(r io.Reader) (map[uint16][]byte, error) {
	var doc tableDocument
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("macro: parsing table: %w", err)
	}

	out := make(map[uint16][]byte, len(doc.Macros))
	for _, m := range doc.Macros {
		stream, err := assembleStream(m.Ops)
		if err != nil {
			return nil, fmt.Errorf("macro: id %d: %w", m.ID, err)
		}
		out[m.ID] = stream
	}
	return out, nil
}

func assembleStream(ops []string) ([]byte, error) {
	var stream []byte
	for _, tok := range ops {
		tok = strings.TrimSpace(tok)
		if strings.EqualFold(tok, "END") {
			break
		}
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed op %q, want OP:NAME", tok)
		}
		var op Opcode
		switch strings.ToUpper(strings.TrimSpace(parts[0])) {
		case "DOWN":
			op = MacroKeyDown
		case "UP":
			op = MacroKeyUp
		case "TOGGLE":
			op = MacroKeyToggle
		default:
			return nil, fmt.Errorf("unknown op %q", parts[0])
		}
		code, ok := keymap.LookupKeyCode(strings.TrimSpace(parts[1]))
		if !ok {
			return nil, fmt.Errorf("unknown key name %q", parts[1])
		}
		stream = append(stream, byte(op), code)
	}
	stream = append(stream, byte(MacroEnd))
	return stream, nil
}

// Table is a loaded macro table. Its Lookup method has the
// func(uint16) []byte shape of dispatch.MacroLookup, so callers pass
// table.Lookup where a MacroLookup is expected; dispatch itself does not
// refer to this type.
type Table map[uint16][]byte

func (t Table) Lookup(id uint16) []byte { return t[id] }
