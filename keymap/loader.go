package keymap

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// layoutDocument is the on-disk shape of a keymap layout file, loadable
// from either TOML or YAML. Rows and Cols describe the physical matrix;
// Layers holds one row-major cell-string slice per layer, layer 0 being
// the base layer.
type layoutDocument struct {
	Rows   int        `toml:"rows" yaml:"rows"`
	Cols   int        `toml:"cols" yaml:"cols"`
	Layers [][]string `toml:"layers" yaml:"layers"`
}

// LoadTOML builds a Store from a TOML layout document.
func LoadTOML(r io.Reader) (*Store, error) {
	var doc layoutDocument
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("keymap: reading TOML layout: %w", err)
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("keymap: parsing TOML layout: %w", err)
	}
	return buildStore(doc)
}

// LoadYAML builds a Store from a YAML layout document.
func LoadYAML(r io.Reader) (*Store, error) {
	var doc layoutDocument
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("keymap: parsing YAML layout: %w", err)
	}
	return buildStore(doc)
}

// LoadTOMLFile and LoadYAMLFile open path and delegate to the matching
// decoder, closing the file regardless of outcome.
func LoadTOMLFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: opening layout file: %w", err)
	}
	defer f.Close()
	return LoadTOML(f)
}

func LoadYAMLFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: opening layout file: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

func buildStore(doc layoutDocument) (*Store, error) {
	if doc.Rows <= 0 || doc.Cols <= 0 {
		return nil, fmt.Errorf("keymap: layout must declare positive rows and cols, got %dx%d", doc.Rows, doc.Cols)
	}
	if len(doc.Layers) == 0 {
		return nil, fmt.Errorf("keymap: layout must declare at least one layer")
	}

	store := New(len(doc.Layers), doc.Rows, doc.Cols)
	want := doc.Rows * doc.Cols

	for layerIdx, cells := range doc.Layers {
		if len(cells) != want {
			return nil, fmt.Errorf("keymap: layer %d has %d cells, want %d (%dx%d)", layerIdx, len(cells), want, doc.Rows, doc.Cols)
		}
		for row := 0; row < doc.Rows; row++ {
			for col := 0; col < doc.Cols; col++ {
				cellStr := cells[row*doc.Cols+col]
				action, err := ParseCell(cellStr)
				if err != nil {
					return nil, fmt.Errorf("keymap: layer %d row %d col %d: %w", layerIdx, row, col, err)
				}
				store.Set(layerIdx, Scancode(row, col, doc.Cols), action)
			}
		}
	}
	return store, nil
}
