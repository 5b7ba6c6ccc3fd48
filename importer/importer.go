// Package importer loads event layouts: the cell grid, halls, hand-authored
// blocks, items and saved visit points.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"evnav/grid"
	"evnav/item"
	"evnav/region"
	"evnav/route"
)

// ErrInvalidLayout is wrapped by every import failure caused by the content.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is an imported event map and the user data attached to it.
type Layout struct {
	Title      string
	Grid       *grid.Grid
	Halls      []region.Hall
	Blocks     []region.Block // Hand-authored blocks; detected ones are added later
	Items      item.Items
	Visits     []route.Point
	GroupOrder []string
}

// Importer interface defines methods for importing layouts from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content []byte) bool

	// Import converts the input content into a layout
	Import(content []byte) (*Layout, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a new importer registry
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewJSONImporter(),
			NewTextImporter(),
		},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content []byte) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, fmt.Errorf("unable to detect format")
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content []byte) (*Layout, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return importer.Import(content)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content []byte, format string) (*Layout, error) {
	format = strings.ToLower(format)

	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp.Import(content)
		}
	}

	return nil, fmt.Errorf("unknown format: %s", format)
}

// ForFile picks an importer by file extension.
func (r *ImporterRegistry) ForFile(name string) (Importer, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, imp := range r.importers {
		for _, e := range imp.GetFileExtensions() {
			if e == ext {
				return imp, true
			}
		}
	}
	return nil, false
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
