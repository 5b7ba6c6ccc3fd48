// Package export writes a rendered route map to text, JSON or PNG.
package export

import (
	"fmt"
	"io"
	"strings"

	"evnav/canvas"
)

// Format represents an export format
type Format string

const (
	// FormatASCII exports the text map with a stop legend
	FormatASCII Format = "ascii"
	// FormatJSON exports stops and segments as JSON
	FormatJSON Format = "json"
	// FormatPNG exports a raster image of the map
	FormatPNG Format = "png"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export writes the scene in the target format
	Export(w io.Writer, s canvas.Scene) error
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "json":
		return FormatJSON, nil
	case "png", "image":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatASCII,
		FormatJSON,
		FormatPNG,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatASCII: "Text map with numbered stops",
		FormatJSON:  "Stops and route segments as JSON",
		FormatPNG:   "PNG image of the map and route",
	}
}
