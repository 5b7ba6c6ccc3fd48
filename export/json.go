package export

import (
	"encoding/json"
	"io"

	"evnav/canvas"
	"evnav/pathfinding"
	"evnav/region"
)

// JSONExporter exports the route to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

type jsonStop struct {
	Order int    `json:"order"`
	ID    string `json:"id"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
}

type jsonDocument struct {
	Title       string                `json:"title,omitempty"`
	Rows        int                   `json:"rows"`
	Cols        int                   `json:"cols"`
	Halls       []region.Hall         `json:"halls,omitempty"`
	Blocks      []region.Block        `json:"blocks,omitempty"`
	Stops       []jsonStop            `json:"stops"`
	Segments    []pathfinding.Segment `json:"segments"`
	TotalCost   float64               `json:"totalCost"`
	Unreachable int                   `json:"unreachable"`
}

// Export writes the scene as indented JSON
func (e *JSONExporter) Export(w io.Writer, s canvas.Scene) error {
	doc := jsonDocument{
		Title:    s.Title,
		Halls:    s.Halls,
		Blocks:   s.Blocks,
		Stops:    []jsonStop{},
		Segments: s.Segments,
	}
	if s.Grid != nil {
		doc.Rows, doc.Cols = s.Grid.Rows(), s.Grid.Cols()
	}
	if doc.Segments == nil {
		doc.Segments = []pathfinding.Segment{}
	}
	for i, stop := range s.Stops {
		doc.Stops = append(doc.Stops, jsonStop{Order: i, ID: stop.ID, Row: stop.At.Row, Col: stop.At.Col})
	}
	doc.TotalCost, doc.Unreachable = pathfinding.TotalCost(s.Segments)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
