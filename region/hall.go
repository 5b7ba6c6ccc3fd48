package region

import (
	"fmt"
	"strings"

	"evnav/geometry"
	"evnav/grid"
)

// Vertex count limits for a hall polygon.
const (
	MinHallVertices = 4
	MaxHallVertices = 6
)

// Hall is a named polygon over the grid.
type Hall struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Vertices []grid.Coord `json:"vertices"`
	Color    string       `json:"color,omitempty"`
}

// Validate checks the hall before it is stored.
func (h Hall) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("hall %q: %w", h.ID, ErrEmptyName)
	}
	if n := len(h.Vertices); n < MinHallVertices || n > MaxHallVertices {
		return fmt.Errorf("hall %q has %d vertices: %w", h.Name, n, ErrVertexCount)
	}
	return nil
}

// Contains reports whether the cell lies in the hall. A malformed hall
// contains nothing.
func (h Hall) Contains(c grid.Coord) bool {
	if n := len(h.Vertices); n < MinHallVertices || n > MaxHallVertices {
		return false
	}
	return geometry.PointInPolygon(c, h.Vertices)
}

// Bounds returns the bounding rectangle of the vertices.
func (h Hall) Bounds() (geometry.Rect, bool) {
	return geometry.RectFromPoints(h.Vertices...)
}

// Classifier assigns cells to halls. The first hall in definition order
// that contains a cell wins.
type Classifier struct {
	halls []Hall
}

// NewClassifier creates a classifier over the given halls.
func NewClassifier(halls []Hall) *Classifier {
	hs := make([]Hall, len(halls))
	copy(hs, halls)
	return &Classifier{halls: hs}
}

// HallAt returns the hall containing c.
func (c *Classifier) HallAt(p grid.Coord) (Hall, bool) {
	for _, h := range c.halls {
		if h.Contains(p) {
			return h, true
		}
	}
	return Hall{}, false
}

// Halls returns the halls in definition order.
func (c *Classifier) Halls() []Hall {
	return c.halls
}

// IDs returns the hall identifiers in definition order.
func (c *Classifier) IDs() []string {
	ids := make([]string, len(c.halls))
	for i, h := range c.halls {
		ids[i] = h.ID
	}
	return ids
}
