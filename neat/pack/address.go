package pack

import "fmt"

// Coord is an absolute texel position in the field.
type Coord struct {
	X int
	Y int
}

// String formats the coordinate as (x, y).
func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.X, c.Y) }

// Mapper translates (population index, node index) pairs into field coordinates.
//
// The field is tiled by the population grid; every agent owns one tile the
// size of the agent grid, and its nodes fill the tile row by row. Tiles are
// disjoint, so the mapping is injective for populationIndex < Population.Area()
// and nodeIndex < Agent.Area().
type Mapper struct {
	Population Grid // Tiles across and down the field
	Agent      Grid // Node slots across and down one tile
}

// NewMapper returns a mapper for the two grids.
func NewMapper(population, agent Grid) Mapper {
	return Mapper{Population: population, Agent: agent}
}

// Field returns the dimensions of the combined field.
func (m Mapper) Field() Grid {
	return Grid{
		Width:  m.Population.Width * m.Agent.Width,
		Height: m.Population.Height * m.Agent.Height,
	}
}

// Tile returns the top-left coordinate of an agent's tile.
func (m Mapper) Tile(populationIndex int) Coord {
	return Coord{
		X: (populationIndex % m.Population.Width) * m.Agent.Width,
		Y: (populationIndex / m.Population.Width) * m.Agent.Height,
	}
}

// Locate returns the field coordinate of a node.
func (m Mapper) Locate(populationIndex, nodeIndex int) Coord {
	base := m.Tile(populationIndex)
	return Coord{
		X: base.X + nodeIndex%m.Agent.Width,
		Y: base.Y + nodeIndex/m.Agent.Width,
	}
}

// Index returns the row-major texel index of a coordinate within one field layer.
func (m Mapper) Index(c Coord) int {
	return c.Y*m.Population.Width*m.Agent.Width + c.X
}

// Contains reports whether the pair falls within the mapper's grids.
func (m Mapper) Contains(populationIndex, nodeIndex int) bool {
	return populationIndex >= 0 && populationIndex < m.Population.Area() &&
		nodeIndex >= 0 && nodeIndex < m.Agent.Area()
}
