package hex

// BoardRadius is the ring count around the center tile.
const BoardRadius = 3

// Tile layout produced by GenerateBoard. Occupancy is tracked by the game
// state, not here.
type Tile struct {
	Coord  Coord
	Points int
}

// PointsFor returns the scoring value of a coordinate by its ring:
// 5 at the center, 2 on ring 1, 1 on ring 2, 0 beyond.
func PointsFor(c Coord) int {
	switch Distance(Origin, c) {
	case 0:
		return 5
	case 1:
		return 2
	case 2:
		return 1
	default:
		return 0
	}
}

// GenerateBoard builds the radius-3 board (37 tiles) in row-major order
// (r ascending, then q ascending).
func GenerateBoard() []Tile {
	tiles := make([]Tile, 0, 37)
	for r := -BoardRadius; r <= BoardRadius; r++ {
		for q := -BoardRadius; q <= BoardRadius; q++ {
			c := Coord{Q: q, R: r}
			if Distance(Origin, c) > BoardRadius {
				continue
			}
			tiles = append(tiles, Tile{Coord: c, Points: PointsFor(c)})
		}
	}
	return tiles
}

// InBounds reports whether c lies on the generated board.
func InBounds(c Coord) bool {
	return Distance(Origin, c) <= BoardRadius
}

// Ring returns the coordinates at exactly radius steps from the center.
func Ring(radius int) []Coord {
	if radius == 0 {
		return []Coord{Origin}
	}
	out := make([]Coord, 0, 6*radius)
	c := Coord{Q: radius * Directions[4].Q, R: radius * Directions[4].R}
	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			out = append(out, c)
			c = c.Add(Directions[side])
		}
	}
	return out
}

// spawnCorners are the triangle vertices of the board used as spawn anchors.
var spawnCorners = [3]Coord{
	{Q: 3, R: -3},
	{Q: 0, R: 3},
	{Q: -3, R: 0},
}

// MaxPlayers is the number of spawn zones the board offers.
const MaxPlayers = len(spawnCorners)

// SpawnZones returns the three spawn zones: each corner plus its two
// neighbours on the outer rim.
func SpawnZones() [MaxPlayers][]Coord {
	var zones [MaxPlayers][]Coord
	for i, corner := range spawnCorners {
		zone := []Coord{corner}
		for _, n := range corner.Neighbors() {
			if Distance(Origin, n) == BoardRadius {
				zone = append(zone, n)
			}
		}
		zones[i] = zone
	}
	return zones
}
