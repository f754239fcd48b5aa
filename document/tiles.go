package document

// Tile is a single photo grid cell, either field may be nil.
type Tile struct {
	Caption *Text
	Image   *Image
}

// PairTiles consumes photo block components pairwise: adjacent text and image
// (in either order) make one tile, lone text or image makes caption only or
// image only tile. Components of other kinds are skipped and break adjacency.
func PairTiles(comps []Component) []Tile {
	var tiles []Tile
	for i := 0; i < len(comps); {
		var tile Tile
		switch c := comps[i].(type) {
		case Text:
			tile.Caption = &c
		case Image:
			tile.Image = &c
		default:
			i++
			continue
		}
		i++

		if i < len(comps) {
			switch next := comps[i].(type) {
			case Text:
				if tile.Caption == nil {
					tile.Caption = &next
					i++
				}
			case Image:
				if tile.Image == nil {
					tile.Image = &next
					i++
				}
			}
		}
		tiles = append(tiles, tile)
	}
	return tiles
}
