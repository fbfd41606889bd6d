package state

type Menu string

const (
	MenuSearch   Menu = "search"
	MenuLanguage Menu = "language"
	MenuSettings Menu = "settings"
)

func ParseMenu(s string) (Menu, bool) {
	switch Menu(s) {
	case MenuSearch, MenuLanguage, MenuSettings:
		return Menu(s), true
	}
	return "", false
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned screen region. Edges belong to the region.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Contains(p Point) bool {
	if r.W < 0 || r.H < 0 {
		return false
	}
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (s State) withRegion(menu Menu, r Rect) State {
	regions := make(map[Menu]Rect, len(s.Regions)+1)
	for k, v := range s.Regions {
		regions[k] = v
	}
	regions[menu] = r
	s.Regions = regions
	return s
}

func (s State) withoutRegion(menu Menu) State {
	if _, ok := s.Regions[menu]; !ok {
		return s
	}
	regions := make(map[Menu]Rect, len(s.Regions))
	for k, v := range s.Regions {
		if k != menu {
			regions[k] = v
		}
	}
	s.Regions = regions
	return s
}
