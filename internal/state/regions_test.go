package state

import (
	"testing"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{X: 50, Y: 40}, true},
		{"top-left corner", Point{X: 10, Y: 20}, true},
		{"bottom-right corner", Point{X: 110, Y: 70}, true},
		{"left of region", Point{X: 9.9, Y: 40}, false},
		{"below region", Point{X: 50, Y: 70.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}

	assert.False(t, Rect{W: -1, H: 5}.Contains(Point{}))
}

func TestReduce_ClickOutside(t *testing.T) {
	lang := Rect{X: 300, Y: 0, W: 100, H: 200}
	settings := Rect{X: 400, Y: 0, W: 100, H: 200}

	open := func(t *testing.T) State {
		t.Helper()
		s, _ := apply(t, New(DefaultSettings(LangEN)),
			OpenMenu{Menu: MenuLanguage, Region: lang},
			OpenMenu{Menu: MenuSettings, Region: settings},
		)
		require.True(t, s.MenuOpen(MenuLanguage))
		require.True(t, s.MenuOpen(MenuSettings))
		return s
	}

	t.Run("click inside keeps that menu open", func(t *testing.T) {
		s, _ := Reduce(open(t), Click{Point: Point{X: 350, Y: 100}})
		assert.True(t, s.MenuOpen(MenuLanguage))
		assert.False(t, s.MenuOpen(MenuSettings))
	})

	t.Run("click outside closes all", func(t *testing.T) {
		s, _ := Reduce(open(t), Click{Point: Point{X: 10, Y: 10}})
		assert.False(t, s.MenuOpen(MenuLanguage))
		assert.False(t, s.MenuOpen(MenuSettings))
	})

	t.Run("close menu explicitly", func(t *testing.T) {
		s, _ := Reduce(open(t), CloseMenu{Menu: MenuSettings})
		assert.True(t, s.MenuOpen(MenuLanguage))
		assert.False(t, s.MenuOpen(MenuSettings))
	})

	t.Run("search results close on outside click", func(t *testing.T) {
		box := Rect{X: 0, Y: 0, W: 200, H: 300}
		s, e := apply(t, New(DefaultSettings(LangEN)),
			OpenMenu{Menu: MenuSearch, Region: box},
			SubmitSearch{Query: "Paris"},
		)
		s, _ = Reduce(s, SearchResolved{
			Seq:     e[0].(SearchLocations).Seq,
			Results: []models.SearchResult{{Name: "Paris"}},
		})

		inside, _ := Reduce(s, Click{Point: Point{X: 100, Y: 250}})
		assert.True(t, inside.MenuOpen(MenuSearch))

		outside, _ := Reduce(s, Click{Point: Point{X: 500, Y: 250}})
		assert.False(t, outside.MenuOpen(MenuSearch))
		assert.Equal(t, SearchDismissed, outside.Search.Phase)
	})
}

func TestParsers(t *testing.T) {
	l, ok := ParseLang(" TR ")
	assert.True(t, ok)
	assert.Equal(t, LangTR, l)
	_, ok = ParseLang("de")
	assert.False(t, ok)

	th, ok := ParseTheme("light")
	assert.True(t, ok)
	assert.Equal(t, ThemeLight, th)

	m, ok := ParseMenu("settings")
	assert.True(t, ok)
	assert.Equal(t, MenuSettings, m)
	_, ok = ParseMenu("help")
	assert.False(t, ok)
}
