package session

// Theme is one background option.
type Theme struct {
	Name     string `json:"name"`
	Gradient string `json:"gradient"`
}

// ThemeView is a Theme plus its catalog position.
type ThemeView struct {
	Index int `json:"index"`
	Theme
}

var themes = [...]Theme{
	{Name: "Dreamy", Gradient: "linear-gradient(135deg, #a18cd1 0%, #fbc2eb 100%)"},
	{Name: "Neon Night", Gradient: "linear-gradient(135deg, #09203f 0%, #537895 100%)"},
	{Name: "Sunset City", Gradient: "linear-gradient(to right, #ff512f, #dd2476)"},
	{Name: "Minty Fresh", Gradient: "linear-gradient(135deg, #11998e 0%, #38ef7d 100%)"},
	{Name: "Dark Plasma", Gradient: "linear-gradient(135deg, #2b5876 0%, #4e4376 100%)"},
}

// Themes returns a copy of the catalog.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes[:])
	return out
}

// NextTheme advances index cyclically through the catalog.
func NextTheme(index int) int {
	return ((index+1)%len(themes) + len(themes)) % len(themes)
}

// ThemeAt resolves an index, wrapping out-of-range values.
func ThemeAt(index int) ThemeView {
	i := (index%len(themes) + len(themes)) % len(themes)
	return ThemeView{Index: i, Theme: themes[i]}
}
