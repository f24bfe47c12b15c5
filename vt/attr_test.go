package vt

import "testing"

func paramsOf(vals ...int) *paramList {
	p := &paramList{}
	if len(vals) == 0 {
		return p
	}
	p.vals = append([]int(nil), vals...)
	return p
}

func TestApplySGREmptyResetsToDefault(t *testing.T) {
	cur := Attributes{Fg: AnsiColor(1), Bold: true}
	got := applySGR(cur, paramsOf())
	if !got.equal(defaultAttributes) {
		t.Errorf("applySGR(empty) = %+v, want default", got)
	}
}

func TestApplySGR(t *testing.T) {
	cases := []struct {
		name string
		cur  Attributes
		vals []int
		want Attributes
	}{
		{
			name: "reset",
			cur:  Attributes{Bold: true, Fg: AnsiColor(2)},
			vals: []int{0},
			want: defaultAttributes,
		},
		{
			name: "bold+fg",
			cur:  defaultAttributes,
			vals: []int{1, 31},
			want: Attributes{Fg: AnsiColor(1), Bg: DefaultColor, Bold: true},
		},
		{
			name: "bold and dim off together via 22",
			cur:  Attributes{Bold: true, Dim: true, Fg: DefaultColor, Bg: DefaultColor},
			vals: []int{22},
			want: Attributes{Fg: DefaultColor, Bg: DefaultColor},
		},
		{
			name: "bright foreground",
			cur:  defaultAttributes,
			vals: []int{92},
			want: Attributes{Fg: AnsiColor(10), Bg: DefaultColor},
		},
		{
			name: "bright background",
			cur:  defaultAttributes,
			vals: []int{105},
			want: Attributes{Fg: DefaultColor, Bg: AnsiColor(13)},
		},
		{
			name: "extended 256 foreground",
			cur:  defaultAttributes,
			vals: []int{38, 5, 200},
			want: Attributes{Fg: Palette256Color(200), Bg: DefaultColor},
		},
		{
			name: "extended rgb background",
			cur:  defaultAttributes,
			vals: []int{48, 2, 255, 128, 0},
			want: Attributes{Fg: DefaultColor, Bg: RGBColor(255, 128, 0)},
		},
		{
			name: "default fg then default bg",
			cur:  Attributes{Fg: AnsiColor(3), Bg: AnsiColor(4)},
			vals: []int{39, 49},
			want: defaultAttributes,
		},
		{
			name: "malformed extended sub-grammar leaves color untouched",
			cur:  Attributes{Fg: AnsiColor(5), Bg: DefaultColor},
			vals: []int{38, 5},
			want: Attributes{Fg: AnsiColor(5), Bg: DefaultColor},
		},
	}

	for _, c := range cases {
		got := applySGR(c.cur, paramsOf(c.vals...))
		if !got.equal(c.want) {
			t.Errorf("%s: applySGR(%v) = %+v, want %+v", c.name, c.vals, got, c.want)
		}
	}
}

func TestApplySGRTwoResetsIdempotent(t *testing.T) {
	cur := Attributes{Bold: true, Italic: true, Fg: AnsiColor(7)}
	once := applySGR(cur, paramsOf(0))
	twice := applySGR(once, paramsOf(0))
	if !once.equal(twice) {
		t.Errorf("two SGR 0 sequences diverged: %+v != %+v", once, twice)
	}
}

func TestColorFromParamsMalformed(t *testing.T) {
	def := AnsiColor(9)
	if got := colorFromParams(paramsOf(5), def); !got.equal(def) {
		t.Errorf("colorFromParams(truncated 256) = %v, want %v", got, def)
	}
	if got := colorFromParams(paramsOf(2, 1, 2), def); !got.equal(def) {
		t.Errorf("colorFromParams(truncated rgb) = %v, want %v", got, def)
	}
	if got := colorFromParams(paramsOf(9), def); !got.equal(def) {
		t.Errorf("colorFromParams(unknown mode) = %v, want %v", got, def)
	}
}

func (c Color) equal(o Color) bool { return c == o }
