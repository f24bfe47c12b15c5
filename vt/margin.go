package vt

// scrollRegion is a [Top, Bottom] (or [Left, Right]) band, inclusive
// on both ends (spec.md §3's Scroll region). An unset region behaves
// as the full grid.
type scrollRegion struct {
	lo, hi int
	set    bool
}

func fullRegion(size int) scrollRegion {
	return scrollRegion{lo: 0, hi: size - 1, set: false}
}

func newRegion(lo, hi int) scrollRegion {
	return scrollRegion{lo: lo, hi: hi, set: true}
}

func (r scrollRegion) contains(v int) bool {
	return v >= r.lo && v <= r.hi
}

func (r scrollRegion) min() int { return r.lo }
func (r scrollRegion) max() int { return r.hi }
