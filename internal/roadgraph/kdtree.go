package roadgraph

import (
	"cmp"
	"math"
	"slices"

	"github.com/routeviz/routeviz/internal/geo"
)

// kdTree is a 2-d tree over node coordinates, alternating latitude and longitude
// splits. It is stored implicitly: the median of order[lo:hi] is the subtree root.
type kdTree struct {
	order  []int32
	points []geo.Point
}

func newKdTree(points []geo.Point) kdTree {
	t := kdTree{order: make([]int32, len(points)), points: points}
	for i := range t.order {
		t.order[i] = int32(i) //nolint:gosec // bounded by node count.
	}

	t.build(0, len(t.order), true)

	return t
}

func (t *kdTree) build(lo, hi int, byLat bool) {
	if hi-lo <= 1 {
		return
	}

	s := t.order[lo:hi]
	slices.SortStableFunc(s, func(a, b int32) int {
		return cmp.Compare(t.key(a, byLat), t.key(b, byLat))
	})

	mid := (lo + hi) / 2
	t.build(lo, mid, !byLat)
	t.build(mid+1, hi, !byLat)
}

func (t *kdTree) key(i int32, byLat bool) float64 {
	if byLat {
		return t.points[i].Lat
	}

	return t.points[i].Lon
}

type kdBest struct {
	idx  int32
	dist float64
}

// nearest returns the index and distance of the point closest to q.
// The tree must be non-empty.
func (t *kdTree) nearest(q geo.Point) (int32, float64) {
	best := kdBest{idx: -1, dist: math.Inf(1)}
	t.search(q, 0, len(t.order), true, &best)

	return best.idx, best.dist
}

func (t *kdTree) search(q geo.Point, lo, hi int, byLat bool, best *kdBest) {
	if lo >= hi {
		return
	}

	mid := (lo + hi) / 2
	i := t.order[mid]
	p := t.points[i]

	d := q.DistanceTo(p)
	if d < best.dist || (d == best.dist && i < best.idx) {
		best.idx, best.dist = i, d
	}

	nearLo, nearHi, farLo, farHi := lo, mid, mid+1, hi
	if t.key(i, byLat) <= keyOf(q, byLat) {
		nearLo, nearHi, farLo, farHi = mid+1, hi, lo, mid
	}

	t.search(q, nearLo, nearHi, !byLat, best)

	if splitBound(q, p, byLat) <= best.dist {
		t.search(q, farLo, farHi, !byLat, best)
	}
}

func keyOf(p geo.Point, byLat bool) float64 {
	if byLat {
		return p.Lat
	}

	return p.Lon
}

// splitBound is a lower bound on the distance from q to any point on the far
// side of the split through p.
func splitBound(q, p geo.Point, byLat bool) float64 {
	if byLat {
		return math.Abs(q.Lat-p.Lat) * math.Pi / 180 * geo.EarthRadiusMeters
	}

	// The far half-plane is bounded by the split meridian and the antimeridian.
	return min(meridianDistance(q, p.Lon), meridianDistance(q, 180))
}

// meridianDistance is the cross-track distance from q to the meridian at lon.
func meridianDistance(q geo.Point, lon float64) float64 {
	dl := math.Mod(math.Abs(q.Lon-lon), 360)
	if dl > 180 {
		dl = 360 - dl
	}

	if dl >= 90 {
		return 0
	}

	s := math.Cos(q.Lat*math.Pi/180) * math.Sin(dl*math.Pi/180)

	return math.Asin(min(1, s)) * geo.EarthRadiusMeters
}
