package geo

// SplitOptions controls SplitRouteByPoint. A nil options value selects
// kilometers and snapping enabled.
type SplitOptions struct {
	// Unit for the underlying nearest-vertex search. Empty selects
	// kilometers.
	Unit Unit
	// SnapToPoint appends the query point to the end of the first half and
	// prepends it to the second, so the visual split passes exactly through
	// the query location instead of only through the nearest vertex.
	SnapToPoint bool
}

// SplitRouteByPoint partitions a path into the part up to the vertex
// nearest to pt and the part from that vertex onward; the vertex appears in
// both halves. It is used to render the traveled and remaining portions of
// a route while tracking. A degenerate path (fewer than two points) splits
// at index 0 rather than failing; only an invalid unit is an error.
func SplitRouteByPoint(path []Point, pt Point, opts *SplitOptions) ([]Point, []Point, error) {
	if opts == nil {
		opts = &SplitOptions{SnapToPoint: true}
	}

	nearest, err := NearestVertex(path, pt, opts.Unit)
	if err != nil {
		return nil, nil, err
	}

	index := 0
	if nearest != nil {
		index = nearest.Index
	}

	end := index + 1
	if end > len(path) {
		end = len(path)
	}

	before := make([]Point, 0, end+1)
	before = append(before, path[:end]...)
	after := make([]Point, 0, len(path)-index+1)
	after = append(after, path[index:]...)

	if opts.SnapToPoint {
		before = append(before, pt)
		after = append([]Point{pt}, after...)
	}

	return before, after, nil
}
