// Package grid computes responsive cell sizes for the timeline grid.
package grid

// Cells smaller than this are too small to render usefully; updates
// that would shrink below it are ignored.
const minCellSize = 4.0

// Size changes below this threshold are skipped to avoid layout churn.
const sizeEpsilon = 0.1

// CellSize returns the cell edge length that makes rowCardinality
// cells plus the inter-cell gaps exactly fill the available width.
// The result is deliberately not rounded.
func CellSize(containerWidth float64, rowCardinality int, fixedOverhead, gap float64) float64 {
	return (containerWidth - fixedOverhead - float64(rowCardinality-1)*gap) / float64(rowCardinality)
}

// Sizer owns the current cell size and re-derives it only when the
// bounding box or the row cardinality changes.
type Sizer struct {
	size        float64
	width       float64
	cardinality int
}

// Size returns the last accepted cell edge length (0 before any update).
func (s *Sizer) Size() float64 {
	return s.size
}

// Update recomputes the cell size for a measured container width and
// row cardinality. It reports whether the stored size changed. A
// computed size below the render floor is rejected (previous size
// retained, no error), and sub-threshold changes are skipped.
func (s *Sizer) Update(containerWidth float64, rowCardinality int, fixedOverhead, gap float64) bool {
	if rowCardinality < 1 || containerWidth <= fixedOverhead {
		return false
	}
	if containerWidth == s.width && rowCardinality == s.cardinality {
		return false
	}
	s.width = containerWidth
	s.cardinality = rowCardinality

	size := CellSize(containerWidth, rowCardinality, fixedOverhead, gap)
	if size < minCellSize {
		return false
	}
	delta := size - s.size
	if delta < 0 {
		delta = -delta
	}
	if delta < sizeEpsilon {
		return false
	}
	s.size = size
	return true
}
