package board

// The four named regions of the urgency/importance plane.
const (
	QuadrantDoNow     = "Do Now"
	QuadrantPlan      = "Plan"
	QuadrantDelegate  = "Delegate"
	QuadrantEliminate = "Eliminate"
)

// QuadrantLabel classifies a normalized board position. X is importance
// (right half = important); Y is urgency, inverted (top half = urgent).
// Boundary values land on the important/urgent side, so the exact center
// is "Do Now".
func QuadrantLabel(x, y float64) string {
	important := x >= 0.5
	urgent := y <= 0.5
	switch {
	case important && urgent:
		return QuadrantDoNow
	case important:
		return QuadrantPlan
	case urgent:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}
