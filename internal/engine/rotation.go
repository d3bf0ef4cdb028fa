// Package engine contains the channel rotation, comment selection and
// watch-time policy that decides what a support run does. It is pure
// decision logic: the runner executes the decisions against the browser.
package engine

// VisitOrder returns the original-list indices of channels in the order
// they should be visited this run.
//
// With rotation off, or with no previous run recorded (lastIndex < 0),
// the order is simply 0..n-1. With rotation on, the run resumes after the
// last supported channel: the order is the original list rotated left so
// that (lastIndex+1) mod n comes first. The result is always a permutation
// of 0..n-1 and is deterministic for the same inputs.
func VisitOrder(n int, rotate bool, lastIndex int) []int {
	order := make([]int, n)
	start := 0
	if rotate && lastIndex >= 0 && n > 0 {
		start = (lastIndex + 1) % n
	}
	for i := range order {
		order[i] = (start + i) % n
	}
	return order
}
