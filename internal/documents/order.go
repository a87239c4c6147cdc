package documents

// pageOrder lists the zero-based source page for each position after moving
// page from to index to.
func pageOrder(count, from, to int) []int {
	order := make([]int, 0, count)
	for i := range count {
		if i != from {
			order = append(order, i)
		}
	}
	order = append(order, 0)
	copy(order[to+1:], order[to:])
	order[to] = from
	return order
}

// newIndex returns where page old lands after moving page from to index to.
func newIndex(old, from, to int) int {
	switch {
	case old == from:
		return to
	case from < to && old > from && old <= to:
		return old - 1
	case to < from && old >= to && old < from:
		return old + 1
	default:
		return old
	}
}
