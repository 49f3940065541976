package view

// Keys handled by filter-control navigation.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// AdjacentFilter returns the index that should receive focus when key is
// pressed while the control at current is focused. Focus never wraps and the
// selected category is not changed; unknown keys keep the current index.
func AdjacentFilter(count, current int, key string) int {
	if count <= 0 || current < 0 || current >= count {
		return current
	}
	switch key {
	case KeyArrowLeft:
		if current > 0 {
			return current - 1
		}
	case KeyArrowRight:
		if current < count-1 {
			return current + 1
		}
	}
	return current
}
