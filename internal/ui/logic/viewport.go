package logic

// Viewport is a window of Height rows over a list of Total rows
type Viewport struct {
	Offset int
	Height int
	Total  int
}

// EnsureVisible adjusts the offset so that index is inside the window
func (v Viewport) EnsureVisible(index int) Viewport {
	height := v.Height
	if height < 1 {
		height = 1
	}

	// If selected item is above viewport, scroll up
	if index < v.Offset {
		v.Offset = index
	}

	// If selected item is below viewport, scroll down
	if index >= v.Offset+height {
		v.Offset = index - height + 1
	}

	return v.Clamp()
}

// Clamp keeps the offset inside the list
func (v Viewport) Clamp() Viewport {
	height := v.Height
	if height < 1 {
		height = 1
	}
	maxOffset := v.Total - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	return v
}

// Visible returns the half-open range of rows inside the window
func (v Viewport) Visible() (start, end int) {
	v = v.Clamp()
	end = v.Offset + v.Height
	if end > v.Total {
		end = v.Total
	}
	return v.Offset, end
}

// ClampIndex keeps index within [0, total-1], or 0 for an empty list
func ClampIndex(index, total int) int {
	if total <= 0 || index < 0 {
		return 0
	}
	if index >= total {
		return total - 1
	}
	return index
}
