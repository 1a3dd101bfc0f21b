package editor

// ZoomIn scales the canvas up by one step. There is no upper bound.
func ZoomIn(s State) State {
	out := s.clone()
	out.ZoomLevel = s.ZoomLevel * zoomStep
	return out
}

// ZoomOut scales the canvas down by one step. There is no lower bound.
func ZoomOut(s State) State {
	out := s.clone()
	out.ZoomLevel = s.ZoomLevel / zoomStep
	return out
}

// ResetZoom returns to 1:1.
func ResetZoom(s State) State {
	if s.ZoomLevel == 1 {
		return s
	}
	out := s.clone()
	out.ZoomLevel = 1
	return out
}

// ToggleGrid flips the grid overlay.
func ToggleGrid(s State) State {
	out := s.clone()
	out.ShowGrid = !s.ShowGrid
	return out
}
