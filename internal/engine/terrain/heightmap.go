package terrain

// HeightAt returns the grid height at a world position using bilinear interpolation
// of the four surrounding samples. Positions outside the grid clamp to its edge.
func (h *Heightfield) HeightAt(x, y float64) float64 {
	if h.n == 1 {
		return h.heights[0]
	}

	half := float64(h.n-1) / 2
	fx := clampf(x/h.cfg.Resolution+half, 0, float64(h.n-1))
	fy := clampf(y/h.cfg.Resolution+half, 0, float64(h.n-1))

	col := int(fx)
	row := int(fy)
	if col >= h.n-1 {
		col = h.n - 2
	}
	if row >= h.n-1 {
		row = h.n - 2
	}
	tx := fx - float64(col)
	ty := fy - float64(row)

	// Lower row, then upper row, then between them.
	south := h.Sample(row, col)*(1-tx) + h.Sample(row, col+1)*tx
	north := h.Sample(row+1, col)*(1-tx) + h.Sample(row+1, col+1)*tx
	return south*(1-ty) + north*ty
}

// Contains reports whether (x, y) lies within the sampled square.
func (h *Heightfield) Contains(x, y float64) bool {
	half := float64(h.n-1) / 2 * h.cfg.Resolution
	return x >= -half && x <= half && y >= -half && y <= half
}

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
