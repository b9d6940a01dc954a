package pathfind

import "math"

// SteerResult contains the computed steering velocity
type SteerResult struct {
	VX, VY float64
}

// SteerFlow computes a velocity following a flow field while keeping
// separation from nearby units.
// ux, uy: unit position; speed: max speed;
// others: list of (x, y, radius) of nearby units to avoid
func SteerFlow(ff *FlowField, ux, uy, speed float64, others [][3]float64) SteerResult {
	fx, fy := ff.Direction(int(ux), int(uy))
	seekX, seekY := fx*speed, fy*speed
	return blend(ux, uy, speed, seekX, seekY, others)
}

// SteerSeek computes a velocity straight toward a point with separation.
// Used for the last stretch, when the target is in the same or adjacent
// cell and the flow direction degenerates.
func SteerSeek(ux, uy, tx, ty, speed float64, others [][3]float64) SteerResult {
	dx, dy := tx-ux, ty-uy
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 0.01 {
		return SteerResult{}
	}
	return blend(ux, uy, speed, dx/dist*speed, dy/dist*speed, others)
}

func blend(ux, uy, speed, seekX, seekY float64, others [][3]float64) SteerResult {
	// Separation from other units
	sepX, sepY := 0.0, 0.0
	for _, o := range others {
		ox, oy, or := o[0], o[1], o[2]
		sx, sy := ux-ox, uy-oy
		d := math.Sqrt(sx*sx + sy*sy)
		minDist := or + 0.5
		if d < minDist && d > 0.001 {
			force := (minDist - d) / minDist
			sepX += sx / d * force * speed * 0.5
			sepY += sy / d * force * speed * 0.5
		}
	}

	vx := seekX + sepX
	vy := seekY + sepY

	// Clamp to max speed
	v := math.Sqrt(vx*vx + vy*vy)
	if v > speed {
		vx = vx / v * speed
		vy = vy / v * speed
	}

	return SteerResult{VX: vx, VY: vy}
}
