package draw

import "math"

// FillRect fills the axis-aligned rectangle with top-left (x, y) in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x0, y0 := c.toPixel(x, y)
	x1, y1 := c.toPixel(x+w, y+h)
	for py := max(y0, 0); py <= min(y1, c.subPixelHeight-1); py++ {
		for px := max(x0, 0); px <= min(x1, c.termWidth-1); px++ {
			c.pixels[py*c.termWidth+px] = true
		}
	}
}

// StrokeRect draws the outline of a rectangle in logical coordinates.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	tl := Point{X: x, Y: y}
	tr := Point{X: x + w, Y: y}
	br := Point{X: x + w, Y: y + h}
	bl := Point{X: x, Y: y + h}
	c.DrawLine(tl, tr)
	c.DrawLine(tr, br)
	c.DrawLine(br, bl)
	c.DrawLine(bl, tl)
}

// FillCircle fills a circle centered at (cx, cy) with logical radius r.
// Scaling is per axis, so a circle may render as an ellipse.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	x0, y0 := c.toPixel(cx-r, cy-r)
	x1, y1 := c.toPixel(cx+r, cy+r)
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx <= 0 || ry <= 0 {
		c.SetFloat(cx, cy)
		return
	}

	for py := max(y0, 0); py <= min(y1, c.subPixelHeight-1); py++ {
		dy := (float64(py) - pcy) / ry
		for px := max(x0, 0); px <= min(x1, c.termWidth-1); px++ {
			dx := (float64(px) - pcx) / rx
			if dx*dx+dy*dy <= 1 {
				c.pixels[py*c.termWidth+px] = true
			}
		}
	}
	// Tiny circles can fall between pixel centers.
	c.SetFloat(cx, cy)
}

func (c *Canvas) toPixel(x, y float64) (px, py int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}
