package ui

import "github.com/hajimehoshi/ebiten/v2"

// Widget is anything the panel can stack vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
	MoveTo(x, y float64)
}

// hovered reports whether the cursor is inside the rectangle.
func hovered(x, y, w, h float64) bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= x && float64(mx) <= x+w &&
		float64(my) >= y && float64(my) <= y+h
}

// clickLatch turns a held mouse button into a single click.
type clickLatch struct {
	down bool
}

// fire returns true once per press while over is true.
func (l *clickLatch) fire(over bool) bool {
	if over && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if l.down {
			return false
		}
		l.down = true
		return true
	}
	l.down = false
	return false
}
