package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	margin        = 10.0
)

// UIPanel stacks widgets under section headers in a scrollable column.
type UIPanel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	ScrollOffset  float64

	// rows holds widgets and section headers in display order
	rows []panelRow

	// Styling
	BGColor      color.RGBA
	BorderColor  color.RGBA
	SectionColor color.RGBA
}

type panelRow struct {
	section string
	widget  Widget
}

func (r panelRow) height() float64 {
	if r.widget == nil {
		return sectionHeight
	}
	return r.widget.Height()
}

// NewUIPanel creates a new UI panel
func NewUIPanel(title string, x, y, width, height float64) *UIPanel {
	return &UIPanel{
		Title:        title,
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		BGColor:      color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor:  color.RGBA{R: 100, G: 100, B: 110, A: 255},
		SectionColor: color.RGBA{R: 60, G: 60, B: 70, A: 255},
	}
}

// AddSection starts a new section header.
func (p *UIPanel) AddSection(title string) {
	p.rows = append(p.rows, panelRow{section: title})
}

// Add appends any widget to the current section.
func (p *UIPanel) Add(w Widget) {
	p.rows = append(p.rows, panelRow{widget: w})
	p.layout()
}

func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(0, 0, p.Width-2*margin, label, min, max, value)
	p.Add(s)
	return s
}

func (p *UIPanel) AddCheckbox(label string, value bool, onChange func(bool)) *Checkbox {
	c := NewCheckbox(0, 0, label, value)
	c.OnChange = onChange
	p.Add(c)
	return c
}

func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-2*margin, 22, label, onClick)
	p.Add(b)
	return b
}

// layout places every widget at its scrolled position.
func (p *UIPanel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		if r.widget != nil {
			r.widget.MoveTo(p.X+margin, y)
		}
		y += r.height()
	}
}

func (p *UIPanel) contentHeight() float64 {
	h := titleHeight
	for _, r := range p.rows {
		h += r.height()
	}
	return h
}

func (p *UIPanel) visible(y, h float64) bool {
	return y >= p.Y+titleHeight-5 && y+h <= p.Y+p.Height
}

// Contains reports whether the cursor is over the panel.
func (p *UIPanel) Contains() bool {
	return hovered(p.X, p.Y, p.Width, p.Height)
}

func (p *UIPanel) Update() {
	if _, dy := ebiten.Wheel(); dy != 0 && p.Contains() {
		maxScroll := max(0, p.contentHeight()-p.Height+margin)
		p.ScrollOffset = max(0, min(maxScroll, p.ScrollOffset-dy*20))
	}
	p.layout()

	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		if r.widget != nil && p.visible(y, r.height()) {
			r.widget.Update()
		}
		y += r.height()
	}
}

func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		h := r.height()
		if p.visible(y, h) {
			if r.widget == nil {
				vector.FillRect(screen, float32(p.X+5), float32(y), float32(p.Width-10), 20, p.SectionColor, true)
				ebitenutil.DebugPrintAt(screen, r.section, int(p.X+margin), int(y+3))
			} else {
				r.widget.Draw(screen)
			}
		}
		y += h
	}
}
