package segue

// Pager is the page-level consumer: sections are stacked vertically, one
// viewport tall each, and the pager scrolls between them. It exposes the
// eased scroll offset, per-section opacity for cross-fades, and a view matrix
// for drawing sections in screen space.
type Pager struct {
	// Viewport is the screen-space rectangle the pager renders into.
	Viewport Rect
	// Gap is extra world-space spacing between stacked sections.
	Gap float64

	ease  Easing
	count int

	frame  Frame
	eased  float64
	offset float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// NewPager creates a pager for count sections rendered into viewport. A nil
// easing selects EaseInOutCubic.
func NewPager(viewport Rect, count int, easing Easing) *Pager {
	if easing == nil {
		easing = EaseInOutCubic
	}
	return &Pager{Viewport: viewport, ease: easing, count: count, dirty: true}
}

// Apply updates the pager from a Frame.
func (p *Pager) Apply(f Frame) {
	p.frame = f
	from := p.sectionTop(f.Active)
	if !f.Running() {
		p.eased = 0
		p.setOffset(from)
		return
	}
	p.eased = p.ease(f.Progress)
	p.setOffset(LerpScalar(from, p.sectionTop(f.Target), p.eased))
}

func (p *Pager) setOffset(y float64) {
	if y != p.offset {
		p.offset = y
		p.dirty = true
	}
}

// stride is the world-space distance between the tops of two sections.
func (p *Pager) stride() float64 {
	return p.Viewport.Height + p.Gap
}

func (p *Pager) sectionTop(i int) float64 {
	return float64(i) * p.stride()
}

// Offset returns the world-space y the top of the viewport is scrolled to.
func (p *Pager) Offset() float64 {
	return p.offset
}

// Eased returns the eased progress of the current frame, 0 while idle.
func (p *Pager) Eased() float64 {
	return p.eased
}

// Opacity returns the cross-fade opacity of section i: the outgoing section
// fades from 1 to 0 while the incoming one fades in. Other sections are 0.
func (p *Pager) Opacity(i int) float64 {
	f := p.frame
	if !f.Running() {
		if i == f.Active {
			return 1
		}
		return 0
	}
	switch i {
	case f.Active:
		return clamp01(1 - p.eased)
	case f.Target:
		return clamp01(p.eased)
	}
	return 0
}

// SectionRect returns the world-space rectangle of section i.
func (p *Pager) SectionRect(i int) Rect {
	return Rect{X: 0, Y: p.sectionTop(i), Width: p.Viewport.Width, Height: p.Viewport.Height}
}

// Visible reports whether any part of section i is inside the viewport.
// Sections that only touch the viewport edge are not visible.
func (p *Pager) Visible(i int) bool {
	if i < 0 || i >= p.count {
		return false
	}
	top := p.sectionTop(i)
	return top < p.offset+p.Viewport.Height && top+p.Viewport.Height > p.offset
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(viewport origin) * Translate(0, -offset)
func (p *Pager) computeViewMatrix() [6]float64 {
	if !p.dirty {
		return p.viewMatrix
	}
	p.dirty = false
	p.viewMatrix = [6]float64{1, 0, 0, 1, p.Viewport.X, p.Viewport.Y - p.offset}
	p.invViewMatrix = invertAffine(p.viewMatrix)
	return p.viewMatrix
}

// ViewMatrix returns the world-to-screen affine matrix [a b c d tx ty],
// suitable for ebiten.GeoM.SetElement.
func (p *Pager) ViewMatrix() [6]float64 {
	return p.computeViewMatrix()
}

// WorldToScreen converts world coordinates to screen coordinates.
func (p *Pager) WorldToScreen(wx, wy float64) (sx, sy float64) {
	p.computeViewMatrix()
	return transformPoint(p.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (p *Pager) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	p.computeViewMatrix()
	return transformPoint(p.invViewMatrix, sx, sy)
}

// MarkDirty forces a recomputation of the view matrix, e.g. after changing
// Viewport or Gap.
func (p *Pager) MarkDirty() {
	p.dirty = true
}
