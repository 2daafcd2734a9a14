package deck

// ChunkMutator is a multi-step reveal attached to a slide. Navigation
// offers each step to the mutators before moving between slides.
type ChunkMutator interface {
	// Next advances one step. False when already at the last step.
	Next() bool
	// Previous retracts one step. False when already at the first.
	Previous() bool
	// Reset jumps to the first step.
	Reset()
	// ApplyAll jumps to the last step.
	ApplyAll()
}

// Slide is one screen of the presentation.
type Slide struct {
	title    string
	ops      []Operation
	mutators []ChunkMutator
}

// NewSlide builds a slide from its operations and reveal mutators.
func NewSlide(title string, ops []Operation, mutators []ChunkMutator) *Slide {
	return &Slide{title: title, ops: ops, mutators: mutators}
}

// Title returns the slide's heading, or "" if it has none.
func (s *Slide) Title() string {
	return s.title
}

// Operations returns the slide's render operations.
func (s *Slide) Operations() []Operation {
	return s.ops
}

// AsyncOperations returns the slide's pollable operations.
func (s *Slide) AsyncOperations() []RenderAsync {
	var async []RenderAsync
	for _, op := range s.ops {
		if a, ok := op.(RenderAsync); ok {
			async = append(async, a)
		}
	}
	return async
}

// Presentation is the ordered slide list plus the cursor over it.
type Presentation struct {
	slides  []*Slide
	current int
}

// NewPresentation builds a presentation. An empty slide list yields a
// single blank slide so the cursor always points at something.
func NewPresentation(slides []*Slide) *Presentation {
	if len(slides) == 0 {
		slides = []*Slide{NewSlide("", nil, nil)}
	}
	return &Presentation{slides: slides}
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// CurrentIndex returns the 0-based index of the visible slide.
func (p *Presentation) CurrentIndex() int {
	return p.current
}

// CurrentSlide returns the visible slide.
func (p *Presentation) CurrentSlide() *Slide {
	return p.slides[p.current]
}

// Titles returns every slide's title, for the index listing.
func (p *Presentation) Titles() []string {
	titles := make([]string, len(p.slides))
	for i, s := range p.slides {
		titles[i] = s.title
	}
	return titles
}

// Next advances one reveal step, or one slide once the current slide's
// steps are exhausted. Returns false at the very end.
func (p *Presentation) Next() bool {
	for _, m := range p.CurrentSlide().mutators {
		if m.Next() {
			return true
		}
	}
	if p.current+1 >= len(p.slides) {
		return false
	}
	p.current++
	p.resetCurrent()
	return true
}

// Previous retracts one reveal step, or moves back one slide. A slide
// entered backwards shows its final reveal step. Returns false at the
// very beginning.
func (p *Presentation) Previous() bool {
	muts := p.CurrentSlide().mutators
	for i := len(muts) - 1; i >= 0; i-- {
		if muts[i].Previous() {
			return true
		}
	}
	if p.current == 0 {
		return false
	}
	p.current--
	p.applyAllCurrent()
	return true
}

// NextFast moves to the next slide, skipping reveal steps.
func (p *Presentation) NextFast() bool {
	if p.current+1 >= len(p.slides) {
		return false
	}
	p.current++
	p.resetCurrent()
	return true
}

// PreviousFast moves to the previous slide, skipping reveal steps.
func (p *Presentation) PreviousFast() bool {
	if p.current == 0 {
		return false
	}
	p.current--
	p.applyAllCurrent()
	return true
}

// First jumps to the first slide.
func (p *Presentation) First() bool {
	return p.jump(0)
}

// Last jumps to the last slide.
func (p *Presentation) Last() bool {
	return p.jump(len(p.slides) - 1)
}

// GoTo jumps to a 1-based slide number, clamped into range.
func (p *Presentation) GoTo(number int) bool {
	idx := number - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.slides) {
		idx = len(p.slides) - 1
	}
	return p.jump(idx)
}

func (p *Presentation) jump(idx int) bool {
	if idx == p.current {
		return false
	}
	p.current = idx
	p.resetCurrent()
	return true
}

func (p *Presentation) resetCurrent() {
	for _, m := range p.CurrentSlide().mutators {
		m.Reset()
	}
}

func (p *Presentation) applyAllCurrent() {
	for _, m := range p.CurrentSlide().mutators {
		m.ApplyAll()
	}
}
