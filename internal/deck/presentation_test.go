package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dais/internal/text"
)

// stepMutator is a ChunkMutator with a fixed number of steps.
type stepMutator struct {
	steps   int
	current int
}

func (m *stepMutator) Next() bool {
	if m.current+1 >= m.steps {
		return false
	}
	m.current++
	return true
}

func (m *stepMutator) Previous() bool {
	if m.current == 0 {
		return false
	}
	m.current--
	return true
}

func (m *stepMutator) Reset()    { m.current = 0 }
func (m *stepMutator) ApplyAll() { m.current = m.steps - 1 }

func plainDeck(titles ...string) *Presentation {
	slides := make([]*Slide, len(titles))
	for i, title := range titles {
		slides[i] = NewSlide(title, nil, nil)
	}
	return NewPresentation(slides)
}

func TestPresentationEmptyGetsBlankSlide(t *testing.T) {
	t.Parallel()

	p := NewPresentation(nil)
	assert.Equal(t, 1, p.SlideCount())
	assert.Equal(t, "", p.CurrentSlide().Title())
}

func TestPresentationNextAndPrevious(t *testing.T) {
	t.Parallel()

	p := plainDeck("a", "b", "c")

	assert.True(t, p.Next())
	assert.True(t, p.Next())
	assert.Equal(t, 2, p.CurrentIndex())
	assert.False(t, p.Next())

	assert.True(t, p.Previous())
	assert.True(t, p.Previous())
	assert.Equal(t, 0, p.CurrentIndex())
	assert.False(t, p.Previous())
}

func TestPresentationNextConsumesMutatorSteps(t *testing.T) {
	t.Parallel()

	m := &stepMutator{steps: 3}
	p := NewPresentation([]*Slide{
		NewSlide("a", nil, []ChunkMutator{m}),
		NewSlide("b", nil, nil),
	})

	// Two reveal steps before the slide changes.
	assert.True(t, p.Next())
	assert.Equal(t, 0, p.CurrentIndex())
	assert.True(t, p.Next())
	assert.Equal(t, 0, p.CurrentIndex())
	assert.True(t, p.Next())
	assert.Equal(t, 1, p.CurrentIndex())
}

func TestPresentationPreviousEntersFullyRevealed(t *testing.T) {
	t.Parallel()

	m := &stepMutator{steps: 3}
	p := NewPresentation([]*Slide{
		NewSlide("a", nil, []ChunkMutator{m}),
		NewSlide("b", nil, nil),
	})
	p.NextFast()

	assert.True(t, p.Previous())
	assert.Equal(t, 0, p.CurrentIndex())
	assert.Equal(t, 2, m.current)

	// Steps retract before the cursor would move further back.
	assert.True(t, p.Previous())
	assert.Equal(t, 0, p.CurrentIndex())
	assert.Equal(t, 1, m.current)
}

func TestPresentationFastNavigationSkipsSteps(t *testing.T) {
	t.Parallel()

	m := &stepMutator{steps: 3}
	p := NewPresentation([]*Slide{
		NewSlide("a", nil, []ChunkMutator{m}),
		NewSlide("b", nil, nil),
	})

	assert.True(t, p.NextFast())
	assert.Equal(t, 1, p.CurrentIndex())
	assert.True(t, p.PreviousFast())
	assert.Equal(t, 0, p.CurrentIndex())
	assert.Equal(t, 2, m.current)
	assert.False(t, p.PreviousFast())
}

func TestPresentationGoToClamps(t *testing.T) {
	t.Parallel()

	p := plainDeck("a", "b", "c")

	assert.True(t, p.GoTo(2))
	assert.Equal(t, 1, p.CurrentIndex())

	assert.True(t, p.GoTo(99))
	assert.Equal(t, 2, p.CurrentIndex())

	assert.True(t, p.GoTo(0))
	assert.Equal(t, 0, p.CurrentIndex())

	// Jumping to the current slide is not a change.
	assert.False(t, p.GoTo(1))
}

func TestPresentationFirstAndLast(t *testing.T) {
	t.Parallel()

	p := plainDeck("a", "b", "c")

	assert.True(t, p.Last())
	assert.Equal(t, 2, p.CurrentIndex())
	assert.False(t, p.Last())

	assert.True(t, p.First())
	assert.Equal(t, 0, p.CurrentIndex())
	assert.False(t, p.First())
}

func TestPresentationJumpResetsReveal(t *testing.T) {
	t.Parallel()

	m := &stepMutator{steps: 3}
	p := NewPresentation([]*Slide{
		NewSlide("a", nil, []ChunkMutator{m}),
		NewSlide("b", nil, nil),
	})
	p.Next()
	p.NextFast()

	assert.True(t, p.GoTo(1))
	assert.Equal(t, 0, m.current)
}

func TestPresentationTitles(t *testing.T) {
	t.Parallel()

	p := plainDeck("Intro", "", "End")
	assert.Equal(t, []string{"Intro", "", "End"}, p.Titles())
}

func TestSlideAsyncOperations(t *testing.T) {
	t.Parallel()

	disabled := NewExecutionDisabled(text.Style{})
	s := NewSlide("a", []Operation{LineBreak{}, disabled}, nil)

	async := s.AsyncOperations()
	assert.Len(t, async, 1)
	assert.Same(t, disabled, async[0])
}
