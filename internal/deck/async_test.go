package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsyncStateNeedsRepaint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state AsyncState
		want  bool
	}{
		{name: "not started", state: AsyncState{Phase: PhaseNotStarted}, want: false},
		{name: "rendering unchanged", state: AsyncState{Phase: PhaseRendering}, want: false},
		{name: "rendering modified", state: AsyncState{Phase: PhaseRendering, Modified: true}, want: true},
		{name: "just finished", state: AsyncState{Phase: PhaseJustFinished}, want: true},
		{name: "rendered", state: AsyncState{Phase: PhaseRendered}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.state.NeedsRepaint())
		})
	}
}

func TestRenderPhaseOrdering(t *testing.T) {
	t.Parallel()

	assert.Less(t, PhaseNotStarted, PhaseRendering)
	assert.Less(t, PhaseRendering, PhaseJustFinished)
	assert.Less(t, PhaseJustFinished, PhaseRendered)
}

func TestRenderPhaseString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not started", PhaseNotStarted.String())
	assert.Equal(t, "rendering", PhaseRendering.String())
	assert.Equal(t, "just finished", PhaseJustFinished.String())
	assert.Equal(t, "rendered", PhaseRendered.String())
}
