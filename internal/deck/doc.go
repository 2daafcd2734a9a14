// Package deck models a rendered presentation: slides as ordered lists
// of render operations, and the polling protocol for operations whose
// content arrives over time.
//
// Most operations are static values captured when the deck is built.
// Dynamic operations implement OperationSource and recompute themselves
// against the current window size, supporting reflow on resize. Async
// operations additionally implement RenderAsync: Start begins producing
// content, Poll reports progress through a four-phase lifecycle the
// presenter loop drives once per tick.
//
// Slides carry chunk mutators for multi-step reveals; navigation
// consumes mutator steps before moving between slides.
package deck
