// Package input dispatches key and gesture events to editing
// operations through a priority-ordered chain of handlers.
//
// Each handler is given the session context and the event, and answers
// Handled, NotHandled, or Blocked. Dispatch walks the chain in priority
// order; the first Handled short-circuits the rest, and Blocked stops
// the walk without consuming the event. Hosts register their own
// handlers ahead of or behind the stock editing set.
package input
