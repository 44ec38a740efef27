package input

import (
	"sort"
	"sync"

	"github.com/dshills/docstorm/internal/composer"
	"github.com/dshills/docstorm/internal/ops"
)

// Context carries the session state handed to every handler.
type Context struct {
	Ops      *ops.Operations
	Composer *composer.Composer
}

// NewContext builds a context from an operations session.
func NewContext(o *ops.Operations) *Context {
	return &Context{Ops: o, Composer: o.Composer()}
}

// HandlerFunc examines one event against the current selection state.
type HandlerFunc func(ctx *Context, ev Event) Result

// Handler is one named entry in the dispatch chain. Lower priority
// values run earlier.
type Handler struct {
	Name     string
	Priority int
	Fn       HandlerFunc
}

// Chain is a priority-ordered chain of handlers.
type Chain struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewChain creates a chain with the given handlers.
func NewChain(handlers ...Handler) *Chain {
	c := &Chain{}
	for _, h := range handlers {
		c.Register(h)
	}
	return c
}

// Register adds a handler, keeping the chain sorted by priority.
// Registration order breaks ties.
func (c *Chain) Register(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
	sort.SliceStable(c.handlers, func(i, j int) bool {
		return c.handlers[i].Priority < c.handlers[j].Priority
	})
}

// Remove drops every handler with the given name.
func (c *Chain) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.handlers[:0]
	for _, h := range c.handlers {
		if h.Name != name {
			kept = append(kept, h)
		}
	}
	c.handlers = kept
}

// Dispatch walks the chain in priority order. The first Handled
// short-circuits the rest; Blocked stops the walk without handling.
func (c *Chain) Dispatch(ctx *Context, ev Event) Result {
	c.mu.RLock()
	handlers := make([]Handler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.RUnlock()

	for _, h := range handlers {
		switch h.Fn(ctx, ev) {
		case Handled:
			return Handled
		case Blocked:
			return Blocked
		}
	}
	return NotHandled
}
