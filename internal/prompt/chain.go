package prompt

import (
	"sort"

	"github.com/arlerug/wesafe-assistant/internal/turn"
)

// HandlerFunc is one candidate contributor to a prompt slot. It returns the
// slot value and true to win, or declines with false to let the next handler
// run. Exactly one handler wins per evaluation; winning fully replaces lower
// priority output, it is not concatenation.
type HandlerFunc func(st *turn.State) (string, bool)

type handler struct {
	priority int
	name     string
	fn       HandlerFunc
}

// Chain is a priority-ordered list of handlers for one prompt slot,
// evaluated highest priority first.
type Chain struct {
	handlers []handler
	sorted   bool
}

// Register adds a handler with the given priority. Among equal priorities
// the first registered wins evaluation order.
func (c *Chain) Register(priority int, name string, fn HandlerFunc) {
	c.handlers = append(c.handlers, handler{priority: priority, name: name, fn: fn})
	c.sorted = false
}

// Evaluate runs handlers highest-priority first and returns the first
// accepted value. An empty chain, or one where every handler declines,
// yields "".
func (c *Chain) Evaluate(st *turn.State) string {
	if !c.sorted {
		sort.SliceStable(c.handlers, func(i, j int) bool {
			return c.handlers[i].priority > c.handlers[j].priority
		})
		c.sorted = true
	}

	for _, h := range c.handlers {
		if out, ok := h.fn(st); ok {
			return out
		}
	}
	return ""
}
