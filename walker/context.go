package walker

import "github.com/MaximilianKoestler/hcloud-openapi/schema"

// Context is an explicit location stack owned by the caller of a walk.
type Context struct {
	stack schema.Location
}

// NewContext returns a Context positioned at the root id.
func NewContext(root string) *Context {
	return &Context{stack: schema.Location{root}}
}

// Push appends a segment.
func (c *Context) Push(segment string) {
	c.stack = append(c.stack, segment)
}

// Pop removes the last segment. The root segment is never removed.
func (c *Context) Pop() {
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// Location returns a copy of the current stack.
func (c *Context) Location() schema.Location {
	return c.stack.Clone()
}

// Last returns the innermost segment.
func (c *Context) Last() string {
	return c.stack.Last()
}

// Depth returns the number of segments on the stack.
func (c *Context) Depth() int {
	return len(c.stack)
}

// Track returns hooks that maintain the stack around every property visit
// before delegating to h. Items and additionalProperties edges leave the
// stack untouched.
func (c *Context) Track(h Hooks) Hooks {
	before, after := h.BeforeProperty, h.AfterProperty
	h.BeforeProperty = func(name string) {
		c.Push(name)
		if before != nil {
			before(name)
		}
	}
	h.AfterProperty = func(name string) {
		if after != nil {
			after(name)
		}
		c.Pop()
	}
	return h
}
