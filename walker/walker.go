package walker

import (
	"errors"
	"fmt"

	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Hooks are the callbacks fired during a walk. Every field is optional.
type Hooks struct {
	// BeforeVisit fires before a node's children are visited.
	BeforeVisit func(node *schema.Node) Action
	// AfterVisit fires after all children of node have been visited.
	AfterVisit func(node *schema.Node) error

	// BeforeProperty and AfterProperty bracket the visit of an object property.
	BeforeProperty func(name string)
	AfterProperty  func(name string)

	// BeforeItems and AfterItems bracket the visit of an array's items.
	BeforeItems func()
	AfterItems  func()

	// BeforeAdditional and AfterAdditional bracket the visit of an object's
	// additionalProperties schema.
	BeforeAdditional func()
	AfterAdditional  func()
}

// DefaultMaxDepth is the nesting limit used by New.
const DefaultMaxDepth = 100

// Walker traverses schema trees.
type Walker struct {
	maxDepth int
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxDepth sets the maximum nesting depth.
// If depth is not positive, it is silently ignored and the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// New creates a Walker with default settings.
func New(opts ...Option) *Walker {
	w := &Walker{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk traverses root with a default Walker.
func Walk(root *schema.Node, hooks Hooks) error {
	return New().Walk(root, hooks)
}

// Walk traverses root in post-order, firing hooks. A nil root is a no-op.
func (w *Walker) Walk(root *schema.Node, hooks Hooks) error {
	if root == nil {
		return nil
	}
	s := &walkState{
		hooks:  hooks,
		limit:  w.maxDepth,
		active: make(map[*schema.Node]struct{}),
	}
	err := s.visit(root, 0)
	if errors.Is(err, errStopped) {
		return nil
	}
	return err
}

// WalkRegistry walks every root that exists when the call starts, in sorted
// id order. Roots added by hooks during the walk are not visited. build is
// called once per root with a fresh Context positioned at that root.
func (w *Walker) WalkRegistry(reg *schema.Registry, build func(id string, ctx *Context) Hooks) error {
	for _, id := range reg.IDs() {
		root, ok := reg.Get(id)
		if !ok {
			continue
		}
		ctx := NewContext(id)
		if err := w.Walk(root, build(id, ctx)); err != nil {
			return fmt.Errorf("walking %s: %w", id, err)
		}
	}
	return nil
}

var errStopped = errors.New("walk stopped")

type walkState struct {
	hooks  Hooks
	limit  int
	active map[*schema.Node]struct{}
}

func (s *walkState) visit(node *schema.Node, depth int) error {
	if depth > s.limit {
		return &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(s.limit),
			Actual:       int64(depth),
		}
	}
	if _, seen := s.active[node]; seen {
		return &oaserrors.ReferenceError{
			IsCircular: true,
			Message:    fmt.Sprintf("%s node revisited at depth %d", node.Kind(), depth),
		}
	}
	s.active[node] = struct{}{}
	defer delete(s.active, node)

	action := Continue
	if s.hooks.BeforeVisit != nil {
		action = s.hooks.BeforeVisit(node)
	}
	switch action {
	case Stop:
		return errStopped
	case SkipChildren:
	default:
		if err := s.visitChildren(node, depth); err != nil {
			return err
		}
	}

	if s.hooks.AfterVisit != nil {
		return s.hooks.AfterVisit(node)
	}
	return nil
}

func (s *walkState) visitChildren(node *schema.Node, depth int) error {
	switch t := node.Type.(type) {
	case *schema.Array:
		if t.Items == nil {
			return nil
		}
		call0(s.hooks.BeforeItems)
		if err := s.visit(t.Items, depth+1); err != nil {
			return err
		}
		call0(s.hooks.AfterItems)
	case *schema.Object:
		for _, name := range t.PropertyNames() {
			call1(s.hooks.BeforeProperty, name)
			if err := s.visit(t.Properties[name], depth+1); err != nil {
				return err
			}
			call1(s.hooks.AfterProperty, name)
		}
		if t.AdditionalProperties != nil {
			call0(s.hooks.BeforeAdditional)
			if err := s.visit(t.AdditionalProperties, depth+1); err != nil {
				return err
			}
			call0(s.hooks.AfterAdditional)
		}
	case *schema.String, *schema.Integer, *schema.Number, *schema.Boolean, *schema.Ref, nil:
		// leaves
	}
	return nil
}

func call0(fn func()) {
	if fn != nil {
		fn()
	}
}

func call1(fn func(string), arg string) {
	if fn != nil {
		fn(arg)
	}
}
