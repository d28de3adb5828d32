package walker

import (
	"errors"
	"testing"

	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *schema.Node {
	return schema.NewObject(map[string]*schema.Node{
		"b": schema.NewArray(schema.NewObject(map[string]*schema.Node{
			"y": schema.NewString(),
			"x": schema.NewInteger(),
		})),
		"a": schema.NewBoolean(),
	})
}

func TestWalk_PostOrderSortedProperties(t *testing.T) {
	var events []string
	root := sampleTree()
	root.Type.(*schema.Object).AdditionalProperties = schema.NewString()

	err := Walk(root, Hooks{
		BeforeVisit: func(n *schema.Node) Action {
			events = append(events, "enter:"+n.Kind().String())
			return Continue
		},
		AfterVisit: func(n *schema.Node) error {
			events = append(events, "leave:"+n.Kind().String())
			return nil
		},
		BeforeProperty:   func(name string) { events = append(events, "prop:"+name) },
		AfterProperty:    func(name string) { events = append(events, "/prop:"+name) },
		BeforeItems:      func() { events = append(events, "items") },
		AfterItems:       func() { events = append(events, "/items") },
		BeforeAdditional: func() { events = append(events, "additional") },
		AfterAdditional:  func() { events = append(events, "/additional") },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"enter:object",
		"prop:a", "enter:boolean", "leave:boolean", "/prop:a",
		"prop:b", "enter:array",
		"items", "enter:object",
		"prop:x", "enter:integer", "leave:integer", "/prop:x",
		"prop:y", "enter:string", "leave:string", "/prop:y",
		"leave:object", "/items",
		"leave:array", "/prop:b",
		"additional", "enter:string", "leave:string", "/additional",
		"leave:object",
	}, events)
}

func TestWalk_Actions(t *testing.T) {
	t.Run("SkipChildren still fires AfterVisit", func(t *testing.T) {
		var visited int
		err := Walk(sampleTree(), Hooks{
			BeforeVisit: func(n *schema.Node) Action {
				if n.Kind() == schema.KindArray {
					return SkipChildren
				}
				return Continue
			},
			AfterVisit: func(*schema.Node) error {
				visited++
				return nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, visited) // boolean, array, root
	})

	t.Run("Stop ends the walk without error", func(t *testing.T) {
		var visited int
		err := Walk(sampleTree(), Hooks{
			BeforeVisit: func(n *schema.Node) Action {
				visited++
				if n.Kind() == schema.KindArray {
					return Stop
				}
				return Continue
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, visited)
	})

	t.Run("AfterVisit error aborts", func(t *testing.T) {
		boom := errors.New("boom")
		err := Walk(sampleTree(), Hooks{
			AfterVisit: func(n *schema.Node) error {
				if n.Kind() == schema.KindInteger {
					return boom
				}
				return nil
			},
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestWalk_CycleFailsFast(t *testing.T) {
	obj := schema.NewObject(nil)
	obj.Type.(*schema.Object).Properties["self"] = obj

	err := Walk(obj, Hooks{})
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrCircularReference)
}

func TestWalk_SharedNodeIsNotACycle(t *testing.T) {
	shared := schema.NewString()
	root := schema.NewObject(map[string]*schema.Node{"a": shared, "b": shared})
	assert.NoError(t, Walk(root, Hooks{}))
}

func TestWalk_DepthLimit(t *testing.T) {
	node := schema.NewString()
	for range 5 {
		node = schema.NewArray(node)
	}

	err := New(WithMaxDepth(3)).Walk(node, Hooks{})
	var limitErr *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, int64(3), limitErr.Limit)

	assert.NoError(t, New(WithMaxDepth(0)).Walk(node, Hooks{}), "non-positive depth keeps default")
}

func TestWalk_NilRootAndArrayWithoutItems(t *testing.T) {
	assert.NoError(t, Walk(nil, Hooks{}))

	var items int
	err := Walk(&schema.Node{Type: &schema.Array{}}, Hooks{BeforeItems: func() { items++ }})
	require.NoError(t, err)
	assert.Zero(t, items)
}

func TestContext_Track(t *testing.T) {
	ctx := NewContext("root")
	var seen []string

	err := Walk(sampleTree(), ctx.Track(Hooks{
		AfterVisit: func(n *schema.Node) error {
			if n.Kind() == schema.KindObject {
				seen = append(seen, ctx.Location().String())
			}
			return nil
		},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"root/b", "root"}, seen)
	assert.Equal(t, 1, ctx.Depth())
	ctx.Pop()
	assert.Equal(t, "root", ctx.Last(), "root segment is never popped")
}

func TestWalkRegistry_SnapshotsIDs(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Set("a", schema.NewObject(nil))
	reg.Set("b", schema.NewObject(nil))

	var walked []string
	err := New().WalkRegistry(reg, func(id string, _ *Context) Hooks {
		walked = append(walked, id)
		reg.Set("added_"+id, schema.NewObject(nil))
		return Hooks{}
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, walked)
	assert.Equal(t, 4, reg.Len())
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "SkipChildren", SkipChildren.String())
	assert.Equal(t, "Action(9)", Action(9).String())
	assert.True(t, Stop.IsValid())
	assert.False(t, Action(-1).IsValid())
}
