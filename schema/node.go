package schema

import (
	"fmt"
	"sort"
)

// RefPrefix is the JSON pointer prefix written for reference nodes.
const RefPrefix = "#/components/schemas/"

// Kind enumerates the closed set of schema variants.
type Kind int

const (
	// KindInvalid marks a node whose Type is unset.
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindNumber
	KindBoolean
	KindArray
	KindObject
	KindRef
)

// String returns the JSON schema type name, or "$ref" for references.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindRef:
		return "$ref"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is the kind-specific part of a Node. It is sealed: only the variants
// declared in this package implement it.
type Type interface {
	Kind() Kind
	sealed()
}

// String is a string schema.
type String struct {
	Enum    []string
	Format  string
	Pattern string
}

// Integer is an integer schema.
type Integer struct {
	Format string
}

// Number is a floating point schema.
type Number struct {
	Format string
}

// Boolean is a boolean schema.
type Boolean struct{}

// Array is an array schema. Items may be nil for malformed input; passes
// tolerate that instead of rejecting the node.
type Array struct {
	Items *Node
}

// Object is an object schema.
//
// A nil Properties map means the properties keyword is absent, while an
// empty non-nil map means "properties: {}". The two hash differently.
type Object struct {
	Properties           map[string]*Node
	Required             []string
	AdditionalProperties *Node

	// bare is set for a schema written without any keyword ("{}"). It is
	// not part of the shape and does not affect hashing.
	bare bool
}

// Bare reports whether the object was written as "{}", with no keyword at
// all, as opposed to an explicit "type: object".
func (o *Object) Bare() bool { return o.bare }

// Ref points at a named registry entry. It carries no other schema fields.
type Ref struct {
	Name string
}

func (*String) Kind() Kind  { return KindString }
func (*Integer) Kind() Kind { return KindInteger }
func (*Number) Kind() Kind  { return KindNumber }
func (*Boolean) Kind() Kind { return KindBoolean }
func (*Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind  { return KindObject }
func (*Ref) Kind() Kind     { return KindRef }

func (*String) sealed()  {}
func (*Integer) sealed() {}
func (*Number) sealed()  {}
func (*Boolean) sealed() {}
func (*Array) sealed()   {}
func (*Object) sealed()  {}
func (*Ref) sealed()     {}

// PropertyNames returns the property names in sorted order.
func (o *Object) PropertyNames() []string {
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hash is a structural content address.
type Hash uint64

// String renders the hash as fixed-width hex.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Node is a single schema node.
type Node struct {
	Type        Type
	Nullable    bool
	Title       string
	Description string
	Example     any

	hash       Hash
	complexity int
	annotated  bool
}

// Kind returns the variant kind, or KindInvalid when Type is unset.
func (n *Node) Kind() Kind {
	if n == nil || n.Type == nil {
		return KindInvalid
	}
	return n.Type.Kind()
}

// Annotate stores the transient structural hash and complexity.
func (n *Node) Annotate(h Hash, complexity int) {
	n.hash = h
	n.complexity = complexity
	n.annotated = true
}

// Annotation returns the transient annotations and whether they are set.
func (n *Node) Annotation() (Hash, int, bool) {
	return n.hash, n.complexity, n.annotated
}

// ClearAnnotations removes the transient annotations.
func (n *Node) ClearAnnotations() {
	n.hash = 0
	n.complexity = 0
	n.annotated = false
}

// ReplaceWithRef overwrites n in place with a reference to name. When
// keepNullable is set the occurrence's nullable flag survives at the
// reference site; every other field is dropped.
func (n *Node) ReplaceWithRef(name string, keepNullable bool) {
	nullable := keepNullable && n.Nullable
	*n = Node{Type: &Ref{Name: name}, Nullable: nullable}
}

// WithDescription sets the description and returns n.
func (n *Node) WithDescription(description string) *Node {
	n.Description = description
	return n
}

// WithNullable marks n nullable and returns it.
func (n *Node) WithNullable() *Node {
	n.Nullable = true
	return n
}

// NewString returns a string node.
func NewString() *Node { return &Node{Type: &String{}} }

// NewEnum returns a string node restricted to values.
func NewEnum(values ...string) *Node { return &Node{Type: &String{Enum: values}} }

// NewInteger returns an integer node.
func NewInteger() *Node { return &Node{Type: &Integer{}} }

// NewNumber returns a number node.
func NewNumber() *Node { return &Node{Type: &Number{}} }

// NewBoolean returns a boolean node.
func NewBoolean() *Node { return &Node{Type: &Boolean{}} }

// NewArray returns an array node owning items.
func NewArray(items *Node) *Node { return &Node{Type: &Array{Items: items}} }

// NewBare returns the node for a schema written without any keyword ("{}").
// It decodes as an object without the properties keyword.
func NewBare() *Node { return &Node{Type: &Object{bare: true}} }

// NewObject returns an object node. A nil properties map is replaced with an
// empty one; use &Node{Type: &Object{}} for an object without the keyword.
func NewObject(properties map[string]*Node, required ...string) *Node {
	if properties == nil {
		properties = map[string]*Node{}
	}
	return &Node{Type: &Object{Properties: properties, Required: required}}
}

// NewRef returns a reference to the registry entry name.
func NewRef(name string) *Node { return &Node{Type: &Ref{Name: name}} }
