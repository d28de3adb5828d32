package fixer

import (
	"testing"

	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/parser"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixTypes(fixes []Fix) []FixType {
	out := make([]FixType, 0, len(fixes))
	for _, f := range fixes {
		out = append(out, f.Type)
	}
	return out
}

func TestFixTree_Rules(t *testing.T) {
	tests := []struct {
		name  string
		node  func() *schema.Node
		check func(t *testing.T, root *schema.Node)
		want  []FixType
	}{
		{
			name: "deprecated boolean becomes nullable",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{"deprecated": schema.NewBoolean()})
			},
			check: func(t *testing.T, root *schema.Node) {
				assert.True(t, root.Type.(*schema.Object).Properties["deprecated"].Nullable)
			},
			want: []FixType{FixTypeNullableDeprecated},
		},
		{
			name: "empty array items get explicit properties",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{
					"actions": schema.NewArray(schema.NewBare()),
				})
			},
			check: func(t *testing.T, root *schema.Node) {
				items := root.Type.(*schema.Object).Properties["actions"].Type.(*schema.Array).Items
				obj := items.Type.(*schema.Object)
				assert.NotNil(t, obj.Properties)
				assert.Empty(t, obj.Properties)
				assert.False(t, obj.Bare())
			},
			want: []FixType{FixTypeEmptyArrayItems},
		},
		{
			name: "typed object items without properties are kept",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{
					"actions": schema.NewArray(&schema.Node{Type: &schema.Object{}}),
				})
			},
			check: func(t *testing.T, root *schema.Node) {
				items := root.Type.(*schema.Object).Properties["actions"].Type.(*schema.Array).Items
				assert.Nil(t, items.Type.(*schema.Object).Properties)
			},
		},
		{
			name: "enum sorted",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{"status": schema.NewEnum("running", "off", "initializing")})
			},
			check: func(t *testing.T, root *schema.Node) {
				status := root.Type.(*schema.Object).Properties["status"]
				assert.Equal(t, []string{"initializing", "off", "running"}, status.Type.(*schema.String).Enum)
			},
			want: []FixType{FixTypeSortedEnum},
		},
		{
			name: "number narrowed unless allowed",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{
					"cores":  schema.NewNumber(),
					"memory": schema.NewNumber(),
				})
			},
			check: func(t *testing.T, root *schema.Node) {
				props := root.Type.(*schema.Object).Properties
				assert.Equal(t, schema.KindInteger, props["cores"].Kind())
				assert.Equal(t, schema.KindNumber, props["memory"].Kind())
			},
			want: []FixType{FixTypeNarrowedNumber},
		},
		{
			name: "narrowed wide counter gets int64",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{"ingoing_traffic": schema.NewNumber()})
			},
			check: func(t *testing.T, root *schema.Node) {
				traffic := root.Type.(*schema.Object).Properties["ingoing_traffic"]
				assert.Equal(t, "int64", traffic.Type.(*schema.Integer).Format)
			},
			want: []FixType{FixTypeNarrowedNumber, FixTypeWideCounter},
		},
		{
			name: "labels with placeholder key become a map",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{
					"labels": schema.NewObject(map[string]*schema.Node{LegacyLabelKey: schema.NewString()}),
				})
			},
			check: func(t *testing.T, root *schema.Node) {
				labels := root.Type.(*schema.Object).Properties["labels"].Type.(*schema.Object)
				assert.Nil(t, labels.Properties)
				require.NotNil(t, labels.AdditionalProperties)
				assert.Equal(t, DefaultLabelKeyPattern, labels.AdditionalProperties.Type.(*schema.String).Pattern)
			},
			want: []FixType{FixTypeLabelsMap},
		},
		{
			name: "labels without properties keyword are left alone",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{"labels": {Type: &schema.Object{}}})
			},
			check: func(t *testing.T, root *schema.Node) {
				labels := root.Type.(*schema.Object).Properties["labels"].Type.(*schema.Object)
				assert.Nil(t, labels.AdditionalProperties)
			},
		},
		{
			name: "already canonical",
			node: func() *schema.Node {
				return schema.NewObject(map[string]*schema.Node{
					"deprecated": schema.NewBoolean().WithNullable(),
					"status":     schema.NewEnum("a", "b"),
					"progress":   schema.NewNumber(),
				})
			},
			check: func(t *testing.T, root *schema.Node) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := tt.node()
			fixes, err := New().FixTree("get_server_response", root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, nilIfEmpty(fixTypes(fixes)))
			tt.check(t, root)
		})
	}
}

func nilIfEmpty(in []FixType) []FixType {
	if len(in) == 0 {
		return nil
	}
	return in
}

func TestFixTree_Paths(t *testing.T) {
	root := schema.NewObject(map[string]*schema.Node{
		"server": schema.NewObject(map[string]*schema.Node{
			"private_net": schema.NewArray(schema.NewObject(map[string]*schema.Node{
				"deprecated": schema.NewBoolean(),
			})),
		}),
	})

	fixes, err := New().FixTree("get_server_response", root)
	require.NoError(t, err)
	require.Len(t, fixes, 1)
	assert.Equal(t, "get_server_response/server/private_net/deprecated", fixes[0].Path)
}

func TestFix_DecodedArrayItems(t *testing.T) {
	tests := []struct {
		name  string
		items string
		want  int
	}{
		{name: "bare items", items: `{}`, want: 1},
		{name: "typed object items", items: `{"type": "object"}`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"tags": {"type": "array", "items": ` + tt.items + `}}`
			parsed, err := parser.ParseWithOptions(parser.WithBytes("tags.json", []byte(doc)))
			require.NoError(t, err)

			result, err := FixWithOptions(WithParsed(*parsed))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.FixCount)

			root, ok := result.Registry.Get("tags")
			require.True(t, ok)
			data, err := root.MarshalJSON()
			require.NoError(t, err)
			if tt.want == 0 {
				assert.JSONEq(t, `{"type":"array","items":{"type":"object"}}`, string(data))
			} else {
				assert.JSONEq(t, `{"type":"array","items":{"type":"object","properties":{}}}`, string(data))
			}
		})
	}
}

func TestFix_Idempotent(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Set("a", schema.NewObject(map[string]*schema.Node{
		"status": schema.NewEnum("z", "a"),
		"labels": schema.NewObject(map[string]*schema.Node{}),
		"count":  schema.NewNumber(),
	}))

	first, err := New().Fix(reg)
	require.NoError(t, err)
	assert.Equal(t, 3, first.FixCount)
	assert.True(t, first.Success)

	second, err := New().Fix(reg)
	require.NoError(t, err)
	assert.False(t, second.HasFixes())
}

func TestFix_EnabledFixes(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Set("a", schema.NewObject(map[string]*schema.Node{
		"status": schema.NewEnum("z", "a"),
		"count":  schema.NewNumber(),
	}))

	result, err := FixWithOptions(WithRegistry(reg), WithEnabledFixes(FixTypeSortedEnum))
	require.NoError(t, err)
	assert.Equal(t, []FixType{FixTypeSortedEnum}, fixTypes(result.Fixes))
}

func TestFixWithOptions_CustomPolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.FloatAllowList = append(policy.FloatAllowList, "ratio")

	reg := schema.NewRegistry()
	reg.Set("a", schema.NewObject(map[string]*schema.Node{"ratio": schema.NewNumber()}))

	result, err := FixWithOptions(WithRegistry(reg), WithPolicy(policy), WithLogger(parser.NopLogger{}))
	require.NoError(t, err)
	assert.False(t, result.HasFixes())
}

func TestFixWithOptions_Validation(t *testing.T) {
	_, err := FixWithOptions()
	assert.Error(t, err)

	reg := schema.NewRegistry()
	_, err = FixWithOptions(WithRegistry(reg), WithParsed(parser.ParseResult{Registry: reg}))
	assert.Error(t, err)

	_, err = FixWithOptions(WithRegistry(nil))
	assert.Error(t, err)
}

func TestFix_Cycle(t *testing.T) {
	inner := schema.NewObject(map[string]*schema.Node{})
	inner.Type.(*schema.Object).Properties["self"] = inner
	reg := schema.NewRegistry()
	reg.Set("loop", inner)

	_, err := New().Fix(reg)
	assert.ErrorIs(t, err, oaserrors.ErrCircularReference)
}

func TestParseFixTypes(t *testing.T) {
	got, err := ParseFixTypes([]string{"sorted-enum", "labels-map"})
	require.NoError(t, err)
	assert.Equal(t, []FixType{FixTypeSortedEnum, FixTypeLabelsMap}, got)

	got, err = ParseFixTypes(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseFixTypes([]string{"sorted-enum", "rename-everything"})
	assert.ErrorContains(t, err, `unknown fix type "rename-everything"`)

	assert.Len(t, AllFixTypes(), 6)
}
