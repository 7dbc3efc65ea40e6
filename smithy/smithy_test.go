package smithy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boynton/smithygen/model"
)

func memberNames(s *model.Shape) []string {
	var names []string
	for _, m := range s.Members() {
		names = append(names, m.Name)
	}
	return names
}

func TestImportWidgets(t *testing.T) {
	catalog, err := Import([]string{"testdata/widgets.json"})
	require.NoError(t, err)

	in, err := catalog.ExpectShape("example.widgets#GetWidgetInput")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "verbose"}, memberNames(in), "mixin members come first")
	assert.False(t, in.HasTrait(model.TraitMixin))

	widget, err := catalog.ExpectShape("example.widgets#Widget")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "weight", "tags", "color"}, memberNames(widget))
	name, _ := widget.GetMember("name")
	assert.Equal(t, "The display name.", name.Traits.GetString(model.TraitDocumentation))
	assert.True(t, name.IsRequired())

	tags, _ := catalog.GetShape("example.widgets#Tags")
	assert.Equal(t, model.Set, tags.Kind)

	color, _ := catalog.GetShape("example.widgets#Color")
	require.Equal(t, model.Enum, color.Kind)
	assert.Equal(t, []string{"RED", "DARK_BLUE"}, memberNames(color))
	blue, _ := color.GetMember("DARK_BLUE")
	assert.Equal(t, "dark-blue", blue.EnumValue().AsString())

	unit, _ := catalog.GetShape("example.widgets#WeightUnit")
	assert.Equal(t, model.Enum, unit.Kind)
	assert.Equal(t, []string{"KILOGRAMS", "GRAMS"}, memberNames(unit))

	ops, err := catalog.Operations("example.widgets#WidgetService")
	require.NoError(t, err)
	var opNames []string
	for _, op := range ops {
		opNames = append(opNames, op.Id.Name())
	}
	assert.Equal(t, []string{"Ping", "PutWidget", "GetWidget"}, opNames)
}

func TestApplyMustFindTarget(t *testing.T) {
	ast, err := DecodeAST([]byte(`{"smithy":"2.0","shapes":{
		"ex#A": {"type":"structure","members":{"a":{"target":"smithy.api#String"}}},
		"ex#A$b": {"type":"apply","traits":{"smithy.api#required":{}}}
	}}`))
	require.NoError(t, err)
	assert.Error(t, ast.ApplyAll())
}

func TestMergeRejectsDuplicates(t *testing.T) {
	a, err := DecodeAST([]byte(`{"smithy":"2.0","shapes":{"ex#A":{"type":"string"}}}`))
	require.NoError(t, err)
	b, err := DecodeAST([]byte(`{"smithy":"2.0","shapes":{"ex#A":{"type":"string"}}}`))
	require.NoError(t, err)
	assembly := &AST{}
	require.NoError(t, assembly.Merge(a))
	assert.Error(t, assembly.Merge(b))
}

func TestUndefinedTarget(t *testing.T) {
	ast, err := DecodeAST([]byte(`{"smithy":"2.0","shapes":{
		"ex#A": {"type":"structure","members":{"b":{"target":"ex#Missing"}}}
	}}`))
	require.NoError(t, err)
	_, err = ImportAST(ast)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ex#Missing")
}

func TestNotAnAST(t *testing.T) {
	_, err := DecodeAST([]byte(`{"shapes":{}}`))
	assert.Error(t, err)
	_, err = LoadAST("testdata/nope.json")
	assert.Error(t, err)
}
