package common

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/boynton/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boynton/smithygen/model"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.yaml")
	yaml := "namespace: example.widgets\ngolang:\n  package: widgets\n  inlinePrimitives: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "example.widgets", conf.GetString("namespace"))
	assert.Equal(t, "widgets", conf.GetString("golang.package"))
	assert.True(t, conf.GetBool("golang.inlinePrimitives"))

	conf, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "", conf.GetString("golang.package"))

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyParams(t *testing.T) {
	conf := data.NewObject()
	ApplyParams(conf, []string{"sort", "golang.package=app", "golang.inlinePrimitives=false", "x=a=b"})
	assert.True(t, conf.GetBool("sort"))
	assert.Equal(t, "app", conf.GetString("golang.package"))
	assert.False(t, conf.GetBool("golang.inlinePrimitives"))
	assert.Equal(t, "a=b", conf.GetString("x"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "WidgetId", GoName("widget_id"))
	assert.Equal(t, "DarkBlue", GoName("dark_blue"))
	assert.Equal(t, "widgetId", GoLocal("WidgetId"))
	assert.Equal(t, "type_", GoLocal("type"))
	assert.Equal(t, "DARK_BLUE", EnumConstantName("darkBlue"))
}

func TestBaseGenerator(t *testing.T) {
	catalog := model.NewCatalog()
	for _, name := range []string{"Zeta", "Alpha", "Mixed"} {
		s := model.NewShape(model.NewShapeId("ex", name), model.Structure)
		if name == "Mixed" {
			s.Traits.Put(model.TraitMixin, model.NewNode(map[string]interface{}{}))
		}
		require.NoError(t, catalog.Add(s))
	}
	require.NoError(t, catalog.Add(model.NewShape(model.NewShapeId("ex", "Name"), model.String)))

	dir := t.TempDir()
	conf := data.NewObject()
	conf.Put("outdir", dir)
	gen := &BaseGenerator{}
	require.NoError(t, gen.Configure(catalog, conf))

	var names []string
	for _, s := range gen.ShapesOfKind(model.Structure) {
		names = append(names, s.Id.Name())
	}
	assert.Equal(t, []string{"Zeta", "Alpha"}, names, "model order, mixins skipped")
	gen.Sort = true
	names = nil
	for _, s := range gen.ShapesOfKind(model.Structure) {
		names = append(names, s.Id.Name())
	}
	assert.Equal(t, []string{"Alpha", "Zeta"}, names)

	gen.Begin()
	gen.Emitf("type %s struct{}\n", "Alpha")
	s := gen.End()
	assert.Equal(t, "type Alpha struct{}\n", s)
	assert.Equal(t, "ex_widgets_types.go", gen.FileName("ex.widgets_types", ".go"))

	require.NoError(t, gen.Write(s, "a.go", ""))
	err := gen.Write(s, "a.go", "")
	assert.Error(t, err, "not overwritten without force")
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden", "shape", "Widget")
	assert.Empty(t, buf.String())
	SetVerbose(true)
	defer SetVerbose(false)
	Debug("assembled input", "operation", "GetWidget")
	assert.Contains(t, buf.String(), "operation=GetWidget")
	Warning("%d shapes skipped", 2)
	assert.Contains(t, buf.String(), "2 shapes skipped")
}
