package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgets = "smithy/testdata/widgets.json"

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInputsCommand(t *testing.T) {
	out, err := run(t, "inputs", widgets)
	require.NoError(t, err)
	assert.Contains(t, out, "GetWidget GetWidgetInput (members)")
	assert.Regexp(t, `id\s+path\s+or-throw\s+1\s+string`, out)
	assert.Regexp(t, `verbose\s+query\s+with-default\s+verbose\s+bool`, out)
	assert.Contains(t, out, "Ping PingInput (empty)")

	out, err = run(t, "inputs", "--dump", widgets)
	require.NoError(t, err)
	assert.Contains(t, out, "Declarations:")
}

func TestListAndVersion(t *testing.T) {
	out, err := run(t, "list", widgets)
	require.NoError(t, err)
	assert.Contains(t, out, "example.widgets#WeightUnit (enum)")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "smithygen development version")
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("golang:\n  package: gadgets\n"), 0644))
	_, err := run(t, "generate", "-o", dir, "--config", config, "-a", "golang.inlinePrimitives", widgets)
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "example_widgets_types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "package gadgets")

	_, err = run(t, "generate", "-o", dir, widgets)
	assert.Error(t, err, "existing files are not overwritten without -f")
	_, err = run(t, "generate", "-o", dir, "-f", widgets)
	assert.NoError(t, err)

	_, err = run(t, "generate")
	assert.Error(t, err)
}

func TestSummaryGenerator(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "generate", "-g", "summary", "-o", dir, widgets)
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "WidgetService.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "service WidgetService v2022-01-01")
	assert.Contains(t, string(b), "operation GetWidget(id, verbose) → (name, weight, tags, color) [GET /widgets/{id}]")

	_, err = run(t, "generate", "-g", "cobol", widgets)
	assert.Error(t, err)
}
