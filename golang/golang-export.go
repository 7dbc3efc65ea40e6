/*
Copyright 2022 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package golang

import (
	"bytes"
	"go/format"
	"path"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/boynton/data"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/binding"
	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/contrib"
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/strategy"
)

type Generator struct {
	common.BaseGenerator
	ns           string
	pkg          string
	registry     *strategy.Registry
	assembler    *binding.Assembler
	contributors *contrib.Registry
	imports      strategy.ImportSet
}

// Generate writes <ns>_types.go and, if the model has services, <ns>_server.go. Shapes and
// operations that cannot be generated are left out and reported together in the returned error.
func (gen *Generator) Generate(catalog *model.Catalog, config *data.Object) error {
	err := gen.Configure(catalog, config)
	if err != nil {
		return err
	}
	gen.registry = strategy.NewRegistry(catalog, strategy.Options{
		InlinePrimitives: config.GetBool("golang.inlinePrimitives"),
		RuntimePackage:   config.GetString("golang.runtimePackage"),
	})
	gen.assembler = binding.NewAssembler(gen.registry)
	if gen.contributors == nil {
		gen.contributors = contrib.Default()
	}
	gen.ns = config.GetString("namespace")
	if gen.ns == "" {
		gen.ns = modelNamespace(catalog)
	}
	gen.pkg = config.GetString("golang.package")
	if gen.pkg == "" {
		gen.pkg = packageName(gen.ns)
	}
	fbase := gen.ns
	if fbase == "" {
		fbase = "model"
	}
	var result *multierror.Error

	src, err := gen.GenerateTypes()
	if err != nil {
		result = multierror.Append(result, err)
	}
	fname := gen.FileName(fbase+"_types", ".go")
	if err := gen.emitFile(src, fname); err != nil {
		return multierror.Append(result, err)
	}
	if len(catalog.Services()) > 0 {
		src, err = gen.GenerateServer()
		if err != nil {
			result = multierror.Append(result, err)
		}
		fname = gen.FileName(fbase+"_server", ".go")
		if err := gen.emitFile(src, fname); err != nil {
			return multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// SetContributors replaces the default structure contributors.
func (gen *Generator) SetContributors(r *contrib.Registry) {
	gen.contributors = r
}

func (gen *Generator) emitFile(src string, fname string) error {
	common.Debug("writing", "file", fname, "bytes", len(src))
	return gen.Write(src, fname, "\n\n------------------"+fname+"\n")
}

func modelNamespace(catalog *model.Catalog) string {
	for _, ns := range catalog.Namespaces() {
		if ns != model.PreludeNamespace {
			return ns
		}
	}
	return ""
}

func packageName(ns string) string {
	if ns == "" {
		return "main"
	}
	if n := strings.LastIndex(ns, "."); n >= 0 {
		ns = ns[n+1:]
	}
	return strings.ToLower(ns)
}

type goImport struct {
	Alias string
	Path  string
}

var fileTemplate = template.Must(template.New("file").Funcs(sprig.TxtFuncMap()).Parse(`// Code generated by smithygen. DO NOT EDIT.

package {{ .Package }}
{{ if .Imports }}
import (
{{- range .Imports }}
	{{ if .Alias }}{{ .Alias }} {{ end }}{{ quote .Path }}
{{- end }}
)
{{ end }}
{{ trim .Body }}
`))

// declareImports renders the file, aliasing the runtime package if its last path element
// is not the name generated code refers to it by.
func (gen *Generator) declareImports(body string) (string, error) {
	var imports []goImport
	for _, p := range gen.imports.Sorted() {
		imp := goImport{Path: p}
		if p == gen.registry.Options().RuntimePackage && path.Base(p) != strategy.RuntimeAlias {
			imp.Alias = strategy.RuntimeAlias
		}
		imports = append(imports, imp)
	}
	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, map[string]interface{}{
		"Package": gen.pkg,
		"Imports": imports,
		"Body":    body,
	})
	if err != nil {
		return "", err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.String(), errors.Wrap(err, "generated code does not parse")
	}
	return string(src), nil
}

func (gen *Generator) shapes() []*model.Shape {
	var lst []*model.Shape
	for _, s := range gen.ShapesOfKind(model.Boolean, model.Byte, model.Short, model.Integer, model.Long,
		model.Float, model.Double, model.String, model.Enum, model.IntEnum, model.Structure, model.Union) {
		if !s.Id.IsPrelude() {
			lst = append(lst, s)
		}
	}
	return lst
}

// GenerateTypes returns the source of the types file. Shapes that fail are skipped.
func (gen *Generator) GenerateTypes() (string, error) {
	gen.imports = strategy.ImportSet{}
	var result *multierror.Error
	var parts []string
	for _, shape := range gen.shapes() {
		gen.Begin()
		if err := gen.generateType(shape); err != nil {
			gen.End()
			result = multierror.Append(result, errors.Wrapf(err, "shape %s", shape.Id))
			continue
		}
		if s := gen.End(); s != "" {
			parts = append(parts, s)
		}
	}
	src, err := gen.declareImports(strings.Join(parts, "\n"))
	if err != nil {
		result = multierror.Append(result, err)
	}
	return src, result.ErrorOrNil()
}

func (gen *Generator) generateTypeComment(shape *model.Shape) {
	if doc := shape.Documentation(); doc != "" {
		gen.Emit(common.FormatComment("", "// ", doc, 100, false))
	}
}

func (gen *Generator) generateType(shape *model.Shape) error {
	ts, err := gen.registry.StrategyFor(shape)
	if err != nil {
		return err
	}
	switch shape.Kind {
	case model.Enum, model.IntEnum:
		return gen.generateEnum(shape, ts)
	case model.Structure, model.Union:
		return gen.generateStructure(shape, ts)
	}
	if simple, ok := ts.(strategy.Simple); ok && simple.GoType() != simple.Builtin() {
		gen.generateTypeComment(shape)
		gen.Emitf("type %s %s\n", simple.GoType(), simple.Builtin())
	}
	return nil
}

func (gen *Generator) generateEnum(shape *model.Shape, ts strategy.TypeStrategy) error {
	s, err := contrib.NewStructure(gen.registry, shape)
	if err != nil {
		return err
	}
	tname := ts.GoType()
	gen.generateTypeComment(shape)
	if shape.Kind == model.IntEnum {
		gen.Emitf("type %s int32\n\nconst (\n", tname)
		for _, m := range s.Members {
			n, ok := m.Member.EnumValue().AsNumber()
			if !ok {
				return errors.Errorf("intEnum member %s has no integer value", m.Member.Id())
			}
			gen.Emitf("\t%s %s = %s\n", m.Field, tname, n)
		}
		gen.Emit(")\n")
		return gen.generateContributions(s)
	}
	gen.imports.Add(gen.registry.Options().RuntimePackage)
	gen.Emitf("type %s string\n\nconst (\n", tname)
	var values []expr.Expr
	for _, m := range s.Members {
		gen.Emitf("\t%s %s = %s\n", m.Field, tname, expr.Str(m.Member.EnumValue().AsString()).Go())
		values = append(values, expr.Ident(m.Field))
	}
	gen.Emit(")\n\n")
	parse := &expr.Method{
		Doc:     "Parse" + tname + " returns s as a " + tname + ", if it is one of the enum values.",
		Name:    "Parse" + tname,
		Params:  []expr.Param{{Name: "field", Type: "string"}, {Name: "s", Type: "string"}},
		Results: []string{tname, "error"},
		Body: []expr.Stmt{
			&expr.Switch{
				Tag:   &expr.Conv{Type: tname, X: expr.Ident("s")},
				Cases: []expr.Case{{Values: values, Body: []expr.Stmt{&expr.Return{Values: []expr.Expr{&expr.Conv{Type: tname, X: expr.Ident("s")}, expr.Nil}}}}},
			},
			&expr.Return{Values: []expr.Expr{expr.Lit(`""`), expr.Lit(`&runtime.ParseError{Field: field, Kind: "enum", Value: s}`)}},
		},
	}
	if len(values) == 0 {
		parse.Body = parse.Body[1:]
	}
	gen.Emit(parse.Go())
	return gen.generateContributions(s)
}

func (gen *Generator) generateContributions(s *contrib.Structure) error {
	methods, err := gen.contributors.Contribute(s)
	if err != nil {
		return err
	}
	for _, m := range methods {
		gen.imports.Add(m.Imports...)
		gen.Emit("\n" + m.Go())
	}
	return nil
}

// pointer reports whether a member field holds the address of its value.
func pointer(m *contrib.Member) bool {
	return m.Type != m.Strategy.GoType()
}

func nillable(goType string) bool {
	return strings.HasPrefix(goType, "*") || strings.HasPrefix(goType, "[]") ||
		strings.HasPrefix(goType, "map[") || goType == "interface{}"
}

func (gen *Generator) generateStructure(shape *model.Shape, ts strategy.TypeStrategy) error {
	s, err := contrib.NewStructure(gen.registry, shape)
	if err != nil {
		return err
	}
	tname := s.TypeName
	gen.imports.Add(gen.registry.Options().RuntimePackage)
	for _, m := range s.Members {
		gen.imports.Add(m.Strategy.Imports()...)
	}

	gen.generateTypeComment(shape)
	gen.Emitf("type %s struct {\n", tname)
	for _, m := range s.Members {
		tag := m.Member.Name
		if !binding.IsNonNullable(m.Member, m.Target) {
			tag += ",omitempty"
		}
		gen.Emitf("\t%s %s `json:%q`\n", m.Field, m.Type, tag)
	}
	gen.Emit("}\n\n")

	//constructor, in member order
	var params []expr.Param
	var fields []expr.Field
	for _, m := range s.Members {
		p := common.GoLocal(m.Member.Name)
		params = append(params, expr.Param{Name: p, Type: m.Type})
		fields = append(fields, expr.Field{Key: m.Field, Value: expr.Ident(p)})
	}
	ctor := &expr.Method{
		Name:    "New" + tname,
		Params:  params,
		Results: []string{"*" + tname},
		Body:    []expr.Stmt{&expr.Return{Values: []expr.Expr{expr.Addr(&expr.Composite{Type: tname, Fields: fields})}}},
	}
	gen.Emit(ctor.Go())

	fromJSON, err := gen.fromJSON(s, ts)
	if err != nil {
		return err
	}
	gen.Emit("\n" + fromJSON.Go())
	gen.Emit("\n" + gen.toJSON(s).Go())
	return gen.generateContributions(s)
}

// fromJSON builds <Type>FromJSON, which converts a decoded JSON object member by member.
func (gen *Generator) fromJSON(s *contrib.Structure, ts strategy.TypeStrategy) (*expr.Method, error) {
	zero := ts.Zero(true)
	obj := "obj"
	if len(s.Members) == 0 {
		obj = "_"
	}
	body := []expr.Stmt{
		&expr.Define{Names: []string{obj, "err"}, Values: []expr.Expr{&expr.Call{Fun: expr.Ident("runtime.ObjectFromJSON"), Args: []expr.Expr{expr.Ident("field"), expr.Ident("raw")}}}},
		expr.ReturnOnError(zero),
		&expr.Define{Names: []string{"x"}, Values: []expr.Expr{zero}},
	}
	for _, m := range s.Members {
		target := "x." + m.Field
		mode, def := binding.ModeOf(m.Member, m.Target)
		if mode == binding.WithDefault {
			v, err := m.Strategy.ApplyDefault(def)
			if err != nil {
				return nil, errors.Wrapf(err, "default of %s", m.Member.Id())
			}
			if v != expr.Nil {
				body = append(body, &expr.Assign{Names: []string{target}, Values: []expr.Expr{v}})
			}
		}
		conv := m.Strategy.ConvertFromRaw(expr.Str(m.Member.Name), expr.Ident("raw"))
		stmt := &expr.If{
			Init: &expr.Define{Names: []string{"raw", "ok"}, Values: []expr.Expr{&expr.Call{Fun: expr.Ident("runtime.BodyField"), Args: []expr.Expr{expr.Ident("obj"), expr.Str(m.Member.Name)}}}},
			Cond: expr.Ident("ok"),
			Then: conv.Assign(target, pointer(m), zero),
		}
		if mode == binding.OrThrow {
			stmt.Else = []expr.Stmt{&expr.Return{Values: []expr.Expr{zero,
				&expr.Call{Fun: expr.Ident("runtime.MissingField"), Args: []expr.Expr{expr.Str(m.Member.Name), expr.Ident("runtime.OriginBody")}}}}}
		}
		body = append(body, stmt)
	}
	body = append(body, &expr.Return{Values: []expr.Expr{expr.Ident("x"), expr.Nil}})
	return &expr.Method{
		Doc:     s.TypeName + "FromJSON converts a value of a decoded JSON document.",
		Name:    s.TypeName + "FromJSON",
		Params:  []expr.Param{{Name: "field", Type: "string"}, {Name: "raw", Type: "interface{}"}},
		Results: []string{s.TypeName, "error"},
		Body:    body,
	}, nil
}

func (gen *Generator) toJSON(s *contrib.Structure) *expr.Method {
	body := []expr.Stmt{
		&expr.Define{Names: []string{"obj"}, Values: []expr.Expr{expr.CallOf("make", expr.Ident("map[string]interface{}"))}},
	}
	for _, m := range s.Members {
		var field expr.Expr = &expr.Sel{X: expr.Ident("x"), Name: m.Field}
		value := field
		kind := m.Strategy.Shape().Kind
		if pointer(m) && kind != model.Structure && kind != model.Union {
			value = &expr.Unary{Op: "*", X: field}
		}
		set := &expr.Assign{Names: []string{"obj[" + expr.Str(m.Member.Name).Go() + "]"}, Values: []expr.Expr{m.Strategy.ConvertToRaw(value)}}
		if nillable(m.Type) {
			body = append(body, &expr.If{Cond: &expr.Binary{X: field, Op: "!=", Y: expr.Nil}, Then: []expr.Stmt{set}})
		} else {
			body = append(body, set)
		}
	}
	body = append(body, &expr.Return{Values: []expr.Expr{expr.Ident("obj")}})
	return &expr.Method{
		Doc:      "ToJSON returns x as a JSON document value. Absent members are omitted.",
		Receiver: &expr.Param{Name: "x", Type: s.TypeName},
		Name:     "ToJSON",
		Results:  []string{"map[string]interface{}"},
		Body:     body,
	}
}
