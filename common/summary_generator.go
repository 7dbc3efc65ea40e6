/*
Copyright 2023 Lee R. Boynton

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
package common

import (
	"strings"

	"github.com/boynton/data"

	"github.com/boynton/smithygen/model"
)

// SummaryGenerator writes a one line signature of every operation of each service.
type SummaryGenerator struct {
	BaseGenerator
}

func (gen *SummaryGenerator) Generate(catalog *model.Catalog, config *data.Object) error {
	err := gen.Configure(catalog, config)
	if err != nil {
		return err
	}
	for _, svc := range gen.ShapesOfKind(model.Service) {
		gen.Begin()
		gen.GenerateSummary(svc)
		if err := gen.GenerateOperations(svc); err != nil {
			return err
		}
		s := gen.End()
		fname := gen.FileName(svc.Id.Name(), ".txt")
		if err := gen.Write(s, fname, ""); err != nil {
			return err
		}
	}
	return nil
}

func (gen *SummaryGenerator) GenerateSummary(svc *model.Shape) {
	title := svc.Id.Name()
	if svc.Version != "" {
		title = title + " v" + svc.Version
	}
	if doc := svc.Documentation(); doc != "" {
		gen.Emit("//\n")
		gen.Emit(FormatComment("", "// ", doc, 80, false))
		gen.Emit("//\n")
	}
	gen.Emitf("namespace %s\n", svc.Id.Namespace())
	gen.Emitf("service %s\n", title)
	gen.Emit("\n")
}

// ExplodeMembers lists the member names of a structure, or "" for none or Unit.
func (gen *SummaryGenerator) ExplodeMembers(id model.ShapeId) string {
	if id == "" || id == model.NewShapeId(model.PreludeNamespace, "Unit") {
		return ""
	}
	shape, ok := gen.Catalog.GetShape(id)
	if !ok {
		return "?"
	}
	var names []string
	for _, m := range shape.Members() {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}

func (gen *SummaryGenerator) GenerateOperations(svc *model.Shape) error {
	ops, err := gen.Catalog.Operations(svc.Id)
	if err != nil {
		return err
	}
	//this is a high level signature without types or exceptions
	for _, op := range ops {
		in := gen.ExplodeMembers(op.Input)
		out := gen.ExplodeMembers(op.Output)
		http := ""
		if b, ok, _ := model.HttpBindingOf(op); ok && b != nil {
			http = " [" + b.Method + " " + b.Uri.Raw + "]"
		}
		gen.Emitf("operation %s(%s) → (%s)%s\n", op.Id.Name(), in, out, http)
	}
	gen.Emit("\n")
	return nil
}
