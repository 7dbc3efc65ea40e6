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
package smithy

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/model"
)

// Import assembles the model files at paths and builds the catalog.
func Import(paths []string) (*model.Catalog, error) {
	ast, err := Assemble(paths)
	if err != nil {
		return nil, err
	}
	return ImportAST(ast)
}

// ImportAST builds a catalog from an assembled AST. Mixins and apply statements must already
// have been resolved (see Assemble).
func ImportAST(ast *AST) (*model.Catalog, error) {
	catalog := model.NewCatalog()
	for _, shapeId := range ast.Shapes.Keys() {
		shape := ast.GetShape(shapeId)
		if shape == nil {
			continue
		}
		s, err := importShape(ast, shapeId, shape)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		if err := catalog.Add(s); err != nil {
			return nil, err
		}
	}
	if err := validateTargets(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func toCanonicalAbsoluteId(id string, ns string) model.ShapeId {
	if strings.Contains(id, "#") {
		return model.ShapeId(id)
	}
	if pid, ok := model.PreludeShapeId(id); ok {
		return pid
	}
	common.Warning("non-absolute id %q, assuming namespace %s", id, ns)
	return model.NewShapeId(ns, id)
}

func refToShapeId(ref *ShapeRef, ns string) model.ShapeId {
	if ref == nil || ref.Target == "" {
		return ""
	}
	return toCanonicalAbsoluteId(ref.Target, ns)
}

func refsToShapeIds(refs []*ShapeRef, ns string) []model.ShapeId {
	var ids []model.ShapeId
	for _, ref := range refs {
		ids = append(ids, refToShapeId(ref, ns))
	}
	return ids
}

func toMember(container *model.Shape, name string, m *Member) *model.Member {
	if m == nil {
		return nil
	}
	traits := m.Traits
	if traits == nil {
		traits = model.NewTraits()
	}
	return &model.Member{
		Name:      name,
		Container: container.Id,
		Target:    toCanonicalAbsoluteId(m.Target, container.Id.Namespace()),
		Traits:    traits,
	}
}

// resourceOperations flattens the lifecycle, instance and collection operations of a resource.
func resourceOperations(shape *Shape, ns string) []model.ShapeId {
	var ids []model.ShapeId
	for _, ref := range []*ShapeRef{shape.Create, shape.Put, shape.Read, shape.Update, shape.Delete, shape.List} {
		if ref != nil {
			ids = append(ids, refToShapeId(ref, ns))
		}
	}
	ids = append(ids, refsToShapeIds(shape.Operations, ns)...)
	ids = append(ids, refsToShapeIds(shape.CollectionOperations, ns)...)
	return ids
}

func importShape(ast *AST, shapeId string, shape *Shape) (*model.Shape, error) {
	id := model.ShapeId(shapeId)
	ns := id.Namespace()
	var kind model.ShapeKind
	switch shape.Type {
	case "apply":
		return nil, fmt.Errorf("Assertion failure: apply for %s should have been resolved by Assemble", shapeId)
	case "set":
		kind = model.Set
	case "list":
		kind = model.List
		if shape.Traits.Has(model.TraitUniqueItems) {
			kind = model.Set
		}
	case "string":
		kind = model.String
		if shape.Traits.Has(model.TraitEnum) {
			kind = model.Enum
		}
	default:
		k, ok := model.KindOf(shape.Type)
		if !ok {
			return nil, fmt.Errorf("shape %s has unsupported type %q", shapeId, shape.Type)
		}
		kind = k
	}
	s := model.NewShape(id, kind)
	if shape.Traits != nil {
		s.Traits = shape.Traits
	}
	switch kind {
	case model.List, model.Set:
		if shape.Member == nil {
			return nil, fmt.Errorf("%s %s has no member", shape.Type, shapeId)
		}
		s.Member = toMember(s, "member", shape.Member)
	case model.Map:
		if shape.Key == nil || shape.Value == nil {
			return nil, fmt.Errorf("map %s must have key and value", shapeId)
		}
		s.Key = toMember(s, "key", shape.Key)
		s.Value = toMember(s, "value", shape.Value)
	case model.Structure, model.Union, model.IntEnum:
		for _, name := range shape.Members.Keys() {
			m := toMember(s, name, shape.Members.Get(name))
			s.AddMember(name, m.Target, m.Traits)
		}
	case model.Enum:
		if shape.Type == "string" {
			importLegacyEnum(s)
		} else {
			for _, name := range shape.Members.Keys() {
				m := toMember(s, name, shape.Members.Get(name))
				s.AddMember(name, m.Target, m.Traits)
			}
		}
	case model.Operation:
		s.Input = refToShapeId(shape.Input, ns)
		s.Output = refToShapeId(shape.Output, ns)
		s.Errors = refsToShapeIds(shape.Errors, ns)
	case model.Service:
		s.Version = shape.Version
		s.Operations = refsToShapeIds(shape.Operations, ns)
		s.Resources = refsToShapeIds(shape.Resources, ns)
	case model.Resource:
		s.Operations = resourceOperations(shape, ns)
		s.Resources = refsToShapeIds(shape.Resources, ns)
	}
	return s, nil
}

// importLegacyEnum turns a Smithy 1.0 string with an enum trait into an enum shape.
func importLegacyEnum(s *model.Shape) {
	def, _ := s.Traits.Get(model.TraitEnum)
	for _, item := range def.Items() {
		value := item.GetString("value")
		name := item.GetString("name")
		if name == "" {
			name = strcase.ToScreamingSnake(value)
		}
		traits := model.NewTraits()
		traits.Put(model.TraitEnumValue, model.NewNode(value))
		if doc := item.GetString("documentation"); doc != "" {
			traits.Put(model.TraitDocumentation, model.NewNode(doc))
		}
		s.AddMember(name, model.NewShapeId(model.PreludeNamespace, "Unit"), traits)
	}
}

// check that all references are defined in the catalog
func validateTargets(catalog *model.Catalog) error {
	check := func(id model.ShapeId, from model.ShapeId) error {
		if id == "" {
			return nil
		}
		if _, ok := catalog.GetShape(id); !ok {
			return fmt.Errorf("shape not defined: %s (referenced from %s)", id, from)
		}
		return nil
	}
	for _, s := range catalog.Shapes() {
		var refs []model.ShapeId
		for _, m := range s.Members() {
			refs = append(refs, m.Target)
		}
		for _, m := range []*model.Member{s.Member, s.Key, s.Value} {
			if m != nil {
				refs = append(refs, m.Target)
			}
		}
		refs = append(refs, s.Input, s.Output)
		refs = append(refs, s.Errors...)
		refs = append(refs, s.Operations...)
		refs = append(refs, s.Resources...)
		for _, ref := range refs {
			if err := check(ref, s.Id); err != nil {
				return err
			}
		}
	}
	return nil
}
