/*
Copyright 2021 Lee R. Boynton

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
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/model"
)

// AST is the Smithy JSON AST, decoded with shape and member order preserved.
type AST struct {
	Smithy   string                    `json:"smithy"`
	Metadata *model.Node               `json:"metadata,omitempty"`
	Shapes   *model.OrderedMap[*Shape] `json:"shapes,omitempty"`
}

type Shape struct {
	Type string `json:"type"`

	//Service
	Version string `json:"version,omitempty"`

	//List and Set
	Member *Member `json:"member,omitempty"`

	//Map
	Key   *Member `json:"key,omitempty"`
	Value *Member `json:"value,omitempty"`

	//Structure, Union, Enum, IntEnum
	Members *model.OrderedMap[*Member] `json:"members,omitempty"`
	Mixins  []*ShapeRef                `json:"mixins,omitempty"`

	//Resource
	Identifiers          *model.OrderedMap[*ShapeRef] `json:"identifiers,omitempty"`
	Create               *ShapeRef                    `json:"create,omitempty"`
	Put                  *ShapeRef                    `json:"put,omitempty"`
	Read                 *ShapeRef                    `json:"read,omitempty"`
	Update               *ShapeRef                    `json:"update,omitempty"`
	Delete               *ShapeRef                    `json:"delete,omitempty"`
	List                 *ShapeRef                    `json:"list,omitempty"`
	CollectionOperations []*ShapeRef                  `json:"collectionOperations,omitempty"`

	//Resource and Service
	Operations []*ShapeRef `json:"operations,omitempty"`
	Resources  []*ShapeRef `json:"resources,omitempty"`

	//Operation
	Input  *ShapeRef   `json:"input,omitempty"`
	Output *ShapeRef   `json:"output,omitempty"`
	Errors []*ShapeRef `json:"errors,omitempty"`

	Traits *model.Traits `json:"traits,omitempty"`
}

type ShapeRef struct {
	Target string `json:"target"`
}

type Member struct {
	Target string        `json:"target"`
	Traits *model.Traits `json:"traits,omitempty"`
}

func (ast *AST) PutShape(id string, shape *Shape) {
	if ast.Shapes == nil {
		ast.Shapes = model.NewOrderedMap[*Shape]()
	}
	ast.Shapes.Put(id, shape)
}

func (ast *AST) GetShape(id string) *Shape {
	if ast.Shapes == nil {
		return nil
	}
	return ast.Shapes.Get(id)
}

func LoadAST(path string) (*AST, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read Smithy AST file")
	}
	ast, err := DecodeAST(data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse Smithy AST file %s", path)
	}
	return ast, nil
}

// DecodeAST decodes a Smithy JSON AST document.
func DecodeAST(data []byte) (*AST, error) {
	var ast *AST
	if err := json.Unmarshal(data, &ast); err != nil {
		return nil, err
	}
	if ast == nil || ast.Smithy == "" {
		return nil, fmt.Errorf("not a Smithy AST: missing \"smithy\" version")
	}
	return ast, nil
}

func (ast *AST) Merge(src *AST) error {
	if ast.Smithy == "" && ast.Shapes == nil {
		*ast = *src
		return nil
	}
	if ast.Smithy != src.Smithy {
		if strings.HasPrefix(ast.Smithy, "1") && strings.HasPrefix(src.Smithy, "2") {
			ast.Smithy = src.Smithy
		} else if !strings.HasPrefix(ast.Smithy, "2") || !strings.HasPrefix(src.Smithy, "1") {
			common.Warning("smithy version mismatch: %s and %s", ast.Smithy, src.Smithy)
		}
	}
	if src.Metadata != nil && ast.Metadata == nil {
		ast.Metadata = src.Metadata
	}
	for _, k := range src.Shapes.Keys() {
		incoming := src.GetShape(k)
		if tmp := ast.GetShape(k); tmp != nil {
			switch {
			case incoming.Type == "apply" && tmp.Type != "apply":
				if err := ast.Apply(k, incoming.Traits); err != nil {
					return err
				}
				continue
			case tmp.Type == "apply" && incoming.Type != "apply":
				ast.PutShape(k, incoming)
				if err := ast.Apply(k, tmp.Traits); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("duplicate shape in assembly: %s", k)
		}
		ast.PutShape(k, incoming)
	}
	return nil
}

// Apply merges the traits of an "apply" statement into its target shape or member.
func (ast *AST) Apply(target string, traits *model.Traits) error {
	lst := strings.Split(target, "$")
	field := ""
	if len(lst) == 2 {
		target = lst[0]
		field = lst[1]
	}
	shape := ast.GetShape(target)
	if shape == nil {
		return fmt.Errorf("cannot apply traits to %s: target shape not found", target)
	}
	var t *model.Traits
	if field != "" {
		m := shape.Members.Get(field)
		if m == nil {
			return fmt.Errorf("cannot apply traits to %s$%s: member not found", target, field)
		}
		if m.Traits == nil {
			m.Traits = model.NewTraits()
		}
		t = m.Traits
	} else {
		if shape.Traits == nil {
			shape.Traits = model.NewTraits()
		}
		t = shape.Traits
	}
	for _, k := range traits.Keys() {
		v, _ := traits.Get(k)
		t.Put(k, v)
	}
	return nil
}

func (ast *AST) expandMixins(shapeId string, done map[string]bool) error {
	if done[shapeId] {
		return nil
	}
	done[shapeId] = true
	shape := ast.Shapes.Get(shapeId)
	if shape == nil {
		return fmt.Errorf("mixin shape not available: %s", shapeId)
	}
	if shape.Mixins == nil {
		return nil
	}
	newMembers := model.NewOrderedMap[*Member]()
	newTraits := model.NewTraits()
	for _, mixinRef := range shape.Mixins {
		if err := ast.expandMixins(mixinRef.Target, done); err != nil {
			return err
		}
		mixin := ast.Shapes.Get(mixinRef.Target)
		if mixin.Members != nil && shape.Type != mixin.Type {
			return fmt.Errorf("target for mixin %s with members is a %s: %s", mixinRef.Target, shape.Type, shapeId)
		}
		for _, memKey := range mixin.Members.Keys() {
			if !newMembers.Has(memKey) {
				newMembers.Put(memKey, mixin.Members.Get(memKey))
			}
		}
		for _, trait := range mixin.Traits.Keys() {
			if trait != model.TraitMixin && trait != model.TraitTrait {
				v, _ := mixin.Traits.Get(trait)
				newTraits.Put(trait, v)
			}
		}
	}
	for _, memKey := range shape.Members.Keys() {
		newMembers.Put(memKey, shape.Members.Get(memKey))
	}
	for _, trait := range shape.Traits.Keys() {
		v, _ := shape.Traits.Get(trait)
		newTraits.Put(trait, v)
	}
	if newMembers.Length() > 0 {
		shape.Members = newMembers
	}
	shape.Traits = newTraits
	shape.Mixins = nil
	return nil
}

// ExpandMixins copies mixin members and traits into every shape that uses them. Mixin members
// come first, in mixin order, followed by the shape's own members.
func (ast *AST) ExpandMixins() error {
	done := make(map[string]bool, 0)
	for _, shapeId := range ast.Shapes.Keys() {
		if err := ast.expandMixins(shapeId, done); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll processes and removes the "apply" statements of the assembly.
func (ast *AST) ApplyAll() error {
	for _, k := range ast.Shapes.Keys() {
		if tmp := ast.GetShape(k); tmp != nil && tmp.Type == "apply" {
			if err := ast.Apply(k, tmp.Traits); err != nil {
				return err
			}
			ast.Shapes.Delete(k)
		}
	}
	return nil
}

func (ast *AST) Namespaces() []string {
	seen := make(map[string]bool, 0)
	var nss []string
	for _, id := range ast.Shapes.Keys() {
		ns := model.ShapeId(id).Namespace()
		if !seen[ns] {
			seen[ns] = true
			nss = append(nss, ns)
		}
	}
	return nss
}
