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
package strategy

import (
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
)

type enumStrategy struct {
	shape *model.Shape
}

func (s *enumStrategy) Shape() *model.Shape { return s.shape }
func (s *enumStrategy) GoType() string      { return TypeName(s.shape) }
func (s *enumStrategy) RawType() string     { return "string" }
func (s *enumStrategy) Imports() []string   { return nil }

// Parser is the generated function validating a string as a value of the enum.
func (s *enumStrategy) Parser() string {
	return "Parse" + s.GoType()
}

func (s *enumStrategy) TargetType(required bool) string {
	if required {
		return s.GoType()
	}
	return nullable(s.GoType())
}

func (s *enumStrategy) Zero(required bool) expr.Expr {
	if required {
		return expr.Lit(`""`)
	}
	return expr.Nil
}

func (s *enumStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: rt("EnumFromJSON"), Args: []expr.Expr{field, raw, expr.Ident(s.Parser())}}, Fallible: true}
}

func (s *enumStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Conv{Type: "string", X: value}
}

func (s *enumStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	lit, err := LiteralFor(s.shape, node)
	if err != nil {
		return nil, err
	}
	switch node.Kind() {
	case model.NullNode:
		return expr.Nil, nil
	case model.StringNode:
		return &expr.Conv{Type: s.GoType(), X: expr.Lit(lit)}, nil
	}
	return nil, &InvalidDefaultTarget{Shape: s.shape.Id, Kind: s.shape.Kind, Reason: node.Kind().String() + " default"}
}

type intEnumStrategy struct {
	shape *model.Shape
}

func (s *intEnumStrategy) Shape() *model.Shape { return s.shape }
func (s *intEnumStrategy) GoType() string      { return TypeName(s.shape) }
func (s *intEnumStrategy) RawType() string     { return "float64" }
func (s *intEnumStrategy) Imports() []string   { return nil }

func (s *intEnumStrategy) TargetType(required bool) string {
	if required {
		return s.GoType()
	}
	return nullable(s.GoType())
}

func (s *intEnumStrategy) Zero(required bool) expr.Expr {
	if required {
		return expr.Lit("0")
	}
	return expr.Nil
}

func (s *intEnumStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: rt("NumberFromJSON"), TypeArgs: []string{s.GoType()}, Args: []expr.Expr{field, raw}}, Fallible: true}
}

func (s *intEnumStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Conv{Type: "int32", X: value}
}

func (s *intEnumStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	lit, err := LiteralFor(s.shape, node)
	if err != nil {
		return nil, err
	}
	switch node.Kind() {
	case model.NullNode:
		return expr.Nil, nil
	case model.NumberNode:
		return &expr.Conv{Type: s.GoType(), X: expr.Lit(lit)}, nil
	}
	return nil, &InvalidDefaultTarget{Shape: s.shape.Id, Kind: s.shape.Kind, Reason: node.Kind().String() + " default"}
}

// listStrategy covers lists and sets, both declared as slices.
type listStrategy struct {
	shape *model.Shape
	elem  TypeStrategy
}

func (s *listStrategy) Shape() *model.Shape             { return s.shape }
func (s *listStrategy) Element() TypeStrategy           { return s.elem }
func (s *listStrategy) GoType() string                  { return "[]" + s.elem.GoType() }
func (s *listStrategy) TargetType(required bool) string { return s.GoType() }
func (s *listStrategy) RawType() string                 { return "[]interface{}" }
func (s *listStrategy) Zero(required bool) expr.Expr    { return expr.Nil }
func (s *listStrategy) Imports() []string               { return s.elem.Imports() }

func (s *listStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: rt("ListFromJSON"), Args: []expr.Expr{field, raw, elementFromRaw(s.elem)}}, Fallible: true}
}

func (s *listStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Call{Fun: rt("ListToJSON"), Args: []expr.Expr{value, elementToRaw(s.elem)}}
}

func (s *listStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	return nil, unsupportedDefault(s.shape, node)
}

type mapStrategy struct {
	shape *model.Shape
	value TypeStrategy
}

func (s *mapStrategy) Shape() *model.Shape             { return s.shape }
func (s *mapStrategy) Element() TypeStrategy           { return s.value }
func (s *mapStrategy) GoType() string                  { return "map[string]" + s.value.GoType() }
func (s *mapStrategy) TargetType(required bool) string { return s.GoType() }
func (s *mapStrategy) RawType() string                 { return "map[string]interface{}" }
func (s *mapStrategy) Zero(required bool) expr.Expr    { return expr.Nil }
func (s *mapStrategy) Imports() []string               { return s.value.Imports() }

func (s *mapStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: rt("MapFromJSON"), Args: []expr.Expr{field, raw, elementFromRaw(s.value)}}, Fallible: true}
}

func (s *mapStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Call{Fun: rt("MapToJSON"), Args: []expr.Expr{value, elementToRaw(s.value)}}
}

func (s *mapStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	return nil, unsupportedDefault(s.shape, node)
}

func elementFromRaw(elem TypeStrategy) expr.Expr {
	conv := elem.ConvertFromRaw(expr.Ident("field"), expr.Ident("raw"))
	return &expr.FuncLit{
		Params:  []expr.Param{{Name: "field", Type: "string"}, {Name: "raw", Type: "interface{}"}},
		Results: []string{elem.GoType(), "error"},
		Body:    conv.Return(elem.Zero(true)),
	}
}

func elementToRaw(elem TypeStrategy) expr.Expr {
	return &expr.FuncLit{
		Params:  []expr.Param{{Name: "e", Type: elem.GoType()}},
		Results: []string{"interface{}"},
		Body:    []expr.Stmt{&expr.Return{Values: []expr.Expr{elem.ConvertToRaw(expr.Ident("e"))}}},
	}
}

// structureStrategy covers structures and unions. Both are generated with FromJSON and ToJSON
// functions.
type structureStrategy struct {
	shape *model.Shape
}

func (s *structureStrategy) Shape() *model.Shape { return s.shape }
func (s *structureStrategy) GoType() string      { return TypeName(s.shape) }
func (s *structureStrategy) RawType() string     { return "map[string]interface{}" }
func (s *structureStrategy) Imports() []string   { return nil }

func (s *structureStrategy) TargetType(required bool) string {
	if required {
		return s.GoType()
	}
	return nullable(s.GoType())
}

func (s *structureStrategy) Zero(required bool) expr.Expr {
	if required {
		return &expr.Composite{Type: s.GoType()}
	}
	return expr.Nil
}

func (s *structureStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: expr.Ident(s.GoType() + "FromJSON"), Args: []expr.Expr{field, raw}}, Fallible: true}
}

func (s *structureStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Call{Fun: &expr.Sel{X: value, Name: "ToJSON"}}
}

func (s *structureStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	return nil, unsupportedDefault(s.shape, node)
}
