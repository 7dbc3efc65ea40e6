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
	"time"

	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
)

// simpleStrategy covers boolean, string and the fixed width numbers. User defined shapes of
// these kinds are declared as named types unless primitives are inlined.
type simpleStrategy struct {
	shape   *model.Shape
	builtin string
	named   bool
}

func (s *simpleStrategy) Shape() *model.Shape {
	return s.shape
}

// Builtin is the underlying Go type.
func (s *simpleStrategy) Builtin() string {
	return s.builtin
}

func (s *simpleStrategy) GoType() string {
	if s.named {
		return TypeName(s.shape)
	}
	return s.builtin
}

func (s *simpleStrategy) TargetType(required bool) string {
	if required {
		return s.GoType()
	}
	return nullable(s.GoType())
}

func (s *simpleStrategy) RawType() string {
	switch s.shape.Kind {
	case model.Boolean:
		return "bool"
	case model.String:
		return "string"
	}
	return "float64"
}

func (s *simpleStrategy) Zero(required bool) expr.Expr {
	if !required {
		return expr.Nil
	}
	switch s.shape.Kind {
	case model.Boolean:
		return expr.Lit("false")
	case model.String:
		return expr.Lit(`""`)
	}
	return expr.Lit("0")
}

func (s *simpleStrategy) wrapType() string {
	if s.named {
		return s.GoType()
	}
	return ""
}

func (s *simpleStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	switch s.shape.Kind {
	case model.Boolean:
		return Conversion{Expr: &expr.Call{Fun: rt("BoolFromJSON"), Args: []expr.Expr{field, raw}}, Fallible: true, Wrap: s.wrapType()}
	case model.String:
		return Conversion{Expr: &expr.Call{Fun: rt("StringFromJSON"), Args: []expr.Expr{field, raw}}, Fallible: true, Wrap: s.wrapType()}
	}
	return Conversion{Expr: &expr.Call{Fun: rt("NumberFromJSON"), TypeArgs: []string{s.GoType()}, Args: []expr.Expr{field, raw}}, Fallible: true}
}

func (s *simpleStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	if s.named {
		return &expr.Conv{Type: s.builtin, X: value}
	}
	return value
}

// ApplyDefault passes builtin literals through and converts them for named types.
func (s *simpleStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	lit, err := LiteralFor(s.shape, node)
	if err != nil {
		return nil, err
	}
	if node.Kind() == model.NullNode {
		return expr.Nil, nil
	}
	if !s.accepts(node.Kind()) {
		return nil, &InvalidDefaultTarget{Shape: s.shape.Id, Kind: s.shape.Kind, Reason: node.Kind().String() + " default"}
	}
	if s.named {
		return &expr.Conv{Type: s.GoType(), X: expr.Lit(lit)}, nil
	}
	return expr.Lit(lit), nil
}

func (s *simpleStrategy) accepts(kind model.NodeKind) bool {
	switch s.shape.Kind {
	case model.String:
		return kind == model.StringNode
	case model.Boolean:
		return kind == model.BooleanNode || kind == model.NumberNode
	}
	return kind == model.NumberNode
}

func (s *simpleStrategy) Imports() []string {
	return nil
}

type timestampStrategy struct {
	shape  *model.Shape
	format string
}

func (s *timestampStrategy) Shape() *model.Shape {
	return s.shape
}

// Format is the timestampFormat in effect, empty for the date-time default.
func (s *timestampStrategy) Format() string {
	return s.format
}

// FormatExpr names the runtime constant for the format.
func (s *timestampStrategy) FormatExpr() expr.Expr {
	switch s.format {
	case "http-date":
		return rt("HttpDate")
	case "epoch-seconds":
		return rt("EpochSeconds")
	}
	return rt("DateTime")
}

func (s *timestampStrategy) GoType() string {
	return "time.Time"
}

func (s *timestampStrategy) TargetType(required bool) string {
	if required {
		return s.GoType()
	}
	return nullable(s.GoType())
}

func (s *timestampStrategy) RawType() string {
	if s.format == "epoch-seconds" {
		return "float64"
	}
	return "string"
}

func (s *timestampStrategy) Zero(required bool) expr.Expr {
	if required {
		return &expr.Composite{Type: "time.Time"}
	}
	return expr.Nil
}

func (s *timestampStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: rt("TimestampFromJSON"), Args: []expr.Expr{field, raw, s.FormatExpr()}}, Fallible: true}
}

func (s *timestampStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Call{Fun: rt("TimestampToJSON"), Args: []expr.Expr{value, s.FormatExpr()}}
}

// ApplyDefault accepts date-time strings, checked when the code is generated.
func (s *timestampStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	lit, err := LiteralFor(s.shape, node)
	if err != nil {
		return nil, err
	}
	switch node.Kind() {
	case model.NullNode:
		return expr.Nil, nil
	case model.StringNode:
		if _, err := time.Parse(time.RFC3339Nano, node.AsString()); err != nil {
			return nil, &InvalidDefaultTarget{Shape: s.shape.Id, Kind: s.shape.Kind, Reason: err.Error()}
		}
		return &expr.Call{Fun: rt("MustParseTimestamp"), Args: []expr.Expr{expr.Lit(lit)}}, nil
	}
	return nil, &InvalidDefaultTarget{Shape: s.shape.Id, Kind: s.shape.Kind, Reason: node.Kind().String() + " default"}
}

func (s *timestampStrategy) Imports() []string {
	return []string{"time"}
}

type blobStrategy struct {
	shape *model.Shape
}

func (s *blobStrategy) Shape() *model.Shape             { return s.shape }
func (s *blobStrategy) GoType() string                  { return "[]byte" }
func (s *blobStrategy) TargetType(required bool) string { return s.GoType() }
func (s *blobStrategy) RawType() string                 { return "string" }
func (s *blobStrategy) Zero(required bool) expr.Expr    { return expr.Nil }
func (s *blobStrategy) Imports() []string               { return nil }

func (s *blobStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Call{Fun: rt("BlobToJSON"), Args: []expr.Expr{value}}
}

func (s *blobStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: rt("BlobFromJSON"), Args: []expr.Expr{field, raw}}, Fallible: true}
}

func (s *blobStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	return nil, unsupportedDefault(s.shape, node)
}

type bigIntegerStrategy struct {
	shape *model.Shape
}

func (s *bigIntegerStrategy) Shape() *model.Shape             { return s.shape }
func (s *bigIntegerStrategy) GoType() string                  { return "*big.Int" }
func (s *bigIntegerStrategy) TargetType(required bool) string { return s.GoType() }
func (s *bigIntegerStrategy) RawType() string                 { return "json.Number" }
func (s *bigIntegerStrategy) Zero(required bool) expr.Expr    { return expr.Nil }
func (s *bigIntegerStrategy) Imports() []string               { return []string{"math/big"} }

func (s *bigIntegerStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: rt("BigIntFromJSON"), Args: []expr.Expr{field, raw}}, Fallible: true}
}

func (s *bigIntegerStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Call{Fun: rt("BigIntToJSON"), Args: []expr.Expr{value}}
}

func (s *bigIntegerStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	return bigDefault(s.shape, node)
}

type bigDecimalStrategy struct {
	shape *model.Shape
}

func (s *bigDecimalStrategy) Shape() *model.Shape { return s.shape }
func (s *bigDecimalStrategy) GoType() string      { return "decimal.Decimal" }
func (s *bigDecimalStrategy) RawType() string     { return "json.Number" }
func (s *bigDecimalStrategy) Imports() []string   { return []string{"github.com/shopspring/decimal"} }

func (s *bigDecimalStrategy) TargetType(required bool) string {
	if required {
		return s.GoType()
	}
	return nullable(s.GoType())
}

func (s *bigDecimalStrategy) Zero(required bool) expr.Expr {
	if required {
		return expr.Ident("decimal.Zero")
	}
	return expr.Nil
}

func (s *bigDecimalStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: &expr.Call{Fun: rt("DecimalFromJSON"), Args: []expr.Expr{field, raw}}, Fallible: true}
}

func (s *bigDecimalStrategy) ConvertToRaw(value expr.Expr) expr.Expr {
	return &expr.Call{Fun: rt("DecimalToJSON"), Args: []expr.Expr{value}}
}

func (s *bigDecimalStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	return bigDefault(s.shape, node)
}

// bigDefault rejects every default but null: arbitrary precision numbers have no Go literal.
func bigDefault(shape *model.Shape, node *model.Node) (expr.Expr, error) {
	if _, err := LiteralFor(shape, node); err != nil {
		return nil, err
	}
	if node.Kind() == model.NullNode {
		return expr.Nil, nil
	}
	return nil, &InvalidDefaultTarget{Shape: shape.Id, Kind: shape.Kind, Reason: node.Kind().String() + " default"}
}

type documentStrategy struct {
	shape *model.Shape
}

func (s *documentStrategy) Shape() *model.Shape                    { return s.shape }
func (s *documentStrategy) GoType() string                         { return "interface{}" }
func (s *documentStrategy) TargetType(required bool) string        { return s.GoType() }
func (s *documentStrategy) RawType() string                        { return "interface{}" }
func (s *documentStrategy) Zero(required bool) expr.Expr           { return expr.Nil }
func (s *documentStrategy) Imports() []string                      { return nil }
func (s *documentStrategy) ConvertToRaw(value expr.Expr) expr.Expr { return value }

func (s *documentStrategy) ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion {
	return Conversion{Expr: raw}
}

func (s *documentStrategy) ApplyDefault(node *model.Node) (expr.Expr, error) {
	return nil, unsupportedDefault(s.shape, node)
}
