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

// Package strategy maps each shape kind to its Go representation: the declared type, the raw
// JSON type, conversions between the two, and default value literals.
package strategy

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
)

const DefaultRuntimePackage = "github.com/boynton/smithygen/runtime"

// RuntimeAlias is the package name generated code uses for the runtime package.
const RuntimeAlias = "runtime"

type Options struct {
	// InlinePrimitives declares user defined simple shapes with their underlying Go type.
	InlinePrimitives bool
	RuntimePackage   string
}

// TypeStrategy describes how values of one shape are declared and converted.
type TypeStrategy interface {
	Shape() *model.Shape
	// GoType is the type of a present value.
	GoType() string
	// TargetType is GoType for required values, otherwise a type that can be nil.
	TargetType(required bool) string
	// RawType is the type of the value in a decoded JSON document.
	RawType() string
	Zero(required bool) expr.Expr
	ConvertFromRaw(field expr.Expr, raw expr.Expr) Conversion
	ConvertToRaw(value expr.Expr) expr.Expr
	ApplyDefault(node *model.Node) (expr.Expr, error)
	Imports() []string
}

// Container is implemented by list, set and map strategies.
type Container interface {
	TypeStrategy
	Element() TypeStrategy
}

// Simple is implemented by boolean, string and fixed width number strategies.
type Simple interface {
	TypeStrategy
	Builtin() string
}

// Temporal is implemented by timestamp strategies. Format is empty unless a timestampFormat
// trait applies.
type Temporal interface {
	TypeStrategy
	Format() string
}

// Enumerated is implemented by string enum strategies.
type Enumerated interface {
	TypeStrategy
	Parser() string
}

// Conversion is an expression producing a converted value. A Fallible expression yields
// (value, error). A non-empty Wrap is a conversion applied to the produced value.
type Conversion struct {
	Expr     expr.Expr
	Fallible bool
	Wrap     string
}

func (c Conversion) wrap(v expr.Expr) expr.Expr {
	if c.Wrap == "" {
		return v
	}
	return &expr.Conv{Type: c.Wrap, X: v}
}

// Assign returns statements storing the converted value in target. When pointer is set the
// target holds the address of the value. Errors return the given zero values and the error.
func (c Conversion) Assign(target string, pointer bool, zeros ...expr.Expr) []expr.Stmt {
	var stmts []expr.Stmt
	var value expr.Expr
	if c.Fallible {
		stmts = append(stmts,
			&expr.Define{Names: []string{"v", "err"}, Values: []expr.Expr{c.Expr}},
			expr.ReturnOnError(zeros...))
		value = c.wrap(expr.Ident("v"))
	} else {
		value = c.wrap(c.Expr)
	}
	if pointer {
		if _, ok := value.(expr.Ident); !ok {
			stmts = append(stmts, &expr.Define{Names: []string{"tmp"}, Values: []expr.Expr{value}})
			value = expr.Ident("tmp")
		}
		value = expr.Addr(value)
	}
	return append(stmts, &expr.Assign{Names: []string{target}, Values: []expr.Expr{value}})
}

// Return returns statements that return the converted value and a nil error.
func (c Conversion) Return(zero expr.Expr) []expr.Stmt {
	if c.Fallible && c.Wrap == "" {
		return []expr.Stmt{&expr.Return{Values: []expr.Expr{c.Expr}}}
	}
	if !c.Fallible {
		return []expr.Stmt{&expr.Return{Values: []expr.Expr{c.wrap(c.Expr), expr.Nil}}}
	}
	return []expr.Stmt{
		&expr.Define{Names: []string{"v", "err"}, Values: []expr.Expr{c.Expr}},
		expr.ReturnOnError(zero),
		&expr.Return{Values: []expr.Expr{c.wrap(expr.Ident("v")), expr.Nil}},
	}
}

// ImportSet collects import paths without duplicates.
type ImportSet map[string]bool

func (s ImportSet) Add(paths ...string) {
	for _, p := range paths {
		if p != "" {
			s[p] = true
		}
	}
}

func (s ImportSet) Sorted() []string {
	lst := make([]string, 0, len(s))
	for p := range s {
		lst = append(lst, p)
	}
	sort.Strings(lst)
	return lst
}

// Registry resolves shapes to strategies. It holds no mutable state, so it can be shared.
type Registry struct {
	catalog *model.Catalog
	options Options
}

func NewRegistry(catalog *model.Catalog, options Options) *Registry {
	if options.RuntimePackage == "" {
		options.RuntimePackage = DefaultRuntimePackage
	}
	return &Registry{catalog: catalog, options: options}
}

func (r *Registry) Catalog() *model.Catalog {
	return r.catalog
}

func (r *Registry) Options() Options {
	return r.options
}

// TypeName is the Go name declared for a shape.
func TypeName(shape *model.Shape) string {
	return common.GoName(shape.Id.Name())
}

// ConstantName is the Go constant declared for an enum member, i.e. ColorDarkBlue.
func ConstantName(enum *model.Shape, m *model.Member) string {
	return TypeName(enum) + common.GoName(strings.ToLower(m.Name))
}

func rt(name string) expr.Ident {
	return expr.Ident(RuntimeAlias + "." + name)
}

// StrategyFor returns the strategy for a shape. Every shape kind is either handled or reported
// as an UnsupportedShapeKindError.
func (r *Registry) StrategyFor(shape *model.Shape) (TypeStrategy, error) {
	switch shape.Kind {
	case model.Boolean:
		return r.simple(shape, "bool"), nil
	case model.Byte:
		return r.simple(shape, "int8"), nil
	case model.Short:
		return r.simple(shape, "int16"), nil
	case model.Integer:
		return r.simple(shape, "int32"), nil
	case model.Long:
		return r.simple(shape, "int64"), nil
	case model.Float:
		return r.simple(shape, "float32"), nil
	case model.Double:
		return r.simple(shape, "float64"), nil
	case model.String:
		return r.simple(shape, "string"), nil
	case model.Timestamp:
		return &timestampStrategy{shape: shape, format: shape.Traits.GetString(model.TraitTimestampFormat)}, nil
	case model.Blob:
		return &blobStrategy{shape: shape}, nil
	case model.BigInteger:
		return &bigIntegerStrategy{shape: shape}, nil
	case model.BigDecimal:
		return &bigDecimalStrategy{shape: shape}, nil
	case model.Document:
		return &documentStrategy{shape: shape}, nil
	case model.Enum:
		return &enumStrategy{shape: shape}, nil
	case model.IntEnum:
		return &intEnumStrategy{shape: shape}, nil
	case model.List, model.Set:
		if shape.Member == nil {
			return nil, errors.Errorf("%s %s has no member", shape.Kind, shape.Id)
		}
		elem, err := r.StrategyForMember(shape.Member)
		if err != nil {
			return nil, err
		}
		return &listStrategy{shape: shape, elem: elem}, nil
	case model.Map:
		if shape.Value == nil {
			return nil, errors.Errorf("%s %s has no value member", shape.Kind, shape.Id)
		}
		val, err := r.StrategyForMember(shape.Value)
		if err != nil {
			return nil, err
		}
		return &mapStrategy{shape: shape, value: val}, nil
	case model.Structure, model.Union:
		return &structureStrategy{shape: shape}, nil
	}
	return nil, &UnsupportedShapeKindError{Shape: shape.Id, Kind: shape.Kind}
}

// StrategyForMember resolves the member's target. A timestampFormat trait on the member
// overrides the one on the target.
func (r *Registry) StrategyForMember(m *model.Member) (TypeStrategy, error) {
	target, err := r.catalog.Target(m)
	if err != nil {
		return nil, err
	}
	ts, err := r.StrategyFor(target)
	if err != nil {
		return nil, err
	}
	if t, ok := ts.(*timestampStrategy); ok {
		if f := m.Traits.GetString(model.TraitTimestampFormat); f != "" {
			return &timestampStrategy{shape: t.shape, format: f}, nil
		}
	}
	return ts, nil
}

func (r *Registry) simple(shape *model.Shape, builtin string) *simpleStrategy {
	return &simpleStrategy{
		shape:   shape,
		builtin: builtin,
		named:   !shape.Id.IsPrelude() && !r.options.InlinePrimitives,
	}
}

func nullable(t string) string {
	return "*" + t
}

func unsupportedDefault(shape *model.Shape, node *model.Node) error {
	return &UnsupportedDefaultError{Shape: shape.Id, Kind: shape.Kind, Node: node.Kind()}
}
