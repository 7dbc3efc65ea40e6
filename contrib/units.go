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
package contrib

import (
	"strconv"

	"github.com/boynton/smithygen/binding"
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/runtime"
	"github.com/boynton/smithygen/strategy"
)

// Unit is one constant of a unit enum.
type Unit struct {
	Constant      string
	Name          string
	Value         string
	Multiplier    float64
	Offset        float64
	Abbreviations []string
}

// UnitsOf returns the units of an enum, or false unless every constant carries a units trait.
// The trait is either a multiplier, or an object with multiplier, offset and abbreviations.
func UnitsOf(enum *model.Shape) ([]Unit, bool) {
	if enum == nil || enum.Kind != model.Enum || enum.MemberCount() == 0 {
		return nil, false
	}
	var units []Unit
	for _, m := range enum.Members() {
		v, ok := m.Traits.Units()
		if !ok {
			return nil, false
		}
		u := Unit{
			Constant:   strategy.ConstantName(enum, m),
			Name:       m.Name,
			Value:      m.EnumValue().AsString(),
			Multiplier: 1,
		}
		switch v.Kind() {
		case model.NumberNode:
			u.Multiplier, _ = v.AsFloat64()
		case model.ObjectNode:
			if f, ok := v.Get("multiplier").AsFloat64(); ok {
				u.Multiplier = f
			}
			if f, ok := v.Get("offset").AsFloat64(); ok {
				u.Offset = f
			}
			u.Abbreviations = v.Get("abbreviations").StringItems()
		default:
			return nil, false
		}
		if u.Multiplier == 0 {
			return nil, false
		}
		units = append(units, u)
	}
	return units, true
}

func float(f float64) expr.Expr {
	return expr.Lit(strconv.FormatFloat(f, 'g', -1, 64))
}

func rt(name string) expr.Ident {
	return expr.Ident(strategy.RuntimeAlias + "." + name)
}

// UnitEnum gives an enum whose constants are all units a conversion spec and a fuzzy lookup.
var UnitEnum = Contributor{
	Name: "unit-enum",
	Applies: func(s *Structure) bool {
		_, ok := UnitsOf(s.Shape)
		return ok
	},
	Contribute: contributeUnitEnum,
}

func contributeUnitEnum(s *Structure) ([]*expr.Method, error) {
	units, _ := UnitsOf(s.Shape)
	recv := &expr.Param{Name: "x", Type: s.TypeName}
	spec := &expr.Switch{Tag: expr.Ident("x")}
	options := &expr.Composite{Type: "map[string]" + s.TypeName}
	seen := make(map[string]bool)
	for _, u := range units {
		fields := []expr.Field{{Key: "Multiplier", Value: float(u.Multiplier)}}
		if u.Offset != 0 {
			fields = append(fields, expr.Field{Key: "Offset", Value: float(u.Offset)})
		}
		spec.Cases = append(spec.Cases, expr.Case{
			Values: []expr.Expr{expr.Ident(u.Constant)},
			Body:   []expr.Stmt{&expr.Return{Values: []expr.Expr{&expr.Composite{Type: "runtime.UnitSpec", Fields: fields}}}},
		})
		for _, token := range append([]string{u.Name, u.Value}, u.Abbreviations...) {
			key := runtime.FuzzyKey(token)
			if token == "" || seen[key] {
				continue
			}
			seen[key] = true
			options.Fields = append(options.Fields, expr.Field{Key: strconv.Quote(token), Value: expr.Ident(u.Constant)})
		}
	}
	spec.Default = []expr.Stmt{&expr.Return{Values: []expr.Expr{&expr.Composite{Type: "runtime.UnitSpec", Fields: []expr.Field{{Key: "Multiplier", Value: expr.Lit("1")}}}}}}

	specCall := func(x expr.Expr) expr.Expr {
		return &expr.Call{Fun: &expr.Sel{X: x, Name: "Spec"}}
	}
	return []*expr.Method{
		{
			Doc:      "Spec returns the multiplier and offset of the unit.",
			Receiver: recv,
			Name:     "Spec",
			Results:  []string{"runtime.UnitSpec"},
			Body:     []expr.Stmt{spec},
		},
		{
			Receiver: recv,
			Name:     "Multiplier",
			Results:  []string{"float64"},
			Body:     []expr.Stmt{&expr.Return{Values: []expr.Expr{&expr.Sel{X: specCall(expr.Ident("x")), Name: "Multiplier"}}}},
		},
		{
			Receiver: recv,
			Name:     "Offset",
			Results:  []string{"float64"},
			Body:     []expr.Stmt{&expr.Return{Values: []expr.Expr{&expr.Sel{X: specCall(expr.Ident("x")), Name: "Offset"}}}},
		},
		{
			Doc:      "Convert converts a value in this unit to the given unit.",
			Receiver: recv,
			Name:     "Convert",
			Params:   []expr.Param{{Name: "value", Type: "float64"}, {Name: "to", Type: s.TypeName}},
			Results:  []string{"float64"},
			Body: []expr.Stmt{&expr.Return{Values: []expr.Expr{
				&expr.Call{Fun: rt("ConvertUnit"), Args: []expr.Expr{expr.Ident("value"), specCall(expr.Ident("x")), specCall(expr.Ident("to"))}},
			}}},
		},
		{
			Doc:     "Find" + s.TypeName + " looks up a unit by name, value or abbreviation, ignoring case and\ntreating '-' and '_' alike.",
			Name:    "Find" + s.TypeName,
			Params:  []expr.Param{{Name: "token", Type: "string"}},
			Results: []string{s.TypeName, "bool"},
			Body: []expr.Stmt{&expr.Return{Values: []expr.Expr{
				&expr.Call{Fun: rt("FuzzyMatch"), Args: []expr.Expr{expr.Ident("token"), options}},
			}}},
		},
	}, nil
}

// UnitConversion applies to structures of exactly two members, a unit enum and a number. It
// contributes To, Parse<Type> and FormatValue.
var UnitConversion = Contributor{
	Name:       "unit-conversion",
	Applies:    func(s *Structure) bool { return quantityOf(s) != nil },
	Contribute: contributeUnitConversion,
}

type quantity struct {
	value       *Member
	unit        *Member
	units       []Unit
	numberFirst bool
}

func quantityOf(s *Structure) *quantity {
	if s.Shape.Kind != model.Structure || len(s.Members) != 2 {
		return nil
	}
	q := &quantity{}
	for i, m := range s.Members {
		if units, ok := UnitsOf(m.Target); ok {
			q.unit, q.units = m, units
			continue
		}
		if isQuantityNumber(m.Target) {
			q.value = m
			q.numberFirst = i == 0
		}
	}
	if q.value == nil || q.unit == nil {
		return nil
	}
	for _, m := range s.Members {
		if !binding.IsNonNullable(m.Member, m.Target) {
			return nil
		}
	}
	return q
}

func isQuantityNumber(shape *model.Shape) bool {
	if shape == nil {
		return false
	}
	switch shape.Kind {
	case model.Byte, model.Short, model.Integer, model.Long, model.Float, model.Double:
		return true
	}
	return false
}

func contributeUnitConversion(s *Structure) ([]*expr.Method, error) {
	q := quantityOf(s)
	x := expr.Ident("x")
	value := &expr.Sel{X: x, Name: q.value.Field}
	unit := &expr.Sel{X: x, Name: q.unit.Field}
	numberType := q.value.Type
	isFloat := q.value.Target.Kind == model.Float || q.value.Target.Kind == model.Double

	converted := expr.Expr(&expr.Call{Fun: &expr.Sel{X: unit, Name: "Convert"}, Args: []expr.Expr{&expr.Conv{Type: "float64", X: value}, expr.Ident("to")}})
	var imports []string
	if !isFloat {
		converted = expr.CallOf("math.Round", converted)
		imports = append(imports, "math")
	}
	converted = &expr.Conv{Type: numberType, X: converted}

	ctorArgs := func(v, u expr.Expr) []expr.Expr {
		if q.numberFirst {
			return []expr.Expr{v, u}
		}
		return []expr.Expr{u, v}
	}
	ctor := "New" + s.TypeName
	sample := "42 " + q.units[0].Value
	if !q.numberFirst {
		sample = q.units[0].Value + " 42"
	}

	parseNumber := &expr.Call{Fun: rt("ParseInt"), TypeArgs: []string{numberType}, Args: []expr.Expr{expr.Str(q.value.Member.Name), expr.Ident("num")}}
	if isFloat {
		parseNumber.Fun = rt("ParseFloat")
	}
	notFound := &expr.Return{Values: []expr.Expr{expr.Nil, expr.Lit("false")}}
	unitType := q.unit.Type

	return []*expr.Method{
		{
			Doc:      "To returns x in the given unit. Converting to the current unit returns x itself.",
			Receiver: &expr.Param{Name: "x", Type: "*" + s.TypeName},
			Name:     "To",
			Params:   []expr.Param{{Name: "to", Type: unitType}},
			Results:  []string{"*" + s.TypeName},
			Body: []expr.Stmt{
				&expr.If{Cond: &expr.Binary{X: unit, Op: "==", Y: expr.Ident("to")}, Then: []expr.Stmt{&expr.Return{Values: []expr.Expr{x}}}},
				&expr.Return{Values: []expr.Expr{expr.CallOf(ctor, ctorArgs(converted, expr.Ident("to"))...)}},
			},
			Imports: imports,
		},
		{
			Doc:     "Parse" + s.TypeName + " parses text such as \"" + sample + "\". It reports false if the text is malformed.",
			Name:    "Parse" + s.TypeName,
			Params:  []expr.Param{{Name: "input", Type: "string"}},
			Results: []string{"*" + s.TypeName, "bool"},
			Body: []expr.Stmt{
				&expr.Define{Names: []string{"num", "token", "ok"}, Values: []expr.Expr{&expr.Call{Fun: rt("SplitQuantity"), Args: []expr.Expr{expr.Ident("input"), expr.Lit(strconv.FormatBool(q.numberFirst))}}}},
				&expr.If{Cond: expr.Not(expr.Ident("ok")), Then: []expr.Stmt{notFound}},
				&expr.Define{Names: []string{"unit", "ok"}, Values: []expr.Expr{expr.CallOf("Find"+unitType, expr.Ident("token"))}},
				&expr.If{Cond: expr.Not(expr.Ident("ok")), Then: []expr.Stmt{notFound}},
				&expr.Define{Names: []string{"value", "err"}, Values: []expr.Expr{parseNumber}},
				&expr.If{Cond: &expr.Binary{X: expr.Ident("err"), Op: "!=", Y: expr.Nil}, Then: []expr.Stmt{notFound}},
				&expr.Return{Values: []expr.Expr{expr.CallOf(ctor, ctorArgs(expr.Ident("value"), expr.Ident("unit"))...), expr.Lit("true")}},
			},
		},
		{
			Doc:      "FormatValue formats the numeric value with f.",
			Receiver: &expr.Param{Name: "x", Type: "*" + s.TypeName},
			Name:     "FormatValue",
			Params:   []expr.Param{{Name: "f", Type: "runtime.NumberFormatter"}},
			Results:  []string{"string"},
			Body:     []expr.Stmt{&expr.Return{Values: []expr.Expr{&expr.Call{Fun: &expr.Sel{X: expr.Ident("f"), Name: "Format"}, Args: []expr.Expr{&expr.Conv{Type: "float64", X: value}}}}}},
		},
	}, nil
}
