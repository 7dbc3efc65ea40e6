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
package binding

import (
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/strategy"
)

func rt(name string) expr.Ident {
	return expr.Ident(strategy.RuntimeAlias + "." + name)
}

func fallible(fun expr.Ident, typeArg string, args ...expr.Expr) strategy.Conversion {
	c := &expr.Call{Fun: fun, Args: args}
	if typeArg != "" {
		c.TypeArgs = []string{typeArg}
	}
	return strategy.Conversion{Expr: c, Fallible: true}
}

// fromString converts a raw string from the path, query or a header to the member's type.
func fromString(m *model.Member, ts strategy.TypeStrategy, origin OriginType, field, raw expr.Expr) (strategy.Conversion, error) {
	shape := ts.Shape()
	switch shape.Kind {
	case model.String:
		conv := strategy.Conversion{Expr: raw}
		if s, ok := ts.(strategy.Simple); ok && s.GoType() != s.Builtin() {
			conv.Wrap = s.GoType()
		}
		return conv, nil
	case model.Boolean:
		conv := fallible(rt("ParseBool"), "", field, raw)
		if s, ok := ts.(strategy.Simple); ok && s.GoType() != s.Builtin() {
			conv.Wrap = s.GoType()
		}
		return conv, nil
	case model.Byte, model.Short, model.Integer, model.Long, model.IntEnum:
		return fallible(rt("ParseInt"), ts.GoType(), field, raw), nil
	case model.Float, model.Double:
		return fallible(rt("ParseFloat"), ts.GoType(), field, raw), nil
	case model.BigInteger:
		return fallible(rt("ParseBigInt"), "", field, raw), nil
	case model.BigDecimal:
		return fallible(rt("ParseDecimal"), "", field, raw), nil
	case model.Blob:
		return fallible(rt("ParseBlob"), "", field, raw), nil
	case model.Timestamp:
		return fallible(rt("ParseTimestamp"), "", field, raw, timestampFormat(ts, origin)), nil
	case model.Enum:
		if e, ok := ts.(strategy.Enumerated); ok {
			return fallible(expr.Ident(e.Parser()), "", field, raw), nil
		}
	case model.List, model.Set:
		c, ok := ts.(strategy.Container)
		if !ok {
			break
		}
		elem := c.Element()
		if elem.Shape().Kind.IsCollection() {
			break
		}
		split := "SplitList"
		if elem.Shape().Kind == model.Timestamp && timestampFormat(elem, origin) == rt("HttpDate") {
			split = "SplitHttpDates"
		}
		ec, err := fromString(m, elem, origin, expr.Ident("field"), expr.Ident("s"))
		if err != nil {
			return ec, err
		}
		if !ec.Fallible && ec.Wrap == "" {
			if shape.Kind == model.Set {
				split = "SplitSet"
			}
			return strategy.Conversion{Expr: &expr.Call{Fun: rt(split), Args: []expr.Expr{raw}}}, nil
		}
		parts := &expr.Call{Fun: rt(split), Args: []expr.Expr{raw}}
		fn := &expr.FuncLit{
			Params:  []expr.Param{{Name: "field", Type: "string"}, {Name: "s", Type: "string"}},
			Results: []string{elem.GoType(), "error"},
			Body:    ec.Return(elem.Zero(true)),
		}
		convert := "ConvertEach"
		if shape.Kind == model.Set {
			convert = "ConvertSet"
		}
		return fallible(rt(convert), "", field, parts, fn), nil
	}
	return strategy.Conversion{}, &UnsupportedBindingError{Member: m.Id(), Kind: shape.Kind, Origin: origin}
}

// timestampFormat is the runtime format constant for a timestamp bound from a string origin.
// The timestampFormat trait wins, otherwise headers use http-date and the rest date-time.
func timestampFormat(ts strategy.TypeStrategy, origin OriginType) expr.Ident {
	format := rt("DateTime")
	if origin == HttpHeader {
		format = rt("HttpDate")
	}
	if t, ok := ts.(strategy.Temporal); ok {
		switch t.Format() {
		case "date-time":
			format = rt("DateTime")
		case "http-date":
			format = rt("HttpDate")
		case "epoch-seconds":
			format = rt("EpochSeconds")
		}
	}
	return format
}

// fromPayload converts the whole request body to the payload member's type. Blob and string
// payloads are the body bytes, everything else is decoded JSON.
func fromPayload(m *model.Member, ts strategy.TypeStrategy, field, raw expr.Expr) (strategy.Conversion, error) {
	switch ts.Shape().Kind {
	case model.Blob:
		return strategy.Conversion{Expr: raw}, nil
	case model.String:
		conv := strategy.Conversion{Expr: &expr.Conv{Type: "string", X: raw}}
		if ts.GoType() != "string" {
			conv.Wrap = ts.GoType()
		}
		return conv, nil
	case model.Structure, model.Union, model.Document, model.List, model.Set, model.Map, model.Enum:
		return ts.ConvertFromRaw(field, raw), nil
	}
	return strategy.Conversion{}, &UnsupportedBindingError{Member: m.Id(), Kind: ts.Shape().Kind, Origin: HttpPayload}
}

// rawPayload reports whether the payload is bound from the body bytes rather than JSON.
func rawPayload(kind model.ShapeKind) bool {
	return kind == model.Blob || kind == model.String
}
