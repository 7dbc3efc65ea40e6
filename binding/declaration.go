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
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/strategy"
)

// Declaration is the plan for binding one member: where its raw value comes from, what
// happens when it is absent, and how it is converted. Declarations are not modified once
// created.
type Declaration struct {
	Member *model.Member
	// Name identifies the member in missing field and parse errors.
	Name string
	Var  string
	Type string

	Origin    OriginType
	Key       string
	PathIndex int
	Greedy    bool

	Mode    Mode
	Default expr.Expr

	// Extract yields (raw, ok), or (raw, ok, err) when ExtractFallible.
	Extract         expr.Expr
	ExtractFallible bool
	Convert         strategy.Conversion
	// Pointer is set when Var holds the address of the converted value.
	Pointer bool
	Imports []string
}

// Throws reports whether binding this member can fail at request time.
func (d *Declaration) Throws() bool {
	return d.Mode == OrThrow || d.Convert.Fallible || d.ExtractFallible
}

// Statements renders the declaration. Failures return the given zero values followed by the
// error.
func (d *Declaration) Statements(zeros ...expr.Expr) []expr.Stmt {
	present := d.Convert.Assign(d.Var, d.Pointer, zeros...)
	var absent []expr.Stmt
	if d.Mode == OrThrow {
		values := append(append([]expr.Expr{}, zeros...),
			&expr.Call{Fun: rt("MissingField"), Args: []expr.Expr{expr.Str(d.Name), rt(d.Origin.runtimeConst())}})
		absent = []expr.Stmt{&expr.Return{Values: values}}
	}
	stmts := []expr.Stmt{&expr.Var{Name: d.Var, Type: d.Type, Value: d.Default}}
	if d.ExtractFallible {
		return append(stmts,
			&expr.Define{Names: []string{"raw", "ok", "err"}, Values: []expr.Expr{d.Extract}},
			expr.ReturnOnError(zeros...),
			&expr.If{Cond: expr.Ident("ok"), Then: present, Else: absent})
	}
	return append(stmts, &expr.If{
		Init: &expr.Define{Names: []string{"raw", "ok"}, Values: []expr.Expr{d.Extract}},
		Cond: expr.Ident("ok"),
		Then: present,
		Else: absent,
	})
}

// locals used by generated bind functions; member variables must not shadow them.
var reservedLocals = map[string]bool{
	"r": true, "raw": true, "ok": true, "v": true, "err": true, "doc": true, "tmp": true, "s": true, "field": true,
}

func localName(member string) string {
	name := common.GoLocal(member)
	if reservedLocals[name] {
		name += "Param"
	}
	return name
}

// Declarer builds Declarations. It holds only the shared, read-only registry.
type Declarer struct {
	registry *strategy.Registry
}

func NewDeclarer(registry *strategy.Registry) *Declarer {
	return &Declarer{registry: registry}
}

// Declare resolves one member bound from origin. The uri is needed only for path members.
func (d *Declarer) Declare(m *model.Member, target *model.Shape, origin OriginType, uri *model.UriPattern) (*Declaration, error) {
	ts, err := d.registry.StrategyForMember(m)
	if err != nil {
		return nil, errors.Wrapf(err, "member %s", m.Id())
	}
	mode, def := ModeOf(m, target)
	decl := &Declaration{
		Member:    m,
		Name:      m.Name,
		Var:       localName(m.Name),
		Type:      ts.TargetType(mode != Nullable),
		Origin:    origin,
		PathIndex: -1,
		Mode:      mode,
	}
	decl.Pointer = mode == Nullable && decl.Type != ts.TargetType(true)
	if mode == WithDefault {
		decl.Default, err = ts.ApplyDefault(def)
		if err != nil {
			return nil, errors.Wrapf(err, "member %s", m.Id())
		}
	}

	field := expr.Str(m.Name)
	raw := expr.Ident("raw")
	req := expr.Ident("r")
	switch origin {
	case UriPath:
		if uri != nil {
			decl.PathIndex = uri.LabelIndex(m.Name)
		}
		if decl.PathIndex < 0 {
			pattern := ""
			if uri != nil {
				pattern = uri.Raw
			}
			return nil, &UnresolvedPathLabelError{Member: m.Id(), Uri: pattern}
		}
		decl.Greedy = uri.Segments[decl.PathIndex].Greedy
		fun := "PathParam"
		if decl.Greedy {
			fun = "GreedyPathParam"
		}
		decl.Extract = &expr.Call{Fun: rt(fun), Args: []expr.Expr{req, expr.Int(decl.PathIndex)}}
		decl.Convert, err = fromString(m, ts, origin, field, raw)
	case UriQuery, HttpHeader:
		fun, trait := "QueryParam", model.TraitHttpQuery
		if origin == HttpHeader {
			fun, trait = "HeaderParam", model.TraitHttpHeader
		}
		decl.Key = m.Traits.GetString(trait)
		if decl.Key == "" {
			decl.Key = m.Name
		}
		decl.Extract = &expr.Call{Fun: rt(fun), Args: []expr.Expr{req, expr.Str(decl.Key)}}
		decl.Convert, err = fromString(m, ts, origin, field, raw)
	case HttpPayload:
		decl.ExtractFallible = true
		if rawPayload(target.Kind) {
			decl.Extract = &expr.Call{Fun: rt("BodyBytes"), Args: []expr.Expr{req}}
		} else {
			decl.Extract = &expr.Call{Fun: rt("BodyValue"), Args: []expr.Expr{req, field}}
		}
		decl.Convert, err = fromPayload(m, ts, field, raw)
	default:
		decl.Origin = Body
		decl.Key = m.Name
		decl.Extract = &expr.Call{Fun: rt("BodyField"), Args: []expr.Expr{expr.Ident("doc"), expr.Str(decl.Key)}}
		decl.Convert = ts.ConvertFromRaw(field, raw)
	}
	if err != nil {
		return nil, err
	}
	imports := strategy.ImportSet{}
	imports.Add(d.registry.Options().RuntimePackage)
	imports.Add(ts.Imports()...)
	decl.Imports = imports.Sorted()
	return decl, nil
}
