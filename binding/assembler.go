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
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/strategy"
)

// InputKind classifies an operation input for the emitter.
type InputKind int

const (
	// Members are bound one declaration at a time.
	Members InputKind = iota
	// SinglePayload has exactly one member, bound to the whole body.
	SinglePayload
	// Empty has no members.
	Empty
	// WholeBody inputs belong to operations without an http trait; the body is the input.
	WholeBody
)

func (k InputKind) String() string {
	switch k {
	case SinglePayload:
		return "single-payload"
	case Empty:
		return "empty"
	case WholeBody:
		return "whole-body"
	}
	return "members"
}

// Input is the assembled binding of one operation's input structure.
type Input struct {
	Operation    *model.Shape
	Shape        *model.Shape
	TypeName     string
	Kind         InputKind
	Http         *model.HttpBinding
	Declarations []*Declaration
	Arguments    []expr.Expr
	Imports      []string
}

// Payload returns the declaration of a single payload input.
func (in *Input) Payload() *Declaration {
	if in.Kind != SinglePayload {
		return nil
	}
	return in.Declarations[0]
}

// Statements renders every declaration in member order, preceded by decoding the body
// document when members are bound from it.
func (in *Input) Statements(zeros ...expr.Expr) []expr.Stmt {
	var stmts []expr.Stmt
	for _, d := range in.Declarations {
		if d.Origin == Body {
			stmts = append(stmts,
				&expr.Define{Names: []string{"doc", "err"}, Values: []expr.Expr{&expr.Call{Fun: rt("BodyDocument"), Args: []expr.Expr{expr.Ident("r")}}}},
				expr.ReturnOnError(zeros...))
			break
		}
	}
	for _, d := range in.Declarations {
		stmts = append(stmts, d.Statements(zeros...)...)
	}
	return stmts
}

// Assembler binds operation inputs. It can be shared; nothing it holds changes.
type Assembler struct {
	catalog  *model.Catalog
	declarer *Declarer
	runtime  string
}

func NewAssembler(registry *strategy.Registry) *Assembler {
	return &Assembler{
		catalog:  registry.Catalog(),
		declarer: NewDeclarer(registry),
		runtime:  registry.Options().RuntimePackage,
	}
}

// AssembleOperation assembles the declared input of an operation. A missing input or Unit is empty.
func (a *Assembler) AssembleOperation(op *model.Shape) (*Input, error) {
	var input *model.Shape
	if op.Input != "" && op.Input != model.NewShapeId(model.PreludeNamespace, "Unit") {
		var err error
		input, err = a.catalog.ExpectShape(op.Input)
		if err != nil {
			return nil, errors.Wrapf(err, "input of %s", op.Id)
		}
	}
	return a.Assemble(op, input)
}

// Assemble declares the members of input in their declared order, classifying each by origin.
func (a *Assembler) Assemble(op *model.Shape, input *model.Shape) (*Input, error) {
	http, hasHttp, err := model.HttpBindingOf(op)
	if err != nil {
		return nil, err
	}
	in := &Input{Operation: op, Shape: input, Http: http}
	if input != nil {
		in.TypeName = strategy.TypeName(input)
	}
	switch {
	case input == nil || input.MemberCount() == 0:
		in.Kind = Empty
	case !hasHttp:
		in.Kind = WholeBody
	default:
		members := input.Members()
		if len(members) == 1 && OriginOf(members[0]) == HttpPayload {
			in.Kind = SinglePayload
		}
		var uri *model.UriPattern
		if http != nil {
			uri = &http.Uri
		}
		for _, m := range members {
			target, err := a.catalog.Target(m)
			if err != nil {
				return nil, err
			}
			decl, err := a.declarer.Declare(m, target, OriginOf(m), uri)
			if err != nil {
				return nil, err
			}
			in.Declarations = append(in.Declarations, decl)
		}
	}
	in.Arguments, in.Imports = accumulate(in.Declarations, a.runtime)
	common.Debug("assembled input", "operation", op.Id, "kind", in.Kind, "members", len(in.Declarations))
	return in, nil
}

// accumulate merges declarations into constructor arguments and a deduplicated import list.
func accumulate(decls []*Declaration, runtime string) ([]expr.Expr, []string) {
	imports := strategy.ImportSet{}
	if len(decls) > 0 {
		imports.Add(runtime)
	}
	var args []expr.Expr
	for _, d := range decls {
		args = append(args, expr.Ident(d.Var))
		imports.Add(d.Imports...)
	}
	return args, imports.Sorted()
}

// AssembleService assembles every operation of a service. Operations that fail are reported
// together and do not stop the others.
func (a *Assembler) AssembleService(service *model.Shape) ([]*Input, error) {
	ops, err := a.catalog.Operations(service.Id)
	if err != nil {
		return nil, err
	}
	var inputs []*Input
	var result *multierror.Error
	for _, op := range ops {
		in, err := a.AssembleOperation(op)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "operation %s", op.Id.Name()))
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, result.ErrorOrNil()
}
