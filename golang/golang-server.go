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
package golang

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/binding"
	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/strategy"
)

// operation is an assembled operation ready to be emitted.
type operation struct {
	name   string
	input  *binding.Input
	output string //output type name, or "" if there is none
	method string
	route  string
	code   int
}

// GenerateServer returns the source of the server file: for each service an interface, a bind
// function per operation input, and a handler routing requests to an implementation.
func (gen *Generator) GenerateServer() (string, error) {
	gen.imports = strategy.ImportSet{}
	gen.imports.Add("net/http")
	var result *multierror.Error
	bound := make(map[string]bool)
	gen.Begin()
	for _, service := range gen.Catalog.Services() {
		ops, err := gen.serviceOperations(service)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "service %s", service.Id.Name()))
		}
		if len(ops) > 0 {
			gen.imports.Add("context", gen.registry.Options().RuntimePackage)
		}
		gen.EmitServiceInterface(service, ops)
		for _, op := range ops {
			if !bound[op.name] {
				bound[op.name] = true
				gen.EmitBindFunction(op)
			}
		}
		gen.EmitHandler(service, ops)
	}
	src, err := gen.declareImports(gen.End())
	if err != nil {
		result = multierror.Append(result, err)
	}
	return src, result.ErrorOrNil()
}

func (gen *Generator) serviceOperations(service *model.Shape) ([]*operation, error) {
	inputs, err := gen.assembler.AssembleService(service)
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}
	var ops []*operation
	for _, in := range inputs {
		op := &operation{
			name:   common.GoName(in.Operation.Id.Name()),
			input:  in,
			method: "POST",
			route:  "/" + in.Operation.Id.Name(),
			code:   http.StatusOK,
		}
		if in.Http != nil {
			route, err := muxPath(&in.Http.Uri)
			if err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "operation %s", in.Operation.Id.Name()))
				continue
			}
			op.method, op.route = in.Http.Method, route
			if in.Http.Code != 0 {
				op.code = in.Http.Code
			}
		}
		if out := in.Operation.Output; out != "" && out != model.NewShapeId(model.PreludeNamespace, "Unit") {
			shape, err := gen.Catalog.ExpectShape(out)
			if err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "output of %s", in.Operation.Id.Name()))
				continue
			}
			op.output = strategy.TypeName(shape)
		}
		for _, d := range in.Declarations {
			gen.imports.Add(d.Imports...)
		}
		ops = append(ops, op)
	}
	return ops, result.ErrorOrNil()
}

// muxPath converts a uri pattern to a ServeMux pattern. A greedy label must be the last segment.
func muxPath(uri *model.UriPattern) (string, error) {
	var segs []string
	for i, seg := range uri.Segments {
		switch {
		case seg.Greedy:
			if i != len(uri.Segments)-1 {
				return "", fmt.Errorf("greedy label {%s+} must end the path in %q", seg.Content, uri.Raw)
			}
			segs = append(segs, "{"+seg.Content+"...}")
		case seg.Label:
			segs = append(segs, "{"+seg.Content+"}")
		default:
			segs = append(segs, seg.Content)
		}
	}
	p := "/" + strings.Join(segs, "/")
	if strings.HasSuffix(p, "/") {
		p += "{$}"
	}
	return p, nil
}

func (op *operation) signature() string {
	params := "ctx context.Context"
	if op.input != nil && op.input.Shape != nil {
		params += ", input *" + op.input.TypeName
	}
	if op.output != "" {
		return op.name + "(" + params + ") (*" + op.output + ", error)"
	}
	return op.name + "(" + params + ") error"
}

func (gen *Generator) EmitServiceInterface(service *model.Shape, ops []*operation) {
	name := common.GoName(service.Id.Name())
	gen.generateTypeComment(service)
	gen.Emitf("type %s interface {\n", name)
	for _, op := range ops {
		gen.Emitf("\t%s\n", op.signature())
	}
	gen.Emit("}\n\n")
}

// EmitBindFunction emits bind<Op>Input, which extracts and converts each bound member and then
// calls the input constructor.
func (gen *Generator) EmitBindFunction(op *operation) {
	in := op.input
	if in.Shape == nil {
		return
	}
	var body []expr.Stmt
	ctor := "New" + in.TypeName
	switch in.Kind {
	case binding.WholeBody:
		body = []expr.Stmt{
			&expr.Define{Names: []string{"raw", "ok", "err"}, Values: []expr.Expr{expr.CallOf("runtime.BodyValue", expr.Ident("r"), expr.Str("body"))}},
			expr.ReturnOnError(expr.Nil),
			&expr.If{Cond: expr.Not(expr.Ident("ok")), Then: []expr.Stmt{&expr.Return{Values: []expr.Expr{expr.Nil, expr.CallOf("runtime.MissingField", expr.Str("body"), expr.Ident("runtime.OriginBody"))}}}},
			&expr.Define{Names: []string{"v", "err"}, Values: []expr.Expr{expr.CallOf(in.TypeName+"FromJSON", expr.Str("body"), expr.Ident("raw"))}},
			expr.ReturnOnError(expr.Nil),
			&expr.Return{Values: []expr.Expr{expr.Addr(expr.Ident("v")), expr.Nil}},
		}
	default:
		body = append(in.Statements(expr.Nil), &expr.Return{Values: []expr.Expr{expr.CallOf(ctor, in.Arguments...), expr.Nil}})
	}
	m := &expr.Method{
		Name:    "bind" + op.name + "Input",
		Params:  []expr.Param{{Name: "r", Type: "*http.Request"}},
		Results: []string{"*" + in.TypeName, "error"},
		Body:    body,
	}
	gen.Emit(m.Go() + "\n")
}

// EmitHandler emits New<Service>Handler, adapting an implementation to a ServeMux. Bind errors
// are written by runtime.WriteError: missing and malformed values are both 400 responses.
func (gen *Generator) EmitHandler(service *model.Shape, ops []*operation) {
	name := common.GoName(service.Id.Name())
	gen.Emitf("// New%sHandler routes requests to the operations of impl.\n", name)
	gen.Emitf("func New%sHandler(impl %s) http.Handler {\n", name, name)
	gen.Emit("\tmux := http.NewServeMux()\n")
	for _, op := range ops {
		gen.Emitf("\tmux.HandleFunc(%q, func(w http.ResponseWriter, r *http.Request) {\n", op.method+" "+op.route)
		args := "r.Context()"
		if op.input.Shape != nil {
			gen.Emitf("\t\tinput, err := bind%sInput(r)\n", op.name)
			gen.Emit("\t\tif err != nil {\n\t\t\truntime.WriteError(w, err)\n\t\t\treturn\n\t\t}\n")
			args += ", input"
		}
		if op.output != "" {
			gen.Emitf("\t\toutput, err := impl.%s(%s)\n", op.name, args)
		} else if op.input.Shape != nil {
			gen.Emitf("\t\terr = impl.%s(%s)\n", op.name, args)
		} else {
			gen.Emitf("\t\terr := impl.%s(%s)\n", op.name, args)
		}
		gen.Emit("\t\tif err != nil {\n\t\t\truntime.WriteError(w, err)\n\t\t\treturn\n\t\t}\n")
		if op.output != "" {
			gen.Emit("\t\tvar body interface{}\n\t\tif output != nil {\n\t\t\tbody = output.ToJSON()\n\t\t}\n")
			gen.Emitf("\t\truntime.WriteJSON(w, %d, body)\n", op.code)
		} else {
			gen.Emitf("\t\truntime.WriteJSON(w, %d, nil)\n", op.code)
		}
		gen.Emit("\t})\n")
	}
	gen.Emit("\treturn mux\n}\n\n")
}
