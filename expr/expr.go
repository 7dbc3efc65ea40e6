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

// Package expr is a small tree of Go expressions and statements. Declarations and contributed
// methods are built from it and rendered by the emitter.
package expr

import (
	"strconv"
	"strings"
)

type Expr interface {
	Go() string
}

// Ident is a (possibly qualified) identifier, i.e. "id" or "runtime.ParseBool".
type Ident string

func (e Ident) Go() string {
	return string(e)
}

// Lit is literal Go source text, i.e. `"abc"`, `42`, `true`, `nil`.
type Lit string

func (e Lit) Go() string {
	return string(e)
}

var Nil = Lit("nil")

func Str(s string) Lit {
	return Lit(strconv.Quote(s))
}

func Int(n int) Lit {
	return Lit(strconv.Itoa(n))
}

type Sel struct {
	X    Expr
	Name string
}

func (e *Sel) Go() string {
	return e.X.Go() + "." + e.Name
}

type Call struct {
	Fun      Expr
	TypeArgs []string
	Args     []Expr
}

func CallOf(fun string, args ...Expr) *Call {
	return &Call{Fun: Ident(fun), Args: args}
}

func (e *Call) Go() string {
	var b strings.Builder
	b.WriteString(e.Fun.Go())
	if len(e.TypeArgs) > 0 {
		b.WriteString("[" + strings.Join(e.TypeArgs, ", ") + "]")
	}
	b.WriteString("(")
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Go())
	}
	b.WriteString(")")
	return b.String()
}

// Conv is a type conversion, T(x).
type Conv struct {
	Type string
	X    Expr
}

func (e *Conv) Go() string {
	t := e.Type
	if strings.HasPrefix(t, "*") || strings.HasPrefix(t, "[]") || strings.HasPrefix(t, "map[") {
		t = "(" + t + ")"
	}
	return t + "(" + e.X.Go() + ")"
}

type Unary struct {
	Op string
	X  Expr
}

func (e *Unary) Go() string {
	return e.Op + e.X.Go()
}

func Addr(x Expr) Expr {
	return &Unary{Op: "&", X: x}
}

func Not(x Expr) Expr {
	return &Unary{Op: "!", X: x}
}

type Binary struct {
	X  Expr
	Op string
	Y  Expr
}

func (e *Binary) Go() string {
	return e.X.Go() + " " + e.Op + " " + e.Y.Go()
}

type Index struct {
	X     Expr
	Index Expr
}

func (e *Index) Go() string {
	return e.X.Go() + "[" + e.Index.Go() + "]"
}

type Field struct {
	Key   string
	Value Expr
}

// Composite is a composite literal. Fields without keys are positional.
type Composite struct {
	Type   string
	Fields []Field
}

func (e *Composite) Go() string {
	var b strings.Builder
	b.WriteString(e.Type + "{")
	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		if f.Key != "" {
			b.WriteString(f.Key + ": ")
		}
		b.WriteString(f.Value.Go())
	}
	b.WriteString("}")
	return b.String()
}

type Param struct {
	Name string
	Type string
}

func renderParams(params []Param) string {
	var lst []string
	for _, p := range params {
		if p.Name == "" {
			lst = append(lst, p.Type)
		} else {
			lst = append(lst, p.Name+" "+p.Type)
		}
	}
	return strings.Join(lst, ", ")
}

func renderResults(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + results[0]
	}
	return " (" + strings.Join(results, ", ") + ")"
}

type FuncLit struct {
	Params  []Param
	Results []string
	Body    []Stmt
}

func (e *FuncLit) Go() string {
	return "func(" + renderParams(e.Params) + ")" + renderResults(e.Results) + " {\n" + Render(e.Body, "\t") + "}"
}
