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
package expr

import (
	"strings"
)

type Stmt interface {
	render(b *strings.Builder, indent string)
}

// Render prints statements one per line, each prefixed with indent.
func Render(stmts []Stmt, indent string) string {
	var b strings.Builder
	for _, s := range stmts {
		s.render(&b, indent)
	}
	return b.String()
}

// line writes text at indent. Continuation lines of multi-line expressions are indented too.
func line(b *strings.Builder, indent string, text string) {
	b.WriteString(indent)
	b.WriteString(strings.ReplaceAll(text, "\n", "\n"+indent))
	b.WriteString("\n")
}

func joinExprs(values []Expr) string {
	var lst []string
	for _, v := range values {
		lst = append(lst, v.Go())
	}
	return strings.Join(lst, ", ")
}

// Define is "a, b := x".
type Define struct {
	Names  []string
	Values []Expr
}

func (s *Define) render(b *strings.Builder, indent string) {
	line(b, indent, strings.Join(s.Names, ", ")+" := "+joinExprs(s.Values))
}

// Assign is "a, b = x".
type Assign struct {
	Names  []string
	Values []Expr
}

func (s *Assign) render(b *strings.Builder, indent string) {
	line(b, indent, strings.Join(s.Names, ", ")+" = "+joinExprs(s.Values))
}

// Var is "var a T", "var a T = x" or "var a = x".
type Var struct {
	Name  string
	Type  string
	Value Expr
}

func (s *Var) render(b *strings.Builder, indent string) {
	text := "var " + s.Name
	if s.Type != "" {
		text += " " + s.Type
	}
	if s.Value != nil {
		text += " = " + s.Value.Go()
	}
	line(b, indent, text)
}

type If struct {
	Init Stmt
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (s *If) render(b *strings.Builder, indent string) {
	head := "if "
	if s.Init != nil {
		var ib strings.Builder
		s.Init.render(&ib, "")
		head += strings.TrimSuffix(ib.String(), "\n") + "; "
	}
	line(b, indent, head+s.Cond.Go()+" {")
	b.WriteString(Render(s.Then, indent+"\t"))
	if len(s.Else) > 0 {
		line(b, indent, "} else {")
		b.WriteString(Render(s.Else, indent+"\t"))
	}
	line(b, indent, "}")
}

type Return struct {
	Values []Expr
}

func (s *Return) render(b *strings.Builder, indent string) {
	if len(s.Values) == 0 {
		line(b, indent, "return")
		return
	}
	line(b, indent, "return "+joinExprs(s.Values))
}

type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) render(b *strings.Builder, indent string) {
	line(b, indent, s.X.Go())
}

type Comment string

func (s Comment) render(b *strings.Builder, indent string) {
	for _, l := range strings.Split(string(s), "\n") {
		line(b, indent, "// "+l)
	}
}

// ReturnOnError is the "if err != nil { return ..., err }" idiom.
func ReturnOnError(zeros ...Expr) Stmt {
	return &If{
		Cond: &Binary{X: Ident("err"), Op: "!=", Y: Nil},
		Then: []Stmt{&Return{Values: append(zeros, Ident("err"))}},
	}
}

type Case struct {
	Values []Expr
	Body   []Stmt
}

type Switch struct {
	Tag     Expr
	Cases   []Case
	Default []Stmt
}

func (s *Switch) render(b *strings.Builder, indent string) {
	head := "switch {"
	if s.Tag != nil {
		head = "switch " + s.Tag.Go() + " {"
	}
	line(b, indent, head)
	for _, c := range s.Cases {
		line(b, indent, "case "+joinExprs(c.Values)+":")
		b.WriteString(Render(c.Body, indent+"\t"))
	}
	if len(s.Default) > 0 {
		line(b, indent, "default:")
		b.WriteString(Render(s.Default, indent+"\t"))
	}
	line(b, indent, "}")
}
