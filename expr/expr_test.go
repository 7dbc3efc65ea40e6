package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpressions(t *testing.T) {
	call := &Call{Fun: Ident("runtime.ParseInt"), TypeArgs: []string{"int32"}, Args: []Expr{Str("limit"), Ident("raw")}}
	assert.Equal(t, `runtime.ParseInt[int32]("limit", raw)`, call.Go())
	assert.Equal(t, `Color("red")`, (&Conv{Type: "Color", X: Str("red")}).Go())
	assert.Equal(t, `(*int32)(p)`, (&Conv{Type: "*int32", X: Ident("p")}).Go())
	assert.Equal(t, `&v`, Addr(Ident("v")).Go())
	assert.Equal(t, `x.Unit == to`, (&Binary{X: &Sel{X: Ident("x"), Name: "Unit"}, Op: "==", Y: Ident("to")}).Go())
	assert.Equal(t, `Weight{Value: 1, Unit: u}`, (&Composite{Type: "Weight", Fields: []Field{{"Value", Int(1)}, {"Unit", Ident("u")}}}).Go())
	assert.Equal(t, `"a\tb\n"`, Str("a\tb\n").Go())
}

func TestStatements(t *testing.T) {
	stmts := []Stmt{
		&Var{Name: "verbose", Type: "bool", Value: Lit("false")},
		&If{
			Init: &Define{Names: []string{"raw", "ok"}, Values: []Expr{CallOf("runtime.QueryParam", Ident("r"), Str("verbose"))}},
			Cond: Ident("ok"),
			Then: []Stmt{
				&Define{Names: []string{"v", "err"}, Values: []Expr{CallOf("runtime.ParseBool", Str("verbose"), Ident("raw"))}},
				ReturnOnError(Nil),
				&Assign{Names: []string{"verbose"}, Values: []Expr{Ident("v")}},
			},
		},
	}
	expected := `var verbose bool = false
if raw, ok := runtime.QueryParam(r, "verbose"); ok {
	v, err := runtime.ParseBool("verbose", raw)
	if err != nil {
		return nil, err
	}
	verbose = v
}
`
	assert.Equal(t, expected, Render(stmts, ""))
}

func TestFuncLitIndents(t *testing.T) {
	fn := &FuncLit{
		Params:  []Param{{"field", "string"}, {"raw", "string"}},
		Results: []string{"int32", "error"},
		Body:    []Stmt{&Return{Values: []Expr{CallOf("runtime.ParseInt[int32]", Ident("field"), Ident("raw"))}}},
	}
	stmts := []Stmt{&Define{Names: []string{"f"}, Values: []Expr{fn}}}
	expected := "\tf := func(field string, raw string) (int32, error) {\n\t\treturn runtime.ParseInt[int32](field, raw)\n\t}\n"
	assert.Equal(t, expected, Render(stmts, "\t"))
}

func TestMethod(t *testing.T) {
	m := &Method{
		Doc:      "To converts the weight.",
		Receiver: &Param{"x", "*Weight"},
		Name:     "To",
		Params:   []Param{{"to", "WeightUnit"}},
		Results:  []string{"*Weight"},
		Body:     []Stmt{&Return{Values: []Expr{Ident("x")}}},
	}
	assert.Equal(t, "func (x *Weight) To(to WeightUnit) *Weight", m.Signature())
	assert.Equal(t, "// To converts the weight.\nfunc (x *Weight) To(to WeightUnit) *Weight {\n\treturn x\n}\n", m.Go())
	assert.Equal(t, "// one\n// two\n", Render([]Stmt{Comment("one\ntwo")}, ""))
}

func TestSwitch(t *testing.T) {
	sw := &Switch{
		Tag: Ident("x"),
		Cases: []Case{
			{Values: []Expr{Ident("WeightUnitKilograms")}, Body: []Stmt{&Return{Values: []Expr{Lit("1000")}}}},
			{Values: []Expr{Ident("A"), Ident("B")}, Body: []Stmt{&Return{Values: []Expr{Lit("1")}}}},
		},
		Default: []Stmt{&Return{Values: []Expr{Lit("0")}}},
	}
	expected := "switch x {\ncase WeightUnitKilograms:\n\treturn 1000\ncase A, B:\n\treturn 1\ndefault:\n\treturn 0\n}\n"
	assert.Equal(t, expected, Render([]Stmt{sw}, ""))
}
