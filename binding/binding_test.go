package binding

import (
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/runtime"
	"github.com/boynton/smithygen/smithy"
	"github.com/boynton/smithygen/strategy"
)

const ns = "example.weather"

func id(name string) model.ShapeId {
	if p, ok := model.PreludeShapeId(name); ok {
		return p
	}
	return model.NewShapeId(ns, name)
}

func traits(kv ...interface{}) *model.Traits {
	t := model.NewTraits()
	for i := 0; i < len(kv); i += 2 {
		t.Put(kv[i].(string), model.NewNode(kv[i+1]))
	}
	return t
}

func annotation() map[string]interface{} {
	return map[string]interface{}{}
}

func operation(name, method, uri string, input model.ShapeId) *model.Shape {
	op := model.NewShape(id(name), model.Operation)
	op.Input = input
	if uri != "" {
		op.Traits.Put(model.TraitHttp, model.NewNode(map[string]interface{}{"method": method, "uri": uri}))
	}
	return op
}

func weatherCatalog(t *testing.T) *model.Catalog {
	c := model.NewCatalog()
	add := func(s *model.Shape) *model.Shape {
		require.NoError(t, c.Add(s))
		return s
	}
	add(model.NewShape(id("CityId"), model.String))
	days := add(model.NewShape(id("Days"), model.List))
	days.Member = &model.Member{Name: "member", Container: days.Id, Target: id("Integer"), Traits: model.NewTraits()}
	tags := add(model.NewShape(id("Tags"), model.Set))
	tags.Member = &model.Member{Name: "member", Container: tags.Id, Target: id("String"), Traits: model.NewTraits()}
	dates := add(model.NewShape(id("Dates"), model.List))
	dates.Member = &model.Member{Name: "member", Container: dates.Id, Target: id("Timestamp"), Traits: model.NewTraits()}
	ids := add(model.NewShape(id("Ids"), model.Set))
	ids.Member = &model.Member{Name: "member", Container: ids.Id, Target: id("Integer"), Traits: model.NewTraits()}
	forecast := add(model.NewShape(id("Forecast"), model.Structure))
	forecast.AddMember("summary", id("String"), nil)

	in := add(model.NewShape(id("ListForecastsInput"), model.Structure))
	in.AddMember("city", id("CityId"), traits(model.TraitRequired, annotation(), model.TraitHttpLabel, annotation()))
	in.AddMember("limit", id("Integer"), traits(model.TraitHttpQuery, "max"))
	in.AddMember("days", id("Days"), traits(model.TraitHttpQuery, "days"))
	in.AddMember("tags", id("Tags"), traits(model.TraitHttpHeader, "X-Tags"))
	in.AddMember("since", id("Timestamp"), traits(model.TraitHttpHeader, "If-Modified-Since"))
	in.AddMember("units", id("String"), traits(model.TraitHttpQuery, "units", model.TraitDefault, "metric", model.TraitRequired, annotation()))
	in.AddMember("note", id("String"), nil)
	in.AddMember("dates", dates.Id, traits(model.TraitHttpHeader, "X-Dates"))
	in.AddMember("ids", ids.Id, traits(model.TraitHttpQuery, "ids"))
	add(operation("ListForecasts", "GET", "/cities/{city}/forecasts", in.Id))

	up := add(model.NewShape(id("UploadInput"), model.Structure))
	up.AddMember("path", id("String"), traits(model.TraitRequired, annotation(), model.TraitHttpLabel, annotation()))
	up.AddMember("data", id("Blob"), traits(model.TraitHttpPayload, annotation()))
	add(operation("Upload", "PUT", "/files/{path+}", up.Id))

	put := add(model.NewShape(id("PutForecastInput"), model.Structure))
	put.AddMember("forecast", forecast.Id, traits(model.TraitHttpPayload, annotation()))
	add(operation("PutForecast", "PUT", "/forecast", put.Id))

	add(operation("Ping", "GET", "/ping", ""))
	add(operation("Rpc", "", "", in.Id))

	bad := add(model.NewShape(id("BadInput"), model.Structure))
	bad.AddMember("zone", id("String"), traits(model.TraitRequired, annotation(), model.TraitHttpLabel, annotation()))
	add(operation("Bad", "GET", "/zones/{name}", bad.Id))

	svc := add(model.NewShape(id("Weather"), model.Service))
	svc.Operations = []model.ShapeId{id("ListForecasts"), id("Bad"), id("Upload"), id("PutForecast"), id("Ping"), id("Rpc")}
	return c
}

func assemble(t *testing.T, c *model.Catalog, op string) *Input {
	return assembleId(t, c, id(op))
}

func assembleId(t *testing.T, c *model.Catalog, op model.ShapeId) *Input {
	a := NewAssembler(strategy.NewRegistry(c, strategy.Options{}))
	shape, err := c.ExpectShape(op)
	require.NoError(t, err)
	in, err := a.AssembleOperation(shape)
	require.NoError(t, err)
	return in
}

func TestOriginPrecedence(t *testing.T) {
	m := &model.Member{Name: "x", Target: id("String"), Traits: traits(
		model.TraitHttpHeader, "X", model.TraitHttpQuery, "x", model.TraitHttpLabel, annotation())}
	assert.Equal(t, UriPath, OriginOf(m))
	m.Traits.Put(model.TraitHttpPayload, model.NewNode(annotation()))
	assert.Equal(t, HttpPayload, OriginOf(m))
	assert.Equal(t, NoOrigin, OriginOf(&model.Member{Name: "y", Traits: model.NewTraits()}))
	assert.Equal(t, "query", UriQuery.String())
}

func TestModeDecision(t *testing.T) {
	str, _ := model.NewCatalog().GetShape(id("String"))
	prim, _ := model.NewCatalog().GetShape(id("PrimitiveInteger"))

	mode, def := ModeOf(&model.Member{Name: "a", Traits: traits(model.TraitRequired, annotation(), model.TraitDefault, "x")}, str)
	assert.Equal(t, WithDefault, mode, "default wins over required")
	assert.Equal(t, "x", def.AsString())

	mode, _ = ModeOf(&model.Member{Name: "b", Traits: traits(model.TraitRequired, annotation())}, str)
	assert.Equal(t, OrThrow, mode)

	mode, _ = ModeOf(&model.Member{Name: "c", Traits: model.NewTraits()}, str)
	assert.Equal(t, Nullable, mode)

	mode, def = ModeOf(&model.Member{Name: "d", Traits: model.NewTraits()}, prim)
	assert.Equal(t, WithDefault, mode, "default on the target")
	assert.Equal(t, model.NumberNode, def.Kind())

	nulled := model.NewTraits()
	nulled.Put(model.TraitDefault, nil)
	mode, _ = ModeOf(&model.Member{Name: "e", Traits: nulled}, prim)
	assert.Equal(t, Nullable, mode, "explicit null removes the default")
}

func TestGetWidgetScenario(t *testing.T) {
	catalog, err := smithy.Import([]string{"../smithy/testdata/widgets.json"})
	require.NoError(t, err)
	in := assembleId(t, catalog, model.NewShapeId("example.widgets", "GetWidget"))
	assert.Equal(t, "GetWidget", in.Operation.Id.Name())

	assert.Equal(t, Members, in.Kind)
	assert.Equal(t, "GetWidgetInput", in.TypeName)
	require.Len(t, in.Declarations, 2)

	idDecl, verbose := in.Declarations[0], in.Declarations[1]
	assert.Equal(t, "id", idDecl.Name)
	assert.Equal(t, UriPath, idDecl.Origin)
	assert.Equal(t, OrThrow, idDecl.Mode)
	assert.Equal(t, 1, idDecl.PathIndex)
	assert.Equal(t, "string", idDecl.Type)
	assert.False(t, idDecl.Convert.Fallible, "string passthrough")

	assert.Equal(t, "verbose", verbose.Name)
	assert.Equal(t, UriQuery, verbose.Origin)
	assert.Equal(t, WithDefault, verbose.Mode)
	assert.Equal(t, "false", verbose.Default.Go())
	assert.Equal(t, "bool", verbose.Type)

	r := httptest.NewRequest("GET", "/widgets/abc123", nil)
	raw, ok := runtime.PathParam(r, idDecl.PathIndex)
	require.True(t, ok)
	assert.Equal(t, "abc123", raw)
	_, ok = runtime.QueryParam(r, verbose.Key)
	assert.False(t, ok, "verbose falls back to its default")

	expected := `var id string
if raw, ok := runtime.PathParam(r, 1); ok {
	id = raw
} else {
	return nil, runtime.MissingField("id", runtime.OriginPath)
}
var verbose bool = false
if raw, ok := runtime.QueryParam(r, "verbose"); ok {
	v, err := runtime.ParseBool("verbose", raw)
	if err != nil {
		return nil, err
	}
	verbose = v
}
`
	assert.Equal(t, expected, expr.Render(in.Statements(expr.Nil), ""))
	assert.Equal(t, []expr.Expr{expr.Ident("id"), expr.Ident("verbose")}, in.Arguments)
	assert.Equal(t, []string{strategy.DefaultRuntimePackage}, in.Imports)
}

func TestDeclarationsFollowMemberOrder(t *testing.T) {
	c := weatherCatalog(t)
	in := assemble(t, c, "ListForecasts")
	var names []string
	for _, d := range in.Declarations {
		names = append(names, d.Name)
	}
	var members []string
	for _, m := range in.Shape.Members() {
		members = append(members, m.Name)
	}
	assert.Equal(t, members, names)

	again := assemble(t, c, "ListForecasts")
	assert.Equal(t, expr.Render(in.Statements(expr.Nil), ""), expr.Render(again.Statements(expr.Nil), ""), "deterministic output")
}

func TestStringOriginConversions(t *testing.T) {
	in := assemble(t, weatherCatalog(t), "ListForecasts")
	byName := map[string]*Declaration{}
	for _, d := range in.Declarations {
		byName[d.Name] = d
	}

	city := byName["city"]
	assert.Equal(t, "CityId", city.Type)
	assert.Equal(t, "CityId", city.Convert.Wrap)
	assert.Equal(t, 1, city.PathIndex)

	limit := byName["limit"]
	assert.Equal(t, "max", limit.Key)
	assert.Equal(t, "*int32", limit.Type)
	assert.True(t, limit.Pointer)
	assert.Equal(t, `runtime.ParseInt[int32]("limit", raw)`, limit.Convert.Expr.Go())

	days := byName["days"]
	assert.Equal(t, "[]int32", days.Type)
	assert.False(t, days.Pointer)
	assert.Contains(t, days.Convert.Expr.Go(), `runtime.ConvertEach("days", runtime.SplitList(raw), func(field string, s string) (int32, error) {`)

	tags := byName["tags"]
	assert.Equal(t, "X-Tags", tags.Key)
	assert.Equal(t, "runtime.SplitSet(raw)", tags.Convert.Expr.Go())

	since := byName["since"]
	assert.Equal(t, `runtime.ParseTimestamp("since", raw, runtime.HttpDate)`, since.Convert.Expr.Go())
	assert.Contains(t, since.Imports, "time")
	assert.Contains(t, in.Imports, "time")

	units := byName["units"]
	assert.Equal(t, WithDefault, units.Mode)
	assert.False(t, units.Throws())

	dates := byName["dates"]
	assert.Equal(t, "[]time.Time", dates.Type)
	assert.Contains(t, dates.Convert.Expr.Go(), `runtime.ConvertEach("dates", runtime.SplitHttpDates(raw), func(field string, s string) (time.Time, error) {`)
	assert.Contains(t, dates.Convert.Expr.Go(), `runtime.ParseTimestamp(field, s, runtime.HttpDate)`)

	ids := byName["ids"]
	assert.Equal(t, "[]int32", ids.Type)
	assert.Contains(t, ids.Convert.Expr.Go(), `runtime.ConvertSet("ids", runtime.SplitList(raw), func(field string, s string) (int32, error) {`)

	note := byName["note"]
	assert.Equal(t, Body, note.Origin)
	assert.Equal(t, `runtime.BodyField(doc, "note")`, note.Extract.Go())

	rendered := expr.Render(in.Statements(expr.Nil), "")
	assert.Contains(t, rendered, "doc, err := runtime.BodyDocument(r)\n")
	assert.Contains(t, rendered, "limit = &v\n")
}

func TestPayloadClassification(t *testing.T) {
	c := weatherCatalog(t)

	put := assemble(t, c, "PutForecast")
	assert.Equal(t, SinglePayload, put.Kind)
	require.NotNil(t, put.Payload())
	assert.Equal(t, `runtime.BodyValue(r, "forecast")`, put.Payload().Extract.Go())
	assert.Equal(t, `ForecastFromJSON("forecast", raw)`, put.Payload().Convert.Expr.Go())

	up := assemble(t, c, "Upload")
	assert.Equal(t, Members, up.Kind)
	assert.Nil(t, up.Payload())
	assert.True(t, up.Declarations[0].Greedy)
	assert.Equal(t, "runtime.GreedyPathParam(r, 1)", up.Declarations[0].Extract.Go())
	assert.Equal(t, "runtime.BodyBytes(r)", up.Declarations[1].Extract.Go())

	ping := assemble(t, c, "Ping")
	assert.Equal(t, Empty, ping.Kind)
	assert.Empty(t, ping.Statements())

	rpc := assemble(t, c, "Rpc")
	assert.Equal(t, WholeBody, rpc.Kind)
	assert.Empty(t, rpc.Declarations)
}

func TestUnresolvedLabelAndPartialSuccess(t *testing.T) {
	c := weatherCatalog(t)
	a := NewAssembler(strategy.NewRegistry(c, strategy.Options{}))
	bad, _ := c.GetShape(id("Bad"))
	_, err := a.AssembleOperation(bad)
	var upl *UnresolvedPathLabelError
	require.ErrorAs(t, err, &upl)
	assert.Equal(t, "/zones/{name}", upl.Uri)

	svc, _ := c.GetShape(id("Weather"))
	inputs, err := a.AssembleService(svc)
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 1)
	assert.Len(t, inputs, 5, "siblings of the failed operation are still assembled")
}

func TestUnsupportedBinding(t *testing.T) {
	c := weatherCatalog(t)
	d := NewDeclarer(strategy.NewRegistry(c, strategy.Options{}))
	forecast, _ := c.GetShape(id("Forecast"))
	m := &model.Member{Name: "f", Container: id("X"), Target: forecast.Id, Traits: traits(model.TraitHttpQuery, "f")}
	_, err := d.Declare(m, forecast, UriQuery, nil)
	var ube *UnsupportedBindingError
	require.ErrorAs(t, err, &ube)
	assert.Equal(t, model.Structure, ube.Kind)
}

func TestMissingRequiredIsNamed(t *testing.T) {
	in := assemble(t, weatherCatalog(t), "ListForecasts")
	rendered := expr.Render(in.Declarations[0].Statements(expr.Nil), "")
	assert.Contains(t, rendered, `return nil, runtime.MissingField("city", runtime.OriginPath)`)
	assert.True(t, in.Declarations[0].Throws())
}
