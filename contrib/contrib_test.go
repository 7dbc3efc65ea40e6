package contrib

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/runtime"
	"github.com/boynton/smithygen/smithy"
	"github.com/boynton/smithygen/strategy"
)

func widgets(t *testing.T) (*strategy.Registry, func(name string) *Structure) {
	catalog, err := smithy.Import([]string{"../smithy/testdata/widgets.json"})
	require.NoError(t, err)
	reg := strategy.NewRegistry(catalog, strategy.Options{})
	return reg, func(name string) *Structure {
		shape, err := catalog.ExpectShape(model.NewShapeId("example.widgets", name))
		require.NoError(t, err)
		s, err := NewStructure(reg, shape)
		require.NoError(t, err)
		return s
	}
}

func methodNamed(methods []*expr.Method, name string) *expr.Method {
	for _, m := range methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func TestUnitsOf(t *testing.T) {
	_, structure := widgets(t)
	units, ok := UnitsOf(structure("WeightUnit").Shape)
	require.True(t, ok)
	require.Len(t, units, 2)
	assert.Equal(t, "WeightUnitKilograms", units[0].Constant)
	assert.Equal(t, "kilograms", units[0].Value)
	assert.Equal(t, 1000.0, units[0].Multiplier)
	assert.Equal(t, []string{"kg"}, units[0].Abbreviations)
	assert.Equal(t, 1.0, units[1].Multiplier)

	_, ok = UnitsOf(structure("Color").Shape)
	assert.False(t, ok, "legacy enum without units")
}

func TestUnitConversionContributes(t *testing.T) {
	_, structure := widgets(t)
	weight := structure("Weight")
	require.True(t, UnitConversion.Applies(weight))

	methods, err := Default().Contribute(weight)
	require.NoError(t, err)
	require.Len(t, methods, 3)

	to := methodNamed(methods, "To")
	require.NotNil(t, to)
	expected := `// To returns x in the given unit. Converting to the current unit returns x itself.
func (x *Weight) To(to WeightUnit) *Weight {
	if x.Unit == to {
		return x
	}
	return NewWeight(int32(math.Round(x.Unit.Convert(float64(x.Value), to))), to)
}
`
	assert.Equal(t, expected, to.Go())
	assert.Equal(t, []string{"math"}, to.Imports)

	parse := methodNamed(methods, "ParseWeight")
	require.NotNil(t, parse)
	assert.Nil(t, parse.Receiver)
	body := parse.Go()
	assert.Contains(t, body, `// ParseWeight parses text such as "42 kilograms".`)
	assert.Contains(t, body, "num, token, ok := runtime.SplitQuantity(input, true)\n")
	assert.Contains(t, body, "unit, ok := FindWeightUnit(token)\n")
	assert.Contains(t, body, `value, err := runtime.ParseInt[int32]("value", num)`)
	assert.Contains(t, body, "return NewWeight(value, unit), true\n")

	format := methodNamed(methods, "FormatValue")
	require.NotNil(t, format)
	assert.Equal(t, "func (x *Weight) FormatValue(f runtime.NumberFormatter) string", format.Signature())
}

func TestPatternMismatchContributesNothing(t *testing.T) {
	_, structure := widgets(t)
	for _, name := range []string{"Widget", "GetWidgetInput", "Color"} {
		methods, err := Default().Contribute(structure(name))
		require.NoError(t, err)
		assert.Empty(t, methods, name)
	}
}

func TestUnitEnum(t *testing.T) {
	_, structure := widgets(t)
	unit := structure("WeightUnit")
	require.True(t, UnitEnum.Applies(unit))
	assert.False(t, UnitConversion.Applies(unit))

	methods, err := Default().Contribute(unit)
	require.NoError(t, err)
	spec := methodNamed(methods, "Spec")
	require.NotNil(t, spec)
	assert.Contains(t, spec.Go(), "case WeightUnitKilograms:\n\t\treturn runtime.UnitSpec{Multiplier: 1000}\n")

	find := methodNamed(methods, "FindWeightUnit")
	require.NotNil(t, find)
	options := find.Body[0].(*expr.Return).Values[0].(*expr.Call).Args[1].(*expr.Composite)
	assert.Equal(t, "map[string]WeightUnit", options.Type)

	// the generated lookup table, evaluated with the runtime matcher
	table := map[string]string{}
	for _, f := range options.Fields {
		key, err := strconv.Unquote(f.Key)
		require.NoError(t, err)
		table[key] = f.Value.Go()
	}
	for _, token := range []string{"kilograms", "KILOGRAMS", "Kilograms", "kg", "KG", "grams"} {
		_, ok := runtime.FuzzyMatch(token, table)
		assert.True(t, ok, token)
	}
	_, ok := runtime.FuzzyMatch("pounds", table)
	assert.False(t, ok)
	for _, bad := range []string{"not a number kg", "42", ""} {
		num, token, ok := runtime.SplitQuantity(bad, true)
		if ok {
			_, unitOk := runtime.FuzzyMatch(token, table)
			_, err := runtime.ParseInt[int32]("value", num)
			ok = unitOk && err == nil
		}
		assert.False(t, ok, bad)
	}

	units, _ := UnitsOf(unit.Shape)
	kg := runtime.UnitSpec{Multiplier: units[0].Multiplier, Offset: units[0].Offset}
	g := runtime.UnitSpec{Multiplier: units[1].Multiplier, Offset: units[1].Offset}
	assert.Equal(t, 42000.0, runtime.ConvertUnit(42, kg, g))
}

func TestUnitMemberOrder(t *testing.T) {
	catalog := model.NewCatalog()
	unit := model.NewShape(model.NewShapeId("example.temp", "TempUnit"), model.Enum)
	traits := model.NewTraits()
	traits.Put(model.TraitUnits, model.NewNode(map[string]interface{}{"multiplier": 1, "offset": 273.15, "abbreviations": []interface{}{"C"}}))
	unit.AddMember("CELSIUS", model.NewShapeId(model.PreludeNamespace, "Unit"), traits)
	kelvin := model.NewTraits()
	kelvin.Put("example.ext#units", model.NewNode(1))
	unit.AddMember("KELVIN", model.NewShapeId(model.PreludeNamespace, "Unit"), kelvin)
	temp := model.NewShape(model.NewShapeId("example.temp", "Temperature"), model.Structure)
	required := model.NewTraits()
	required.Put(model.TraitRequired, nil)
	temp.AddMember("unit", unit.Id, required)
	temp.AddMember("degrees", model.NewShapeId(model.PreludeNamespace, "PrimitiveDouble"), nil)
	require.NoError(t, catalog.Add(unit))
	require.NoError(t, catalog.Add(temp))

	s, err := NewStructure(strategy.NewRegistry(catalog, strategy.Options{}), temp)
	require.NoError(t, err)
	methods, err := Default().Contribute(s)
	require.NoError(t, err)
	to := methodNamed(methods, "To")
	require.NotNil(t, to)
	assert.Contains(t, to.Go(), "return NewTemperature(to, float64(x.Unit.Convert(float64(x.Degrees), to)))\n")
	assert.Empty(t, to.Imports)
	parse := methodNamed(methods, "ParseTemperature").Go()
	assert.Contains(t, parse, `"CELSIUS 42"`)
	assert.Contains(t, parse, "runtime.SplitQuantity(input, false)")
	assert.Contains(t, parse, `runtime.ParseFloat[float64]("degrees", num)`)

	units, ok := UnitsOf(unit)
	require.True(t, ok)
	assert.Equal(t, 273.15, units[0].Offset)
}
