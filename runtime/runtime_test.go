package runtime

import (
	"errors"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraction(t *testing.T) {
	r := httptest.NewRequest("GET", "/widgets/abc%20123/parts/a/b?verbose=true&tag=x&tag=y", nil)
	r.Header.Add("X-Trace", "t1")
	r.Header.Add("X-Trace", "t2")

	id, ok := PathParam(r, 1)
	require.True(t, ok)
	assert.Equal(t, "abc 123", id)
	_, ok = PathParam(r, 9)
	assert.False(t, ok)
	rest, ok := GreedyPathParam(r, 3)
	require.True(t, ok)
	assert.Equal(t, "a/b", rest)

	v, ok := QueryParam(r, "verbose")
	require.True(t, ok)
	assert.Equal(t, "true", v)
	tags, _ := QueryParam(r, "tag")
	assert.Equal(t, "x,y", tags)
	_, ok = QueryParam(r, "missing")
	assert.False(t, ok)

	trace, ok := HeaderParam(r, "x-trace")
	require.True(t, ok)
	assert.Equal(t, "t1,t2", trace)
}

func TestMissingAndMalformedAreDistinct(t *testing.T) {
	missing := MissingField("id", OriginPath)
	_, malformed := ParseInt[int32]("limit", "ten")

	assert.True(t, IsMissingField(missing))
	assert.False(t, IsParseError(missing))
	assert.True(t, IsParseError(malformed))
	assert.False(t, IsMissingField(malformed))

	var pe *ParseError
	require.True(t, errors.As(malformed, &pe))
	assert.Equal(t, "limit", pe.Field)
	assert.Equal(t, "ten", pe.Value)

	w := httptest.NewRecorder()
	WriteError(w, missing)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"missing field"`)
	assert.Contains(t, w.Body.String(), `"field":"id"`)

	w = httptest.NewRecorder()
	WriteError(w, malformed)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"malformed value"`)

	w = httptest.NewRecorder()
	WriteError(w, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestParseFunctions(t *testing.T) {
	b, err := ParseBool("verbose", "true")
	require.NoError(t, err)
	assert.True(t, b)
	_, err = ParseBool("verbose", "yes please")
	assert.True(t, IsParseError(err))

	_, err = ParseInt[int8]("small", "300")
	assert.True(t, IsParseError(err), "out of range for int8")
	n, err := ParseInt[int64]("big", "9007199254740993")
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), n)

	f, err := ParseFloat[float32]("ratio", "1.5")
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	d, err := ParseDecimal("price", "12.50")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())
	_, err = ParseBigInt("n", "12x")
	assert.True(t, IsParseError(err))

	ts, err := ParseTimestamp("at", "2022-03-04T05:06:07Z", DateTime)
	require.NoError(t, err)
	assert.Equal(t, 2022, ts.Year())
	hts, err := ParseTimestamp("at", "Fri, 04 Mar 2022 05:06:07 GMT", HttpDate)
	require.NoError(t, err)
	assert.True(t, ts.Equal(hts))
	ets, err := ParseTimestamp("at", strconv.FormatInt(ts.Unix(), 10), EpochSeconds)
	require.NoError(t, err)
	assert.True(t, ts.Equal(ets))
	_, err = ParseTimestamp("at", "yesterday", DateTime)
	assert.True(t, IsParseError(err))

	blob, err := ParseBlob("data", "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(blob))
}

func TestSplitting(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "a"}, SplitList("a, b,a"))
	assert.Equal(t, []string{"a", "b"}, SplitSet("a,b,a,b"))
	assert.Equal(t, []string{}, SplitList(""))

	nums, err := ConvertEach("ids", SplitList("1,2,3"), ParseInt[int32])
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, nums)
	_, err = ConvertEach("ids", SplitList("1,x"), ParseInt[int32])
	assert.True(t, IsParseError(err))

	unique, err := ConvertSet("ids", SplitList("1,01,2,1"), ParseInt[int32])
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, unique, "duplicates are compared after conversion")

	header := "Tue, 15 Nov 1994 08:12:31 GMT, Wed, 16 Nov 1994 09:00:00 GMT"
	assert.Equal(t, []string{"Tue, 15 Nov 1994 08:12:31 GMT", "Wed, 16 Nov 1994 09:00:00 GMT"}, SplitHttpDates(header))
	dates, err := ConvertEach("dates", SplitHttpDates(header), func(field, s string) (time.Time, error) {
		return ParseTimestamp(field, s, HttpDate)
	})
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, 16, dates[1].Day())
	assert.Equal(t, []string{}, SplitHttpDates(""))

	instants, err := ConvertSet("at", SplitList("2020-01-01T00:00:00Z,2020-01-01T00:00:00+00:00"), func(field, s string) (time.Time, error) {
		return ParseTimestamp(field, s, DateTime)
	})
	require.NoError(t, err)
	assert.Len(t, instants, 1)
}

func TestJSONConversions(t *testing.T) {
	n, err := NumberFromJSON[int32]("count", float64(42))
	require.NoError(t, err)
	assert.Equal(t, int32(42), n)
	_, err = NumberFromJSON[int32]("count", 1.5)
	assert.True(t, IsParseError(err))
	_, err = NumberFromJSON[int8]("count", float64(1000))
	assert.True(t, IsParseError(err))
	f, err := NumberFromJSON[float64]("ratio", 0.25)
	require.NoError(t, err)
	assert.Equal(t, 0.25, f)

	type Ratio float64
	r, err := NumberFromJSON[Ratio]("ratio", 0.5)
	require.NoError(t, err)
	assert.Equal(t, Ratio(0.5), r)

	lst, err := ListFromJSON("tags", []interface{}{"a", "b"}, StringFromJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lst)
	_, err = ListFromJSON("tags", []interface{}{"a", 1.0}, StringFromJSON)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "tags[1]", pe.Field)

	m, err := MapFromJSON("counts", map[string]interface{}{"a": 1.0}, NumberFromJSON[int64])
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 1}, m)

	ts := time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC)
	back, err := TimestampFromJSON("at", TimestampToJSON(ts, DateTime), DateTime)
	require.NoError(t, err)
	assert.True(t, ts.Equal(back))
	assert.Equal(t, []interface{}{"aGk="}, ListToJSON([][]byte{[]byte("hi")}, func(b []byte) interface{} { return BlobToJSON(b) }))
}

func TestBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"w","count":9007199254740993}`))
	doc, err := BodyDocument(r)
	require.NoError(t, err)
	raw, ok := BodyField(doc, "count")
	require.True(t, ok)
	n, err := NumberFromJSON[int64]("count", raw)
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), n)
	_, ok = BodyField(doc, "missing")
	assert.False(t, ok)

	r = httptest.NewRequest("POST", "/", strings.NewReader(``))
	var v struct{ Name string }
	present, err := DecodeBody(r, "widget", &v)
	require.NoError(t, err)
	assert.False(t, present)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
	_, err = DecodeBody(r, "widget", &v)
	assert.True(t, IsParseError(err))
}

func TestUnits(t *testing.T) {
	kg := UnitSpec{Multiplier: 1000}
	g := UnitSpec{Multiplier: 1}
	assert.Equal(t, 2500.0, ConvertUnit(2.5, kg, g))
	assert.Equal(t, 2.5, ConvertUnit(2500, g, kg))

	celsius := UnitSpec{Multiplier: 1, Offset: 273.15}
	kelvin := UnitSpec{Multiplier: 1}
	assert.InDelta(t, 373.15, ConvertUnit(100, celsius, kelvin), 1e-9)

	options := map[string]string{"KILOGRAMS": "kg", "kilograms": "kg", "kg": "kg", "METRIC_TONS": "t"}
	for _, token := range []string{"kilograms", "Kilograms", "KG", "metric-tons", "Metric_Tons"} {
		_, ok := FuzzyMatch(token, options)
		assert.True(t, ok, token)
	}
	_, ok := FuzzyMatch("pounds", options)
	assert.False(t, ok)

	num, unit, ok := SplitQuantity("  42   kg ", true)
	require.True(t, ok)
	assert.Equal(t, "42", num)
	assert.Equal(t, "kg", unit)
	num, unit, ok = SplitQuantity("kg 42", false)
	require.True(t, ok)
	assert.Equal(t, "42", num)
	assert.Equal(t, "kg", unit)
	for _, bad := range []string{"", "42", "42 kg extra"} {
		_, _, ok = SplitQuantity(bad, true)
		assert.False(t, ok, bad)
	}

	f := NumberFormatterFunc(func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) })
	assert.Equal(t, "1.50", f.Format(1.5))
}

func TestIntegerRoundTripProperty(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		v := int32(rnd.Int63n(math.MaxInt32))
		if rnd.Intn(2) == 0 {
			v = -v
		}
		got, err := ParseInt[int32]("n", strconv.FormatInt(int64(v), 10))
		require.NoError(t, err, "seed=%d", seed)
		assert.Equal(t, v, got, "seed=%d", seed)
	}
}
