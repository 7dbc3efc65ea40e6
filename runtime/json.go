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
package runtime

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// The FromJSON functions convert values of a decoded JSON document (bool, number, string,
// []interface{}, map[string]interface{}) to their target types.

func BoolFromJSON(field string, raw interface{}) (bool, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	return false, parseError(field, "boolean", raw, nil)
}

func numberText(raw interface{}) (string, bool) {
	switch n := raw.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case fmt.Stringer:
		return n.String(), true
	}
	return "", false
}

// NumberFromJSON converts a JSON number to T. Integer targets reject fractions and values out of range.
func NumberFromJSON[T Number](field string, raw interface{}) (T, error) {
	text, ok := numberText(raw)
	if !ok {
		return 0, parseError(field, "number", raw, nil)
	}
	if isFloat[T]() {
		f, err := strconv.ParseFloat(text, bitSize[T]())
		if err != nil {
			return 0, parseError(field, "number", text, unwrapNumError(err))
		}
		return T(f), nil
	}
	n, err := strconv.ParseInt(text, 10, bitSize[T]())
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr == nil && f == math.Trunc(f) && !isOutOfRange(f, bitSize[T]()) {
			return T(int64(f)), nil
		}
		return 0, parseError(field, "integer", text, unwrapNumError(err))
	}
	return T(n), nil
}

func isFloat[T Number]() bool {
	half := 0.5
	return T(half) != 0
}

func isOutOfRange(f float64, bits int) bool {
	limit := math.Ldexp(1, bits-1)
	return f < -limit || f >= limit
}

func StringFromJSON(field string, raw interface{}) (string, error) {
	if s, ok := raw.(string); ok {
		return s, nil
	}
	return "", parseError(field, "string", raw, nil)
}

// TimestampFromJSON accepts a string in the given format, or a number of epoch seconds.
func TimestampFromJSON(field string, raw interface{}, format string) (time.Time, error) {
	if s, ok := raw.(string); ok {
		return ParseTimestamp(field, s, format)
	}
	if text, ok := numberText(raw); ok {
		return ParseTimestamp(field, text, EpochSeconds)
	}
	return time.Time{}, parseError(field, "timestamp", raw, nil)
}

func BlobFromJSON(field string, raw interface{}) ([]byte, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, parseError(field, "blob", raw, nil)
	}
	return ParseBlob(field, s)
}

func BigIntFromJSON(field string, raw interface{}) (*big.Int, error) {
	if s, ok := raw.(string); ok {
		return ParseBigInt(field, s)
	}
	if text, ok := numberText(raw); ok {
		return ParseBigInt(field, text)
	}
	return nil, parseError(field, "bigInteger", raw, nil)
}

func DecimalFromJSON(field string, raw interface{}) (decimal.Decimal, error) {
	if s, ok := raw.(string); ok {
		return ParseDecimal(field, s)
	}
	if text, ok := numberText(raw); ok {
		return ParseDecimal(field, text)
	}
	return decimal.Zero, parseError(field, "bigDecimal", raw, nil)
}

func ObjectFromJSON(field string, raw interface{}) (map[string]interface{}, error) {
	if m, ok := raw.(map[string]interface{}); ok {
		return m, nil
	}
	return nil, parseError(field, "object", raw, nil)
}

// EnumFromJSON converts a JSON string with the generated parse function of an enum type.
func EnumFromJSON[T any](field string, raw interface{}, parse func(field, s string) (T, error)) (T, error) {
	s, ok := raw.(string)
	if !ok {
		var zero T
		return zero, parseError(field, "enum", raw, nil)
	}
	return parse(field, s)
}

// ListFromJSON converts a JSON array element by element.
func ListFromJSON[T any](field string, raw interface{}, conv func(field string, raw interface{}) (T, error)) ([]T, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, parseError(field, "list", raw, nil)
	}
	result := make([]T, 0, len(items))
	for i, item := range items {
		v, err := conv(fmt.Sprintf("%s[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// MapFromJSON converts the values of a JSON object.
func MapFromJSON[T any](field string, raw interface{}, conv func(field string, raw interface{}) (T, error)) (map[string]T, error) {
	obj, err := ObjectFromJSON(field, raw)
	if err != nil {
		return nil, err
	}
	result := make(map[string]T, len(obj))
	for k, item := range obj {
		v, err := conv(field+"."+k, item)
		if err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, nil
}

// The ToJSON functions are the inverses, producing values json.Marshal writes as expected.

func TimestampToJSON(t time.Time, format string) interface{} {
	if format == EpochSeconds {
		return t.Unix()
	}
	return FormatTimestamp(t, format)
}

func BlobToJSON(b []byte) interface{} {
	return base64.StdEncoding.EncodeToString(b)
}

func BigIntToJSON(n *big.Int) interface{} {
	if n == nil {
		return nil
	}
	return n.String()
}

func DecimalToJSON(d decimal.Decimal) interface{} {
	return d.String()
}

func ListToJSON[T any](lst []T, conv func(T) interface{}) []interface{} {
	result := make([]interface{}, 0, len(lst))
	for _, v := range lst {
		result = append(result, conv(v))
	}
	return result
}

func MapToJSON[T any](m map[string]T, conv func(T) interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		result[k] = conv(v)
	}
	return result
}
