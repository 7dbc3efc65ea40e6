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
package strategy

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/boynton/smithygen/model"
)

// LiteralFor renders a default value node as Go literal text for the given shape. Numbers are
// narrowed to the width of the shape's kind, truncating toward zero.
func LiteralFor(shape *model.Shape, node *model.Node) (string, error) {
	switch node.Kind() {
	case model.NullNode:
		return "nil", nil
	case model.BooleanNode:
		return strconv.FormatBool(node.AsBool()), nil
	case model.StringNode:
		return strconv.Quote(node.AsString()), nil
	case model.NumberNode:
		num, _ := node.AsNumber()
		return numberLiteral(shape, num)
	}
	return "", &UnsupportedDefaultError{Shape: shape.Id, Kind: shape.Kind, Node: node.Kind()}
}

func numberLiteral(shape *model.Shape, num json.Number) (string, error) {
	switch shape.Kind {
	case model.Integer, model.IntEnum:
		return strconv.FormatInt(int64(int32(truncate(num))), 10), nil
	case model.Long:
		return strconv.FormatInt(truncate(num), 10), nil
	case model.Byte:
		return strconv.FormatInt(int64(int8(truncate(num))), 10), nil
	case model.Short:
		return strconv.FormatInt(int64(int16(truncate(num))), 10), nil
	case model.Float:
		f, err := strconv.ParseFloat(num.String(), 32)
		if err != nil && !isRangeError(err) {
			return "", &InvalidDefaultTarget{Shape: shape.Id, Kind: shape.Kind, Reason: err.Error()}
		}
		if math.IsInf(f, 0) {
			return "", &InvalidDefaultTarget{Shape: shape.Id, Kind: shape.Kind, Reason: "number default " + num.String() + " out of range"}
		}
		return strconv.FormatFloat(float64(float32(f)), 'g', -1, 32), nil
	case model.Double:
		f, err := strconv.ParseFloat(num.String(), 64)
		if err != nil && !isRangeError(err) {
			return "", &InvalidDefaultTarget{Shape: shape.Id, Kind: shape.Kind, Reason: err.Error()}
		}
		if math.IsInf(f, 0) {
			return "", &InvalidDefaultTarget{Shape: shape.Id, Kind: shape.Kind, Reason: "number default " + num.String() + " out of range"}
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case model.Boolean:
		f, _ := strconv.ParseFloat(num.String(), 64)
		return strconv.FormatBool(f != 0), nil
	}
	return "", &InvalidDefaultTarget{Shape: shape.Id, Kind: shape.Kind, Reason: "number default " + num.String()}
}

// truncate converts a number to int64, dropping any fraction and saturating at the int64 range.
func truncate(num json.Number) int64 {
	if n, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil && !isRangeError(err) {
		return 0
	}
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func isRangeError(err error) bool {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err == strconv.ErrRange
	}
	return false
}
