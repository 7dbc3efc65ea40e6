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
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/shopspring/decimal"
)

// ListDelimiter separates the elements of a list or set bound from a query or header value.
const ListDelimiter = ","

// Timestamp formats, as named by the timestampFormat trait.
const (
	DateTime     = "date-time"
	HttpDate     = "http-date"
	EpochSeconds = "epoch-seconds"
)

type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64
}

type Float interface {
	~float32 | ~float64
}

type Number interface {
	Integer | Float
}

func bitSize[T Number]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

func ParseBool(field, s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, parseError(field, "boolean", s, nil)
	}
	return b, nil
}

// ParseInt parses a base 10 integer that must fit T.
func ParseInt[T Integer](field, s string) (T, error) {
	n, err := strconv.ParseInt(s, 10, bitSize[T]())
	if err != nil {
		return 0, parseError(field, "integer", s, unwrapNumError(err))
	}
	return T(n), nil
}

func ParseFloat[T Float](field, s string) (T, error) {
	f, err := strconv.ParseFloat(s, bitSize[T]())
	if err != nil {
		return 0, parseError(field, "number", s, unwrapNumError(err))
	}
	return T(f), nil
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

func ParseBigInt(field, s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, parseError(field, "bigInteger", s, nil)
	}
	return n, nil
}

func ParseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, parseError(field, "bigDecimal", s, err)
	}
	return d, nil
}

// ParseTimestamp parses s in the given format. An empty format means date-time.
func ParseTimestamp(field, s, format string) (time.Time, error) {
	var t time.Time
	var err error
	switch format {
	case HttpDate:
		t, err = http.ParseTime(s)
	case EpochSeconds:
		var f float64
		f, err = strconv.ParseFloat(s, 64)
		if err == nil {
			sec := int64(f)
			t = time.Unix(sec, int64((f-float64(sec))*1e9)).UTC()
		}
	case DateTime, "":
		t, err = time.Parse(time.RFC3339Nano, s)
	default:
		err = fmt.Errorf("unknown timestamp format %q", format)
	}
	if err != nil {
		return time.Time{}, parseError(field, "timestamp", s, nil)
	}
	return t, nil
}

// MustParseTimestamp parses a date-time constant, panicking if it is malformed. Generated code
// only uses it for default values that were checked at generation time.
func MustParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return t
}

func FormatTimestamp(t time.Time, format string) string {
	switch format {
	case HttpDate:
		return t.UTC().Format(http.TimeFormat)
	case EpochSeconds:
		return strconv.FormatInt(t.Unix(), 10)
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func ParseBlob(field, s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, parseError(field, "blob", s, err)
	}
	return b, nil
}

// SplitList splits a list value on ListDelimiter. Elements are trimmed, empty input is an
// empty list.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ListDelimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// SplitSet is SplitList with duplicates removed, keeping the first occurrence.
func SplitSet(s string) []string {
	parts := SplitList(s)
	seen := make(map[string]bool, len(parts))
	result := parts[:0]
	for _, p := range parts {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}

// SplitHttpDates splits a list of http-date values. Each date carries a comma after the
// day name, so elements are rejoined in pairs.
func SplitHttpDates(s string) []string {
	parts := SplitList(s)
	result := make([]string, 0, (len(parts)+1)/2)
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+", "+parts[i+1])
		} else {
			result = append(result, parts[i])
		}
	}
	return result
}

// ConvertEach converts every element of a split list value.
func ConvertEach[T any](field string, parts []string, conv func(field, s string) (T, error)) ([]T, error) {
	result := make([]T, 0, len(parts))
	for _, p := range parts {
		v, err := conv(field, p)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// ConvertSet is ConvertEach with duplicate values removed, keeping the first occurrence.
// Values are compared after conversion, so "1" and "01" are the same integer.
func ConvertSet[T any](field string, parts []string, conv func(field, s string) (T, error)) ([]T, error) {
	values, err := ConvertEach(field, parts, conv)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(values))
	result := values[:0]
	for _, v := range values {
		k := setKey(v)
		if !seen[k] {
			seen[k] = true
			result = append(result, v)
		}
	}
	return result, nil
}

func setKey(v interface{}) string {
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case []byte:
		return string(x)
	}
	return fmt.Sprint(v)
}
