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
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnitSpec relates a unit to its base unit: base = value*Multiplier + Offset.
type UnitSpec struct {
	Multiplier float64
	Offset     float64
}

// ConvertUnit converts value from one unit to another of the same dimension.
func ConvertUnit(value float64, from, to UnitSpec) float64 {
	if from == to {
		return value
	}
	base := value*from.Multiplier + from.Offset
	return (base - to.Offset) / to.Multiplier
}

// FuzzyKey normalizes a unit token: case folded, accents removed, and '-' treated as '_'.
func FuzzyKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = strings.TrimSpace(s)
	}
	return strings.ReplaceAll(cases.Fold().String(stripped), "-", "_")
}

// FuzzyMatch looks token up in options, comparing keys with FuzzyKey.
func FuzzyMatch[T any](token string, options map[string]T) (T, bool) {
	want := FuzzyKey(token)
	for k, v := range options {
		if FuzzyKey(k) == want {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// SplitQuantity splits "42 kg" style input into its number and unit tokens. With numberFirst
// false the unit is expected first ("kg 42"). Anything but exactly two whitespace separated
// tokens is rejected.
func SplitQuantity(input string, numberFirst bool) (number string, unit string, ok bool) {
	parts := strings.Fields(input)
	if len(parts) != 2 {
		return "", "", false
	}
	if numberFirst {
		return parts[0], parts[1], true
	}
	return parts[1], parts[0], true
}

// NumberFormatter formats the numeric part of a quantity.
type NumberFormatter interface {
	Format(value float64) string
}

type NumberFormatterFunc func(value float64) string

func (f NumberFormatterFunc) Format(value float64) string {
	return f(value)
}
