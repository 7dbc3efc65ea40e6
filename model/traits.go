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
package model

import (
	"strings"
)

const (
	TraitRequired        = "smithy.api#required"
	TraitDefault         = "smithy.api#default"
	TraitHttp            = "smithy.api#http"
	TraitHttpLabel       = "smithy.api#httpLabel"
	TraitHttpQuery       = "smithy.api#httpQuery"
	TraitHttpHeader      = "smithy.api#httpHeader"
	TraitHttpPayload     = "smithy.api#httpPayload"
	TraitUniqueItems     = "smithy.api#uniqueItems"
	TraitEnum            = "smithy.api#enum"
	TraitEnumValue       = "smithy.api#enumValue"
	TraitDocumentation   = "smithy.api#documentation"
	TraitTimestampFormat = "smithy.api#timestampFormat"
	TraitAuthenticated   = "smithy.ext#authenticated"
	TraitMixin           = "smithy.api#mixin"
	TraitTrait           = "smithy.api#trait"
	TraitUnits           = "smithy.ext#units"
)

// Traits is the ordered set of traits applied to a shape or member.
type Traits struct {
	OrderedMap[*Node]
}

func NewTraits() *Traits {
	return &Traits{OrderedMap: *NewOrderedMap[*Node]()}
}

// Get returns the trait value and whether the trait is present. An annotation trait with
// no value (i.e. @required) is present with an empty object node.
func (t *Traits) Get(id string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.OrderedMap.Lookup(id)
	if !ok {
		return nil, false
	}
	if v == nil {
		if id == TraitDefault {
			//an explicit null default
			return NewNode(nil), true
		}
		v = NewNode(map[string]interface{}{})
	}
	return v, true
}

func (t *Traits) Has(id string) bool {
	_, ok := t.Get(id)
	return ok
}

func (t *Traits) GetString(id string) string {
	v, _ := t.Get(id)
	return v.AsString()
}

func (t *Traits) Put(id string, v *Node) {
	t.OrderedMap.Put(id, v)
}

func (t *Traits) Keys() []string {
	if t == nil {
		return nil
	}
	return t.OrderedMap.Keys()
}

// Units returns the units trait. Any trait named "units" is accepted, regardless of namespace.
func (t *Traits) Units() (*Node, bool) {
	if v, ok := t.Get(TraitUnits); ok {
		return v, true
	}
	for _, k := range t.Keys() {
		if strings.HasSuffix(k, "#units") {
			return t.Get(k)
		}
	}
	return nil, false
}
