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

// Package binding resolves how each member of an operation input is extracted from an HTTP
// request, validated and converted, producing Declarations in member order.
package binding

import (
	"fmt"

	"github.com/boynton/smithygen/model"
)

// OriginType is the part of a request a member is bound from.
type OriginType int

const (
	NoOrigin OriginType = iota
	UriPath
	UriQuery
	HttpHeader
	HttpPayload
	Body
)

var namesOriginType = []string{
	NoOrigin:    "none",
	UriPath:     "path",
	UriQuery:    "query",
	HttpHeader:  "header",
	HttpPayload: "payload",
	Body:        "body",
}

func (o OriginType) String() string {
	if int(o) < len(namesOriginType) {
		return namesOriginType[o]
	}
	return fmt.Sprintf("OriginType(%d)", int(o))
}

// runtimeConst names the runtime constant passed to runtime.MissingField.
func (o OriginType) runtimeConst() string {
	switch o {
	case UriPath:
		return "OriginPath"
	case UriQuery:
		return "OriginQuery"
	case HttpHeader:
		return "OriginHeader"
	case HttpPayload:
		return "OriginPayload"
	}
	return "OriginBody"
}

// IsString reports whether values from this origin arrive as strings.
func (o OriginType) IsString() bool {
	return o == UriPath || o == UriQuery || o == HttpHeader
}

// OriginOf classifies a member by its binding traits: payload, then label, query and header.
func OriginOf(m *model.Member) OriginType {
	switch {
	case m.HasTrait(model.TraitHttpPayload):
		return HttpPayload
	case m.HasTrait(model.TraitHttpLabel):
		return UriPath
	case m.HasTrait(model.TraitHttpQuery):
		return UriQuery
	case m.HasTrait(model.TraitHttpHeader):
		return HttpHeader
	}
	return NoOrigin
}

// Mode is how a declaration treats an absent value.
type Mode int

const (
	// WithDefault substitutes the default value.
	WithDefault Mode = iota
	// OrThrow fails with a missing field error.
	OrThrow
	// Nullable leaves the variable nil.
	Nullable
)

func (m Mode) String() string {
	switch m {
	case WithDefault:
		return "with-default"
	case OrThrow:
		return "or-throw"
	}
	return "nullable"
}

// ModeOf decides the declaration mode of a member. A default on the member, or else on its
// target, takes precedence over the required trait. An explicit null default is no default.
func ModeOf(m *model.Member, target *model.Shape) (Mode, *model.Node) {
	def, ok := m.GetTrait(model.TraitDefault)
	if !ok {
		def, ok = target.GetTrait(model.TraitDefault)
	}
	if ok && def.Kind() != model.NullNode {
		return WithDefault, def
	}
	if m.IsRequired() {
		return OrThrow, nil
	}
	return Nullable, nil
}

// IsNonNullable reports whether a member is declared with a value type, that is whether it
// always has a value once bound.
func IsNonNullable(m *model.Member, target *model.Shape) bool {
	mode, _ := ModeOf(m, target)
	return mode != Nullable
}
