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
	"encoding/json"
	"fmt"
	"strings"
)

// ShapeKind - the closed set of shape kinds a catalog can hold.
type ShapeKind int

const (
	_ ShapeKind = iota
	Boolean
	Byte
	Short
	Integer
	Long
	Float
	Double
	BigInteger
	BigDecimal
	String
	Timestamp
	Blob
	Enum
	IntEnum
	List
	Set
	Map
	Structure
	Union
	Document
	Operation
	Resource
	Service
)

var namesShapeKind = []string{
	Boolean:    "boolean",
	Byte:       "byte",
	Short:      "short",
	Integer:    "integer",
	Long:       "long",
	Float:      "float",
	Double:     "double",
	BigInteger: "bigInteger",
	BigDecimal: "bigDecimal",
	String:     "string",
	Timestamp:  "timestamp",
	Blob:       "blob",
	Enum:       "enum",
	IntEnum:    "intEnum",
	List:       "list",
	Set:        "set",
	Map:        "map",
	Structure:  "structure",
	Union:      "union",
	Document:   "document",
	Operation:  "operation",
	Resource:   "resource",
	Service:    "service",
}

func (e ShapeKind) String() string {
	if e <= 0 || int(e) >= len(namesShapeKind) {
		return fmt.Sprintf("ShapeKind(%d)", int(e))
	}
	return namesShapeKind[e]
}

func (e ShapeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *ShapeKind) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if err == nil {
		if k, ok := KindOf(s); ok {
			*e = k
			return nil
		}
		err = fmt.Errorf("Bad enum symbol for type ShapeKind: %s", s)
	}
	return err
}

// KindOf maps a Smithy type name ("bigDecimal", "intEnum", ...) to its ShapeKind.
func KindOf(name string) (ShapeKind, bool) {
	for v, s := range namesShapeKind {
		if v > 0 && s == name {
			return ShapeKind(v), true
		}
	}
	return 0, false
}

func (e ShapeKind) IsNumeric() bool {
	switch e {
	case Byte, Short, Integer, Long, Float, Double, BigInteger, BigDecimal:
		return true
	}
	return false
}

func (e ShapeKind) IsCollection() bool {
	return e == List || e == Set
}

// ShapeId - a namespace-qualified shape name, i.e. "example.weather#City", optionally
// followed by "$member".
type ShapeId string

const PreludeNamespace = "smithy.api"

func NewShapeId(ns, name string) ShapeId {
	return ShapeId(ns + "#" + name)
}

func (id ShapeId) Namespace() string {
	s := string(id)
	if n := strings.Index(s, "#"); n >= 0 {
		return s[:n]
	}
	return ""
}

func (id ShapeId) Name() string {
	s := string(id)
	if n := strings.Index(s, "#"); n >= 0 {
		s = s[n+1:]
	}
	if n := strings.Index(s, "$"); n >= 0 {
		s = s[:n]
	}
	return s
}

func (id ShapeId) MemberName() string {
	s := string(id)
	if n := strings.Index(s, "$"); n >= 0 {
		return s[n+1:]
	}
	return ""
}

func (id ShapeId) WithMember(name string) ShapeId {
	return ShapeId(string(id) + "$" + name)
}

func (id ShapeId) IsPrelude() bool {
	return id.Namespace() == PreludeNamespace
}

func (id ShapeId) String() string {
	return string(id)
}
