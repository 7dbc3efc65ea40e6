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
)

// Shape is a node in the catalog. Shapes are not modified once the catalog is built.
type Shape struct {
	Id     ShapeId   `json:"id"`
	Kind   ShapeKind `json:"kind"`
	Traits *Traits   `json:"traits,omitempty"`

	//structure, union, enum, intEnum
	members *OrderedMap[*Member]

	//list and set
	Member *Member `json:"member,omitempty"`

	//map
	Key   *Member `json:"key,omitempty"`
	Value *Member `json:"value,omitempty"`

	//operation
	Input  ShapeId   `json:"input,omitempty"`
	Output ShapeId   `json:"output,omitempty"`
	Errors []ShapeId `json:"errors,omitempty"`

	//service and resource
	Version    string    `json:"version,omitempty"`
	Operations []ShapeId `json:"operations,omitempty"`
	Resources  []ShapeId `json:"resources,omitempty"`
}

// Member is a named reference from a container shape to its target.
type Member struct {
	Name      string  `json:"name"`
	Container ShapeId `json:"-"`
	Target    ShapeId `json:"target"`
	Traits    *Traits `json:"traits,omitempty"`
}

func NewShape(id ShapeId, kind ShapeKind) *Shape {
	return &Shape{
		Id:     id,
		Kind:   kind,
		Traits: NewTraits(),
	}
}

// AddMember appends a member, keeping declaration order. Only used while building a catalog.
func (shape *Shape) AddMember(name string, target ShapeId, traits *Traits) *Member {
	if shape.members == nil {
		shape.members = NewOrderedMap[*Member]()
	}
	if traits == nil {
		traits = NewTraits()
	}
	m := &Member{
		Name:      name,
		Container: shape.Id,
		Target:    target,
		Traits:    traits,
	}
	shape.members.Put(name, m)
	return m
}

// Members returns the members in declared order.
func (shape *Shape) Members() []*Member {
	if shape == nil {
		return nil
	}
	return shape.members.Values()
}

func (shape *Shape) GetMember(name string) (*Member, bool) {
	if shape == nil {
		return nil, false
	}
	return shape.members.Lookup(name)
}

func (shape *Shape) MemberCount() int {
	return shape.members.Length()
}

func (shape *Shape) HasTrait(id string) bool {
	return shape.Traits.Has(id)
}

func (shape *Shape) GetTrait(id string) (*Node, bool) {
	return shape.Traits.Get(id)
}

func (shape *Shape) Documentation() string {
	return shape.Traits.GetString(TraitDocumentation)
}

func (shape *Shape) MarshalJSON() ([]byte, error) {
	type shapeAlias Shape
	return json.Marshal(&struct {
		*shapeAlias
		Members *OrderedMap[*Member] `json:"members,omitempty"`
	}{(*shapeAlias)(shape), shape.members})
}

func (shape *Shape) String() string {
	return Pretty(shape)
}

func (m *Member) Id() ShapeId {
	return m.Container.WithMember(m.Name)
}

func (m *Member) HasTrait(id string) bool {
	return m.Traits.Has(id)
}

func (m *Member) GetTrait(id string) (*Node, bool) {
	return m.Traits.Get(id)
}

func (m *Member) IsRequired() bool {
	return m.HasTrait(TraitRequired)
}

// EnumValue returns the wire value for an enum or intEnum member: the enumValue trait if
// present, else the member name.
func (m *Member) EnumValue() *Node {
	if v, ok := m.GetTrait(TraitEnumValue); ok {
		return v
	}
	return NewNode(m.Name)
}
