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

// Package contrib holds structure contributors: generators that recognize a pattern in a
// finished member list and add methods to the generated type.
package contrib

import (
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/binding"
	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/expr"
	"github.com/boynton/smithygen/model"
	"github.com/boynton/smithygen/strategy"
)

// Member is a finished member of a generated type.
type Member struct {
	Member   *model.Member
	Target   *model.Shape
	Field    string
	Type     string
	Strategy strategy.TypeStrategy
}

// Structure is a shape with members (a structure, union or enum) after its member types are resolved.
type Structure struct {
	Shape    *model.Shape
	TypeName string
	Members  []*Member
}

// NewStructure resolves the members of shape in declared order.
func NewStructure(registry *strategy.Registry, shape *model.Shape) (*Structure, error) {
	s := &Structure{Shape: shape, TypeName: strategy.TypeName(shape)}
	if shape.Kind == model.Enum || shape.Kind == model.IntEnum {
		for _, m := range shape.Members() {
			s.Members = append(s.Members, &Member{Member: m, Field: strategy.ConstantName(shape, m)})
		}
		return s, nil
	}
	for _, m := range shape.Members() {
		target, err := registry.Catalog().Target(m)
		if err != nil {
			return nil, err
		}
		ts, err := registry.StrategyForMember(m)
		if err != nil {
			return nil, errors.Wrapf(err, "member %s", m.Id())
		}
		s.Members = append(s.Members, &Member{
			Member:   m,
			Target:   target,
			Field:    common.GoName(m.Name),
			Type:     ts.TargetType(binding.IsNonNullable(m, target)),
			Strategy: ts,
		})
	}
	return s, nil
}

// Contributor adds methods to structures it applies to. Applies must have no side effects.
type Contributor struct {
	Name       string
	Applies    func(s *Structure) bool
	Contribute func(s *Structure) ([]*expr.Method, error)
}

// Registry evaluates contributors in the order they were registered.
type Registry struct {
	contributors []Contributor
}

func NewRegistry(contributors ...Contributor) *Registry {
	return &Registry{contributors: contributors}
}

// Default has the unit contributors.
func Default() *Registry {
	return NewRegistry(UnitEnum, UnitConversion)
}

func (r *Registry) Names() []string {
	var names []string
	for _, c := range r.contributors {
		names = append(names, c.Name)
	}
	return names
}

// Contribute collects the methods of every contributor that applies to s.
func (r *Registry) Contribute(s *Structure) ([]*expr.Method, error) {
	var methods []*expr.Method
	for _, c := range r.contributors {
		if !c.Applies(s) {
			continue
		}
		lst, err := c.Contribute(s)
		if err != nil {
			return nil, errors.Wrapf(err, "%s contributor for %s", c.Name, s.Shape.Id)
		}
		common.Debug("contributed", "contributor", c.Name, "shape", s.Shape.Id, "methods", len(lst))
		methods = append(methods, lst...)
	}
	return methods, nil
}
