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
	"fmt"
	"sort"
)

// Catalog is the read-only view of a loaded model. It is built once and then shared.
type Catalog struct {
	shapes *OrderedMap[*Shape]
}

type ShapeNotFoundError struct {
	Id ShapeId
}

func (e *ShapeNotFoundError) Error() string {
	return fmt.Sprintf("shape not found: %s", e.Id)
}

func NewCatalog() *Catalog {
	return &Catalog{
		shapes: NewOrderedMap[*Shape](),
	}
}

// Add puts a shape into the catalog. Used only while loading.
func (c *Catalog) Add(shape *Shape) error {
	if shape.Id.IsPrelude() {
		return fmt.Errorf("cannot redefine prelude shape %s", shape.Id)
	}
	if c.shapes.Has(string(shape.Id)) {
		return fmt.Errorf("duplicate shape in catalog: %s", shape.Id)
	}
	c.shapes.Put(string(shape.Id), shape)
	return nil
}

func (c *Catalog) GetShape(id ShapeId) (*Shape, bool) {
	if id.IsPrelude() {
		s, ok := prelude[id]
		return s, ok
	}
	return c.shapes.Lookup(string(id))
}

func (c *Catalog) ExpectShape(id ShapeId) (*Shape, error) {
	if s, ok := c.GetShape(id); ok {
		return s, nil
	}
	return nil, &ShapeNotFoundError{Id: id}
}

// Target resolves the shape a member refers to.
func (c *Catalog) Target(m *Member) (*Shape, error) {
	s, err := c.ExpectShape(m.Target)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", m.Id(), err)
	}
	return s, nil
}

// Shapes returns the model's own shapes in load order. Prelude shapes are not included.
func (c *Catalog) Shapes() []*Shape {
	return c.shapes.Values()
}

func (c *Catalog) ShapesOfKind(kind ShapeKind) []*Shape {
	var lst []*Shape
	for _, s := range c.shapes.Values() {
		if s.Kind == kind {
			lst = append(lst, s)
		}
	}
	return lst
}

func (c *Catalog) Services() []*Shape {
	return c.ShapesOfKind(Service)
}

func (c *Catalog) Namespaces() []string {
	seen := make(map[string]bool, 0)
	var nss []string
	for _, k := range c.shapes.Keys() {
		ns := ShapeId(k).Namespace()
		if !seen[ns] {
			seen[ns] = true
			nss = append(nss, ns)
		}
	}
	sort.Strings(nss)
	return nss
}

// Operations returns the operations reachable from a service, directly or through its resources,
// in declaration order and without duplicates.
func (c *Catalog) Operations(service ShapeId) ([]*Shape, error) {
	svc, err := c.ExpectShape(service)
	if err != nil {
		return nil, err
	}
	var ops []*Shape
	seen := make(map[ShapeId]bool, 0)
	var walk func(s *Shape) error
	walk = func(s *Shape) error {
		for _, id := range s.Operations {
			if seen[id] {
				continue
			}
			seen[id] = true
			op, err := c.ExpectShape(id)
			if err != nil {
				return err
			}
			if op.Kind != Operation {
				return fmt.Errorf("%s is not an operation: %s", id, op.Kind)
			}
			ops = append(ops, op)
		}
		for _, id := range s.Resources {
			r, err := c.ExpectShape(id)
			if err != nil {
				return err
			}
			if err := walk(r); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(svc); err != nil {
		return nil, err
	}
	return ops, nil
}
