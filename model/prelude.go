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

var prelude = make(map[ShapeId]*Shape, 0)

func init() {
	simple := map[string]ShapeKind{
		"Boolean":    Boolean,
		"Byte":       Byte,
		"Short":      Short,
		"Integer":    Integer,
		"Long":       Long,
		"Float":      Float,
		"Double":     Double,
		"BigInteger": BigInteger,
		"BigDecimal": BigDecimal,
		"String":     String,
		"Timestamp":  Timestamp,
		"Blob":       Blob,
		"Document":   Document,
	}
	for name, kind := range simple {
		definePrelude(name, kind, nil)
	}
	definePrelude("PrimitiveBoolean", Boolean, NewNode(false))
	for _, name := range []string{"Byte", "Short", "Integer", "Long", "Float", "Double"} {
		definePrelude("Primitive"+name, simple[name], NewNode(0))
	}
	definePrelude("Unit", Structure, nil)
}

func definePrelude(name string, kind ShapeKind, def *Node) {
	s := NewShape(NewShapeId(PreludeNamespace, name), kind)
	if def != nil {
		s.Traits.Put(TraitDefault, def)
	}
	prelude[s.Id] = s
}

// PreludeShapeId maps a bare prelude name (i.e. "String") to its shape id, if there is one.
func PreludeShapeId(name string) (ShapeId, bool) {
	id := NewShapeId(PreludeNamespace, name)
	_, ok := prelude[id]
	return id, ok
}
