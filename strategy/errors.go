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
	"fmt"

	"github.com/boynton/smithygen/model"
)

// UnsupportedShapeKindError means no strategy exists for the shape's kind.
type UnsupportedShapeKindError struct {
	Shape model.ShapeId
	Kind  model.ShapeKind
}

func (e *UnsupportedShapeKindError) Error() string {
	return fmt.Sprintf("no type strategy for %s %s", e.Kind, e.Shape)
}

// UnsupportedDefaultError means a default value was given for a shape that cannot have a literal
// default, or the default value is an object or array.
type UnsupportedDefaultError struct {
	Shape model.ShapeId
	Kind  model.ShapeKind
	Node  model.NodeKind
}

func (e *UnsupportedDefaultError) Error() string {
	return fmt.Sprintf("default values of type %s are not supported for %s %s", e.Node, e.Kind, e.Shape)
}

// InvalidDefaultTarget means a default value cannot be converted to the shape's kind.
type InvalidDefaultTarget struct {
	Shape  model.ShapeId
	Kind   model.ShapeKind
	Reason string
}

func (e *InvalidDefaultTarget) Error() string {
	return fmt.Sprintf("invalid default for %s %s: %s", e.Kind, e.Shape, e.Reason)
}
