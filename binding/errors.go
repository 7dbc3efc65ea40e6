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
package binding

import (
	"fmt"

	"github.com/boynton/smithygen/model"
)

// UnresolvedPathLabelError means a label bound member names no label of the operation's uri.
type UnresolvedPathLabelError struct {
	Member model.ShapeId
	Uri    string
}

func (e *UnresolvedPathLabelError) Error() string {
	return fmt.Sprintf("member %s is bound to a label that is not in uri %q", e.Member, e.Uri)
}

// UnsupportedBindingError means a member's target cannot be converted from its origin.
type UnsupportedBindingError struct {
	Member model.ShapeId
	Kind   model.ShapeKind
	Origin OriginType
}

func (e *UnsupportedBindingError) Error() string {
	return fmt.Sprintf("member %s: %s values cannot be bound from the %s", e.Member, e.Kind, e.Origin)
}
