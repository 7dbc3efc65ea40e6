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
package expr

import (
	"strings"
)

// Method is a generated function. With a Receiver it is a method of that type, otherwise a
// package level function.
type Method struct {
	Doc      string
	Receiver *Param
	Name     string
	Params   []Param
	Results  []string
	Body     []Stmt
	Imports  []string
}

func (m *Method) Signature() string {
	recv := ""
	if m.Receiver != nil {
		recv = "(" + renderParams([]Param{*m.Receiver}) + ") "
	}
	return "func " + recv + m.Name + "(" + renderParams(m.Params) + ")" + renderResults(m.Results)
}

func (m *Method) Go() string {
	var b strings.Builder
	if m.Doc != "" {
		for _, l := range strings.Split(strings.TrimRight(m.Doc, "\n"), "\n") {
			b.WriteString("// " + l + "\n")
		}
	}
	b.WriteString(m.Signature() + " {\n")
	b.WriteString(Render(m.Body, "\t"))
	b.WriteString("}\n")
	return b.String()
}
