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
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

type NodeKind int

const (
	NullNode NodeKind = iota
	BooleanNode
	NumberNode
	StringNode
	ArrayNode
	ObjectNode
)

var namesNodeKind = []string{
	NullNode:    "null",
	BooleanNode: "boolean",
	NumberNode:  "number",
	StringNode:  "string",
	ArrayNode:   "array",
	ObjectNode:  "object",
}

func (k NodeKind) String() string {
	return namesNodeKind[k]
}

// Node is a trait or default value from the model. Numbers are kept as json.Number so that
// long values survive without a float64 round trip.
type Node struct {
	value interface{}
}

func NewNode(v interface{}) *Node {
	switch n := v.(type) {
	case *Node:
		return n
	case int:
		return &Node{value: json.Number(fmt.Sprint(n))}
	case int32:
		return &Node{value: json.Number(fmt.Sprint(n))}
	case int64:
		return &Node{value: json.Number(fmt.Sprint(n))}
	case float64:
		return &Node{value: json.Number(fmt.Sprint(n))}
	}
	return &Node{value: v}
}

func (node Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(node.value)
}

func (node *Node) UnmarshalJSON(b []byte) error {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	node.value = v
	return nil
}

func (node *Node) Kind() NodeKind {
	if node == nil {
		return NullNode
	}
	switch node.value.(type) {
	case bool:
		return BooleanNode
	case json.Number:
		return NumberNode
	case string:
		return StringNode
	case []interface{}:
		return ArrayNode
	case map[string]interface{}:
		return ObjectNode
	}
	return NullNode
}

func (node *Node) RawValue() interface{} {
	if node == nil {
		return nil
	}
	return node.value
}

func (node *Node) String() string {
	if node == nil {
		return "null"
	}
	return fmt.Sprint(node.value)
}

func (node *Node) AsString() string {
	if node == nil {
		return ""
	}
	if s, ok := node.value.(string); ok {
		return s
	}
	return ""
}

func (node *Node) AsBool() bool {
	if node == nil {
		return false
	}
	if b, ok := node.value.(bool); ok {
		return b
	}
	return node.value != nil
}

// AsNumber returns the number text, or false if the node is not a number.
func (node *Node) AsNumber() (json.Number, bool) {
	if node == nil {
		return "", false
	}
	n, ok := node.value.(json.Number)
	return n, ok
}

func (node *Node) AsFloat64() (float64, bool) {
	n, ok := node.AsNumber()
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

func (node *Node) Get(key string) *Node {
	if node == nil {
		return nil
	}
	if m, ok := node.value.(map[string]interface{}); ok {
		if v, ok := m[key]; ok {
			return NewNode(v)
		}
	}
	return nil
}

func (node *Node) GetString(key string) string {
	return node.Get(key).AsString()
}

// Keys returns the keys of an object node, sorted.
func (node *Node) Keys() []string {
	var keys []string
	if node == nil {
		return keys
	}
	if m, ok := node.value.(map[string]interface{}); ok {
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	return keys
}

func (node *Node) Items() []*Node {
	if node == nil {
		return nil
	}
	var items []*Node
	if a, ok := node.value.([]interface{}); ok {
		for _, v := range a {
			items = append(items, NewNode(v))
		}
	}
	return items
}

func (node *Node) StringItems() []string {
	var lst []string
	for _, item := range node.Items() {
		if s, ok := item.value.(string); ok {
			lst = append(lst, s)
		}
	}
	return lst
}
