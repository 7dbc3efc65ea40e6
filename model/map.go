package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedMap is a string-keyed map that remembers insertion order, including the order keys
// appear in when decoded from JSON.
type OrderedMap[V any] struct {
	keys     []string
	bindings map[string]V
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{
		bindings: make(map[string]V, 0),
	}
}

func (s *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	keys, err := JsonKeysInOrder(data)
	if err != nil {
		return err
	}
	str := NewOrderedMap[V]()
	str.keys = keys
	err = json.Unmarshal(data, &str.bindings)
	if err != nil {
		return err
	}
	*s = *str
	return nil
}

func (s OrderedMap[V]) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString("{")
	for i, key := range s.keys {
		value := s.bindings[key]
		if i > 0 {
			buffer.WriteString(",")
		}
		jsonValue, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buffer.WriteString(fmt.Sprintf("%q:%s", key, string(jsonValue)))
	}
	buffer.WriteString("}")
	return buffer.Bytes(), nil
}

// JsonKeysInOrder returns the keys of a JSON object in document order.
func JsonKeysInOrder(data []byte) ([]string, error) {
	var end = fmt.Errorf("invalid end of array or object")

	var skipValue func(d *json.Decoder) error
	skipValue = func(d *json.Decoder) error {
		t, err := d.Token()
		if err != nil {
			return err
		}
		switch t {
		case json.Delim('['), json.Delim('{'):
			for {
				if err := skipValue(d); err != nil {
					if err == end {
						break
					}
					return err
				}
			}
		case json.Delim(']'), json.Delim('}'):
			return end
		}
		return nil
	}
	d := json.NewDecoder(bytes.NewReader(data))
	t, err := d.Token()
	if err != nil {
		return nil, err
	}
	if t != json.Delim('{') {
		return nil, fmt.Errorf("expected start of object")
	}
	var keys []string
	for {
		t, err := d.Token()
		if err != nil {
			return nil, err
		}
		if t == json.Delim('}') {
			return keys, nil
		}
		keys = append(keys, t.(string))
		if err := skipValue(d); err != nil {
			return nil, err
		}
	}
}

func (s *OrderedMap[V]) Has(key string) bool {
	if s != nil {
		if _, ok := s.bindings[key]; ok {
			return true
		}
	}
	return false
}

func (s *OrderedMap[V]) Get(key string) V {
	var zero V
	if s == nil {
		return zero
	}
	return s.bindings[key]
}

func (s *OrderedMap[V]) Lookup(key string) (V, bool) {
	var zero V
	if s == nil {
		return zero, false
	}
	v, ok := s.bindings[key]
	return v, ok
}

func (s *OrderedMap[V]) Put(key string, val V) {
	if s.bindings == nil {
		s.bindings = make(map[string]V, 0)
	}
	if _, ok := s.bindings[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.bindings[key] = val
}

func (s *OrderedMap[V]) Delete(key string) {
	if s != nil {
		if _, ok := s.bindings[key]; ok {
			var tmp []string
			for _, k := range s.keys {
				if k != key {
					tmp = append(tmp, k)
				}
			}
			s.keys = tmp
			delete(s.bindings, key)
		}
	}
}

func (s *OrderedMap[V]) Keys() []string {
	if s == nil {
		return nil
	}
	return s.keys
}

func (s *OrderedMap[V]) Values() []V {
	if s == nil {
		return nil
	}
	vals := make([]V, 0, len(s.keys))
	for _, k := range s.keys {
		vals = append(vals, s.bindings[k])
	}
	return vals
}

func (s *OrderedMap[V]) Length() int {
	if s == nil || s.keys == nil {
		return 0
	}
	return len(s.keys)
}
