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
	"strings"
)

// HttpBinding is the value of the http trait on an operation.
type HttpBinding struct {
	Method string     `json:"method"`
	Uri    UriPattern `json:"uri"`
	Code   int        `json:"code,omitempty"`
}

// UriPattern is a parsed http trait uri, i.e. "/widgets/{id}?format=json".
type UriPattern struct {
	Raw      string        `json:"raw"`
	Segments []*UriSegment `json:"segments"`
	Query    string        `json:"query,omitempty"`
}

type UriSegment struct {
	Content string `json:"content"`
	Label   bool   `json:"label,omitempty"`
	Greedy  bool   `json:"greedy,omitempty"`
}

// HttpBindingOf returns the http trait of an operation, if it has one.
func HttpBindingOf(op *Shape) (*HttpBinding, bool, error) {
	v, ok := op.GetTrait(TraitHttp)
	if !ok {
		return nil, false, nil
	}
	uri, err := ParseUriPattern(v.GetString("uri"))
	if err != nil {
		return nil, true, fmt.Errorf("%s: %v", op.Id, err)
	}
	b := &HttpBinding{
		Method: strings.ToUpper(v.GetString("method")),
		Uri:    *uri,
	}
	if code, ok := v.Get("code").AsFloat64(); ok {
		b.Code = int(code)
	}
	return b, true, nil
}

func ParseUriPattern(raw string) (*UriPattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return nil, fmt.Errorf("uri pattern must start with '/': %q", raw)
	}
	p := &UriPattern{Raw: raw}
	path := raw
	if n := strings.Index(path, "?"); n >= 0 {
		p.Query = path[n+1:]
		path = path[:n]
	}
	for _, seg := range strings.Split(path[1:], "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			name := seg[1 : len(seg)-1]
			s := &UriSegment{Content: name, Label: true}
			if strings.HasSuffix(name, "+") {
				s.Content = name[:len(name)-1]
				s.Greedy = true
			}
			if s.Content == "" {
				return nil, fmt.Errorf("empty label in uri pattern %q", raw)
			}
			p.Segments = append(p.Segments, s)
		} else {
			p.Segments = append(p.Segments, &UriSegment{Content: seg})
		}
	}
	return p, nil
}

// LabelIndex returns the position of the first label segment named name, or -1.
func (p *UriPattern) LabelIndex(name string) int {
	for i, seg := range p.Segments {
		if seg.Label && seg.Content == name {
			return i
		}
	}
	return -1
}

func (p *UriPattern) Labels() []string {
	var labels []string
	for _, seg := range p.Segments {
		if seg.Label {
			labels = append(labels, seg.Content)
		}
	}
	return labels
}

// Path returns the pattern without its literal query suffix.
func (p *UriPattern) Path() string {
	if p.Query == "" {
		return p.Raw
	}
	return p.Raw[:strings.Index(p.Raw, "?")]
}

func (p *UriPattern) String() string {
	return p.Raw
}
