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
package runtime

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

func pathSegments(r *http.Request) []string {
	p := strings.TrimPrefix(r.URL.EscapedPath(), "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// PathParam returns the path segment at index, unescaped. The index is the position of the
// label in the operation's uri pattern.
func PathParam(r *http.Request, index int) (string, bool) {
	segs := pathSegments(r)
	if index < 0 || index >= len(segs) || segs[index] == "" {
		return "", false
	}
	s, err := url.PathUnescape(segs[index])
	if err != nil {
		return segs[index], true
	}
	return s, true
}

// GreedyPathParam returns the rest of the path starting at index, for labels like {key+}.
func GreedyPathParam(r *http.Request, index int) (string, bool) {
	segs := pathSegments(r)
	if index < 0 || index >= len(segs) {
		return "", false
	}
	rest := strings.Join(segs[index:], "/")
	if rest == "" {
		return "", false
	}
	s, err := url.PathUnescape(rest)
	if err != nil {
		return rest, true
	}
	return s, true
}

// QueryParam returns the query parameter named key. Repeated parameters are joined with
// ListDelimiter, so that "?a=1&a=2" and "?a=1,2" bind the same way.
func QueryParam(r *http.Request, key string) (string, bool) {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ListDelimiter), true
}

// HeaderParam returns the named header, repeated headers joined with ListDelimiter.
func HeaderParam(r *http.Request, key string) (string, bool) {
	values := r.Header.Values(key)
	if len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ListDelimiter), true
}

// ReadBody reads the whole request body. The body can be read again afterwards.
func ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(b))
	return b, nil
}

// DecodeBody decodes the JSON request body into v. It reports false if the body is empty.
func DecodeBody(r *http.Request, field string, v interface{}) (bool, error) {
	b, err := ReadBody(r)
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return true, parseError(field, "json", truncate(string(b)), err)
	}
	return true, nil
}

// BodyValue decodes the JSON request body bound to a payload member. An empty body or JSON
// null is absent.
func BodyValue(r *http.Request, field string) (interface{}, bool, error) {
	var v interface{}
	present, err := DecodeBody(r, field, &v)
	if err != nil || !present || v == nil {
		return nil, false, err
	}
	return v, true, nil
}

// BodyBytes returns the request body bound to a blob or string payload. An empty body is absent.
func BodyBytes(r *http.Request) ([]byte, bool, error) {
	b, err := ReadBody(r)
	if err != nil {
		return nil, false, err
	}
	return b, len(b) > 0, nil
}

// BodyDocument decodes the request body as a JSON object, for members bound to the body
// individually. An empty body is an empty document.
func BodyDocument(r *http.Request) (map[string]interface{}, error) {
	doc := make(map[string]interface{}, 0)
	if _, err := DecodeBody(r, "body", &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// BodyField returns the named value of a body document. JSON null counts as absent.
func BodyField(doc map[string]interface{}, name string) (interface{}, bool) {
	v, ok := doc[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func truncate(s string) string {
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
