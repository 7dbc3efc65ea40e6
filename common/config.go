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
package common

import (
	"os"
	"strings"

	"github.com/boynton/data"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// LoadConfig reads a YAML (or JSON) generator config file. Nested sections are flattened into
// dotted keys, so that
//
//	golang:
//	  inlinePrimitives: true
//
// is read with conf.GetBool("golang.inlinePrimitives").
func LoadConfig(path string) (*data.Object, error) {
	conf := data.NewObject()
	if path == "" {
		return conf, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config")
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %s", path)
	}
	flatten(conf, "", raw)
	return conf, nil
}

func flatten(conf *data.Object, prefix string, m map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			flatten(conf, key, sub)
		} else {
			conf.Put(key, v)
		}
	}
}

// ApplyParams puts "key=value" (or bare "key", meaning true) parameters into the config.
func ApplyParams(conf *data.Object, params []string) {
	for _, a := range params {
		kv := strings.SplitN(a, "=", 2)
		if len(kv) == 1 {
			conf.Put(a, true)
			continue
		}
		switch kv[1] {
		case "true":
			conf.Put(kv[0], true)
		case "false":
			conf.Put(kv[0], false)
		default:
			conf.Put(kv[0], kv[1])
		}
	}
}
