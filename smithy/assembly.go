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
package smithy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/boynton/sadl"
	sadlsmithy "github.com/boynton/sadl/smithy"
	idl "github.com/boynton/smithy"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var ImportFileExtensions = map[string][]string{
	".smithy": []string{"smithy"},
	".json":   []string{"smithy"},
	".sadl":   []string{"sadl"},
}

func expandPaths(paths []string) ([]string, error) {
	var result []string
	for _, path := range paths {
		ext := filepath.Ext(path)
		if _, ok := ImportFileExtensions[ext]; ok {
			result = append(result, path)
			continue
		}
		fi, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read model path")
		}
		if fi.IsDir() {
			err = filepath.Walk(path, func(wpath string, info os.FileInfo, errIncoming error) error {
				if errIncoming != nil {
					return errIncoming
				}
				if _, ok := ImportFileExtensions[filepath.Ext(wpath)]; ok {
					result = append(result, wpath)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// Assemble loads and merges every model file named by paths (directories are walked), then
// expands mixins and resolves apply statements.
func Assemble(paths []string) (*AST, error) {
	flatPathList, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(flatPathList) == 0 {
		return nil, fmt.Errorf("no model files found in %v", paths)
	}
	assembly := &AST{}
	for _, path := range flatPathList {
		var ast *AST
		switch filepath.Ext(path) {
		case ".smithy":
			ast, err = Parse(path)
		case ".json":
			ast, err = LoadAST(path)
		case ".sadl":
			ast, err = ImportSADL(path)
		default:
			err = fmt.Errorf("parse for file type %q not implemented", filepath.Ext(path))
		}
		if err != nil {
			return nil, err
		}
		if err = assembly.Merge(ast); err != nil {
			return nil, err
		}
	}
	if err = assembly.ExpandMixins(); err != nil {
		return nil, err
	}
	if err = assembly.ApplyAll(); err != nil {
		return nil, err
	}
	return assembly, nil
}

// Parse reads a Smithy IDL file.
func Parse(path string) (*AST, error) {
	ast, err := idl.Parse(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse Smithy IDL file %s", path)
	}
	return reencode(ast, path)
}

// ImportSADL reads a SADL file and converts it to the Smithy AST.
func ImportSADL(path string) (*AST, error) {
	schema, err := sadl.ParseSadlFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse SADL file %s", path)
	}
	ns := schema.Namespace
	if ns == "" {
		ns = UnspecifiedNamespace
	}
	ast, err := sadlsmithy.FromSADL(schema, ns)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot convert SADL file %s", path)
	}
	return reencode(ast, path)
}

const UnspecifiedNamespace = "example"

// reencode round trips a parsed AST through JSON so that every source format ends up in the
// same ordered representation.
func reencode(src interface{}, path string) (*AST, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot encode AST for %s", path)
	}
	ast, err := DecodeAST(data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode AST for %s", path)
	}
	return ast, nil
}
