/*
Copyright 2021 Lee R. Boynton

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
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/boynton/data"
	"github.com/pkg/errors"

	"github.com/boynton/smithygen/model"
)

type Generator interface {
	Generate(catalog *model.Catalog, config *data.Object) error
}

type BaseGenerator struct {
	Catalog        *model.Catalog
	Config         *data.Object
	OutDir         string
	ForceOverwrite bool
	Sort           bool
	buf            bytes.Buffer
	writer         *bufio.Writer
	Err            error
}

func (gen *BaseGenerator) Configure(catalog *model.Catalog, conf *data.Object) error {
	gen.Catalog = catalog
	gen.Config = conf
	gen.OutDir = conf.GetString("outdir")
	gen.Sort = conf.GetBool("sort")
	gen.ForceOverwrite = conf.GetBool("force")
	if gen.OutDir != "" {
		if err := os.MkdirAll(gen.OutDir, 0755); err != nil {
			return errors.Wrap(err, "cannot create output directory")
		}
	}
	return nil
}

// ShapesOfKind returns the catalog's shapes of the given kinds, in model order or sorted
// by name if the "sort" option is set. Mixins are skipped.
func (gen *BaseGenerator) ShapesOfKind(kinds ...model.ShapeKind) []*model.Shape {
	var r []*model.Shape
	for _, s := range gen.Catalog.Shapes() {
		if s.HasTrait(model.TraitMixin) {
			continue
		}
		for _, k := range kinds {
			if s.Kind == k {
				r = append(r, s)
				break
			}
		}
	}
	if gen.Sort {
		sort.SliceStable(r, func(i, j int) bool {
			return r[i].Id.Name() < r[j].Id.Name()
		})
	}
	return r
}

func (gen *BaseGenerator) Begin() {
	gen.buf.Reset()
	gen.writer = bufio.NewWriter(&gen.buf)
}

func (gen *BaseGenerator) End() string {
	gen.writer.Flush()
	return gen.buf.String()
}

func (gen *BaseGenerator) Emit(s string) {
	gen.writer.WriteString(s)
}

func (gen *BaseGenerator) Emitf(format string, args ...interface{}) {
	gen.writer.WriteString(fmt.Sprintf(format, args...))
}

func (gen *BaseGenerator) FileExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}

func (gen *BaseGenerator) FileName(ns string, suffix string) string {
	return strings.ReplaceAll(ns, ".", "_") + suffix
}

func (gen *BaseGenerator) WriteFile(path string, content string) error {
	if gen.Err != nil {
		return gen.Err
	}
	if !gen.ForceOverwrite && gen.FileExists(path) {
		return fmt.Errorf("[%s already exists, not overwriting]", path)
	}
	f, err := os.Create(path)
	if err != nil {
		gen.Err = err
		return err
	}
	defer f.Close()
	writer := bufio.NewWriter(f)
	_, gen.Err = writer.WriteString(content)
	writer.Flush()
	return gen.Err
}

// Write sends text to the named file in OutDir, or to stdout if there is no OutDir.
func (gen *BaseGenerator) Write(text string, filename string, separator string) error {
	if gen.Err != nil {
		return gen.Err
	}
	if gen.OutDir == "" {
		if separator != "" {
			fmt.Print(separator)
		}
		fmt.Print(text)
		return nil
	}
	fpath := filepath.Join(gen.OutDir, filename)
	gen.Err = gen.WriteFile(fpath, text)
	return gen.Err
}
