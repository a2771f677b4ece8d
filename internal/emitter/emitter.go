// Package emitter renders the descriptor records into C# source files on
// disk. It is the in-repo consumer of the scaffolding pipeline's output;
// the pipeline itself never depends on it.
package emitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/weftgen/weft/internal/cli/ui"
	"github.com/weftgen/weft/internal/pathmap"
	"github.com/weftgen/weft/internal/scaffold"
)

// ErrExists is reported when a target file exists and overwrite is off.
// Callers can catch it to offer an interactive overwrite.
var ErrExists = errors.New("file already exists")

// Emitter writes generated files, refusing to clobber existing ones unless
// overwrite is set.
type Emitter struct {
	reporter  *ui.Reporter
	overwrite bool
}

// New creates an emitter reporting progress to reporter.
func New(reporter *ui.Reporter, overwrite bool) *Emitter {
	return &Emitter{reporter: reporter, overwrite: overwrite}
}

// EmitDataContext writes the new data-context class file the descriptor
// describes. It must only be called for descriptors created for the
// "no existing class" branch; an existing context needs no file.
func (e *Emitter) EmitDataContext(desc *scaffold.DataContextDescriptor) (string, error) {
	return e.render("context", dataContextTemplate, desc, desc.ClassPath)
}

// EmitModelClass writes a model class file for a shape that has no source
// declaration yet (a database-introspected shape).
func (e *Emitter) EmitModelClass(dir string, model *scaffold.ModelShapeDescriptor) (string, error) {
	path := pathmap.UniquePath(filepath.Join(dir, model.TypeName+".cs"))
	return e.render("model", modelClassTemplate, model, path)
}

// controllerModel is the template input for CRUD controllers.
type controllerModel struct {
	Namespace string
	Context   *scaffold.DataContextDescriptor
	Model     *scaffold.ModelShapeDescriptor
	EntitySet string
	KeyParam  string
}

// EmitController writes a CRUD controller for the model against the data
// context, under <projectRoot>/Controllers.
func (e *Emitter) EmitController(projectRoot string, ctx *scaffold.DataContextDescriptor, model *scaffold.ModelShapeDescriptor) (string, error) {
	dir := filepath.Join(projectRoot, "Controllers")
	path := filepath.Join(dir, model.TypeName+"Controller.cs")

	entitySet := ctx.EntitySetName
	if entitySet == "" {
		entitySet = model.TypeName + "s"
	}

	keyParam := "id"
	if model.PrimaryKeyName != "" {
		keyParam = strings.ToLower(model.PrimaryKeyName[:1]) + model.PrimaryKeyName[1:]
	}

	input := &controllerModel{
		Namespace: controllerNamespace(projectRoot),
		Context:   ctx,
		Model:     model,
		EntitySet: entitySet,
		KeyParam:  keyParam,
	}

	return e.render("controller", controllerTemplate, input, path)
}

// controllerNamespace derives the namespace for generated controllers from
// the project directory name.
func controllerNamespace(projectRoot string) string {
	base := filepath.Base(projectRoot)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base + ".Controllers"
}

// render executes the template and writes the result, enforcing the
// overwrite policy.
func (e *Emitter) render(name, text string, data any, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no target path computed for %s", name)
	}

	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}

	if _, err := os.Stat(path); err == nil && !e.overwrite {
		return "", fmt.Errorf("file %s already exists: %w", path, ErrExists)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	e.reporter.Successf("created %s", path)
	return path, nil
}
