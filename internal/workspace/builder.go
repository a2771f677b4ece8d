package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// binaryExtensions are probed in order when a reference path arrives without
// a recognized extension.
var binaryExtensions = []string{".dll", ".exe"}

// Builder constructs one Project per ProjectContext and memoizes assembly
// metadata loads for its own lifetime. A builder is short-lived (one per
// scaffolding invocation), single-threaded, and must not be shared across
// goroutines: the metadata cache is deliberately unsynchronized.
type Builder struct {
	registrar Registrar
	logger    *zap.SugaredLogger

	// cache maps the normalized, extension-qualified reference path to its
	// loaded metadata. Entries are never evicted within one builder.
	cache map[string]*ReferenceMetadata

	// readFile is swappable so tests can observe load counts.
	readFile func(string) ([]byte, error)
}

// NewBuilder returns a builder that reports registrations to r.
func NewBuilder(r Registrar, logger *zap.SugaredLogger) *Builder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Builder{
		registrar: r,
		logger:    logger,
		cache:     make(map[string]*ReferenceMetadata),
		readFile:  os.ReadFile,
	}
}

// Build registers the project under a fresh identifier, loads every listed
// source file that exists, and resolves every listed assembly reference.
//
// Listed-but-absent source files are silently skipped: the build description
// may name generated-but-not-yet-materialized files. Any other read fault is
// an inconsistency between the build description and the filesystem and
// propagates as a build failure. Missing references are likewise skipped;
// downstream symbol resolution simply cannot see that assembly's types.
func (b *Builder) Build(ctx *ProjectContext) (*Project, error) {
	project := &Project{
		ID:        uuid.New(),
		Context:   ctx,
		Documents: make(map[uuid.UUID]*Document),
	}
	b.registrar.RegisterProject(project.ID, ctx.Name)
	b.logger.Debugw("registered project", "project", ctx.Name, "id", project.ID)

	for _, src := range ctx.SourceFiles {
		resolved := src
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(ctx.RootPath, resolved)
		}

		text, err := b.readFile(resolved)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				b.logger.Debugw("skipping absent source file", "path", resolved)
				continue
			}
			return nil, fmt.Errorf("failed to read source file %s: %w", resolved, err)
		}

		doc := &Document{ID: uuid.New(), Path: resolved, Text: string(text)}
		project.Documents[doc.ID] = doc
		b.registrar.RegisterDocument(project.ID, doc.ID, doc.Path, doc.Text)
	}

	for _, ref := range ctx.References {
		meta, ok := b.ResolveReference(ref)
		if !ok {
			b.logger.Debugw("skipping unresolvable reference", "path", ref)
			continue
		}
		b.registrar.RegisterReference(project.ID, meta)
	}

	return project, nil
}

// ResolveReference normalizes the reference path by appending a recognized
// binary extension (.dll then .exe) when the given path has no extension or
// an unrecognized one, then returns cached metadata for the normalized path
// or loads and caches it. Returns false when no candidate exists on disk.
func (b *Builder) ResolveReference(path string) (*ReferenceMetadata, bool) {
	if path == "" {
		return nil, false
	}

	for _, candidate := range referenceCandidates(path) {
		if meta, ok := b.cache[candidate]; ok {
			return meta, true
		}

		data, err := b.readFile(candidate)
		if err != nil {
			continue
		}

		meta := &ReferenceMetadata{Path: candidate, Data: data}
		b.cache[candidate] = meta
		return meta, true
	}

	return nil, false
}

// referenceCandidates returns the normalized paths to probe, in order.
func referenceCandidates(path string) []string {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range binaryExtensions {
		if ext == known {
			return []string{path}
		}
	}

	candidates := make([]string, 0, len(binaryExtensions))
	for _, known := range binaryExtensions {
		candidates = append(candidates, path+known)
	}
	return candidates
}
