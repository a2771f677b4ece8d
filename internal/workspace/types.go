// Package workspace builds an in-memory, symbol-resolvable representation
// of a target project from its raw build description: the source file list
// and the resolved assembly reference list. The representation is what the
// analysis provider resolves symbols against.
package workspace

import "github.com/google/uuid"

// ProjectContext is the raw build description handed in by the build-system
// collaborator. It is immutable for the lifetime of one build.
type ProjectContext struct {
	// RootPath is the absolute path of the project directory.
	RootPath string

	// Name is the project display name.
	Name string

	// AssemblyName is the output assembly name declared by the project.
	AssemblyName string

	// RootNamespace is the declared root namespace, falling back to Name
	// when the project declares none.
	RootNamespace string

	// SourceFiles lists compilable source paths, absolute or relative to
	// RootPath, in build-description order.
	SourceFiles []string

	// References lists resolved assembly reference paths in
	// build-description order.
	References []string
}

// Document is one registered source file.
type Document struct {
	ID   uuid.UUID
	Path string
	Text string
}

// Project is the queryable representation of one ProjectContext.
type Project struct {
	ID      uuid.UUID
	Context *ProjectContext

	// Documents maps document identifier to the loaded source file. Every
	// identifier here belongs to exactly this project.
	Documents map[uuid.UUID]*Document
}

// ReferenceMetadata is the loaded metadata for one assembly reference. The
// blob is opaque to this package; downstream symbol resolution decides what
// to make of it.
type ReferenceMetadata struct {
	// Path is the fully resolved, extension-qualified path that was
	// actually opened.
	Path string

	// Data is the raw portable-executable image.
	Data []byte
}

// Registrar receives append-only registration notifications as the builder
// populates a project. Nothing in this package reads them back.
type Registrar interface {
	RegisterProject(projectID uuid.UUID, name string)
	RegisterDocument(projectID, documentID uuid.UUID, path, text string)
	RegisterReference(projectID uuid.UUID, meta *ReferenceMetadata)
}
