// Package scaffold turns resolved symbols (or their absence) into the
// generation-ready descriptor records the template emitter consumes: a
// data-context descriptor, a model-shape descriptor, and a project
// descriptor. All three are created fresh per command invocation, held in
// memory, and discarded once emission finishes.
package scaffold

import (
	"github.com/weftgen/weft/internal/analysis"
)

// DataContextDescriptor describes the data-access aggregation point the
// generated code will either extend or create. Exactly one of "refers to an
// existing class" / "describes a class to be created" is active, determined
// by whether an existing-class symbol was supplied.
type DataContextDescriptor struct {
	// IsDataAccess is always true: this tool only targets data-access
	// scenarios.
	IsDataAccess bool

	// Provider identifies the database provider the context targets.
	Provider string

	// ClassName is the simple context class name.
	ClassName string

	// ClassPath is the declaring file for an existing context, or the
	// computed new-file path for one to be created.
	ClassPath string

	// Namespace is the context namespace. Empty string means "no
	// namespace"; the global-namespace marker never appears here.
	Namespace string

	// NewMemberDeclaration is the entity-set property declaration to add,
	// populated only when no existing class was found and a model shape
	// was supplied.
	NewMemberDeclaration string

	// EntitySetName is the context member exposing the model collection.
	EntitySetName string
}

// MemberDescriptor is one member of a model shape.
type MemberDescriptor struct {
	Name string
	Type string
}

// ModelShapeDescriptor is the structural contract of a domain entity type
// that drives generated CRUD code.
type ModelShapeDescriptor struct {
	TypeName  string
	Namespace string

	// FullName is Namespace + "." + TypeName, or just TypeName when the
	// namespace is empty. Always derived, never set independently.
	FullName string

	PrimaryKeyName          string
	PrimaryKeyShortTypeName string
	PrimaryKeyTypeName      string

	Members []MemberDescriptor
}

// ProjectDescriptor is the read-only project snapshot taken once per
// scaffolding invocation.
type ProjectDescriptor struct {
	// Provider is the open analysis-provider handle for the project.
	Provider analysis.Provider

	// RootPath is the project root directory.
	RootPath string

	// LowestTargetFramework is the lowest declared target framework
	// moniker.
	LowestTargetFramework string

	// Capabilities is the set of declared project capabilities.
	Capabilities map[string]bool
}

// HasCapability reports whether the project declares the named capability.
func (d *ProjectDescriptor) HasCapability(name string) bool {
	return d.Capabilities[name]
}

// qualifiedName applies the full-name invariant shared by the descriptors.
func qualifiedName(namespace, typeName string) string {
	if namespace == "" || namespace == analysis.GlobalNamespace {
		return typeName
	}
	return namespace + "." + typeName
}
