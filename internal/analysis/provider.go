// Package analysis exposes the code-analysis capability the scaffolding
// pipeline resolves symbols through: project, document, and reference
// registration plus symbol lookup. The concrete implementation is an
// adapter around a syntax-level C# indexer; the rest of the pipeline treats
// it as an oracle and never sees its internals.
package analysis

import (
	"errors"

	"github.com/google/uuid"

	"github.com/weftgen/weft/internal/workspace"
)

// GlobalNamespace is the textual marker meaning "this type has no declared
// namespace". Descriptors never carry it: the extractor rewrites it to the
// empty string before anything downstream sees it.
const GlobalNamespace = "<global namespace>"

// ErrNotInitialized is returned when a provider handle is opened before the
// build system has been initialized. The two subsystems conflict when
// brought up out of order, so this fails fast instead of limping along.
var ErrNotInitialized = errors.New("analysis: build system not initialized, call msbuild.Initialize first")

// Member is one declared member of a symbol: a property or field with its
// declared type and any attributes.
type Member struct {
	Name       string
	Type       string
	Attributes []string
}

// HasAttribute reports whether the member carries the named attribute.
func (m Member) HasAttribute(name string) bool {
	for _, attr := range m.Attributes {
		if attr == name {
			return true
		}
	}
	return false
}

// Symbol is a resolved reference to a declared type.
type Symbol struct {
	// Name is the simple type name.
	Name string

	// Namespace is the containing namespace, or GlobalNamespace when the
	// type declares none.
	Namespace string

	// FilePath is the source file the declaration came from.
	FilePath string

	// BaseTypes lists declared base type names, in declaration order.
	BaseTypes []string

	// Members lists declared members in declaration order.
	Members []Member
}

// Provider is the capability surface the scaffolding pipeline needs from a
// code-analysis engine. Registration is append-only and write-once per
// project; ResolveSymbol queries whatever has been registered so far.
type Provider interface {
	workspace.Registrar

	// ResolveSymbol looks a type up by simple or fully qualified name.
	// Absence is a legitimate "not yet created" state, not an error.
	ResolveSymbol(name string) (*Symbol, bool)

	// SymbolNames lists every indexed simple type name, sorted.
	SymbolNames() []string
}

var _ Provider = (*TreeSitterProvider)(nil)

// projectRegistration records one registered project for bookkeeping.
type projectRegistration struct {
	ID   uuid.UUID
	Name string
}
