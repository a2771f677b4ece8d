// Package convention encodes the data-access mapping conventions the
// scaffolder understands: how a primary key is identified on an entity type
// and how an entity-set member on a data context is named.
package convention

import (
	"strings"

	"github.com/weftgen/weft/internal/analysis"
	wstrings "github.com/weftgen/weft/internal/util/strings"
)

// keyAttribute marks a member as the primary key explicitly.
const keyAttribute = "Key"

// Members returns the declared members of the symbol that participate in
// the data-access mapping: every readable/writable property.
func Members(sym *analysis.Symbol) []analysis.Member {
	if sym == nil {
		return nil
	}
	return sym.Members
}

// PrimaryKey identifies the primary-key member of an entity symbol. The
// convention, in precedence order: a [Key] attribute, a member named "Id",
// a member named "<TypeName>Id". Name matches are case-insensitive.
func PrimaryKey(sym *analysis.Symbol) (analysis.Member, bool) {
	if sym == nil {
		return analysis.Member{}, false
	}

	for _, m := range sym.Members {
		if m.HasAttribute(keyAttribute) {
			return m, true
		}
	}
	for _, m := range sym.Members {
		if strings.EqualFold(m.Name, "Id") {
			return m, true
		}
	}
	for _, m := range sym.Members {
		if strings.EqualFold(m.Name, sym.Name+"Id") {
			return m, true
		}
	}
	return analysis.Member{}, false
}

// EntitySetName returns the name of the data-context member exposing the
// model type's collection. When the existing context already declares a
// matching entity-set member its name is reused; otherwise the model type
// name is pluralized.
func EntitySetName(contextSym *analysis.Symbol, modelTypeName string) string {
	if modelTypeName == "" {
		return ""
	}

	if contextSym != nil {
		for _, m := range contextSym.Members {
			if entitySetElement(m.Type) == modelTypeName {
				return m.Name
			}
		}
	}
	return wstrings.Pluralize(modelTypeName)
}

// entitySetElement extracts T from a DbSet<T> member type, tolerating a
// namespace-qualified set type. Returns "" for anything else.
func entitySetElement(memberType string) string {
	open := strings.Index(memberType, "<")
	end := strings.LastIndex(memberType, ">")
	if open < 0 || end < open {
		return ""
	}

	setType := memberType[:open]
	if last := strings.LastIndex(setType, "."); last >= 0 {
		setType = setType[last+1:]
	}
	if setType != "DbSet" {
		return ""
	}

	element := memberType[open+1 : end]
	if last := strings.LastIndex(element, "."); last >= 0 {
		element = element[last+1:]
	}
	return element
}
