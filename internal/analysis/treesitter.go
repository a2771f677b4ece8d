package analysis

import (
	"context"
	"sort"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"go.uber.org/zap"

	"github.com/weftgen/weft/internal/msbuild"
	"github.com/weftgen/weft/internal/workspace"
)

// TreeSitterProvider implements Provider with a Tree-sitter C# grammar. It
// indexes class declarations, their namespaces, base types, and property
// members from every registered document. Single-threaded, like the rest of
// the pipeline.
type TreeSitterProvider struct {
	parser *sitter.Parser
	logger *zap.SugaredLogger

	projects   []projectRegistration
	references []string

	// symbols maps fully qualified name to symbol; names maps a simple
	// name to the fully qualified names declaring it, in registration
	// order.
	symbols map[string]*Symbol
	names   map[string][]string
}

// NewProvider opens an analysis-provider handle. The build system must be
// initialized first; opening a handle before that fails fast with
// ErrNotInitialized.
func NewProvider(logger *zap.SugaredLogger) (*TreeSitterProvider, error) {
	if !msbuild.Initialized() {
		return nil, ErrNotInitialized
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())

	return &TreeSitterProvider{
		parser:  parser,
		logger:  logger,
		symbols: make(map[string]*Symbol),
		names:   make(map[string][]string),
	}, nil
}

// RegisterProject records a project registration.
func (p *TreeSitterProvider) RegisterProject(projectID uuid.UUID, name string) {
	p.projects = append(p.projects, projectRegistration{ID: projectID, Name: name})
}

// RegisterDocument parses the document and indexes every class declaration
// it contains. A document that fails to parse contributes no symbols; in a
// scaffolding workflow a broken file is a "nothing to resolve there" state.
func (p *TreeSitterProvider) RegisterDocument(_, _ uuid.UUID, path, text string) {
	content := []byte(text)

	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		p.logger.Debugw("document parse failed", "path", path, "error", err)
		return
	}
	defer tree.Close()

	p.indexNode(tree.RootNode(), "", path, content)
}

// RegisterReference records a resolved assembly reference path.
func (p *TreeSitterProvider) RegisterReference(_ uuid.UUID, meta *workspace.ReferenceMetadata) {
	p.references = append(p.references, meta.Path)
}

// ResolveSymbol looks a type up by fully qualified name first, then by
// simple name. When several types share a simple name, the first registered
// declaration wins.
func (p *TreeSitterProvider) ResolveSymbol(name string) (*Symbol, bool) {
	if name == "" {
		return nil, false
	}

	if sym, ok := p.symbols[name]; ok {
		return sym, true
	}
	if fqns, ok := p.names[name]; ok && len(fqns) > 0 {
		return p.symbols[fqns[0]], true
	}
	return nil, false
}

// SymbolNames returns every indexed simple type name, sorted.
func (p *TreeSitterProvider) SymbolNames() []string {
	names := make([]string, 0, len(p.names))
	for name := range p.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// indexNode walks the syntax tree, tracking the namespace in effect. A
// file-scoped namespace declaration covers every declaration after it, so
// it updates the namespace for the remaining siblings as well as its own
// children (grammar versions differ on where those declarations attach).
func (p *TreeSitterProvider) indexNode(node *sitter.Node, ns, path string, content []byte) {
	current := ns
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "file_scoped_namespace_declaration":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				current = joinNamespace(ns, nodeText(nameNode, content))
			}
			p.indexNode(child, current, path, content)

		case "namespace_declaration":
			inner := current
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				inner = joinNamespace(current, nodeText(nameNode, content))
			}
			p.indexNode(child, inner, path, content)

		case "class_declaration":
			p.indexClass(child, current, path, content)
			// nested classes share the outer namespace
			p.indexNode(child, current, path, content)

		default:
			p.indexNode(child, current, path, content)
		}
	}
}

// indexClass extracts one class declaration into a Symbol.
func (p *TreeSitterProvider) indexClass(node *sitter.Node, ns, path string, content []byte) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	sym := &Symbol{
		Name:      nodeText(nameNode, content),
		Namespace: GlobalNamespace,
		FilePath:  path,
	}
	if ns != "" {
		sym.Namespace = ns
	}

	// The grammar attaches the base list as an unnamed-field child, so a
	// field lookup cannot find it; scan for the base_list node instead.
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "base_list" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			sym.BaseTypes = append(sym.BaseTypes, nodeText(child.NamedChild(j), content))
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			decl := body.NamedChild(i)
			if decl.Type() != "property_declaration" {
				continue
			}
			member, ok := propertyMember(decl, content)
			if !ok {
				continue
			}
			sym.Members = append(sym.Members, member)
		}
	}

	fqn := sym.Name
	if sym.Namespace != GlobalNamespace {
		fqn = sym.Namespace + "." + sym.Name
	}

	// first declaration wins
	if _, exists := p.symbols[fqn]; exists {
		return
	}
	p.symbols[fqn] = sym
	p.names[sym.Name] = append(p.names[sym.Name], fqn)
	p.logger.Debugw("indexed symbol", "symbol", fqn, "members", len(sym.Members))
}

// propertyMember converts a property_declaration node into a Member.
func propertyMember(node *sitter.Node, content []byte) (Member, bool) {
	typeNode := node.ChildByFieldName("type")
	nameNode := node.ChildByFieldName("name")
	if typeNode == nil || nameNode == nil {
		return Member{}, false
	}

	member := Member{
		Name: nodeText(nameNode, content),
		Type: nodeText(typeNode, content),
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "attribute_list" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			attr := child.NamedChild(j)
			if attr.Type() != "attribute" {
				continue
			}
			if attrName := attr.ChildByFieldName("name"); attrName != nil {
				member.Attributes = append(member.Attributes, nodeText(attrName, content))
			}
		}
	}

	return member, true
}

func nodeText(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

func joinNamespace(outer, inner string) string {
	if outer == "" {
		return inner
	}
	return outer + "." + inner
}
