package analysis

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftgen/weft/internal/msbuild"
	"github.com/weftgen/weft/internal/workspace"
)

// This test must run before anything initializes the build system: the
// guard is process-global and one-way.
func TestNewProviderRequiresInitialization(t *testing.T) {
	if msbuild.Initialized() {
		t.Skip("build system already initialized in this process")
	}
	_, err := NewProvider(nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func newTestProvider(t *testing.T) *TreeSitterProvider {
	t.Helper()
	msbuild.Initialize()
	provider, err := NewProvider(nil)
	require.NoError(t, err)
	return provider
}

func register(p *TreeSitterProvider, path, source string) {
	p.RegisterDocument(uuid.New(), uuid.New(), path, source)
}

func TestResolveSymbolBlockScopedNamespace(t *testing.T) {
	provider := newTestProvider(t)
	register(provider, "Models/Product.cs", `
using System;

namespace MyApp.Models
{
    public class Product
    {
        [Key]
        public int Id { get; set; }
        public string Name { get; set; }
        public decimal Price { get; set; }
    }
}`)

	sym, ok := provider.ResolveSymbol("Product")
	require.True(t, ok)
	assert.Equal(t, "Product", sym.Name)
	assert.Equal(t, "MyApp.Models", sym.Namespace)
	assert.Equal(t, "Models/Product.cs", sym.FilePath)

	require.Len(t, sym.Members, 3)
	assert.Equal(t, "Id", sym.Members[0].Name)
	assert.Equal(t, "int", sym.Members[0].Type)
	assert.True(t, sym.Members[0].HasAttribute("Key"))
	assert.Equal(t, "Name", sym.Members[1].Name)
	assert.Equal(t, "string", sym.Members[1].Type)
	assert.False(t, sym.Members[1].HasAttribute("Key"))

	// Fully qualified lookup resolves the same symbol.
	byFQN, ok := provider.ResolveSymbol("MyApp.Models.Product")
	require.True(t, ok)
	assert.Same(t, sym, byFQN)
}

func TestResolveSymbolFileScopedNamespace(t *testing.T) {
	provider := newTestProvider(t)
	register(provider, "Data/ShopContext.cs", `
namespace MyApp.Data;

public class ShopContext : DbContext
{
    public DbSet<Product> Products { get; set; }
}`)

	sym, ok := provider.ResolveSymbol("ShopContext")
	require.True(t, ok)
	assert.Equal(t, "MyApp.Data", sym.Namespace)
	assert.Contains(t, sym.BaseTypes, "DbContext")

	require.Len(t, sym.Members, 1)
	assert.Equal(t, "Products", sym.Members[0].Name)
	assert.Equal(t, "DbSet<Product>", sym.Members[0].Type)
}

func TestResolveSymbolBaseTypes(t *testing.T) {
	provider := newTestProvider(t)
	register(provider, "Models/Product.cs", `
namespace MyApp.Models
{
    public class Product : EntityBase, IAuditable, IValidatable
    {
    }
}`)

	sym, ok := provider.ResolveSymbol("Product")
	require.True(t, ok)
	assert.Equal(t, []string{"EntityBase", "IAuditable", "IValidatable"}, sym.BaseTypes)
}

func TestResolveSymbolGlobalNamespace(t *testing.T) {
	provider := newTestProvider(t)
	register(provider, "Loose.cs", `
public class Loose
{
    public int Id { get; set; }
}`)

	sym, ok := provider.ResolveSymbol("Loose")
	require.True(t, ok)
	assert.Equal(t, GlobalNamespace, sym.Namespace)
}

func TestResolveSymbolFirstDeclarationWins(t *testing.T) {
	provider := newTestProvider(t)
	register(provider, "A.cs", `namespace First { public class Widget {} }`)
	register(provider, "B.cs", `namespace Second { public class Widget {} }`)

	sym, ok := provider.ResolveSymbol("Widget")
	require.True(t, ok)
	assert.Equal(t, "First", sym.Namespace)

	second, ok := provider.ResolveSymbol("Second.Widget")
	require.True(t, ok)
	assert.Equal(t, "Second", second.Namespace)
}

func TestResolveSymbolAbsence(t *testing.T) {
	provider := newTestProvider(t)

	_, ok := provider.ResolveSymbol("Nothing")
	assert.False(t, ok)
	_, ok = provider.ResolveSymbol("")
	assert.False(t, ok)
}

func TestSymbolNames(t *testing.T) {
	provider := newTestProvider(t)
	register(provider, "A.cs", `namespace Shop { public class Product {} public class Order {} }`)

	assert.Equal(t, []string{"Order", "Product"}, provider.SymbolNames())
}

func TestRegistrarBookkeeping(t *testing.T) {
	provider := newTestProvider(t)

	projectID := uuid.New()
	provider.RegisterProject(projectID, "Shop")
	provider.RegisterReference(projectID, &workspace.ReferenceMetadata{Path: "/lib/Acme.Core.dll"})

	require.Len(t, provider.projects, 1)
	assert.Equal(t, "Shop", provider.projects[0].Name)
	assert.Equal(t, []string{"/lib/Acme.Core.dll"}, provider.references)
}
