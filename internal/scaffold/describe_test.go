package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftgen/weft/internal/analysis"
)

func TestDescribeDataContextExistingSymbol(t *testing.T) {
	existing := &analysis.Symbol{
		Name:      "ShopContext",
		Namespace: "MyApp.Data",
		FilePath:  "/src/Shop/Data/ShopContext.cs",
		Members: []analysis.Member{
			{Name: "Inventory", Type: "DbSet<Product>"},
		},
	}
	model := &ModelShapeDescriptor{TypeName: "Product", FullName: "MyApp.Models.Product"}

	desc := DescribeDataContext("/src/Shop", existing, "ignored", "sqlite", model)

	assert.True(t, desc.IsDataAccess)
	assert.Equal(t, "sqlite", desc.Provider)
	assert.Equal(t, "ShopContext", desc.ClassName)
	assert.Equal(t, "/src/Shop/Data/ShopContext.cs", desc.ClassPath)
	assert.Equal(t, "MyApp.Data", desc.Namespace)
	assert.Equal(t, "Inventory", desc.EntitySetName, "existing entity-set member is reused")
	assert.Empty(t, desc.NewMemberDeclaration, "existing contexts get no new-class snippet")
}

func TestDescribeDataContextExistingSymbolNoModel(t *testing.T) {
	existing := &analysis.Symbol{Name: "ShopContext", Namespace: "MyApp.Data"}

	desc := DescribeDataContext("/src/Shop", existing, "", "postgres", nil)

	assert.Empty(t, desc.EntitySetName)
	assert.Empty(t, desc.NewMemberDeclaration)
}

func TestDescribeDataContextGlobalNamespaceRewrite(t *testing.T) {
	existing := &analysis.Symbol{
		Name:      "ShopContext",
		Namespace: analysis.GlobalNamespace,
	}

	desc := DescribeDataContext("/src/Shop", existing, "", "sqlite", nil)

	assert.Empty(t, desc.Namespace, "global-namespace marker must be rewritten to empty")
}

func TestDescribeDataContextNewClass(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Shop")
	require.NoError(t, os.MkdirAll(root, 0755))

	model := &ModelShapeDescriptor{TypeName: "Product", FullName: "MyApp.Models.Product"}

	desc := DescribeDataContext(root, nil, "ShopContext", "sqlite", model)

	assert.Equal(t, "ShopContext", desc.ClassName)
	assert.Equal(t, "Shop", desc.Namespace, "unqualified class names default to the project namespace")
	assert.Equal(t, filepath.Join(root, "ShopContext.cs"), desc.ClassPath)
	assert.Equal(t, "Products", desc.EntitySetName)
	assert.Equal(t,
		"public DbSet<MyApp.Models.Product> Products { get; set; } = default!;",
		desc.NewMemberDeclaration)
}

func TestDescribeDataContextNewClassQualifiedName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Shop")
	require.NoError(t, os.MkdirAll(root, 0755))

	desc := DescribeDataContext(root, nil, "Acme.Data.ShopContext", "postgres", nil)

	assert.Equal(t, "ShopContext", desc.ClassName)
	assert.Equal(t, "Acme.Data", desc.Namespace)
	assert.Equal(t, filepath.Join(root, "Acme", "Data", "ShopContext.cs"), desc.ClassPath)
}

func TestDescribeDataContextNewClassAvoidsExistingFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Shop")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ShopContext.cs"), []byte("x"), 0644))

	desc := DescribeDataContext(root, nil, "ShopContext", "sqlite", nil)

	assert.Equal(t, filepath.Join(root, "ShopContext1.cs"), desc.ClassPath)
}

func TestDescribeIdentityDataContext(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Shop")
	require.NoError(t, os.MkdirAll(root, 0755))

	desc := DescribeIdentityDataContext(root, nil, "IdentityContext", "sqlite", "Shop")

	assert.Equal(t, "IdentityContext", desc.ClassName)
	assert.Equal(t, "Shop.Data", desc.Namespace)
	assert.Equal(t,
		filepath.Join(root, "Areas", "Identity", "Data", "IdentityContext.cs"),
		desc.ClassPath)

	existing := &analysis.Symbol{
		Name:      "IdentityContext",
		Namespace: analysis.GlobalNamespace,
		FilePath:  "/src/IdentityContext.cs",
	}
	desc = DescribeIdentityDataContext(root, existing, "", "sqlite", "Shop")
	assert.Equal(t, "/src/IdentityContext.cs", desc.ClassPath)
	assert.Empty(t, desc.Namespace)
}

func TestDescribeModel(t *testing.T) {
	sym := &analysis.Symbol{
		Name:      "Product",
		Namespace: "MyApp.Models",
		Members: []analysis.Member{
			{Name: "Id", Type: "System.Guid"},
			{Name: "Name", Type: "string"},
		},
	}

	desc := DescribeModel(sym)

	assert.Equal(t, "Product", desc.TypeName)
	assert.Equal(t, "MyApp.Models", desc.Namespace)
	assert.Equal(t, "MyApp.Models.Product", desc.FullName)
	assert.Equal(t, "Id", desc.PrimaryKeyName)
	assert.Equal(t, "System.Guid", desc.PrimaryKeyTypeName)
	assert.Equal(t, "Guid", desc.PrimaryKeyShortTypeName)
	require.Len(t, desc.Members, 2)
	assert.Equal(t, MemberDescriptor{Name: "Name", Type: "string"}, desc.Members[1])
}

func TestDescribeModelGlobalNamespace(t *testing.T) {
	sym := &analysis.Symbol{
		Name:      "Product",
		Namespace: analysis.GlobalNamespace,
		Members:   []analysis.Member{{Name: "Id", Type: "int"}},
	}

	desc := DescribeModel(sym)

	assert.Empty(t, desc.Namespace)
	assert.Equal(t, "Product", desc.FullName)
}

func TestDescribeModelEmptyShape(t *testing.T) {
	desc := DescribeModel(&analysis.Symbol{Name: "Bare", Namespace: "MyApp"})

	assert.Equal(t, "MyApp.Bare", desc.FullName)
	assert.Empty(t, desc.Members)
	assert.Empty(t, desc.PrimaryKeyName)

	assert.Empty(t, DescribeModel(nil).TypeName)
}

func TestDescribeProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Shop.csproj")
	require.NoError(t, os.WriteFile(path, []byte(`
<Project Sdk="Microsoft.NET.Sdk.Web">
  <PropertyGroup>
    <TargetFrameworks>net8.0;net6.0</TargetFrameworks>
  </PropertyGroup>
  <ItemGroup>
    <ProjectCapability Include="SupportsScaffolding" />
  </ItemGroup>
</Project>`), 0644))

	desc, project, err := DescribeProject(path)
	require.NoError(t, err)

	assert.NotNil(t, desc.Provider)
	assert.Equal(t, project.Context.RootPath, desc.RootPath)
	assert.Equal(t, "net6.0", desc.LowestTargetFramework)
	assert.True(t, desc.HasCapability("SupportsScaffolding"))
	assert.False(t, desc.HasCapability("Unknown"))
}

func TestDescribeProjectMissingFile(t *testing.T) {
	_, _, err := DescribeProject(filepath.Join(t.TempDir(), "Nope.csproj"))
	assert.Error(t, err)
}
