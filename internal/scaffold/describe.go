package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/weftgen/weft/internal/analysis"
	"github.com/weftgen/weft/internal/convention"
	"github.com/weftgen/weft/internal/msbuild"
	"github.com/weftgen/weft/internal/pathmap"
)

// DescribeDataContext produces the data-context descriptor for a CRUD
// scaffolding run. When existing is non-nil the descriptor refers to that
// class; otherwise it describes a context to be created under projectRoot
// using className (which may be namespace-qualified).
func DescribeDataContext(projectRoot string, existing *analysis.Symbol, className, provider string, model *ModelShapeDescriptor) *DataContextDescriptor {
	desc := &DataContextDescriptor{
		IsDataAccess: true,
		Provider:     provider,
	}

	if existing != nil {
		desc.ClassName = existing.Name
		desc.ClassPath = existing.FilePath
		desc.Namespace = existing.Namespace
		if model != nil {
			desc.EntitySetName = convention.EntitySetName(existing, model.TypeName)
		}
	} else {
		simple := pathmap.LastSegment(className)
		namespace := strings.TrimSuffix(className, "."+simple)
		if namespace == className {
			namespace = filepath.Base(projectRoot)
		}

		dir := pathmap.NamespaceToPath(namespace, projectRoot, filepath.Base(projectRoot))
		if dir == "" {
			dir = projectRoot
		}

		desc.ClassName = simple
		desc.Namespace = namespace
		desc.ClassPath = pathmap.UniquePath(filepath.Join(dir, simple+".cs"))
		if model != nil {
			desc.EntitySetName = convention.EntitySetName(nil, model.TypeName)
			desc.NewMemberDeclaration = entitySetDeclaration(model, desc.EntitySetName)
		}
	}

	normalizeNamespace(desc)
	return desc
}

// DescribeIdentityDataContext is the identity-scenario variant: no model
// shape, and a new context defaults to the <project-name>.Data namespace
// with the identity-area file rule.
func DescribeIdentityDataContext(projectRoot string, existing *analysis.Symbol, className, provider, projectName string) *DataContextDescriptor {
	desc := &DataContextDescriptor{
		IsDataAccess: true,
		Provider:     provider,
	}

	if existing != nil {
		desc.ClassName = existing.Name
		desc.ClassPath = existing.FilePath
		desc.Namespace = existing.Namespace
	} else {
		simple := pathmap.LastSegment(className)
		desc.ClassName = simple
		desc.Namespace = projectName + ".Data"
		desc.ClassPath = pathmap.UniquePath(identityContextPath(projectRoot, simple))
	}

	normalizeNamespace(desc)
	return desc
}

// identityContextPath is the dedicated path rule for identity contexts.
func identityContextPath(projectRoot, className string) string {
	return filepath.Join(projectRoot, "Areas", "Identity", "Data", className+".cs")
}

// DescribeModel builds the model-shape descriptor for an entity symbol. A
// symbol whose members reveal no mapping convention yields a descriptor
// with empty member and key fields; that is a legitimate state, not an
// error, and validation decides later whether it can drive generation.
func DescribeModel(sym *analysis.Symbol) *ModelShapeDescriptor {
	if sym == nil {
		return &ModelShapeDescriptor{}
	}

	desc := &ModelShapeDescriptor{
		TypeName:  sym.Name,
		Namespace: sym.Namespace,
	}
	if desc.Namespace == analysis.GlobalNamespace {
		desc.Namespace = ""
	}
	desc.FullName = qualifiedName(desc.Namespace, desc.TypeName)

	for _, m := range convention.Members(sym) {
		desc.Members = append(desc.Members, MemberDescriptor{Name: m.Name, Type: m.Type})
	}

	if key, ok := convention.PrimaryKey(sym); ok {
		desc.PrimaryKeyName = key.Name
		desc.PrimaryKeyTypeName = key.Type
		desc.PrimaryKeyShortTypeName = pathmap.LastSegment(key.Type)
	}

	return desc
}

// DescribeProject initializes the build system, opens an analysis-provider
// handle, and snapshots the project facts. Build-system initialization must
// happen before the provider handle is opened; the provider enforces that
// ordering and this function is the place the two phases are sequenced.
func DescribeProject(projectPath string) (*ProjectDescriptor, *msbuild.Project, error) {
	msbuild.Initialize()

	project, err := msbuild.Load(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load project %s: %w", projectPath, err)
	}

	provider, err := analysis.NewProvider(nil)
	if err != nil {
		return nil, nil, err
	}

	desc := &ProjectDescriptor{
		Provider:              provider,
		RootPath:              project.Context.RootPath,
		LowestTargetFramework: project.LowestTargetFramework(),
		Capabilities:          make(map[string]bool, len(project.Capabilities)),
	}
	for _, capability := range project.Capabilities {
		desc.Capabilities[capability] = true
	}

	return desc, project, nil
}

// entitySetDeclaration synthesizes the strongly typed, default-initialized
// collection property a new context declares for the model type.
func entitySetDeclaration(model *ModelShapeDescriptor, setName string) string {
	return fmt.Sprintf("public DbSet<%s> %s { get; set; } = default!;", model.FullName, setName)
}

// normalizeNamespace rewrites the global-namespace marker to the empty
// string: descriptors consumed downstream always represent "no namespace"
// as "".
func normalizeNamespace(desc *DataContextDescriptor) {
	if strings.EqualFold(desc.Namespace, analysis.GlobalNamespace) {
		desc.Namespace = ""
	}
}
