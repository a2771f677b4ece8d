package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weftgen/weft/internal/cli/config"
	"github.com/weftgen/weft/internal/cli/ui"
	"github.com/weftgen/weft/internal/dbmodel"
	"github.com/weftgen/weft/internal/emitter"
	"github.com/weftgen/weft/internal/log"
	"github.com/weftgen/weft/internal/msbuild"
	"github.com/weftgen/weft/internal/pathmap"
	"github.com/weftgen/weft/internal/scaffold"
	wstrings "github.com/weftgen/weft/internal/util/strings"
	"github.com/weftgen/weft/internal/workspace"
)

// NewScaffoldCommand creates the scaffold command group
func NewScaffoldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Generate CRUD code against a project's data context",
		Long: `Generate data-access code for an existing project.

The scaffold command will:
  - Load the project's build description
  - Build an in-memory, symbol-resolvable model of the project
  - Resolve the model and data-context classes (or describe new ones)
  - Emit code files in the namespace-correct location

Examples:
  weft scaffold crud --model Product
  weft scaffold crud --model Product --context ShopContext
  weft scaffold crud --model Product --database-url shop.db
  weft scaffold identity`,
	}

	cmd.AddCommand(newScaffoldCrudCommand())
	cmd.AddCommand(newScaffoldIdentityCommand())

	return cmd
}

// crudOptions collects the flags for one crud scaffolding run.
type crudOptions struct {
	projectPath string
	modelName   string
	contextName string
	databaseURL string
	tableName   string
	force       bool
	verbose     bool
}

func newScaffoldCrudCommand() *cobra.Command {
	opts := &crudOptions{}

	cmd := &cobra.Command{
		Use:   "crud",
		Short: "Generate a CRUD controller and data context for a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffoldCrud(opts)
		},
	}

	cmd.Flags().StringVar(&opts.projectPath, "project", "", "path to the project file (default: the only .csproj in the working directory)")
	cmd.Flags().StringVar(&opts.modelName, "model", "", "model class name (prompted for when omitted)")
	cmd.Flags().StringVar(&opts.contextName, "context", "", "data-context class name (default: <Project>Context)")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", "", "database to reverse-engineer the model from when it has no source declaration")
	cmd.Flags().StringVar(&opts.tableName, "table", "", "table to introspect (default derived from the model name)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing files")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func runScaffoldCrud(opts *crudOptions) error {
	logger := log.New(opts.verbose)
	defer logger.Sync()
	reporter := ui.NewReporter()

	projectPath, err := findProjectFile(opts.projectPath)
	if err != nil {
		return err
	}

	desc, project, err := describeAndBuild(projectPath, logger)
	if err != nil {
		return err
	}
	root := desc.RootPath

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if cfg.RootNamespace != "" {
		project.Context.RootNamespace = cfg.RootNamespace
	}
	if opts.databaseURL == "" {
		opts.databaseURL = cfg.Database.URL
	}

	modelName := opts.modelName
	if modelName == "" {
		prompt := &survey.Input{
			Message: "Model class name (singular, PascalCase):",
		}
		if err := survey.AskOne(prompt, &modelName, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	reporter.Infof("Scaffolding CRUD for %s", modelName)

	model, err := resolveModelShape(desc, project, opts, modelName, cfg, reporter)
	if err != nil {
		return err
	}
	if opts.verbose && model != nil {
		printModelSummary(model)
	}
	if !scaffold.ValidateForCrud(model, reporter) {
		return fmt.Errorf("model %s is not usable for CRUD generation", modelName)
	}

	contextName := opts.contextName
	if contextName == "" {
		contextName = project.Context.Name + "Context"
	}
	contextSym, _ := desc.Provider.ResolveSymbol(contextName)

	contextDesc := scaffold.DescribeDataContext(root, contextSym, contextName, cfg.Database.Provider, model)

	emit := emitter.New(reporter, opts.force || cfg.Generator.Overwrite)
	contextCreated := contextSym == nil
	if contextCreated {
		if _, err := emit.EmitDataContext(contextDesc); err != nil {
			return err
		}
	}
	controllerPath, err := emit.EmitController(root, contextDesc, model)
	if errors.Is(err, emitter.ErrExists) {
		overwrite := false
		confirm := &survey.Confirm{Message: "Controller file already exists. Overwrite?"}
		if promptErr := survey.AskOne(confirm, &overwrite); promptErr != nil || !overwrite {
			return err
		}
		controllerPath, err = emitter.New(reporter, true).EmitController(root, contextDesc, model)
	}
	if err != nil {
		return err
	}

	printCrudNextSteps(modelName, contextDesc, controllerPath, contextCreated)
	return nil
}

// identityOptions collects the flags for an identity scaffolding run.
type identityOptions struct {
	projectPath string
	contextName string
	force       bool
	verbose     bool
}

func newScaffoldIdentityCommand() *cobra.Command {
	opts := &identityOptions{}

	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Generate an identity data context under Areas/Identity/Data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffoldIdentity(opts)
		},
	}

	cmd.Flags().StringVar(&opts.projectPath, "project", "", "path to the project file (default: the only .csproj in the working directory)")
	cmd.Flags().StringVar(&opts.contextName, "context", "", "identity context class name (default: <Project>IdentityContext)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing files")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func runScaffoldIdentity(opts *identityOptions) error {
	logger := log.New(opts.verbose)
	defer logger.Sync()
	reporter := ui.NewReporter()

	projectPath, err := findProjectFile(opts.projectPath)
	if err != nil {
		return err
	}

	desc, project, err := describeAndBuild(projectPath, logger)
	if err != nil {
		return err
	}
	root := desc.RootPath

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	contextName := opts.contextName
	if contextName == "" {
		contextName = project.Context.Name + "IdentityContext"
	}
	contextSym, _ := desc.Provider.ResolveSymbol(contextName)

	contextDesc := scaffold.DescribeIdentityDataContext(root, contextSym, contextName, cfg.Database.Provider, project.Context.Name)

	if contextSym != nil {
		reporter.Infof("Identity context %s already exists at %s", contextDesc.ClassName, contextDesc.ClassPath)
		return nil
	}

	emit := emitter.New(reporter, opts.force)
	if _, err := emit.EmitDataContext(contextDesc); err != nil {
		return err
	}

	reporter.Successf("Scaffolded identity context %s", contextDesc.ClassName)
	return nil
}

// describeAndBuild runs the fixed startup sequence: describe the project,
// which sequences build-system initialization before the analysis-provider
// handle is opened, then build the workspace so symbols become resolvable.
func describeAndBuild(projectPath string, logger *zap.SugaredLogger) (*scaffold.ProjectDescriptor, *msbuild.Project, error) {
	desc, project, err := scaffold.DescribeProject(projectPath)
	if err != nil {
		return nil, nil, err
	}

	builder := workspace.NewBuilder(desc.Provider, logger)
	err = ui.WithSpinner(os.Stderr, fmt.Sprintf("Building workspace for %s", project.Context.Name), false, func() error {
		_, buildErr := builder.Build(project.Context)
		return buildErr
	})
	if err != nil {
		return nil, nil, err
	}

	return desc, project, nil
}

// resolveModelShape finds the model in source, or reverse-engineers it
// from the configured database when the class does not exist yet.
func resolveModelShape(desc *scaffold.ProjectDescriptor, project *msbuild.Project, opts *crudOptions, modelName string, cfg *config.Config, reporter *ui.Reporter) (*scaffold.ModelShapeDescriptor, error) {
	if sym, ok := desc.Provider.ResolveSymbol(modelName); ok {
		return scaffold.DescribeModel(sym), nil
	}

	if opts.databaseURL == "" {
		reporter.Errorf("model class %s not found in project sources", modelName)
		if similar := ui.SuggestSymbols(modelName, desc.Provider.SymbolNames()); len(similar) > 0 {
			reporter.Warnf("did you mean %s?", strings.Join(similar, ", "))
		}
		return nil, fmt.Errorf("model class %s not found (pass --database-url to reverse-engineer it)", modelName)
	}

	table := opts.tableName
	if table == "" {
		table = wstrings.ToSnakeCase(wstrings.Pluralize(modelName))
	}

	db, driver, err := dbmodel.Open(opts.databaseURL)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	namespace := modelNamespace(project.Context.RootNamespace, cfg.Generator.ModelsDir)
	model, err := dbmodel.Introspect(db, driver, table, namespace)
	if err != nil {
		return nil, err
	}

	reporter.Infof("Reverse-engineered %s from table %s", model.TypeName, table)

	// The class has no source declaration yet: emit one so the generated
	// controller compiles against it.
	modelsDir := filepath.Join(desc.RootPath, cfg.Generator.ModelsDir)
	emit := emitter.New(reporter, opts.force || cfg.Generator.Overwrite)
	if _, err := emit.EmitModelClass(modelsDir, model); err != nil {
		return nil, err
	}

	return model, nil
}

// modelNamespace derives the namespace for a reverse-engineered model from
// the configured models directory, so the emitted class's namespace agrees
// with where its file lands.
func modelNamespace(rootNamespace, modelsDir string) string {
	suffix := pathmap.PathToNamespace(modelsDir)
	switch {
	case suffix == "":
		return rootNamespace
	case rootNamespace == "":
		return suffix
	default:
		return rootNamespace + "." + suffix
	}
}

// findProjectFile returns the explicit project path, or discovers the
// single .csproj in the working directory.
func findProjectFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("project file %s not found", explicit)
		}
		return explicit, nil
	}

	matches, err := filepath.Glob("*.csproj")
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("no .csproj found in the working directory (pass --project)")
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("multiple project files found (%s): pass --project", strings.Join(matches, ", "))
	}
	return matches[0], nil
}

func printModelSummary(model *scaffold.ModelShapeDescriptor) {
	fmt.Printf("\n%s\n", color.New(color.Bold).Sprintf("Model %s", model.FullName))
	tbl := ui.NewTable(os.Stdout, false, "Member", "Type")
	for _, m := range model.Members {
		tbl.AddRow(m.Name, m.Type)
	}
	tbl.Render()
	fmt.Println()
}

func printCrudNextSteps(modelName string, ctx *scaffold.DataContextDescriptor, controllerPath string, contextCreated bool) {
	fmt.Println()
	color.Green("✓ Scaffolded CRUD for %s", modelName)
	fmt.Println()
	fmt.Println("Next steps:")
	if contextCreated {
		fmt.Printf("  1. Register %s in your service container\n", color.CyanString(ctx.ClassName))
		fmt.Printf("  2. Add a migration and update the database\n")
		fmt.Printf("  3. Review %s\n", color.CyanString(controllerPath))
	} else {
		fmt.Printf("  1. Add a migration and update the database\n")
		fmt.Printf("  2. Review %s\n", color.CyanString(controllerPath))
	}
	fmt.Println()
}
