package msbuild

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/weftgen/weft/internal/pathmap"
	"github.com/weftgen/weft/internal/workspace"
)

// Project is the loaded build description: the workspace context plus the
// build facts the project descriptor snapshots.
type Project struct {
	Context *workspace.ProjectContext

	// TargetFrameworks holds every declared target framework moniker.
	TargetFrameworks []string

	// Capabilities is the set of declared project capabilities.
	Capabilities []string
}

// LowestTargetFramework returns the lowest declared target framework
// moniker, or "" when the project declares none.
func (p *Project) LowestTargetFramework() string {
	if len(p.TargetFrameworks) == 0 {
		return ""
	}
	sorted := append([]string(nil), p.TargetFrameworks...)
	sort.Strings(sorted)
	return sorted[0]
}

// projectFile mirrors the .csproj XML shape we consume.
type projectFile struct {
	PropertyGroups []struct {
		TargetFramework  string `xml:"TargetFramework"`
		TargetFrameworks string `xml:"TargetFrameworks"`
		RootNamespace    string `xml:"RootNamespace"`
		AssemblyName     string `xml:"AssemblyName"`
	} `xml:"PropertyGroup"`
	ItemGroups []struct {
		Compiles []struct {
			Include string `xml:"Include,attr"`
		} `xml:"Compile"`
		References []struct {
			Include  string `xml:"Include,attr"`
			HintPath string `xml:"HintPath"`
		} `xml:"Reference"`
		Capabilities []struct {
			Include string `xml:"Include,attr"`
		} `xml:"ProjectCapability"`
	} `xml:"ItemGroup"`
}

// Load reads the .csproj at path and produces the build description. SDK
// style projects rarely list Compile items explicitly; when none appear, the
// source list is globbed from the project directory (bin/ and obj/ are build
// output, never sources).
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	var file projectFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	ctx := &workspace.ProjectContext{
		RootPath:      root,
		Name:          name,
		AssemblyName:  name,
		RootNamespace: name,
	}

	project := &Project{Context: ctx}

	for _, group := range file.PropertyGroups {
		if group.AssemblyName != "" {
			ctx.AssemblyName = group.AssemblyName
		}
		if group.RootNamespace != "" {
			ctx.RootNamespace = group.RootNamespace
		}
		if group.TargetFramework != "" {
			project.TargetFrameworks = append(project.TargetFrameworks, group.TargetFramework)
		}
		if group.TargetFrameworks != "" {
			for _, tfm := range strings.Split(group.TargetFrameworks, ";") {
				if tfm = strings.TrimSpace(tfm); tfm != "" {
					project.TargetFrameworks = append(project.TargetFrameworks, tfm)
				}
			}
		}
	}

	for _, group := range file.ItemGroups {
		for _, item := range group.Compiles {
			if item.Include != "" {
				ctx.SourceFiles = append(ctx.SourceFiles, pathmap.NormalizeSeparators(item.Include))
			}
		}
		for _, ref := range group.References {
			switch {
			case ref.HintPath != "":
				ctx.References = append(ctx.References, pathmap.NormalizeSeparators(ref.HintPath))
			case ref.Include != "":
				ctx.References = append(ctx.References, pathmap.NormalizeSeparators(ref.Include))
			}
		}
		for _, capability := range group.Capabilities {
			if capability.Include != "" {
				project.Capabilities = append(project.Capabilities, capability.Include)
			}
		}
	}

	if len(ctx.SourceFiles) == 0 {
		ctx.SourceFiles, err = globSources(root)
		if err != nil {
			return nil, err
		}
	}

	return project, nil
}

// globSources collects every .cs file under root, skipping build output.
func globSources(root string) ([]string, error) {
	var sources []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "bin", "obj":
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".cs") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			sources = append(sources, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate sources under %s: %w", root, err)
	}

	sort.Strings(sources)
	return sources, nil
}
