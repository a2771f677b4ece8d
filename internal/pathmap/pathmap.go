// Package pathmap converts between dotted namespace identifiers and
// filesystem paths so generated files land in the namespace-correct
// directory. Every function is a pure string transformation except
// UniquePath, which probes the filesystem for existence.
//
// Malformed input never raises a fault: callers treat "could not compute a
// location" as "skip and report", so these functions collapse malformed and
// structurally vacuous input into the empty-string sentinel.
package pathmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NamespaceToPath returns the absolute directory where a type declared in
// namespace ns should live. basePath may itself be a file path, in which
// case its containing directory is used. A trailing rootNamespace directory
// segment on basePath and a leading rootNamespace prefix on ns are treated
// as the same segment so it is never duplicated in the result.
//
// Returns "" for empty input or any path-construction fault.
func NamespaceToPath(ns, basePath, rootNamespace string) string {
	if ns == "" || basePath == "" {
		return ""
	}

	dir := basePath
	if filepath.Ext(dir) != "" {
		dir = filepath.Dir(dir)
	}

	// Drop a redundant trailing root-namespace folder from the base so the
	// segment appears exactly once in the result.
	if rootNamespace != "" && filepath.Base(dir) == rootNamespace {
		dir = filepath.Dir(dir)
	}

	remainder := ns
	if rootNamespace != "" {
		if remainder == rootNamespace {
			remainder = ""
		} else {
			remainder = strings.TrimPrefix(remainder, rootNamespace+".")
		}
	}

	parts := []string{dir}
	if rootNamespace != "" {
		parts = append(parts, rootNamespace)
	}
	if remainder != "" {
		parts = append(parts, strings.ReplaceAll(remainder, ".", string(filepath.Separator)))
	}

	joined := filepath.Join(parts...)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return ""
	}
	return abs
}

// PathToNamespace derives a namespace for a document at the given unrooted
// path. If the path carries a file extension, its containing directory is
// used. Directory separators become dots; a trailing dot is dropped.
func PathToNamespace(path string) string {
	if path == "" {
		return ""
	}

	if filepath.Ext(path) != "" {
		path = filepath.Dir(path)
		if path == "." {
			return ""
		}
	}

	ns := strings.ReplaceAll(NormalizeSeparators(path), string(filepath.Separator), ".")
	return strings.TrimSuffix(ns, ".")
}

// NormalizeSeparators replaces whichever directory separator is not native
// to the current platform with the native one. Idempotent; empty input is
// returned unchanged.
func NormalizeSeparators(path string) string {
	if path == "" {
		return path
	}
	if filepath.Separator == '/' {
		return strings.ReplaceAll(path, "\\", "/")
	}
	return strings.ReplaceAll(path, "/", string(filepath.Separator))
}

// TrimRootSegment removes the leading segment of a dotted namespace when
// that segment equals prefix AND the final path segment of basePath also
// equals prefix. The second condition guards against stripping when the
// "namespace root == folder name" assumption does not hold.
func TrimRootSegment(ns, basePath, prefix string) string {
	if ns == "" || prefix == "" {
		return ns
	}
	if filepath.Base(NormalizeSeparators(basePath)) != prefix {
		return ns
	}
	if ns == prefix {
		return ""
	}
	return strings.TrimPrefix(ns, prefix+".")
}

// DottedPathWithoutExtension strips the file extension, converts the
// remaining directory separators to dots, and trims a trailing dot.
func DottedPathWithoutExtension(path string) string {
	if path == "" {
		return ""
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	dotted := strings.ReplaceAll(NormalizeSeparators(path), string(filepath.Separator), ".")
	return strings.TrimSuffix(dotted, ".")
}

// LastSegment returns the final dot-delimited segment of a dotted name,
// recovering a simple type name from a fully qualified identifier.
func LastSegment(dotted string) string {
	if i := strings.LastIndex(dotted, "."); i >= 0 {
		return dotted[i+1:]
	}
	return dotted
}

// UniquePath returns candidate unchanged when no file exists there;
// otherwise it probes name1.ext, name2.ext, ... in the same directory and
// returns the first path that does not already exist. The probe has no
// iteration cap: termination relies on the filesystem eventually reporting
// "does not exist" for some suffix.
func UniquePath(candidate string) string {
	if candidate == "" {
		return ""
	}
	if !exists(candidate) {
		return candidate
	}

	dir := filepath.Dir(candidate)
	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(filepath.Base(candidate), ext)

	for i := 1; ; i++ {
		next := filepath.Join(dir, fmt.Sprintf("%s%d%s", stem, i, ext))
		if !exists(next) {
			return next
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
