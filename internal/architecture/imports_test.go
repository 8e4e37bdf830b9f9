package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// layers maps a directory prefix under the module root to the internal
// packages it must not import. Lower layers never reach upward.
var layers = []struct {
	prefix     string
	disallowed []string
}{
	{"internal/platform/", []string{"internal/app", "internal/http", "internal/services", "internal/domain/", "internal/data/", "internal/observability"}},
	{"internal/domain/", []string{"internal/app", "internal/http", "internal/services", "internal/data/", "internal/observability"}},
	{"internal/data/", []string{"internal/app", "internal/http", "internal/services"}},
	{"internal/observability/", []string{"internal/app", "internal/http", "internal/services"}},
	{"internal/services/", []string{"internal/app", "internal/http"}},
}

func TestImportBoundaries(t *testing.T) {
	root, modulePath := moduleRoot(t)

	var violations []string
	walkImports(t, filepath.Join(root, "internal"), root, func(rel, imp string) {
		for _, l := range layers {
			if !strings.HasPrefix(rel, l.prefix) {
				continue
			}
			for _, bad := range l.disallowed {
				if strings.HasPrefix(imp, modulePath+"/"+bad) {
					violations = append(violations, fmt.Sprintf("- %s imports %q (disallowed: %q)", rel, imp, bad))
					return
				}
			}
		}
	})

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n%s", strings.Join(violations, "\n"))
	}
}

func TestCmdOnlyImportsApp(t *testing.T) {
	root, modulePath := moduleRoot(t)

	var violations []string
	walkImports(t, filepath.Join(root, "cmd"), root, func(rel, imp string) {
		if !strings.HasPrefix(imp, modulePath+"/internal/") {
			return
		}
		if imp != modulePath+"/internal/app" && imp != modulePath+"/internal/platform/logger" {
			violations = append(violations, fmt.Sprintf("- %s imports %q", rel, imp))
		}
	})

	if len(violations) > 0 {
		t.Fatalf("cmd/ should wire through internal/app only:\n%s", strings.Join(violations, "\n"))
	}
}

func moduleRoot(t *testing.T) (string, string) {
	t.Helper()
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}
	return root, modulePath
}

// walkImports calls fn for every import of every .go file under dir, with
// the file path relative to root in slash form.
func walkImports(t *testing.T, dir, root string, fn func(rel, imp string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name == "vendor" || strings.HasPrefix(name, ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			if imp, err := strconv.Unquote(spec.Path.Value); err == nil {
				fn(filepath.ToSlash(rel), imp)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if mp, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "module "); ok {
			if mp = strings.TrimSpace(mp); mp != "" {
				return mp, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
