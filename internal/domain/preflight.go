package domain

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"

	"github.com/mouse-blink/stakeout/internal/adapter"
	m "github.com/mouse-blink/stakeout/internal/model"
)

// Preflight checks that a rewritten harness file is sane before a debugger
// is attached: it still compiles, a suite owns the target method, and the
// fixture setup runs. The check is a dry run of setup only, never of the
// test body, but it does carry setup's full side effects.
type Preflight interface {
	// Check returns (true, "") when the environment is sane, otherwise
	// (false, reason). It never returns an error: every failure mode is a
	// reason string, so corruption cannot halt the prep pipeline.
	Check(path m.Path, method string) (ok bool, reason string)
}

type preflight struct {
	fsAdapter adapter.SourceFSAdapter
	goAdapter adapter.GoFileAdapter
	runner    adapter.RunnerAdapter
}

// NewPreflight creates a Preflight validator.
func NewPreflight(fsAdapter adapter.SourceFSAdapter, goAdapter adapter.GoFileAdapter, runner adapter.RunnerAdapter) Preflight {
	return &preflight{fsAdapter: fsAdapter, goAdapter: goAdapter, runner: runner}
}

func (p *preflight) Check(path m.Path, method string) (bool, string) {
	content, err := p.fsAdapter.ReadFile(path)
	if err != nil {
		return false, fmt.Sprintf("import error: %v", err)
	}

	suiteName, err := findSuiteFor(p.goAdapter, string(path), content, method)
	if err != nil {
		return false, fmt.Sprintf("import error: %v", err)
	}

	if suiteName == "" {
		return false, fmt.Sprintf("no test suite declares method %s", method)
	}

	bin, cleanup, err := p.runner.Build(filepath.Dir(string(path)))
	if err != nil {
		return false, fmt.Sprintf("import error: %v", err)
	}

	defer cleanup()

	// Harness contract: -preflight runs fixture setup for the selected
	// method and exits non-zero when it panics or fails.
	out, err := p.runner.Run(bin, "-preflight", "-method", method)
	if err != nil {
		reason := out
		if reason == "" {
			reason = err.Error()
		}

		return false, fmt.Sprintf("setup failed: %s", reason)
	}

	return true, ""
}

// findSuiteFor scans the file for the first struct, in source order, that
// embeds suite.Suite, is not suite.Suite itself, and has the target method
// declared on it directly or through an embedded local struct. Source order
// makes the otherwise implementation-defined "first match" deterministic.
func findSuiteFor(goAdapter adapter.GoFileAdapter, filename string, src []byte, method string) (string, error) {
	fset := token.NewFileSet()

	file, err := goAdapter.Parse(fset, filename, src)
	if err != nil {
		return "", err
	}

	var (
		order   []string
		structs = map[string]*ast.StructType{}
		methods = map[string]map[string]bool{}
	)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}

				order = append(order, ts.Name.Name)
				structs[ts.Name.Name] = st
			}
		case *ast.FuncDecl:
			if d.Recv == nil || len(d.Recv.List) == 0 {
				continue
			}

			recv := receiverTypeName(d.Recv.List[0].Type)
			if recv == "" {
				continue
			}

			if methods[recv] == nil {
				methods[recv] = map[string]bool{}
			}

			methods[recv][d.Name.Name] = true
		}
	}

	for _, name := range order {
		if !embedsSuite(name, structs, map[string]bool{}) {
			continue
		}

		if hasMethod(name, method, structs, methods, map[string]bool{}) {
			return name, nil
		}
	}

	return "", nil
}

// embedsSuite reports whether the named struct embeds suite.Suite, directly
// or through another local struct.
func embedsSuite(name string, structs map[string]*ast.StructType, seen map[string]bool) bool {
	if seen[name] {
		return false
	}

	seen[name] = true

	st, ok := structs[name]
	if !ok {
		return false
	}

	for _, field := range st.Fields.List {
		if len(field.Names) > 0 {
			continue
		}

		switch t := field.Type.(type) {
		case *ast.SelectorExpr:
			pkg, ok := t.X.(*ast.Ident)
			if ok && pkg.Name == "suite" && t.Sel.Name == "Suite" {
				return true
			}
		case *ast.Ident:
			if embedsSuite(t.Name, structs, seen) {
				return true
			}
		}
	}

	return false
}

// hasMethod reports whether the named struct declares (or inherits via a
// local embedded struct) the given method.
func hasMethod(name, method string, structs map[string]*ast.StructType, methods map[string]map[string]bool, seen map[string]bool) bool {
	if seen[name] {
		return false
	}

	seen[name] = true

	if methods[name][method] {
		return true
	}

	st, ok := structs[name]
	if !ok {
		return false
	}

	for _, field := range st.Fields.List {
		if len(field.Names) > 0 {
			continue
		}

		if ident, ok := field.Type.(*ast.Ident); ok {
			if hasMethod(ident.Name, method, structs, methods, seen) {
				return true
			}
		}
	}

	return false
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name
		}
	}

	return ""
}
