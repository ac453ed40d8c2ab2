// Package parse scans Go packages for girpc service definitions.
//
// A service definition is an ordinary interface type annotated with a
// directive selecting its wire codec:
//
//	//girpc:service json
//	type Calc interface {
//		Add(pair Pair) int32
//		//girpc:server_streaming
//		Watch(topic string) Event
//	}
//
// The scan is purely structural: method parameter and result types are
// captured as token-level expressions and never resolved. Anything in the
// interface body that is not a method (embedded interfaces) is skipped.
package parse

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

const (
	directivePrefix = "//girpc:"
	serverStreaming = "server_streaming"
)

// Method is a raw method declaration lifted from an interface body.
type Method struct {
	Name string

	// ParamType is the type expression of the single parameter.
	ParamType string

	// ResultType is the declared result type expression, or "" if the
	// method declares no result.
	ResultType string

	// ServerStreaming is set by the //girpc:server_streaming directive.
	// There is no client-streaming directive.
	ServerStreaming bool

	Pos token.Position
}

// Service is a raw service definition: one annotated interface.
type Service struct {
	Name    string
	Codec   string
	Methods []Method

	// Imports maps package qualifiers used by the captured type
	// expressions to their import paths, taken from the defining file.
	// Go imports are file-scoped, so the generator must re-import these
	// in the file it emits.
	Imports map[string]string

	Pos token.Position
}

// Result contains every service found in one package.
type Result struct {
	PackageName string
	PackagePath string
	Dir         string
	Services    []Service
}

// Load scans the Go package matching pattern for service definitions.
// The pattern follows go command semantics ("." for the current directory,
// an import path, or a directory path). If dir is non-empty it is used as
// the working directory for package resolution.
func Load(pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		PackageName: pkg.Name,
		PackagePath: pkg.PkgPath,
	}
	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	fset := token.NewFileSet()
	for _, filename := range pkg.GoFiles {
		f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}

		services, err := scanFile(fset, f)
		if err != nil {
			return nil, err
		}
		result.Services = append(result.Services, services...)
	}

	return result, nil
}

// scanFile extracts service definitions from a single file.
func scanFile(fset *token.FileSet, f *ast.File) ([]Service, error) {
	var services []Service

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)

			// The directive sits on the TypeSpec inside grouped
			// declarations and on the GenDecl otherwise.
			doc := ts.Doc
			if doc == nil {
				doc = gd.Doc
			}

			codec, found, err := serviceDirective(fset, doc)
			if err != nil {
				return nil, err
			}
			if !found {
				continue
			}

			iface, ok := ts.Type.(*ast.InterfaceType)
			if !ok {
				return nil, fmt.Errorf("%s: //girpc:service must be on an interface type, not %s",
					fset.Position(ts.Pos()), types.ExprString(ts.Type))
			}

			svc, err := scanInterface(fset, f, ts.Name.Name, codec, iface)
			if err != nil {
				return nil, err
			}
			services = append(services, *svc)
		}
	}

	return services, nil
}

// serviceDirective looks for //girpc:service in a doc comment and returns the
// selected codec. The directive requires exactly one codec argument; the
// argument is validated against the codec set later, by the generator config.
func serviceDirective(fset *token.FileSet, doc *ast.CommentGroup) (codec string, found bool, err error) {
	if doc == nil {
		return "", false, nil
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		pos := fset.Position(c.Pos())
		parts := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
		if len(parts) == 0 || parts[0] != "service" {
			return "", false, fmt.Errorf("%s: unknown directive %s", pos, c.Text)
		}
		if len(parts) != 2 {
			return "", false, fmt.Errorf("%s: //girpc:service requires exactly one codec argument", pos)
		}
		return parts[1], true, nil
	}
	return "", false, nil
}

// scanInterface lifts the raw methods out of an interface body.
func scanInterface(fset *token.FileSet, f *ast.File, name, codec string, iface *ast.InterfaceType) (*Service, error) {
	svc := &Service{
		Name:  name,
		Codec: codec,
		Pos:   fset.Position(iface.Pos()),
	}

	var typeExprs []ast.Expr

	for _, field := range iface.Methods.List {
		ft, ok := field.Type.(*ast.FuncType)
		if !ok {
			// Embedded interface or constraint element; not a method.
			continue
		}
		mname := field.Names[0].Name
		pos := fset.Position(field.Pos())

		streaming, err := methodDirective(fset, field.Doc)
		if err != nil {
			return nil, err
		}

		if n := countFields(ft.Params); n != 1 {
			return nil, fmt.Errorf("%s: method %s.%s has %d parameters; girpc methods take exactly one",
				pos, name, mname, n)
		}
		if _, variadic := ft.Params.List[0].Type.(*ast.Ellipsis); variadic {
			return nil, fmt.Errorf("%s: method %s.%s has a variadic parameter; girpc methods take exactly one non-variadic parameter",
				pos, name, mname)
		}
		if n := countFields(ft.Results); n > 1 {
			return nil, fmt.Errorf("%s: method %s.%s has %d results; girpc methods declare at most one",
				pos, name, mname, n)
		}

		m := Method{
			Name:            mname,
			ParamType:       types.ExprString(ft.Params.List[0].Type),
			ServerStreaming: streaming,
			Pos:             pos,
		}
		typeExprs = append(typeExprs, ft.Params.List[0].Type)

		if ft.Results != nil && len(ft.Results.List) == 1 {
			m.ResultType = types.ExprString(ft.Results.List[0].Type)
			typeExprs = append(typeExprs, ft.Results.List[0].Type)
		}

		svc.Methods = append(svc.Methods, m)
	}

	svc.Imports = referencedImports(f, typeExprs)
	return svc, nil
}

// methodDirective checks a method's doc comment for streaming directives.
func methodDirective(fset *token.FileSet, doc *ast.CommentGroup) (serverStream bool, err error) {
	if doc == nil {
		return false, nil
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		pos := fset.Position(c.Pos())
		parts := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
		if len(parts) != 1 || parts[0] != serverStreaming {
			return false, fmt.Errorf("%s: unknown directive %s", pos, c.Text)
		}
		serverStream = true
	}
	return serverStream, nil
}

// countFields counts individual parameters or results, expanding grouped
// declarations like (a, b int).
func countFields(fl *ast.FieldList) int {
	if fl == nil {
		return 0
	}
	n := 0
	for _, f := range fl.List {
		if len(f.Names) == 0 {
			n++
			continue
		}
		n += len(f.Names)
	}
	return n
}

// referencedImports resolves the package qualifiers appearing in the given
// type expressions against the file's import table. Only imports actually
// referenced end up in the generated file, which keeps it gofmt-clean.
func referencedImports(f *ast.File, exprs []ast.Expr) map[string]string {
	qualifiers := make(map[string]bool)
	for _, e := range exprs {
		ast.Inspect(e, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if id, ok := sel.X.(*ast.Ident); ok {
				qualifiers[id.Name] = true
			}
			return true
		})
	}
	if len(qualifiers) == 0 {
		return nil
	}

	imports := make(map[string]string)
	for _, spec := range f.Imports {
		ipath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		qual := importQualifier(spec, ipath)
		if qualifiers[qual] {
			imports[qual] = ipath
		}
	}
	return imports
}

var versionElem = regexp.MustCompile(`^v[0-9]+$`)

// importQualifier returns the identifier an import is referenced by: the
// explicit name if present, otherwise the last non-version path element.
// This is an approximation (a package's name can differ from its path), but
// it matches the overwhelming convention and fails loudly at compile time of
// the generated file when it doesn't hold.
func importQualifier(spec *ast.ImportSpec, ipath string) string {
	if spec.Name != nil {
		return spec.Name.Name
	}
	base := path.Base(ipath)
	if versionElem.MatchString(base) {
		base = path.Base(path.Dir(ipath))
	}
	return base
}
