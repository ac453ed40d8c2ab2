// Package girpcgen turns annotated Go interfaces into generated RPC source
// files.
//
// The pipeline is strictly forward: the parser produces raw method
// declarations, Normalize canonicalizes each into a method descriptor,
// Assemble collects them into a service descriptor, and two independent
// consumers run off that descriptor: the alias emitter and the stub backend
// adapter. One invocation transforms one package to completion; there is no
// shared state across invocations.
package girpcgen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/varekai/girpc/girpcgen/sink"
	"github.com/varekai/girpc/internal/parse"
	"github.com/varekai/girpc/ir"
	"github.com/varekai/girpc/stub"
)

// Generate scans the configured package and writes one generated file per
// service it finds. Any error is fatal to the whole run: a build-time
// transformation either fully succeeds or fully fails, so no partial output
// is written for a service that errored.
func Generate(cfg *Config) error {
	cfg = applyConfigDefaults(cfg)
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	res, err := parse.Load(cfg.Package, cfg.Dir)
	if err != nil {
		return err
	}
	if len(res.Services) == 0 {
		return fmt.Errorf("no girpc services found in %s (annotate an interface with //girpc:service <codec>)", res.PackagePath)
	}

	out := cfg.Sink
	if out == nil {
		dir := cfg.OutDir
		if dir == "" {
			dir = res.Dir
		}
		out = sink.NewFilesystemSink(dir)
	}

	for _, raw := range res.Services {
		desc := Assemble(res.PackageName, raw)
		src, err := render(&desc, cfg.Backend)
		if err != nil {
			return err
		}
		if err := out.WriteFile(ctx, FileName(desc.Name), src); err != nil {
			return fmt.Errorf("write generated file for %s: %w", desc.Name, err)
		}
	}
	return nil
}

// FileName returns the output file name for a service.
func FileName(service string) string {
	return strings.ToLower(service) + ".girpc.go"
}

// render produces the complete generated file for one service: header,
// package clause, imports, synthesized aliases, client code, server code,
// in that order, gofmt'd.
func render(svc *ir.ServiceDescriptor, backend stub.Generator) ([]byte, error) {
	adapter, err := newServiceAdapter(svc)
	if err != nil {
		return nil, err
	}

	// girpc always generates into the interface's own scope, so the
	// namespace prefix is empty.
	client, err := backend.GenerateClient(adapter, "")
	if err != nil {
		return nil, fmt.Errorf("generate client for %s: %w", svc.Name, err)
	}
	server, err := backend.GenerateServer(adapter, "")
	if err != nil {
		return nil, fmt.Errorf("generate server for %s: %w", svc.Name, err)
	}

	imports, err := mergeImports(svc, backend.Imports(adapter))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by girpc. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", svc.Package)
	writeImports(&buf, imports)
	emitAliases(&buf, svc)
	buf.Write(client)
	buf.Write(server)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code for %s: %w", svc.Name, err)
	}
	return src, nil
}

// mergeImports combines the imports the alias targets reference with the
// imports the backend's code needs. A qualifier claimed by both for
// different paths cannot be satisfied in one file.
func mergeImports(svc *ir.ServiceDescriptor, backendImports map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(svc.Imports)+len(backendImports))
	for q, p := range backendImports {
		merged[q] = p
	}
	for q, p := range svc.Imports {
		if existing, ok := merged[q]; ok && existing != p {
			return nil, fmt.Errorf("service %s: import %q of %s collides with generated import of %s; rename the import in the source file",
				svc.Name, q, p, existing)
		}
		merged[q] = p
	}
	return merged, nil
}

// writeImports emits a single import block sorted by path, naming an import
// only when its qualifier differs from the path's natural one.
func writeImports(buf *bytes.Buffer, imports map[string]string) {
	if len(imports) == 0 {
		return
	}

	type imp struct{ qual, path string }
	sorted := make([]imp, 0, len(imports))
	for q, p := range imports {
		sorted = append(sorted, imp{q, p})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].path < sorted[j].path })

	buf.WriteString("import (\n")
	for _, im := range sorted {
		if im.qual == naturalQualifier(im.path) {
			fmt.Fprintf(buf, "\t%q\n", im.path)
		} else {
			fmt.Fprintf(buf, "\t%s %q\n", im.qual, im.path)
		}
	}
	buf.WriteString(")\n\n")
}

var versionElem = regexp.MustCompile(`^v[0-9]+$`)

// naturalQualifier is the identifier an import resolves to without an
// explicit name: the last non-version path element.
func naturalQualifier(ipath string) string {
	base := path.Base(ipath)
	if versionElem.MatchString(base) {
		base = path.Base(path.Dir(ipath))
	}
	return base
}
