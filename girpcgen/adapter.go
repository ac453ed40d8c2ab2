package girpcgen

import (
	"fmt"
	"strings"

	"github.com/varekai/girpc/codec"
	"github.com/varekai/girpc/ir"
	"github.com/varekai/girpc/stub"
)

// codecPaths maps a service's codec selector to the identifier generated code
// uses to reference it. One codec per service; the same path is handed to the
// backend for every method. Must cover exactly codec.Names().
var codecPaths = map[string]string{
	"json":    "codec.JSON",
	"gob":     "codec.Gob",
	"cbor":    "codec.CBOR",
	"msgpack": "codec.Msgpack",
}

// codecPath resolves a codec selector, rejecting anything outside the closed
// vocabulary.
func codecPath(name string) (string, error) {
	p, ok := codecPaths[name]
	if !ok {
		return "", fmt.Errorf("unknown codec %q (expected one of %s)", name, strings.Join(codec.Names(), ", "))
	}
	return p, nil
}

// serviceAdapter presents an ir.ServiceDescriptor through the capability
// surface the stub backend consumes. Name, package and identifier all
// collapse to the interface name, and documentation is always empty.
type serviceAdapter struct {
	svc  *ir.ServiceDescriptor
	path string // resolved codec path
}

var _ stub.Service = (*serviceAdapter)(nil)

func newServiceAdapter(svc *ir.ServiceDescriptor) (*serviceAdapter, error) {
	path, err := codecPath(svc.Codec)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", svc.Name, err)
	}
	return &serviceAdapter{svc: svc, path: path}, nil
}

func (a *serviceAdapter) Name() string       { return a.svc.Name }
func (a *serviceAdapter) Package() string    { return a.svc.Name }
func (a *serviceAdapter) Identifier() string { return a.svc.Name }
func (a *serviceAdapter) Comment() []string  { return nil }
func (a *serviceAdapter) CodecPath() string  { return a.path }

func (a *serviceAdapter) Methods() []stub.Method {
	methods := make([]stub.Method, len(a.svc.Methods))
	for i := range a.svc.Methods {
		methods[i] = &methodAdapter{m: &a.svc.Methods[i]}
	}
	return methods
}

type methodAdapter struct {
	m *ir.MethodDescriptor
}

var _ stub.Method = (*methodAdapter)(nil)

func (a *methodAdapter) Name() string          { return a.m.Name }
func (a *methodAdapter) Identifier() string    { return a.m.Name }
func (a *methodAdapter) Comment() []string     { return nil }
func (a *methodAdapter) ClientStreaming() bool { return a.m.ClientStreaming }
func (a *methodAdapter) ServerStreaming() bool { return a.m.ServerStreaming }

// RequestResponse hands the backend the synthesized alias names rather than
// the original type expressions, qualified so they resolve from the
// namespace the backend generates into.
func (a *methodAdapter) RequestResponse(namespace string) (string, string) {
	if namespace == "" {
		return a.m.RequestAlias, a.m.ResponseAlias
	}
	return namespace + "." + a.m.RequestAlias, namespace + "." + a.m.ResponseAlias
}
