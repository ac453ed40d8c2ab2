// Package stubtest provides a recording stub backend for tests.
package stubtest

import (
	"fmt"

	"github.com/varekai/girpc/stub"
)

// Call records one emission call received by the Recorder.
type Call struct {
	Kind      string // "client" or "server"
	Service   string
	Package   string
	CodecPath string
	Namespace string
	Methods   []MethodCall
}

// MethodCall records the accessor values observed for one method.
type MethodCall struct {
	Name            string
	Identifier      string
	ClientStreaming bool
	ServerStreaming bool
	Request         string
	Response        string
}

// Recorder is a stub.Generator that records every descriptor it receives and
// emits a predictable marker instead of real code. Err, when set, is returned
// from every emission call to exercise error propagation.
type Recorder struct {
	Calls []Call
	Err   error
}

var _ stub.Generator = (*Recorder)(nil)

func (r *Recorder) GenerateClient(svc stub.Service, namespace string) ([]byte, error) {
	return r.record("client", svc, namespace)
}

func (r *Recorder) GenerateServer(svc stub.Service, namespace string) ([]byte, error) {
	return r.record("server", svc, namespace)
}

func (r *Recorder) Imports(svc stub.Service) map[string]string { return nil }

func (r *Recorder) record(kind string, svc stub.Service, namespace string) ([]byte, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	call := Call{
		Kind:      kind,
		Service:   svc.Name(),
		Package:   svc.Package(),
		CodecPath: svc.CodecPath(),
		Namespace: namespace,
	}
	for _, m := range svc.Methods() {
		req, resp := m.RequestResponse(namespace)
		call.Methods = append(call.Methods, MethodCall{
			Name:            m.Name(),
			Identifier:      m.Identifier(),
			ClientStreaming: m.ClientStreaming(),
			ServerStreaming: m.ServerStreaming(),
			Request:         req,
			Response:        resp,
		})
	}
	r.Calls = append(r.Calls, call)
	return []byte(fmt.Sprintf("// %s stub for %s\n", kind, svc.Name())), nil
}
