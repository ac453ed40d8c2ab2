package gostub

import (
	"bytes"
	"go/format"
	"sort"
	"strings"
	"testing"

	"github.com/varekai/girpc/stub"
)

type fakeMethod struct {
	name            string
	req, resp       string
	serverStreaming bool
	clientStreaming bool
}

func (m fakeMethod) Name() string          { return m.name }
func (m fakeMethod) Identifier() string    { return m.name }
func (m fakeMethod) Comment() []string     { return nil }
func (m fakeMethod) ClientStreaming() bool { return m.clientStreaming }
func (m fakeMethod) ServerStreaming() bool { return m.serverStreaming }
func (m fakeMethod) RequestResponse(string) (string, string) {
	return m.req, m.resp
}

type fakeService struct {
	name    string
	codec   string
	methods []stub.Method
}

func (s fakeService) Name() string           { return s.name }
func (s fakeService) Package() string        { return s.name }
func (s fakeService) Identifier() string     { return s.name }
func (s fakeService) Comment() []string      { return nil }
func (s fakeService) Methods() []stub.Method { return s.methods }
func (s fakeService) CodecPath() string      { return s.codec }

func calcService() fakeService {
	return fakeService{
		name:  "Calc",
		codec: "codec.JSON",
		methods: []stub.Method{
			fakeMethod{name: "Add", req: "__generated_Calc_Add_request", resp: "__generated_Calc_Add_response"},
			fakeMethod{name: "Watch", req: "__generated_Calc_Watch_request", resp: "__generated_Calc_Watch_response", serverStreaming: true},
		},
	}
}

// flatten collapses all whitespace runs to single spaces so assertions are
// insensitive to gofmt's column alignment of composite literal keys.
func flatten(src []byte) string {
	return strings.Join(strings.Fields(string(src)), " ")
}

// assemble wraps emitted fragments into a complete file so go/format can
// verify they are valid Go syntax.
func assemble(t *testing.T, g *Generator, svc stub.Service, fragments ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("package calc\n\nimport (\n")
	imports := g.Imports(svc)
	paths := make([]string, 0, len(imports))
	for _, p := range imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		buf.WriteString("\t\"" + p + "\"\n")
	}
	buf.WriteString(")\n\n")
	buf.WriteString("type __generated_Calc_Add_request = int\n")
	buf.WriteString("type __generated_Calc_Add_response = int\n")
	buf.WriteString("type __generated_Calc_Watch_request = string\n")
	buf.WriteString("type __generated_Calc_Watch_response = string\n\n")
	for _, f := range fragments {
		buf.Write(f)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		t.Fatalf("emitted code does not parse: %v\n%s", err, buf.Bytes())
	}
	return src
}

func TestGenerateClient(t *testing.T) {
	g := &Generator{}
	svc := calcService()
	out, err := g.GenerateClient(svc, "")
	if err != nil {
		t.Fatalf("GenerateClient: %v", err)
	}
	src := flatten(assemble(t, g, svc, out))

	for _, want := range []string{
		"type CalcClient struct {",
		"func NewCalcClient(cc grpc.ClientConnInterface) *CalcClient {",
		"func (c *CalcClient) Add(ctx context.Context, in __generated_Calc_Add_request, opts ...grpc.CallOption) (__generated_Calc_Add_response, error) {",
		`c.cc.Invoke(ctx, "/Calc/Add", &in, &out, append(opts, grpc.ForceCodec(codec.JSON))...)`,
		"func (c *CalcClient) Watch(ctx context.Context, in __generated_Calc_Watch_request, opts ...grpc.CallOption) (*CalcWatchClientStream, error) {",
		"type CalcWatchClientStream struct {",
		"func (x *CalcWatchClientStream) Recv() (__generated_Calc_Watch_response, error) {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("client code missing %q\n%s", want, src)
		}
	}
}

func TestGenerateServer(t *testing.T) {
	g := &Generator{}
	svc := calcService()
	out, err := g.GenerateServer(svc, "")
	if err != nil {
		t.Fatalf("GenerateServer: %v", err)
	}
	src := flatten(assemble(t, g, svc, out))

	for _, want := range []string{
		"type CalcServer interface {",
		"Add(ctx context.Context, in __generated_Calc_Add_request) (__generated_Calc_Add_response, error)",
		"Watch(in __generated_Calc_Watch_request, stream *CalcWatchServerStream) error",
		"func RegisterCalcServer(s grpc.ServiceRegistrar, srv CalcServer) {",
		"func _Calc_Add_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {",
		"func _Calc_Watch_Handler(srv interface{}, stream grpc.ServerStream) error {",
		"var _Calc_serviceDesc = grpc.ServiceDesc{",
		`ServiceName: "Calc",`,
		`StreamName: "Watch",`,
		"ServerStreams: true,",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("server code missing %q\n%s", want, src)
		}
	}

	// Unary methods go in Methods, streaming methods in Streams, never both.
	if strings.Contains(src, `MethodName: "Watch"`) {
		t.Error("streaming method listed as a unary method in the service desc")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := &Generator{}
	svc := calcService()
	a, err := g.GenerateClient(svc, "")
	if err != nil {
		t.Fatalf("GenerateClient: %v", err)
	}
	b, err := g.GenerateClient(svc, "")
	if err != nil {
		t.Fatalf("GenerateClient: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("repeated client generation produced different output")
	}
}

func TestClientStreamingRejected(t *testing.T) {
	g := &Generator{}
	svc := fakeService{
		name:  "Up",
		codec: "codec.JSON",
		methods: []stub.Method{
			fakeMethod{name: "Push", req: "R", resp: "S", clientStreaming: true},
		},
	}
	if _, err := g.GenerateClient(svc, ""); err == nil {
		t.Error("GenerateClient accepted a client-streaming method")
	}
	if _, err := g.GenerateServer(svc, ""); err == nil {
		t.Error("GenerateServer accepted a client-streaming method")
	}
}
