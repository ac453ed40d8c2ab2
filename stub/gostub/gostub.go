// Package gostub is the reference stub backend: it emits grpc-go compatible
// client and server code for a girpc service.
//
// The client side is a plain struct over grpc.ClientConnInterface that forces
// the service codec on every call. The server side is an interface plus the
// grpc.ServiceDesc handlers that dispatch to it. Generated code depends only
// on context, grpc-go and the girpc runtime.
package gostub

import (
	"bytes"
	"fmt"

	"github.com/varekai/girpc/stub"
)

// Generator emits Go source. The zero value is ready to use.
type Generator struct{}

var _ stub.Generator = (*Generator)(nil)

// Imports returns the import set the emitted code references.
func (g *Generator) Imports(svc stub.Service) map[string]string {
	return map[string]string{
		"context": "context",
		"grpc":    "google.golang.org/grpc",
		"girpc":   "github.com/varekai/girpc",
		"codec":   "github.com/varekai/girpc/codec",
	}
}

// GenerateClient emits the client struct and one calling method per service
// method.
func (g *Generator) GenerateClient(svc stub.Service, namespace string) ([]byte, error) {
	p := newPrinter()
	name := svc.Identifier()
	clientType := name + "Client"

	p.P("// ", clientType, " is the client API for the ", svc.Name(), " service.")
	p.P("type ", clientType, " struct {")
	p.P("cc grpc.ClientConnInterface")
	p.P("}")
	p.P()
	p.P("// New", clientType, " returns a client for the ", svc.Name(), " service. The connection")
	p.P("// should use the service codec; see girpc.Dial.")
	p.P("func New", clientType, "(cc grpc.ClientConnInterface) *", clientType, " {")
	p.P("return &", clientType, "{cc: cc}")
	p.P("}")
	p.P()

	for _, m := range svc.Methods() {
		if m.ClientStreaming() {
			return nil, fmt.Errorf("method %s.%s: client streaming is not supported by the gostub backend", name, m.Name())
		}
		req, resp := m.RequestResponse(namespace)
		if m.ServerStreaming() {
			g.clientStream(p, svc, m, req, resp)
		} else {
			g.clientUnary(p, svc, m, req, resp)
		}
	}

	return p.Bytes(), nil
}

func (g *Generator) clientUnary(p *printer, svc stub.Service, m stub.Method, req, resp string) {
	clientType := svc.Identifier() + "Client"
	p.P("func (c *", clientType, ") ", m.Identifier(), "(ctx context.Context, in ", req, ", opts ...grpc.CallOption) (", resp, ", error) {")
	p.P("var out ", resp)
	p.P("err := c.cc.Invoke(ctx, ", methodPath(svc, m), ", &in, &out, append(opts, grpc.ForceCodec(", svc.CodecPath(), "))...)")
	p.P("return out, err")
	p.P("}")
	p.P()
}

func (g *Generator) clientStream(p *printer, svc stub.Service, m stub.Method, req, resp string) {
	clientType := svc.Identifier() + "Client"
	streamType := svc.Identifier() + m.Identifier() + "ClientStream"
	descVar := streamDescVar(svc, m)

	p.P("var ", descVar, " = grpc.StreamDesc{")
	p.P("StreamName: ", fmt.Sprintf("%q", m.Name()), ",")
	p.P("ServerStreams: true,")
	p.P("}")
	p.P()
	p.P("func (c *", clientType, ") ", m.Identifier(), "(ctx context.Context, in ", req, ", opts ...grpc.CallOption) (*", streamType, ", error) {")
	p.P("s, err := c.cc.NewStream(ctx, &", descVar, ", ", methodPath(svc, m), ", append(opts, grpc.ForceCodec(", svc.CodecPath(), "))...)")
	p.P("if err != nil {")
	p.P("return nil, err")
	p.P("}")
	p.P("x := &", streamType, "{s}")
	p.P("if err := x.ClientStream.SendMsg(&in); err != nil {")
	p.P("return nil, err")
	p.P("}")
	p.P("if err := x.ClientStream.CloseSend(); err != nil {")
	p.P("return nil, err")
	p.P("}")
	p.P("return x, nil")
	p.P("}")
	p.P()
	p.P("// ", streamType, " is the response sequence of ", svc.Name(), ".", m.Name(), ": lazy,")
	p.P("// bounded by the network stream, and not restartable.")
	p.P("type ", streamType, " struct {")
	p.P("grpc.ClientStream")
	p.P("}")
	p.P()
	p.P("func (x *", streamType, ") Recv() (", resp, ", error) {")
	p.P("var m ", resp)
	p.P("err := x.ClientStream.RecvMsg(&m)")
	p.P("return m, err")
	p.P("}")
	p.P()
}

// GenerateServer emits the server interface, per-method handlers, the stream
// wrapper types and the grpc.ServiceDesc.
func (g *Generator) GenerateServer(svc stub.Service, namespace string) ([]byte, error) {
	p := newPrinter()
	name := svc.Identifier()
	serverType := name + "Server"

	p.P("// ", serverType, " is the server API for the ", svc.Name(), " service.")
	p.P("type ", serverType, " interface {")
	for _, m := range svc.Methods() {
		if m.ClientStreaming() {
			return nil, fmt.Errorf("method %s.%s: client streaming is not supported by the gostub backend", name, m.Name())
		}
		req, resp := m.RequestResponse(namespace)
		if m.ServerStreaming() {
			p.P(m.Identifier(), "(in ", req, ", stream *", name, m.Identifier(), "ServerStream) error")
		} else {
			p.P(m.Identifier(), "(ctx context.Context, in ", req, ") (", resp, ", error)")
		}
	}
	p.P("}")
	p.P()
	p.P("// Register", serverType, " registers srv on a grpc server. The girpc runtime")
	p.P("// registers every girpc codec, so clients may use any of them.")
	p.P("func Register", serverType, "(s grpc.ServiceRegistrar, srv ", serverType, ") {")
	p.P("s.RegisterService(&", serviceDescVar(svc), ", srv)")
	p.P("}")
	p.P()

	for _, m := range svc.Methods() {
		req, resp := m.RequestResponse(namespace)
		if m.ServerStreaming() {
			g.serverStream(p, svc, m, req, resp)
		} else {
			g.serverUnary(p, svc, m, req)
		}
	}

	g.serviceDesc(p, svc)
	return p.Bytes(), nil
}

func (g *Generator) serverUnary(p *printer, svc stub.Service, m stub.Method, req string) {
	name := svc.Identifier()
	p.P("func ", handlerVar(svc, m), "(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {")
	p.P("var in ", req)
	p.P("if err := dec(&in); err != nil {")
	p.P("return nil, err")
	p.P("}")
	p.P("if interceptor == nil {")
	p.P("return srv.(", name, "Server).", m.Identifier(), "(ctx, in)")
	p.P("}")
	p.P("info := &grpc.UnaryServerInfo{")
	p.P("Server: srv,")
	p.P("FullMethod: ", methodPath(svc, m), ",")
	p.P("}")
	p.P("handler := func(ctx context.Context, req interface{}) (interface{}, error) {")
	p.P("return srv.(", name, "Server).", m.Identifier(), "(ctx, *req.(*", req, "))")
	p.P("}")
	p.P("return interceptor(ctx, &in, info, handler)")
	p.P("}")
	p.P()
}

func (g *Generator) serverStream(p *printer, svc stub.Service, m stub.Method, req, resp string) {
	name := svc.Identifier()
	streamType := name + m.Identifier() + "ServerStream"

	p.P("func ", handlerVar(svc, m), "(srv interface{}, stream grpc.ServerStream) error {")
	p.P("var in ", req)
	p.P("if err := stream.RecvMsg(&in); err != nil {")
	p.P("return err")
	p.P("}")
	p.P("return srv.(", name, "Server).", m.Identifier(), "(in, &", streamType, "{stream})")
	p.P("}")
	p.P()
	p.P("// ", streamType, " sends the response sequence of ", svc.Name(), ".", m.Name(), ".")
	p.P("type ", streamType, " struct {")
	p.P("grpc.ServerStream")
	p.P("}")
	p.P()
	p.P("func (x *", streamType, ") Send(m ", resp, ") error {")
	p.P("return x.ServerStream.SendMsg(&m)")
	p.P("}")
	p.P()
}

func (g *Generator) serviceDesc(p *printer, svc stub.Service) {
	p.P("var ", serviceDescVar(svc), " = grpc.ServiceDesc{")
	p.P("ServiceName: ", fmt.Sprintf("%q", svc.Name()), ",")
	p.P("HandlerType: (*", svc.Identifier(), "Server)(nil),")
	p.P("Methods: []grpc.MethodDesc{")
	for _, m := range svc.Methods() {
		if m.ServerStreaming() {
			continue
		}
		p.P("{")
		p.P("MethodName: ", fmt.Sprintf("%q", m.Name()), ",")
		p.P("Handler: ", handlerVar(svc, m), ",")
		p.P("},")
	}
	p.P("},")
	p.P("Streams: []grpc.StreamDesc{")
	for _, m := range svc.Methods() {
		if !m.ServerStreaming() {
			continue
		}
		p.P("{")
		p.P("StreamName: ", fmt.Sprintf("%q", m.Name()), ",")
		p.P("Handler: ", handlerVar(svc, m), ",")
		p.P("ServerStreams: true,")
		p.P("},")
	}
	p.P("},")
	p.P("Metadata: \"girpc\",")
	p.P("}")
	p.P()
	p.P("// Reference the runtime so codec registration always runs.")
	p.P("var _ girpc.Empty")
}

func methodPath(svc stub.Service, m stub.Method) string {
	return fmt.Sprintf("%q", "/"+svc.Package()+"/"+m.Name())
}

func handlerVar(svc stub.Service, m stub.Method) string {
	return "_" + svc.Identifier() + "_" + m.Identifier() + "_Handler"
}

func serviceDescVar(svc stub.Service) string {
	return "_" + svc.Identifier() + "_serviceDesc"
}

func streamDescVar(svc stub.Service, m stub.Method) string {
	return "_" + svc.Identifier() + "_" + m.Identifier() + "_StreamDesc"
}

// printer accumulates emitted lines. Indentation is left to go/format, which
// the generator runs over the assembled file.
type printer struct {
	buf bytes.Buffer
}

func newPrinter() *printer { return &printer{} }

// P prints the arguments followed by a newline.
func (p *printer) P(args ...any) {
	for _, a := range args {
		fmt.Fprint(&p.buf, a)
	}
	p.buf.WriteByte('\n')
}

func (p *printer) Bytes() []byte { return p.buf.Bytes() }
