// Package girpc turns plain Go interfaces into gRPC services.
//
// Instead of writing a .proto file, declare a service as an interface and
// annotate it with a codec:
//
//	//girpc:service json
//	type Calc interface {
//		Add(pair Pair) int32
//		//girpc:server_streaming
//		Watch(topic string) Event
//	}
//
// Running `girpc gen` (typically via go:generate) writes a file into the same
// package containing type aliases for every request/response pair, a client
// struct, and a server interface with its grpc.ServiceDesc. Argument and
// result types only need to be serializable by the selected codec; see the
// codec package for the available encodings.
//
// This package is the small runtime the generated code depends on: the unit
// placeholder type, codec registration, and dial/server conveniences. All of
// the actual transport work is grpc-go's.
package girpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"

	"github.com/varekai/girpc/codec"
)

// Empty is the canonical unit type. Methods that declare no result get a
// response alias bound to Empty.
type Empty struct{}

func init() {
	// Make every girpc codec resolvable by content-subtype so servers can
	// decode calls from clients generated with any of them.
	for _, c := range []codec.Codec{codec.JSON, codec.Gob, codec.CBOR, codec.Msgpack} {
		encoding.RegisterCodec(grpcCodec{c})
	}
}

// grpcCodec adapts a codec.Codec to grpc-go's encoding.Codec.
type grpcCodec struct {
	codec.Codec
}

func (c grpcCodec) Marshal(v any) ([]byte, error)      { return c.Codec.Marshal(v) }
func (c grpcCodec) Unmarshal(data []byte, v any) error { return c.Codec.Unmarshal(data, v) }

// Dial opens a client connection that uses the given codec for every call.
// It defaults to insecure transport credentials unless the options say
// otherwise; girpc targets the same trusted-network setups its generated
// servers run in, and callers can always pass their own credentials.
func Dial(target string, c codec.Codec, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(grpcCodec{c})),
	}
	return grpc.NewClient(target, append(base, opts...)...)
}

// NewServer returns a grpc.Server ready to have generated services
// registered on it.
func NewServer(opts ...grpc.ServerOption) *grpc.Server {
	return grpc.NewServer(opts...)
}
