// Package codec provides the wire codecs a girpc service can select.
//
// The generator itself never serializes anything; it only records which codec
// a service chose and threads that identifier into the generated stubs. The
// implementations here are what those stubs use at runtime. Every Codec is
// shape-compatible with grpc-go's encoding.Codec, so the generated client can
// pass one to grpc.ForceCodec directly.
package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes request and response values for one wire format.
type Codec interface {
	// Name identifies the codec on the wire; it becomes the gRPC
	// content-subtype of every call made with it.
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// The closed set of codecs a //girpc:service directive may select.
var (
	JSON    Codec = jsonCodec{}
	Gob     Codec = gobCodec{}
	CBOR    Codec = cborCodec{}
	Msgpack Codec = msgpackCodec{}
)

var byName = map[string]Codec{
	JSON.Name():    JSON,
	Gob.Name():     Gob,
	CBOR.Name():    CBOR,
	Msgpack.Name(): Msgpack,
}

// Get returns the codec with the given name.
func Get(name string) (Codec, error) {
	c, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (expected one of %s)", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names returns the selectable codec names in a fixed order. This is the
// single definition of the codec vocabulary; anything mapping codec names
// elsewhere must cover exactly this set.
func Names() []string {
	return []string{JSON.Name(), Gob.Name(), CBOR.Name(), Msgpack.Name()}
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// gobCodec is the Go-native counterpart of a compact binary encoding.
// Both peers must be generated from the same interface for the stream
// to decode, which is already a requirement of girpc as a whole.
type gobCodec struct{}

func (gobCodec) Name() string { return "gob" }

func (gobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

type cborCodec struct{}

func (cborCodec) Name() string                       { return "cbor" }
func (cborCodec) Marshal(v any) ([]byte, error)      { return cbor.Marshal(v) }
func (cborCodec) Unmarshal(data []byte, v any) error { return cbor.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return "msgpack" }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
