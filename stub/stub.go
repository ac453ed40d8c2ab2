// Package stub defines the contract between the girpc generator and a
// stub-generation backend.
//
// The generator core never emits calling or dispatch code itself. It adapts
// its service descriptors to the Service and Method accessor interfaces below
// and hands them to a Generator, which produces the client-side and
// server-side source text. The reference backend lives in stub/gostub; tests
// substitute recording fakes.
package stub

// Method is the per-method capability set a backend consumes.
type Method interface {
	// Name is the method's wire name.
	Name() string

	// Identifier is the name used for generated Go identifiers. girpc
	// always returns the same value as Name.
	Identifier() string

	// Comment returns documentation lines to attach to the generated
	// method. girpc services carry none.
	Comment() []string

	ClientStreaming() bool
	ServerStreaming() bool

	// RequestResponse returns the type references the backend should use
	// for the request and response in emitted code, resolvable from the
	// generated file's scope. The namespace argument is the prefix the
	// backend is generating into; girpc always passes "".
	RequestResponse(namespace string) (request, response string)
}

// Service is the per-service capability set a backend consumes.
// Name, Package and Identifier are distinct concepts in descriptor-driven
// generators; girpc collapses all three to the interface name.
type Service interface {
	Name() string
	Package() string
	Identifier() string
	Comment() []string
	Methods() []Method

	// CodecPath is the single fixed codec identifier threaded through to
	// emitted code. One codec per service; there is no per-method override.
	CodecPath() string
}

// Generator produces client and server source text for a service.
//
// Backends are opaque to the generator core: they either return valid source
// or an error, and errors propagate verbatim as build failures.
type Generator interface {
	// GenerateClient emits the client-side calling code for svc into the
	// given namespace ("" for the service's own scope).
	GenerateClient(svc Service, namespace string) ([]byte, error)

	// GenerateServer emits the server-side interface and dispatch code.
	GenerateServer(svc Service, namespace string) ([]byte, error)

	// Imports returns the import paths the emitted code references, so the
	// caller can assemble a complete file.
	Imports(svc Service) map[string]string
}
