// Package ir defines the canonical descriptors the girpc generator produces
// from an annotated Go interface. These are codec-agnostic representations of
// one service's shape; emitters and stub generators consume them without ever
// looking back at the source syntax.
package ir

// GenPrefix is the prefix of every synthesized alias identifier.
//
// Aliases have the form "__generated_<Service>_<Method>_request" (and
// "_response"). The double underscore keeps them out of the way of
// user-defined identifiers; uniqueness within a module follows from the
// service and method names being unique.
const GenPrefix = "__generated_"

// UnitType is the canonical placeholder response type for methods that
// declare no result. It resolves to girpc.Empty in generated code.
const UnitType = "girpc.Empty"

// MethodDescriptor represents a single RPC method's shape and streaming mode.
type MethodDescriptor struct {
	// Name is the method identifier, copied verbatim from the interface.
	// It doubles as the generation identifier; girpc keeps no separate
	// short/long name distinction.
	Name string

	// RequestType is the type expression of the method's sole parameter,
	// preserved token-for-token. The generator never resolves or validates
	// it; type errors surface when the generated file is compiled.
	RequestType string

	// ResponseType is the declared result type expression, or UnitType if
	// the method declares no result.
	ResponseType string

	// ClientStreaming is structurally supported by the descriptor model but
	// never derived from source: no client-streaming annotation exists in
	// the directive vocabulary, so this is always false today.
	ClientStreaming bool

	// ServerStreaming is true iff the method carried the
	// //girpc:server_streaming directive.
	ServerStreaming bool

	// RequestAlias and ResponseAlias are the synthesized type names the
	// stub generator references instead of the original type expressions.
	// They are derived deterministically from the service and method names
	// so repeated builds produce byte-identical output.
	RequestAlias  string
	ResponseAlias string
}

// ServiceDescriptor represents a whole service: its name plus the ordered
// list of its methods.
type ServiceDescriptor struct {
	// Name is the interface identifier. girpc deliberately collapses the
	// generation name, package and identifier into this single value.
	Name string

	// Package is the Go package name the interface was declared in; the
	// generated file is emitted into the same package so the synthesized
	// aliases resolve in the interface's own scope.
	Package string

	// Codec is the wire codec selected by the //girpc:service directive.
	// One codec per service; all methods share it.
	Codec string

	// Methods in declaration order. Order determines emission order and
	// nothing else.
	Methods []MethodDescriptor

	// Imports maps package qualifiers referenced by the captured type
	// expressions to their import paths. Go imports are file-scoped, so the
	// generated file must re-import whatever the alias targets mention.
	Imports map[string]string
}
