package girpcgen

import (
	"github.com/varekai/girpc/internal/parse"
	"github.com/varekai/girpc/ir"
)

// runtimeImportPath is the girpc runtime package, re-imported by generated
// files whenever a synthesized alias resolves to the unit type.
const runtimeImportPath = "github.com/varekai/girpc"

// Normalize converts one raw method declaration into its canonical
// descriptor. It is total on well-formed input: the parser has already
// enforced the single-parameter shape, and everything here is deterministic
// so repeated builds emit byte-identical output.
func Normalize(serviceName string, raw parse.Method) ir.MethodDescriptor {
	response := raw.ResultType
	if response == "" {
		response = ir.UnitType
	}
	return ir.MethodDescriptor{
		Name:            raw.Name,
		RequestType:     raw.ParamType,
		ResponseType:    response,
		ClientStreaming: false,
		ServerStreaming: raw.ServerStreaming,
		RequestAlias:    alias(serviceName, raw.Name, "request"),
		ResponseAlias:   alias(serviceName, raw.Name, "response"),
	}
}

func alias(service, method, suffix string) string {
	return ir.GenPrefix + service + "_" + method + "_" + suffix
}

// Assemble wraps a raw service's normalized methods into a service
// descriptor. Pure aggregation: declaration order is preserved and no
// validation happens beyond what Normalize and the parser already did.
func Assemble(packageName string, raw parse.Service) ir.ServiceDescriptor {
	svc := ir.ServiceDescriptor{
		Name:    raw.Name,
		Package: packageName,
		Codec:   raw.Codec,
	}

	needsRuntime := false
	for _, m := range raw.Methods {
		desc := Normalize(raw.Name, m)
		if desc.ResponseType == ir.UnitType {
			needsRuntime = true
		}
		svc.Methods = append(svc.Methods, desc)
	}

	if len(raw.Imports) > 0 || needsRuntime {
		svc.Imports = make(map[string]string, len(raw.Imports)+1)
		for q, p := range raw.Imports {
			svc.Imports[q] = p
		}
		if needsRuntime {
			svc.Imports["girpc"] = runtimeImportPath
		}
	}
	return svc
}
