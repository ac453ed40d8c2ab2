package girpcgen

import (
	"bytes"
	"fmt"

	"github.com/varekai/girpc/ir"
)

// emitAliases writes the type alias declarations binding every synthesized
// request/response name to its concrete type. The aliases land in the same
// file as the generated client and server code, so both resolve them from the
// interface's own scope. Order follows method order; aliases are unique by
// construction, so nothing needs deduplication.
func emitAliases(buf *bytes.Buffer, svc *ir.ServiceDescriptor) {
	for _, m := range svc.Methods {
		fmt.Fprintf(buf, "type %s = %s\n", m.RequestAlias, m.RequestType)
		fmt.Fprintf(buf, "type %s = %s\n", m.ResponseAlias, m.ResponseType)
	}
	if len(svc.Methods) > 0 {
		buf.WriteByte('\n')
	}
}
