package command

import (
	"fmt"
	"strconv"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/google/uuid"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/identity"
	"github.com/lattice-sh/control-plane/pkg/hierarchyctx"
)

func ptrContext(c hierarchyctx.Context) *hierarchyctx.Context { return &c }

func formatID(v int64) string { return strconv.FormatInt(v, 10) }

func newTaskID() string { return uuid.NewString() }

// roleFromCasdoor projects a materialized Casdoor role into the identity
// cache's Role shape. Casdoor addresses objects by owner/name rather than
// a separate opaque id.
func roleFromCasdoor(r *casdoorsdk.Role) identity.Role {
	return identity.Role{ID: fmt.Sprintf("%s/%s", r.Owner, r.Name), Name: r.Name}
}
