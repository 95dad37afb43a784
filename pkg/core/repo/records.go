package repo

import (
	"context"

	"github.com/momeni/smartcar-care/pkg/core/model"
)

// Records is the persistence port of the garage record store. The use
// cases layer owns the in-memory car and service containers and only
// uses this port to reload them at startup and to rewrite them after
// each mutation. Implementations hold no state beyond a transient copy
// during a Load or SaveAll call.
type Records interface {
	// Load reads both containers from the backing storage. An absent
	// backing file yields an empty container (a first run is not an
	// error), while an existing but malformed file causes an error
	// with the cerr.KindStorageRead kind.
	Load(ctx context.Context) (cars []model.Car, services []model.ServiceRecord, err error)

	// SaveAll rewrites both containers in full, replacing whatever
	// was persisted before. Each container must be replaced atomically
	// so a failed call may not leave a file truncated relative to its
	// last good state, although the two containers are written
	// independently and are not covered by one transaction. Failures
	// carry the cerr.KindStorageWrite kind.
	SaveAll(ctx context.Context, cars []model.Car, services []model.ServiceRecord) error
}
