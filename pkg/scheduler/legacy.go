package scheduler

import (
	"log/slog"
	"sort"

	"github.com/astraweave/core/pkg/ecs"
	"github.com/astraweave/core/pkg/world"
)

// LegacyBridge maps an external integer world's ids to this world's
// entities. Install with InsertResource before the first tick; the
// scheduler's sync-stage check (spec §4.9) verifies it every tick.
type LegacyBridge map[uint64]ecs.Entity

// StaleLegacyMapping is published (if a Bus[StaleLegacyMapping] resource
// is registered) or logged for every bridge entry whose entity no longer
// carries a matching LegacyId — either despawned, or its LegacyId
// component was overwritten or removed out from under the bridge.
type StaleLegacyMapping struct {
	ExternalID uint64
	Entity     ecs.Entity
}

// checkLegacyBridge is the sync system spec §4.9 requires: "any entity
// referenced by the bridge carries a LegacyId component; stale mappings
// are reported."
func checkLegacyBridge(w *world.World, logger *slog.Logger) {
	bridge, ok := ecs.Get[LegacyBridge](w.Resources)
	if !ok {
		return
	}

	ids := make([]uint64, 0, len(bridge))
	for id := range bridge {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	writer, hasBus := busWriter[StaleLegacyMapping](w)

	for _, extID := range ids {
		e := bridge[extID]
		legacy, hasLegacy := w.Legacy(e)
		if w.Alive(e) && hasLegacy && legacy.ID == extID {
			continue
		}
		stale := StaleLegacyMapping{ExternalID: extID, Entity: e}
		if hasBus {
			writer.Send(stale)
		}
		logger.Warn("scheduler: stale legacy bridge mapping",
			"external_id", extID, "entity", e, "alive", w.Alive(e))
	}
}

func busWriter[T any](w *world.World) (ecs.Writer[T], bool) {
	bus, ok := ecs.Get[*ecs.Bus[T]](w.Resources)
	if !ok {
		return ecs.Writer[T]{}, false
	}
	return bus.Writer(), true
}
