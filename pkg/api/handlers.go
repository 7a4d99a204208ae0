package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astraweave/core/pkg/version"
)

// healthHandler handles GET /health. It reports process liveness only;
// it never touches the world, so it is safe to call from an external
// orchestrator without risking a stalled tick.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: version.GitCommit})
}

// snapshotHandler handles GET /snapshot/:entity. entity is the raw
// uint32 id a plan.ActionStep or snapshot.EnemyState would carry, not a
// full ecs.Entity (its generation is resolved internally via World.ByID).
func (s *Server) snapshotHandler(c *gin.Context) {
	raw, err := strconv.ParseUint(c.Param("entity"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity must be a non-negative integer"})
		return
	}
	id := uint32(raw)

	e, ok := s.app.W.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no live entity with that id"})
		return
	}

	view := EntityView{ID: e.ID, Gen: e.Gen, Name: s.app.W.Name(e)}
	if pos, ok := s.app.W.PosOf(e); ok {
		view.Pos = [2]int32{pos.X, pos.Y}
	}
	if hp, ok := s.app.W.Health(e); ok {
		view.HP = hp.HP
	}
	if team, ok := s.app.W.Team(e); ok {
		view.Team = team.ID
	}
	if ammo, ok := s.app.W.Ammo(e); ok {
		view.Ammo = ammo.Rounds
	}
	if cds, ok := s.app.W.Cooldowns(e); ok {
		cooldowns := make(map[string]float64, len(cds))
		for _, entry := range cds.Sorted() {
			cooldowns[entry.Key] = entry.Remaining
		}
		view.Cooldowns = cooldowns
	}

	c.JSON(http.StatusOK, view)
}

// tickHandler handles POST /tick, advancing the world by the requested
// number of fixed-size ticks (one, if the body is empty or omits Ticks).
// This is the only route that mutates the world; every other route is a
// read-only introspection view.
func (s *Server) tickHandler(c *gin.Context) {
	var req TickRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	n := req.Ticks
	if n <= 0 {
		n = 1
	}

	s.app.RunFixed(n)

	c.JSON(http.StatusOK, TickResponse{TicksRun: n, WorldT: s.app.W.Time()})
}

// toolsHandler handles GET /tools, returning the registry this server
// was constructed with verbatim.
func (s *Server) toolsHandler(c *gin.Context) {
	tools := make([]toolView, 0, len(s.registry.Tools))
	for _, t := range s.registry.Tools {
		tools = append(tools, toolView{Name: t.Name, Args: t.Args})
	}
	c.JSON(http.StatusOK, ToolsResponse{
		Tools: tools,
		Constraints: constraints{
			EnforceCooldowns: s.registry.Constraints.EnforceCooldowns,
			EnforceLOS:       s.registry.Constraints.EnforceLOS,
			EnforceStamina:   s.registry.Constraints.EnforceStamina,
		},
	})
}
