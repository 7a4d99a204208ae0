package llmiface_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraweave/core/pkg/llmiface"
	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/snapshot"
)

func TestDefaultRegistryHasEveryStepKind(t *testing.T) {
	reg := llmiface.DefaultRegistry()
	for _, k := range []string{"MoveTo", "Attack", "CoverFire", "Throw", "Reload", "Heal", "Revive", "Scan", "Wait"} {
		assert.True(t, reg.Has(k), "registry missing %s", k)
	}
	assert.False(t, reg.Has("Nonexistent"))
}

func TestHTTPPlannerParsesValidPlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"plan_id":"plan-1000","steps":[{"Wait":{"duration":1}}]}`))
	}))
	defer srv.Close()

	p := llmiface.NewHTTPPlanner(srv.URL, llmiface.DefaultRegistry())
	intent, err := p.Plan(context.Background(), snapshot.Snapshot{}, 1000)
	require.NoError(t, err)
	assert.Equal(t, "plan-1000", intent.PlanID)
	require.Len(t, intent.Steps, 1)
	assert.Equal(t, plan.KindWait, intent.Steps[0].Kind)
}

func TestHTTPPlannerRejectsEmptyPlanAsPlannerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plan_id":"plan-1","steps":[]}`))
	}))
	defer srv.Close()

	p := llmiface.NewHTTPPlanner(srv.URL, llmiface.DefaultRegistry())
	_, err := p.Plan(context.Background(), snapshot.Snapshot{}, 1000)
	var perr *llmiface.PlannerError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, llmiface.KindEmpty, perr.Kind)
}

func TestHTTPPlannerRejectsNonOKStatusAsSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	p := llmiface.NewHTTPPlanner(srv.URL, llmiface.DefaultRegistry())
	_, err := p.Plan(context.Background(), snapshot.Snapshot{}, 1000)
	var perr *llmiface.PlannerError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, llmiface.KindSchema, perr.Kind)
}
