package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.SetPopulation(12, 30)
	c.SetAverageFPS(59.5)
	c.IncCommand("add_node")
	c.IncCommand("add_node")
	c.IncCommand("reset")
	c.ObserveRebuild(3 * time.Millisecond)

	assert.Equal(t, 12.0, testutil.ToFloat64(c.nodes))
	assert.Equal(t, 30.0, testutil.ToFloat64(c.edges))
	assert.Equal(t, 59.5, testutil.ToFloat64(c.fps))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.commands.WithLabelValues("add_node")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commands.WithLabelValues("reset")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.rebuild))
}

func TestHandler(t *testing.T) {
	c := NewCollector()
	c.SetPopulation(3, 2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "bondgraph_nodes 3"), body)
	assert.Contains(t, body, "bondgraph_edges 2")
}
