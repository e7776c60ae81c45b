package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTop(t *testing.T) {
	t.Run("orders by downloads", func(t *testing.T) {
		env := newTestEnv(t)
		_, tr, p := seedCatalog(env)

		env.run("pull", p)
		env.run("pull", p)
		env.run("pull", tr)

		out := env.run("top")
		env.contains(out, "DOWNLOADS")
		pIdx := strings.Index(out, "Trip Planner")
		tIdx := strings.Index(out, "Translator")
		sIdx := strings.Index(out, "Summariser")
		require.True(t, pIdx >= 0 && tIdx >= 0 && sIdx >= 0, "missing listings in output: %s", out)
		assert.Less(t, pIdx, tIdx)
		assert.Less(t, tIdx, sIdx)
	})

	t.Run("zero-download listings still rank", func(t *testing.T) {
		env := newTestEnv(t)
		env.publish("summariser.json", summariserSeed)

		out := env.run("top")
		env.contains(out, "Summariser")
	})

	t.Run("counters in json output", func(t *testing.T) {
		env := newTestEnv(t)
		_, _, p := seedCatalog(env)

		env.run("pull", p)
		env.run("show", p)
		env.run("show", p)

		out := env.run("top", "-o", "json")
		var page struct {
			Items []struct {
				Name      string `json:"name"`
				Downloads int64  `json:"downloads"`
				Views     int64  `json:"views"`
			} `json:"items"`
			TotalCount int64 `json:"totalCount"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		require.NotEmpty(t, page.Items)
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Equal(t, "Trip Planner", page.Items[0].Name)
		assert.Equal(t, int64(1), page.Items[0].Downloads)
		assert.Equal(t, int64(2), page.Items[0].Views)
	})

	t.Run("shows the latest revision", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.publish("summariser.json", summariserSeed)
		env.run("pull", id)
		env.writeFile("v2.json", `{
  "name": "Summariser Pro",
  "description": "Second revision",
  "graph": {"nodes": []}
}`)
		env.run("publish", "v2.json", "--new-version", id, "-a", "tester")

		out := env.run("top")
		env.contains(out, "Summariser Pro")
	})

	t.Run("paginates", func(t *testing.T) {
		env := newTestEnv(t)
		seedCatalog(env)

		out := env.run("top", "--size", "2")
		env.contains(out, "page 1 of 2 (3 listings)")
	})

	t.Run("empty catalog prints nothing", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("top")
		assert.Equal(t, "", strings.TrimSpace(out))
	})
}
