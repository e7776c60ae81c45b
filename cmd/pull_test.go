package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPull(t *testing.T) {
	t.Run("prints the graph payload", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.publish("summariser.json", summariserSeed)

		out := env.run("pull", id)

		var graph struct {
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &graph))
		require.Len(t, graph.Nodes, 2)
		assert.Equal(t, "input", graph.Nodes[0].ID)
	})

	t.Run("records a download", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.publish("summariser.json", summariserSeed)

		_, downloads := catalogStats(env)
		assert.Equal(t, int64(0), downloads)

		env.run("pull", id)
		env.run("pull", id)

		_, downloads = catalogStats(env)
		assert.Equal(t, int64(2), downloads)
	})

	t.Run("specific revision", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.publish("summariser.json", summariserSeed)
		env.writeFile("v2.json", `{
  "name": "Summariser",
  "description": "Second revision",
  "graph": {"nodes": [{"id": "rewritten"}]}
}`)
		env.run("publish", "v2.json", "--new-version", id, "-a", "tester")

		out := env.run("pull", id)
		env.contains(out, "rewritten")

		out = env.run("pull", id, "-v", "1")
		env.contains(out, "summarise")
		assert.NotContains(t, out, "rewritten")
	})

	t.Run("writes to a file", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.publish("summariser.json", summariserSeed)
		dst := filepath.Join(env.dir, "agent.json")

		out := env.run("pull", id, "-f", dst)
		env.contains(out, "Pulled Summariser v1 -> ")

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"nodes"`)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.publish("summariser.json", summariserSeed)
		dst := filepath.Join(env.dir, "agent.json")
		require.NoError(t, os.WriteFile(dst, []byte("precious"), 0644))

		out, err := env.runErr("pull", id, "-f", dst)
		assert.Error(t, err)
		env.contains(out, "file exists")

		data, readErr := os.ReadFile(dst)
		require.NoError(t, readErr)
		assert.Equal(t, "precious", string(data))

		env.run("pull", id, "-f", dst, "--force")
		data, readErr = os.ReadFile(dst)
		require.NoError(t, readErr)
		assert.Contains(t, string(data), `"nodes"`)
	})

	t.Run("json returns the full listing", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.publish("summariser.json", summariserSeed)

		out := env.run("pull", id, "-o", "json")
		var a struct {
			ID    string          `json:"id"`
			Name  string          `json:"name"`
			Graph json.RawMessage `json:"graph"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &a))
		assert.Equal(t, id, a.ID)
		assert.Equal(t, "Summariser", a.Name)
		assert.NotEmpty(t, a.Graph)
	})

	t.Run("unknown id records nothing", func(t *testing.T) {
		env := newTestEnv(t)
		env.publish("summariser.json", summariserSeed)

		out, err := env.runErr("pull", "00000000-0000-0000-0000-000000000000")
		assert.Error(t, err)
		env.contains(out, "not found")

		_, downloads := catalogStats(env)
		assert.Equal(t, int64(0), downloads)
	})
}
