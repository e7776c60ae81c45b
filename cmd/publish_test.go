package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	t.Run("creates listing at v1", func(t *testing.T) {
		env := newTestEnv(t)

		env.writeFile("summariser.json", summariserSeed)
		out := env.run("publish", "summariser.json", "-a", "tester")
		env.contains(out, "Published Summariser v1")

		out = env.run("ls")
		env.contains(out, "Summariser")
	})

	t.Run("reads seed from stdin", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.runStdin(translatorSeed, "publish", "-", "-a", "tester")
		env.contains(out, "Published Translator v1")
	})

	t.Run("author from config", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "author.name", "Configured Author")

		env.writeFile("seed.json", summariserSeed)
		env.run("publish", "seed.json")

		out := env.run("authors")
		env.contains(out, "Configured Author")
	})

	t.Run("author flag wins over config", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "author.name", "Configured Author")

		env.writeFile("seed.json", summariserSeed)
		env.run("publish", "seed.json", "-a", "Flag Author")

		out := env.run("authors")
		env.contains(out, "Flag Author")
	})

	t.Run("seed author wins over flag", func(t *testing.T) {
		env := newTestEnv(t)

		env.writeFile("seed.json", `{"name": "Owned", "description": "has its own author", "author": "seed-author"}`)
		env.run("publish", "seed.json", "-a", "Flag Author")

		out := env.run("authors")
		env.contains(out, "seed-author")
	})

	t.Run("json output", func(t *testing.T) {
		env := newTestEnv(t)

		env.writeFile("seed.json", summariserSeed)
		out := env.run("publish", "seed.json", "-a", "tester", "-o", "json")

		var a struct {
			ID       string          `json:"id"`
			Version  int             `json:"version"`
			Name     string          `json:"name"`
			Author   string          `json:"author"`
			Keywords []string        `json:"keywords"`
			Graph    json.RawMessage `json:"graph"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &a))
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, 1, a.Version)
		assert.Equal(t, "Summariser", a.Name)
		assert.Equal(t, "tester", a.Author)
		assert.Equal(t, []string{"nlp", "summaries"}, a.Keywords)
		assert.NotEmpty(t, a.Graph)
	})
}

func TestPublish_NewVersion(t *testing.T) {
	env := newTestEnv(t)

	id := env.publish("v1.json", summariserSeed)

	env.writeFile("v2.json", `{
  "name": "Summariser",
  "description": "Summarises long documents, now with citations",
  "keywords": ["nlp", "summaries", "citations"],
  "categories": ["productivity"],
  "graph": {"nodes": [{"id": "input"}, {"id": "summarise"}, {"id": "cite"}]}
}`)
	out := env.run("publish", "v2.json", "--new-version", id, "-a", "tester")
	env.contains(out, "Published Summariser v2")

	out = env.run("revisions", id)
	env.contains(out, "v1")
	env.contains(out, "v2")
}

func TestPublish_Errors(t *testing.T) {
	t.Run("author required", func(t *testing.T) {
		env := newTestEnv(t)

		env.writeFile("seed.json", summariserSeed)
		out, err := env.runErr("publish", "seed.json")
		assert.Error(t, err)
		env.contains(out, "author not configured")
		env.contains(out, "agora config author.name")
	})

	t.Run("missing name rejected", func(t *testing.T) {
		env := newTestEnv(t)

		env.writeFile("seed.json", `{"description": "anonymous draft"}`)
		out, err := env.runErr("publish", "seed.json", "-a", "tester")
		assert.Error(t, err)
		env.contains(out, "name")
	})

	t.Run("malformed seed rejected", func(t *testing.T) {
		env := newTestEnv(t)

		env.writeFile("seed.json", `{"name": "Broken", "description": "bad payload", "graph": {broken}}`)
		out, err := env.runErr("publish", "seed.json", "-a", "tester")
		assert.Error(t, err)
		env.contains(out, "parsing")
	})

	t.Run("array seed rejected", func(t *testing.T) {
		env := newTestEnv(t)

		env.writeFile("seeds.json", "["+summariserSeed+","+translatorSeed+"]")
		out, err := env.runErr("publish", "seeds.json", "-a", "tester")
		assert.Error(t, err)
		env.contains(out, "use import for bulk loads")
	})

	t.Run("new-version of unknown id", func(t *testing.T) {
		env := newTestEnv(t)

		env.writeFile("seed.json", summariserSeed)
		out, err := env.runErr("publish", "seed.json", "--new-version", "9b2e7d30-0000-0000-0000-000000000000", "-a", "tester")
		assert.Error(t, err)
		env.contains(out, "not found")
	})
}
