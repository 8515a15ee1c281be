package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rest-mapper/internal/config"
	"rest-mapper/internal/mapping"
	"rest-mapper/internal/match"
	"rest-mapper/internal/resource"
	"rest-mapper/internal/schema"
)

const apiDoc = `
kind: core/rest-api
metadata:
  name: tasks
spec:
  methods:
    getTask:
      method: GET
      path: /tasks/{id}
      arguments:
        id: {type: string, transport: PATH}
      responseType: {ref: Task}
    addTask:
      method: POST
      path: /tasks/{id}
      arguments:
        id: {type: string, transport: PATH}
        task: {ref: Task, transport: BODY}
entities:
  - name: Task
    type: DTO
    properties:
      id: string
`

const emptyClientDoc = `
kind: core/rest-client
metadata:
  name: tasks-client
`

const conflictingClientDoc = `
kind: core/rest-client
metadata:
  name: tasks-client
spec:
  methods:
    fetchTask:
      method: GET
      path: /tasks/{id}
      arguments:
        id: {type: string, transport: PATH}
      responseType: {ref: Task}
entities:
  - name: Task
    type: DTO
    properties:
      id: integer
`

const unmappedClientDoc = `
kind: core/rest-client
metadata:
  name: tasks-client
spec:
  methods:
    getTask:
      method: GET
      path: /tasks/{id}
      arguments:
        id: {type: string, transport: PATH}
      responseType: {ref: Task}
entities:
  - name: Task
    type: DTO
    properties:
      id: string
`

const openAPIDoc = `
openapi: 3.0.3
info: {title: Task API, version: "1"}
paths:
  /tasks/{id}:
    get:
      operationId: getTask
      parameters:
        - {name: id, in: path, required: true, schema: {type: string}}
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: "#/components/schemas/Task"}
components:
  schemas:
    Task:
      type: object
      properties:
        id: {type: string}
`

type run struct {
	stdout, stderr bytes.Buffer
	err            error
}

func execute(t *testing.T, args ...string) *run {
	t.Helper()

	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvOutput, "")

	var r run

	root := NewRootCmd()
	root.SetOut(&r.stdout)
	root.SetErr(&r.stderr)
	root.SetArgs(args)

	r.err = root.Execute()

	return &r
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return path
}

func TestCheck_FreshClientIsWritten(t *testing.T) {
	dir := t.TempDir()
	api := writeFile(t, dir, "api.yaml", apiDoc)
	client := writeFile(t, dir, "client.yaml", emptyClientDoc)
	mappingPath := filepath.Join(dir, "mapping.yaml")

	r := execute(t, "check", "--api", api, "--client", client, "--mapping", mappingPath, "--write")
	require.NoError(t, r.err, r.stderr.String())

	assert.Contains(t, r.stdout.String(), "valid: true")
	assert.Contains(t, r.stderr.String(), "inputs loaded")
	assert.Contains(t, r.stderr.String(), "outputs written")

	written, err := resource.LoadFile(client)
	require.NoError(t, err)
	assert.Equal(t, []string{"getTask", "addTask"}, written.MethodIDs())
	assert.Equal(t, []string{"Task"}, written.Entities.Names())
	require.NotNil(t, written.Spec.Source)
	assert.Contains(t, written.Spec.Source.Value, "getTask(@Path id:string):Task")

	conn, err := mapping.LoadFile(mappingPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"getTask", "addTask"}, conn.Keys())

	// A second run restores the saved mapping and changes nothing.
	r = execute(t, "check", "--api", api, "--client", client, "--mapping", mappingPath)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout.String(), "valid: true")
}

func TestCheck_EntityConflictFails(t *testing.T) {
	dir := t.TempDir()
	api := writeFile(t, dir, "api.yaml", apiDoc)
	client := writeFile(t, dir, "client.yaml", conflictingClientDoc)

	r := execute(t, "check", "--api", api, "--client", client, "-o", "json")
	require.ErrorIs(t, r.err, ErrCheckFailed)

	var rep report
	require.NoError(t, json.Unmarshal(r.stdout.Bytes(), &rep))

	assert.False(t, rep.Valid)
	assert.Equal(t, "tasks", rep.Source)
	assert.Equal(t, "tasks-client", rep.Target)
	require.NotEmpty(t, rep.Issues)
	assert.Contains(t, rep.Issues[0], "Entity Task is defined differently")

	require.Len(t, rep.Entries, 3)
	for _, e := range rep.Entries {
		assert.False(t, e.Mapped)
	}
}

func TestCheck_SuggestsSourceForUnmappedTarget(t *testing.T) {
	dir := t.TempDir()
	api := writeFile(t, dir, "api.yaml", apiDoc)
	client := writeFile(t, dir, "client.yaml", unmappedClientDoc)
	stale := writeFile(t, dir, "mapping.yaml", "getTask:\n  targetId: ghost\n  type: EXACT\n")

	r := execute(t, "check", "--api", api, "--client", client, "--mapping", stale, "-o", "json")
	require.ErrorIs(t, r.err, ErrCheckFailed)

	var rep report
	require.NoError(t, json.Unmarshal(r.stdout.Bytes(), &rep))

	require.Len(t, rep.Entries, 3)

	var found bool

	for _, e := range rep.Entries {
		if e.Source != "" {
			assert.Empty(t, e.Suggestion, "only target-only rows get suggestions")
			continue
		}

		found = true

		assert.Equal(t, "getTask", e.Target)
		assert.Equal(t, "getTask", e.Suggestion)
		assert.Empty(t, e.Candidates)
	}

	assert.True(t, found, "a target-only row is reported")
}

func TestSuggest(t *testing.T) {
	candidate := func(id string, score float64, issues ...string) match.Candidate {
		return match.Candidate{Source: schema.EditableMethod{ID: id}, Score: score, Issues: issues}
	}

	tests := []struct {
		name           string
		ranked         match.CandidateList
		wantSuggestion string
		wantCandidates []string
	}{
		{
			name:           "clear winner",
			ranked:         match.CandidateList{candidate("getTask", 0.95), candidate("findTask", 0.5)},
			wantSuggestion: "getTask",
		},
		{
			name:           "close scores",
			ranked:         match.CandidateList{candidate("getTask", 0.8), candidate("findTask", 0.75), candidate("loadTask", 0.74)},
			wantCandidates: []string{"getTask", "findTask", "loadTask"},
		},
		{
			name:   "weak single match",
			ranked: match.CandidateList{candidate("getTask", 0.4)},
		},
		{
			name:   "incompatible only",
			ranked: match.CandidateList{candidate("getTask", 1, "argument count differs: 1 != 2")},
		},
		{
			name: "no candidates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestion, candidates := suggest(tt.ranked)
			assert.Equal(t, tt.wantSuggestion, suggestion)
			assert.Equal(t, tt.wantCandidates, candidates)
		})
	}
}

func TestCheck_StrictFailsOnWarnings(t *testing.T) {
	dir := t.TempDir()
	api := writeFile(t, dir, "api.yaml", apiDoc)
	client := writeFile(t, dir, "client.yaml", emptyClientDoc)
	stale := writeFile(t, dir, "mapping.yaml", "getTask:\n  targetId: ghost\n  type: EXACT\n")

	r := execute(t, "check", "--api", api, "--client", client, "--mapping", stale)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout.String(), "Mapped method ghost did not exist and was removed.")

	cfgPath := writeFile(t, dir, "rest-mapper.yaml", "strict: true\n")
	r = execute(t, "--config", cfgPath, "check", "--api", api, "--client", client, "--mapping", stale)
	require.ErrorIs(t, r.err, ErrCheckFailed)

	r = execute(t, "--config", cfgPath, "check", "--api", api, "--client", client, "--mapping", stale, "--strict=false")
	require.NoError(t, r.err, "flags override the config file")
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	api := writeFile(t, dir, "api.yaml", apiDoc)

	tests := []struct {
		name string
		args []string
	}{
		{"missing client", []string{"check", "--api", api}},
		{"write without mapping", []string{"check", "--api", api, "--client", api, "--write"}},
		{"unknown flag", []string{"check", "--nope"}},
		{"unknown root flag", []string{"--nope"}},
		{"bad output", []string{"-o", "xml", "check", "--api", api, "--client", api}},
		{"import without input", []string{"import"}},
		{"render without file", []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := execute(t, tt.args...)
			require.Error(t, r.err)
			assert.ErrorIs(t, r.err, ErrUsage)
		})
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "openapi.yaml", openAPIDoc)

	r := execute(t, "import", "--input", input)
	require.NoError(t, r.err, r.stderr.String())
	assert.Contains(t, r.stdout.String(), "kind: core/rest-api")
	assert.Contains(t, r.stdout.String(), "name: task-api")
	assert.Contains(t, r.stdout.String(), "getTask")

	out := filepath.Join(dir, "tasks.json")
	r = execute(t, "import", "--input", input, "--name", "tasks", "--out", out)
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout.String())

	doc, err := resource.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "tasks", doc.Name())
	assert.Equal(t, []string{"getTask"}, doc.MethodIDs())
	assert.Equal(t, []string{"Task"}, doc.Entities.Names())
}

func TestRender(t *testing.T) {
	api := writeFile(t, t.TempDir(), "api.yaml", apiDoc)

	r := execute(t, "render", api)
	require.NoError(t, r.err)
	assert.Equal(t,
		"@GET(\"/tasks/{id}\")\ngetTask(@Path id:string):Task\n\n"+
			"@POST(\"/tasks/{id}\")\naddTask(@Path id:string, @Body task:Task):void\n",
		r.stdout.String())
}

func TestRender_MissingFile(t *testing.T) {
	r := execute(t, "render", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, r.err)
	assert.NotErrorIs(t, r.err, ErrUsage)
}
