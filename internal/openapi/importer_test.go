package openapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rest-mapper/internal/diagnostic"
	"rest-mapper/internal/resource"
	"rest-mapper/internal/schema"
)

const tasksSpec = `
openapi: 3.0.3
info:
  title: Task API
  version: 1.0.0
paths:
  /tasks/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema: {type: string}
    get:
      operationId: getTask
      summary: Returns a task
      parameters:
        - name: session
          in: cookie
          schema: {type: string}
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: "#/components/schemas/Task"}
    put:
      parameters:
        - name: X-Trace
          in: header
          schema: {type: string}
      requestBody:
        content:
          application/json:
            schema: {$ref: "#/components/schemas/Task"}
      responses:
        "204":
          description: updated
  /tasks:
    get:
      operationId: listTasks
      parameters:
        - name: limit
          in: query
          schema: {type: integer, format: int64}
        - name: tags
          in: query
          schema:
            type: array
            items: {type: string}
      responses:
        "default":
          description: error
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items: {$ref: "#/components/schemas/Task"}
components:
  schemas:
    Task:
      type: object
      description: A unit of work
      properties:
        title: {type: string, description: Short title}
        id: {type: string}
        due: {type: string, format: date-time}
        status: {$ref: "#/components/schemas/Status"}
        done: {type: boolean}
        meta: {type: object}
    Status:
      type: string
      enum: [OPEN, DONE]
    Count:
      type: integer
`

func TestImport(t *testing.T) {
	res, err := Import(context.Background(), []byte(tasksSpec), "")
	require.NoError(t, err)

	doc := res.Document
	assert.Equal(t, resource.KindAPI, doc.Kind)
	assert.Equal(t, "task-api", doc.Name())
	assert.Equal(t, []string{"listTasks", "getTask", "putTasksId"}, doc.MethodIDs())

	t.Run("entities", func(t *testing.T) {
		assert.Equal(t, []string{"Status", "Task"}, doc.Entities.Names())

		status, ok := doc.Entities.Get("Status")
		require.True(t, ok)
		assert.Equal(t, schema.EntityEnum, status.Type)
		assert.Equal(t, []string{"OPEN", "DONE"}, status.Values)

		task, ok := doc.Entities.Get("Task")
		require.True(t, ok)
		assert.Equal(t, schema.EntityDTO, task.Type)
		assert.Equal(t, "A unit of work", task.Description)
		assert.Equal(t, []string{"done", "due", "id", "meta", "status", "title"}, task.Properties.Keys())

		want := map[string]string{
			"done":   "boolean",
			"due":    "date",
			"id":     "string",
			"meta":   "any",
			"status": "Status",
			"title":  "string",
		}
		for name, typ := range want {
			p, _ := task.Properties.Get(name)
			assert.Equal(t, typ, p.Type.String(), name)
		}

		title, _ := task.Properties.Get("title")
		assert.Equal(t, "Short title", title.Description)
	})

	t.Run("methods", func(t *testing.T) {
		get, ok := doc.Method("getTask")
		require.True(t, ok)
		assert.Equal(t, schema.GET, get.Method)
		assert.Equal(t, "/tasks/{id}", get.Path)
		assert.Equal(t, "Returns a task", get.Description)
		assert.Equal(t, []string{"id"}, get.Arguments.Keys())
		require.NotNil(t, get.ResponseType)
		assert.Equal(t, "Task", get.ResponseType.String())

		put, ok := doc.Method("putTasksId")
		require.True(t, ok)
		assert.Equal(t, []string{"id", "X-Trace", "body"}, put.Arguments.Keys())

		body, _ := put.Arguments.Get("body")
		assert.Equal(t, schema.TransportBody, body.Transport)
		assert.Equal(t, "Task", body.Type.String())

		header, _ := put.Arguments.Get("X-Trace")
		assert.Equal(t, schema.TransportHeader, header.Transport)
		assert.Nil(t, put.ResponseType, "204 without content is void")

		list, ok := doc.Method("listTasks")
		require.True(t, ok)
		limit, _ := list.Arguments.Get("limit")
		tags, _ := list.Arguments.Get("tags")
		assert.Equal(t, schema.TransportQuery, limit.Transport)
		assert.Equal(t, "long", limit.Type.String())
		assert.Equal(t, "string[]", tags.Type.String())
		require.NotNil(t, list.ResponseType)
		assert.Equal(t, "Task[]", list.ResponseType.String())
	})

	t.Run("diagnostics", func(t *testing.T) {
		assert.Empty(t, res.Diagnostics.Errors)
		assert.Contains(t, diagnostic.Messages(res.Diagnostics.Infos),
			"Schema Count is neither an object nor a string enum and was skipped.")
		assert.Contains(t, diagnostic.Messages(res.Diagnostics.Infos),
			"Parameter session in cookie is not supported and was skipped.")
		assert.Contains(t, diagnostic.Messages(res.Diagnostics.Infos),
			"Inline object schema imported as any.")
	})

	t.Run("source", func(t *testing.T) {
		require.NotNil(t, doc.Spec.Source)
		assert.Contains(t, doc.Spec.Source.Value, "getTask(@Path id:string):Task")
		assert.Contains(t, doc.Spec.Source.Value, "putTasksId(@Path id:string, @Header X-Trace:string, @Body body:Task):void")
	})

	t.Run("valid resource", func(t *testing.T) {
		v := resource.Validate(doc)
		assert.Empty(t, v.Errors)
	})
}

func TestImport_NameOverride(t *testing.T) {
	res, err := Import(context.Background(), []byte(tasksSpec), "tasks")
	require.NoError(t, err)
	assert.Equal(t, "tasks", res.Document.Name())
}

func TestImport_GeneratedIDCollision(t *testing.T) {
	spec := `
openapi: 3.0.3
info: {title: Collide, version: "1"}
paths:
  /other:
    get:
      operationId: getTasks
      responses:
        "200": {description: ok}
  /tasks:
    get:
      responses:
        "200": {description: ok}
`
	res, err := Import(context.Background(), []byte(spec), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"getTasks", "getTasks1"}, res.Document.MethodIDs())
	assert.Equal(t, []string{diagnostic.CodeDuplicateMethod}, diagnostic.Codes(res.Diagnostics.Warnings))
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a document", "{"},
		{"missing info", "openapi: 3.0.3\npaths: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(context.Background(), []byte(tt.data), "")
			assert.Error(t, err)
		})
	}
}

func TestImportFile_Missing(t *testing.T) {
	_, err := ImportFile(context.Background(), "does-not-exist.yaml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read OpenAPI file")
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		verb schema.HTTPVerb
		path string
		want string
	}{
		{schema.GET, "/tasks/{id}", "getTasksId"},
		{schema.POST, "/tasks", "postTasks"},
		{schema.DELETE, "/users/{userId}/tags/{tag}", "deleteUsersUserIdTagsTag"},
		{schema.GET, "/", "get"},
		{schema.PATCH, "/task-lists/v2", "patchTaskListsV2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OperationName(tt.verb, tt.path))
		})
	}
}
