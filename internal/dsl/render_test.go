package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rest-mapper/internal/common"
	"rest-mapper/internal/schema"
)

func TestRender(t *testing.T) {
	task := schema.EntityRef("Task")

	var get schema.Method
	get.Description = "Returns a single task"
	get.Method = schema.GET
	get.Path = "/tasks/{id}"
	get.Arguments.Set("id", schema.Argument{Transport: schema.TransportPath, Type: schema.Primitive("string")})
	get.ResponseType = &task

	var add schema.Method
	add.Method = schema.POST
	add.Path = "/tasks/{id}"
	add.Arguments.Set("id", schema.Argument{Transport: schema.TransportPath, Type: schema.Primitive("string")})
	add.Arguments.Set("task", schema.Argument{Transport: schema.TransportBody, Type: task})

	var methods common.OrderedMap[schema.Method]
	methods.Set("getTask", get)
	methods.Set("addTask", add)

	expected := `/**
 * Returns a single task
 */
@GET("/tasks/{id}")
getTask(@Path id:string):Task

@POST("/tasks/{id}")
addTask(@Path id:string, @Body task:Task):void`

	assert.Equal(t, expected, Render(&methods))
}

func TestRenderMethod_MultilineDescriptionAndLists(t *testing.T) {
	list := schema.ListOf(schema.EntityRef("Task"))

	var m schema.Method
	m.Description = "Lists tasks\n\nfiltered by owner"
	m.Method = schema.GET
	m.Path = "/tasks"
	m.Arguments.Set("owner", schema.Argument{Transport: schema.TransportQuery, Type: schema.Primitive("string")})
	m.Arguments.Set("X-Trace", schema.Argument{Transport: schema.TransportHeader, Type: schema.Primitive("string")})
	m.ResponseType = &list

	expected := `/**
 * Lists tasks
 *
 * filtered by owner
 */
@GET("/tasks")
listTasks(@Query owner:string, @Header X-Trace:string):Task[]`

	assert.Equal(t, expected, RenderMethod("listTasks", m))
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(nil))
	assert.Empty(t, Render(&common.OrderedMap[schema.Method]{}))
}
