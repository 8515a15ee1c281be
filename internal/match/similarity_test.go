package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"getTask", []string{"get", "task"}},
		{"get_task", []string{"get", "task"}},
		{"GET-TASK", []string{"get", "task"}},
		{"getHTTPResponse", []string{"get", "http", "response"}},
		{"XMLParser", []string{"xml", "parser"}},
		{"TaskID", []string{"task", "id"}},
		{"a", []string{"a"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestNormalizeIdent(t *testing.T) {
	assert.Equal(t, "gettask", NormalizeIdent("getTask"))
	assert.Equal(t, "gettask", NormalizeIdent("get_task"))
	assert.Equal(t, "task", NormalizeIdentWithoutAction("fetchTask"))
	assert.Equal(t, "task", NormalizeIdentWithoutAction("getTask"))
	assert.Equal(t, "get", NormalizeIdentWithoutAction("get"))
	assert.Equal(t, "tasklist", NormalizeIdentWithoutAction("taskList"))
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/tasks/{id}", "/tasks/{}"},
		{"/Tasks/{taskId}/", "/tasks/{}"},
		{"tasks", "/tasks"},
		{"/", "/"},
		{"/users/{uid}/tasks/{tid}", "/users/{}/tasks/{}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePath(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"task", "task", 0},
		{"gettask", "fetchtask", 3},
		{"ü", "u", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("task", "task"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.8, Similarity("task", "tasks"), 1e-9)
}
