package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConjunctList(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		expected string
	}{
		{"empty", nil, ""},
		{"single", []string{"Go"}, "Go"},
		{"pair", []string{"Go", "Python"}, "Go and Python"},
		{"three", []string{"Go", "Python", "Rust"}, "Go, Python, and Rust"},
		{"four", []string{"a", "b", "c", "d"}, "a, b, c, and d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConjunctList(tt.items))
		})
	}
}

func TestEngineerBrainstormPrompt(t *testing.T) {
	prompt := EngineerBrainstormPrompt(
		[]string{"Student", "Hobbyist"},
		[]string{"Python", "Go"},
		[]string{"Finance"},
	)
	assert.Equal(t,
		"I am a student and hobbyist using Python and Go in the finance industry. Generate a project idea.",
		prompt,
	)
}

func TestEngineerBrainstormPrompt_PluralIndustries(t *testing.T) {
	prompt := EngineerBrainstormPrompt(
		[]string{"Developer"},
		[]string{"Go"},
		[]string{"Finance", "Healthcare"},
	)
	assert.Contains(t, prompt, "in the finance and healthcare industries")
}

func TestEngineerTaskgenPrompt(t *testing.T) {
	prompt := EngineerTaskgenPrompt(
		"Recipe Finder",
		"Find recipes by ingredients on hand",
		[]string{"Go"},
		[]string{"design the schema", "build the API"},
	)
	assert.Contains(t, prompt, "I am building a project titled 'Recipe Finder'.")
	assert.Contains(t, prompt, "It uses Go.")
	assert.Contains(t, prompt, "1. design the schema.")
	assert.Contains(t, prompt, "2. build the API.")
	assert.Contains(t, prompt, "Generate a task list for each step, in step order.")
}

func TestEngineerTaskgenPrompt_NoLanguages(t *testing.T) {
	prompt := EngineerTaskgenPrompt("Recipe Finder", "A summary", nil, []string{"one step"})
	assert.NotContains(t, prompt, "It uses")
}
