package utils

import (
	"fmt"
	"strings"
)

// ConjunctList joins items with commas and "and" so they read naturally in
// a prompt sentence.
func ConjunctList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return strings.Join(items, " and ")
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// EngineerBrainstormPrompt builds the project-idea prompt.
// Example: "I am a student and hobbyist using Python and Go in the finance
// industry. Generate a project idea."
func EngineerBrainstormPrompt(roles, technologies, industries []string) string {
	industryNoun := "industry"
	if len(industries) > 1 {
		industryNoun = "industries"
	}
	return fmt.Sprintf("I am a %s using %s in the %s %s. Generate a project idea.",
		ConjunctList(lowerAll(roles)),
		ConjunctList(technologies),
		ConjunctList(lowerAll(industries)),
		industryNoun,
	)
}

// EngineerTaskgenPrompt builds the per-step task-list prompt from the
// structured project data supplied at creation time.
func EngineerTaskgenPrompt(title, summary string, languages, steps []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I am building a project titled '%s'. Summary: %s. ", title, summary)
	if len(languages) > 0 {
		fmt.Fprintf(&b, "It uses %s. ", ConjunctList(languages))
	}
	b.WriteString("The project plan has the following steps:")
	for i, step := range steps {
		fmt.Fprintf(&b, " %d. %s.", i+1, step)
	}
	b.WriteString(" Generate a task list for each step, in step order.")
	return b.String()
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}
