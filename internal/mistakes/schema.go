package mistakes

import "github.com/Piyush2510verma/Language/internal/llm"

// PurposeMistakeCheck tags classifier requests in the LLM event log.
const PurposeMistakeCheck = "mistake-check"

// CheckSchema defines the JSON schema for mistake classification responses.
var CheckSchema = &llm.Schema{
	Name:        PurposeMistakeCheck,
	Description: "The type of mistake in a learner's sentence and its corrected version",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mistake_type": map[string]any{
				"type":        "string",
				"description": "Grammar, Vocabulary or Pronunciation; \"none\" when the sentence is correct",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The corrected sentence, or an empty string when there is no mistake",
			},
		},
		"required":             []any{"mistake_type", "correct_answer"},
		"additionalProperties": false,
	},
}
