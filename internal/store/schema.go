package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchema is a named JSON schema for one stored entry shape.
type recordSchema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func nullable(kind string) map[string]any {
	return map[string]any{"type": []any{kind, "null"}}
}

func arrayOf(items map[string]any) map[string]any {
	return map[string]any{"type": []any{"array", "null"}, "items": items}
}

func object(required []any, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"required":   required,
		"properties": props,
	}
}

var (
	str     = map[string]any{"type": "string"}
	boolean = map[string]any{"type": "boolean"}
	integer = map[string]any{"type": "integer"}
)

var wordDef = object([]any{"id", "term"}, map[string]any{
	"id":           map[string]any{"type": "string", "minLength": 1},
	"term":         str,
	"definition":   str,
	"isBookmarked": boolean,
	"isKnown":      boolean,
	"lastAttempt": map[string]any{
		"type": []any{"object", "null"},
		"properties": map[string]any{
			"result":      map[string]any{"enum": []any{"correct", "incorrect", "skipped", ""}},
			"timeTakenMs": integer,
		},
	},
})

var (
	wordSchema = recordSchema{Name: "word", Definition: wordDef}

	flashcardAttemptSchema = recordSchema{
		Name: "flashcard-attempt",
		Definition: object([]any{"word", "result"}, map[string]any{
			"word":        wordDef,
			"result":      map[string]any{"enum": []any{"correct", "incorrect", "skipped"}},
			"timeTakenMs": integer,
			"attemptedAt": str,
		}),
	}

	quizAttemptSchema = recordSchema{
		Name: "quiz-attempt",
		Definition: object([]any{"word", "correct"}, map[string]any{
			"word":        wordDef,
			"correct":     boolean,
			"timeTakenMs": integer,
			"attemptedAt": str,
		}),
	}

	sessionSchema = recordSchema{
		Name: "revision-session",
		Definition: object([]any{"id", "createdAt", "words", "source"}, map[string]any{
			"id":        map[string]any{"type": "string", "minLength": 1},
			"createdAt": str,
			"words":     arrayOf(wordDef),
			"source": map[string]any{"enum": []any{
				"daily-revision", "challenging-words", "learning-plan", "smart-revision",
			}},
			"completed": boolean,
			"score":     map[string]any{"type": []any{"integer", "null"}, "minimum": 0, "maximum": 100},
			"results": map[string]any{
				"type": []any{"object", "null"},
				"properties": map[string]any{
					"correct":    arrayOf(str),
					"incorrect":  arrayOf(str),
					"skipped":    arrayOf(str),
					"bookmarked": arrayOf(str),
				},
			},
			"plan": map[string]any{
				"type":     []any{"object", "null"},
				"required": []any{"planId", "setIndex"},
				"properties": map[string]any{
					"planId":   str,
					"setIndex": map[string]any{"type": "integer", "minimum": 0},
				},
			},
		}),
	}

	planSchema = recordSchema{
		Name: "learning-plan",
		Definition: object([]any{"id", "title", "dailyWordGoal", "totalDays", "quizMode", "sets"}, map[string]any{
			"id":              map[string]any{"type": "string", "minLength": 1},
			"title":           str,
			"chapterId":       str,
			"dailyWordGoal":   map[string]any{"type": "integer", "minimum": 1},
			"totalWords":      integer,
			"totalDays":       map[string]any{"type": "integer", "minimum": 0},
			"currentSetIndex": map[string]any{"type": "integer", "minimum": 0},
			"active":          boolean,
			"quizMode":        map[string]any{"enum": []any{"quiz-with-flashcard", "only-quiz"}},
			"completedSets":   arrayOf(str),
			"sets": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": object([]any{"id", "words", "isUnlocked", "isCompleted"}, map[string]any{
					"id":                 map[string]any{"type": "string", "minLength": 1},
					"words":              arrayOf(wordDef),
					"isCompleted":        boolean,
					"isUnlocked":         boolean,
					"flashcardCompleted": boolean,
					"quizCompleted":      boolean,
					"knownWordIds":       arrayOf(str),
					"unknownWordIds":     arrayOf(str),
				}),
			},
		}),
	}

	bookmarkSchema = recordSchema{
		Name: "bookmark",
		Definition: object([]any{"wordId", "term"}, map[string]any{
			"wordId":      map[string]any{"type": "string", "minLength": 1},
			"term":        str,
			"translation": str,
			"phonetic":    str,
			"chapter":     str,
		}),
	}

	savedResultSchema = recordSchema{
		Name: "saved-quiz-result",
		Definition: object([]any{"ownerId", "setIndex", "sessionId", "score", "answers"}, map[string]any{
			"ownerId":   map[string]any{"type": "string", "minLength": 1},
			"setIndex":  map[string]any{"type": "integer", "minimum": -1},
			"sessionId": str,
			"score":     map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"answers": arrayOf(object([]any{"wordId", "correct", "skipped"}, map[string]any{
				"wordId":       str,
				"selectedText": str,
				"correctText":  str,
				"correct":      boolean,
				"skipped":      boolean,
			})),
		}),
	}

	chapterSchema = recordSchema{
		Name: "chapter",
		Definition: object([]any{"id", "words"}, map[string]any{
			"id":    map[string]any{"type": "string", "minLength": 1},
			"name":  str,
			"words": nullable("array"), // entries checked one by one against wordSchema
		}),
	}
)

// validateEntry parses raw JSON and validates it against schema.
func validateEntry(schema recordSchema, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema recordSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not Go maps
	// with typed slices. Round-trip to get a clean representation.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
