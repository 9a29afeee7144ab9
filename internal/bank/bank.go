// Package bank loads and serves the static multiple-choice question bank.
package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed questions.json
var questionsJSON []byte

// Bank is an ordered, immutable collection of questions.
type Bank struct {
	questions []Question
}

// Load parses and validates the embedded question bank.
func Load() (*Bank, error) {
	return Parse(questionsJSON)
}

// Parse builds a Bank from raw JSON, validating it against the bank schema
// and the referential rules.
func Parse(raw []byte) (*Bank, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	compiled, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("question bank schema: %w", err)
	}

	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if err := validate(questions); err != nil {
		return nil, err
	}

	return &Bank{questions: questions}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	// The compiler expects a parsed JSON value, so round-trip the
	// definition through encoding/json.
	defBytes, err := json.Marshal(bankSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://question-bank.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
}

// validate enforces the rules the schema cannot: unique question ids,
// distinct option ids per question, and a correctAnswerId that matches
// exactly one option.
func validate(questions []Question) error {
	seen := make(map[int]bool, len(questions))
	for i := range questions {
		q := &questions[i]
		if seen[q.ID] {
			return fmt.Errorf("question %d: duplicate id", q.ID)
		}
		seen[q.ID] = true

		optIDs := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if optIDs[opt.ID] {
				return fmt.Errorf("question %d: duplicate option id %q", q.ID, opt.ID)
			}
			optIDs[opt.ID] = true
		}
		if !optIDs[q.CorrectAnswerID] {
			return fmt.Errorf("question %d: correctAnswerId %q matches no option", q.ID, q.CorrectAnswerID)
		}
	}
	return nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns a copy of the full ordered bank.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// CountBy returns per-category and per-difficulty question counts.
func (b *Bank) CountBy() (byCategory map[Category]int, byDifficulty map[Difficulty]int) {
	byCategory = make(map[Category]int)
	byDifficulty = make(map[Difficulty]int)
	for i := range b.questions {
		byCategory[b.questions[i].Category]++
		byDifficulty[b.questions[i].Difficulty]++
	}
	return byCategory, byDifficulty
}

// Filter returns the questions matching the given difficulty and category.
// Mixed values match everything. The relative bank order is preserved.
func (b *Bank) Filter(difficulty Difficulty, category string) []Question {
	var out []Question
	for i := range b.questions {
		q := b.questions[i]
		if difficulty != DifficultyMixed && q.Difficulty != difficulty {
			continue
		}
		if category != CategoryMixed && string(q.Category) != category {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Shuffle returns a shuffled copy of questions using the given source.
func Shuffle(questions []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
