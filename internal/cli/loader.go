package cli

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/placer/internal/roster"
)

//go:embed schema.cue
var schemaCUE string

// PersonDoc mirrors one entry of the people input document.
type PersonDoc struct {
	Name        string   `json:"name"`
	Preferences []string `json:"preferences"`
}

// ActivityDoc mirrors one entry of the activities input document.
type ActivityDoc struct {
	Name            string `json:"name"`
	MinParticipants int    `json:"min_participants"`
	MaxParticipants int    `json:"max_participants"`
}

// LoadError represents an error that occurred during input loading.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Input file not found/unreadable
	ErrCodeDecode      = "E003" // Input is not valid JSON
	ErrCodeSchema      = "E004" // Input violates the document schema
	ErrCodeIntegrity   = "E005" // Referential integrity (duplicates, unknown refs, bad bounds)
	ErrCodeWriteFailed = "E006" // Output write error
	ErrCodeStore       = "E007" // Run-history database error
)

// LoadRoster reads, schema-validates, and decodes both input
// documents, returning engine-ready records with NFC-normalized names.
//
// Validation here is structural (CUE schema: shapes, required fields,
// basic bounds). Referential integrity — duplicate names, preferences
// naming unknown activities, min > max — is the engine's job and is
// reported by engine.New.
func LoadRoster(peoplePath, activitiesPath string) ([]*roster.Person, []*roster.Activity, error) {
	schema := cuecontext.New().CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("internal schema error: %v", err)}
	}

	var peopleDocs []PersonDoc
	if err := loadDocument(schema, "#People", peoplePath, &peopleDocs); err != nil {
		return nil, nil, err
	}

	var activityDocs []ActivityDoc
	if err := loadDocument(schema, "#Activities", activitiesPath, &activityDocs); err != nil {
		return nil, nil, err
	}

	people := make([]*roster.Person, len(peopleDocs))
	for i, doc := range peopleDocs {
		prefs := make([]string, len(doc.Preferences))
		for j, p := range doc.Preferences {
			prefs[j] = roster.Name(p)
		}
		people[i] = &roster.Person{Name: roster.Name(doc.Name), Preferences: prefs}
	}

	activities := make([]*roster.Activity, len(activityDocs))
	for i, doc := range activityDocs {
		activities[i] = &roster.Activity{
			Name: roster.Name(doc.Name),
			Min:  doc.MinParticipants,
			Max:  doc.MaxParticipants,
		}
	}

	return people, activities, nil
}

// loadDocument reads one JSON document, unifies it with the named
// schema definition, and decodes it into out.
func loadDocument(schema cue.Value, definition, path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Code: ErrCodeNotFound, Path: path, Message: fmt.Sprintf("cannot read input: %v", err)}
	}

	expr, err := cuejson.Extract(path, data)
	if err != nil {
		return &LoadError{Code: ErrCodeDecode, Path: path, Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	val := schema.Context().BuildExpr(expr)
	if err := val.Err(); err != nil {
		return &LoadError{Code: ErrCodeDecode, Path: path, Message: fmt.Sprintf("invalid document: %v", err)}
	}

	def := schema.LookupPath(cue.ParsePath(definition))
	if err := def.Err(); err != nil {
		return &LoadError{Code: ErrCodeGeneric, Path: path, Message: fmt.Sprintf("schema lookup %s: %v", definition, err)}
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return &LoadError{Code: ErrCodeSchema, Path: path, Message: fmt.Sprintf("schema violation: %v", err)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &LoadError{Code: ErrCodeDecode, Path: path, Message: fmt.Sprintf("decode: %v", err)}
	}

	return nil
}
