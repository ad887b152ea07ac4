package extract

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RecipeBlockDelimiter = ";;;"
	recipeHeaderToken    = "recipenote"

	DefaultDifficulty   = "Medium"
	DefaultCookingTime  = "30 mins"
	DefaultIngredients  = "No ingredients listed."
	DefaultInstructions = "No instructions provided."

	timestampLayout = "2006-01-02"
)

// RecipeNote is a recipe parsed out of model output.
type RecipeNote struct {
	Id           string `json:"id"`
	DishName     string `json:"dish_name"`
	Difficulty   string `json:"difficulty"`
	CookingTime  string `json:"cooking_time"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Timestamp    string `json:"timestamp"`
}

// canonical field names, keyed by the lowercase/underscore-free spelling
var recipeFields = map[string]string{
	"id":           "id",
	"dishname":     "dishName",
	"difficulty":   "difficulty",
	"cookingtime":  "cookingTime",
	"ingredients":  "ingredients",
	"instructions": "instructions",
	"timestamp":    "timestamp",
}

var escapeReplacer = strings.NewReplacer(
	`\r\n`, "\n",
	`\n`, "\n",
	`\r`, "\n",
	`\t`, "\t",
)

// RecipeNoteParser splits ";;;"-delimited model output into recipe notes.
// The zero value is not usable; use NewRecipeNoteParser.
type RecipeNoteParser struct {
	now   func() time.Time
	newID func() string
}

func NewRecipeNoteParser() *RecipeNoteParser {
	return &RecipeNoteParser{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock overrides the clock used for the default timestamp.
func (p *RecipeNoteParser) WithClock(now func() time.Time) *RecipeNoteParser {
	p.now = now
	return p
}

// WithIDGenerator overrides how missing ids are generated.
func (p *RecipeNoteParser) WithIDGenerator(newID func() string) *RecipeNoteParser {
	p.newID = newID
	return p
}

// ParseRecipeNotes parses text with the default clock and id generator.
func ParseRecipeNotes(text string) []RecipeNote {
	return NewRecipeNoteParser().Parse(text)
}

// Parse never fails. Blocks without a dish name are dropped.
func (p *RecipeNoteParser) Parse(text string) []RecipeNote {
	notes := make([]RecipeNote, 0)
	for _, block := range strings.Split(text, RecipeBlockDelimiter) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		note, ok := p.parseBlock(block)
		if !ok {
			continue
		}
		notes = append(notes, note)
	}
	return notes
}

func (p *RecipeNoteParser) parseBlock(block string) (RecipeNote, bool) {
	fields := make(map[string]*strings.Builder)
	current := ""

	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.EqualFold(trimmed, recipeHeaderToken) {
			continue
		}

		if trimmed == "" {
			if sb, open := fields[current]; open && sb.Len() > 0 {
				sb.WriteString("\n")
			}
			continue
		}

		if key, value, ok := splitFieldLine(trimmed); ok {
			current = canonicalKey(key)
			sb := &strings.Builder{}
			sb.WriteString(value)
			fields[current] = sb
			continue
		}

		sb, open := fields[current]
		if !open {
			// text before the first field has nothing to attach to
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(trimmed)
	}

	get := func(name string) string {
		if sb, ok := fields[name]; ok {
			return strings.TrimSpace(sb.String())
		}
		return ""
	}

	dishName := get("dishName")
	if dishName == "" {
		return RecipeNote{}, false
	}

	return RecipeNote{
		Id:           orDefault(get("id"), p.newID),
		DishName:     dishName,
		Difficulty:   orValue(get("difficulty"), DefaultDifficulty),
		CookingTime:  orValue(get("cookingTime"), DefaultCookingTime),
		Ingredients:  orValue(unescape(get("ingredients")), DefaultIngredients),
		Instructions: orValue(unescape(get("instructions")), DefaultInstructions),
		Timestamp:    orDefault(get("timestamp"), func() string { return p.now().Format(timestampLayout) }),
	}, true
}

// splitFieldLine reports whether line opens a new field. The key is whatever
// precedes the first '=' or ':'; a key containing whitespace marks the line as
// a continuation instead (so "Step 1: boil" stays inside instructions).
// Continuation lines like "http://x" still match; that is a known limitation.
func splitFieldLine(line string) (key, value string, ok bool) {
	idx := strings.IndexAny(line, "=:")
	if idx <= 0 {
		return "", "", false
	}
	key = line[:idx]
	if strings.IndexFunc(key, isSpace) >= 0 {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

func canonicalKey(key string) string {
	folded := strings.ToLower(strings.ReplaceAll(key, "_", ""))
	if name, ok := recipeFields[folded]; ok {
		return name
	}
	return key
}

func unescape(value string) string {
	return strings.TrimSpace(escapeReplacer.Replace(value))
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func orValue(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func orDefault(value string, fallback func() string) string {
	if strings.TrimSpace(value) == "" {
		return fallback()
	}
	return value
}
