package extract

import (
	"encoding/json"
	"strings"
	"unicode"
)

// ingredientStrategy tries to read an ingredient list out of raw model output.
// ok=false means the strategy did not recognise the input shape.
type ingredientStrategy func(text string) (raw []string, ok bool)

// Order matters: the first strategy that recognises the input wins.
var ingredientStrategies = []ingredientStrategy{
	fromJSONObject,
	fromJSONArray,
	fromFreeform,
}

// ExtractIngredients turns loosely formatted model output into a normalized,
// de-duplicated ingredient list. It never fails; input it cannot make sense of
// yields an empty list.
func ExtractIngredients(text string) []string {
	for _, strategy := range ingredientStrategies {
		raw, ok := strategy(text)
		if !ok {
			continue
		}
		return normalizeAll(raw)
	}
	return []string{}
}

func fromJSONObject(text string) ([]string, bool) {
	body := stripCodeFence(text)
	if !strings.HasPrefix(body, "{") {
		return nil, false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return nil, false
	}

	field, found := obj["ingredients"]
	if !found {
		// Recognised object without ingredients is a valid empty answer
		return []string{}, true
	}
	return stringsFromRaw(field), true
}

func fromJSONArray(text string) ([]string, bool) {
	body := stripCodeFence(text)
	if !strings.HasPrefix(body, "[") {
		return nil, false
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, false
	}
	return stringMembers(items), true
}

func fromFreeform(text string) ([]string, bool) {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';'
	})

	raw := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if idx := strings.Index(fragment, "#"); idx >= 0 {
			fragment = fragment[:idx]
		}
		raw = append(raw, strings.TrimSpace(fragment))
	}
	return raw, true
}

// stringsFromRaw keeps only the string members of a JSON array. Anything else
// (a bare string, numbers, nested objects) contributes nothing.
func stringsFromRaw(field json.RawMessage) []string {
	var items []interface{}
	if err := json.Unmarshal(field, &items); err != nil {
		return []string{}
	}
	return stringMembers(items)
}

func stringMembers(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// stripCodeFence removes a ```json ... ``` wrapper that chat models like to add.
func stripCodeFence(text string) string {
	body := strings.TrimSpace(text)
	if !strings.HasPrefix(body, "```") {
		return body
	}

	body = strings.TrimPrefix(body, "```")
	if nl := strings.Index(body, "\n"); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}

func normalizeAll(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))

	for _, fragment := range raw {
		name := NormalizeIngredient(fragment)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// NormalizeIngredient cleans a single fragment: digits, bullets and punctuation
// are removed and every word is title-cased. Blank results come back as "".
func NormalizeIngredient(fragment string) string {
	var sb strings.Builder
	for _, r := range fragment {
		switch {
		case unicode.IsDigit(r):
			// quantities are not part of the name
		case unicode.IsLetter(r):
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}

	words := strings.Fields(sb.String())
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
