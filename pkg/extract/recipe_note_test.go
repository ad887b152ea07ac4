package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedParser() *RecipeNoteParser {
	return NewRecipeNoteParser().
		WithClock(func() time.Time { return time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC) }).
		WithIDGenerator(func() string { return "generated-id" })
}

func TestParseRecipeNotes_DropsBlockWithoutDishName(t *testing.T) {
	notes := fixedParser().Parse("RecipeNote\ndishName=Soup\ningredients=a\\nb\n;;;\ndishName=\n")

	require.Len(t, notes, 1)
	assert.Equal(t, "Soup", notes[0].DishName)
	assert.Equal(t, "a\nb", notes[0].Ingredients)
}

func TestParseRecipeNotes_AppliesDefaults(t *testing.T) {
	notes := fixedParser().Parse("dishName: Pancakes")

	require.Len(t, notes, 1)
	assert.Equal(t, RecipeNote{
		Id:           "generated-id",
		DishName:     "Pancakes",
		Difficulty:   DefaultDifficulty,
		CookingTime:  DefaultCookingTime,
		Ingredients:  DefaultIngredients,
		Instructions: DefaultInstructions,
		Timestamp:    "2024-03-09",
	}, notes[0])
}

func TestParseRecipeNotes_MultiLineValues(t *testing.T) {
	input := `recipenote
id=r-1
dishName=Fried Rice
difficulty=Easy
cookingTime=20 mins
ingredients=
- 2 cups rice
- 1 egg
instructions=1. Heat the pan
2. Add rice

3. Serve hot
timestamp=2023-12-01`

	notes := fixedParser().Parse(input)

	require.Len(t, notes, 1)
	note := notes[0]
	assert.Equal(t, "r-1", note.Id)
	assert.Equal(t, "Easy", note.Difficulty)
	assert.Equal(t, "20 mins", note.CookingTime)
	assert.Equal(t, "- 2 cups rice\n- 1 egg", note.Ingredients)
	assert.Equal(t, "1. Heat the pan\n2. Add rice\n\n3. Serve hot", note.Instructions)
	assert.Equal(t, "2023-12-01", note.Timestamp)
}

func TestParseRecipeNotes_ContinuationWithWhitespaceKey(t *testing.T) {
	input := "dishName=Stew\ninstructions=Prep\nStep 2: simmer for an hour"

	notes := fixedParser().Parse(input)

	require.Len(t, notes, 1)
	assert.Equal(t, "Prep\nStep 2: simmer for an hour", notes[0].Instructions)
}

func TestParseRecipeNotes_KeySpellings(t *testing.T) {
	input := "dish_name: Curry\nCookingTime: 45 mins\nINSTRUCTIONS=Stir\\tgently\\r\\nthen rest"

	notes := fixedParser().Parse(input)

	require.Len(t, notes, 1)
	assert.Equal(t, "Curry", notes[0].DishName)
	assert.Equal(t, "45 mins", notes[0].CookingTime)
	assert.Equal(t, "Stir\tgently\nthen rest", notes[0].Instructions)
}

func TestParseRecipeNotes_MultipleBlocks(t *testing.T) {
	input := "dishName=A\n;;;\n\n;;;dishName=B\n;;;garbage without fields\n;;;"

	notes := fixedParser().Parse(input)

	require.Len(t, notes, 2)
	assert.Equal(t, "A", notes[0].DishName)
	assert.Equal(t, "B", notes[1].DishName)
}

func TestParseRecipeNotes_Empty(t *testing.T) {
	assert.Empty(t, ParseRecipeNotes(""))
	assert.NotNil(t, ParseRecipeNotes("   "))
}

func TestParseRecipeNotes_GeneratesIDs(t *testing.T) {
	notes := ParseRecipeNotes("dishName=A;;;dishName=B")

	require.Len(t, notes, 2)
	assert.NotEmpty(t, notes[0].Id)
	assert.NotEqual(t, notes[0].Id, notes[1].Id)
}
