package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_TextNodeUnchanged(t *testing.T) {
	assert.Equal(t, "hello", ExtractText(TextNode{Text: "hello"}))
	assert.Equal(t, "  padded  ", ExtractText(TextNode{Text: "  padded  "}))
}

func TestExtractText_NestedContent(t *testing.T) {
	raw := json.RawMessage(`{"content": [{"text": "a"}, {"content": [{"text": "b"}]}]}`)

	assert.Equal(t, "a b", ExtractTextFromJSON(raw))
}

func TestExtractText_AtlassianDocument(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "doc",
		"version": 1,
		"content": [
			{"type": "paragraph", "content": [
				{"type": "text", "text": "Build the"},
				{"type": "text", "text": "viewer", "marks": [{"type": "strong"}]}
			]},
			{"type": "bulletList", "content": [
				{"type": "listItem", "content": [
					{"type": "paragraph", "content": [{"type": "text", "text": "retry"}]}
				]}
			]}
		]
	}`)

	assert.Equal(t, "Build the viewer retry", ExtractTextFromJSON(raw))
}

func TestExtractText_AdjacentSpansGetSpace(t *testing.T) {
	raw := json.RawMessage(`{"content": [{"text": "foo"}, {"text": "bar"}]}`)

	assert.Equal(t, "foo bar", ExtractTextFromJSON(raw))
}

func TestExtractText_ObjectWithoutStructureFallsBack(t *testing.T) {
	raw := json.RawMessage(`{"type": "mention", "attrs": {"id": "42"}}`)

	got := ExtractTextFromJSON(raw)

	assert.NotEmpty(t, got)
	assert.Equal(t, `{"type":"mention","attrs":{"id":"42"}}`, got)
}

func TestExtractText_ObjectWithOnlyText(t *testing.T) {
	assert.Equal(t, "solo", ExtractTextFromJSON(json.RawMessage(`{"type":"text","text":" solo "}`)))
}

func TestExtractText_RootArrayIsWalked(t *testing.T) {
	raw := json.RawMessage(`[{"text": "one"}, {"text": "two"}]`)

	assert.Equal(t, "one two", ExtractTextFromJSON(raw))
}

func TestExtractText_ScalarsAndNull(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))
	assert.Equal(t, "", ExtractTextFromJSON(json.RawMessage(`null`)))
	assert.Equal(t, "", ExtractTextFromJSON(nil))
	assert.Equal(t, "42", ExtractTextFromJSON(json.RawMessage(`42`)))
	assert.Equal(t, "true", ExtractTextFromJSON(json.RawMessage(`true`)))
}

func TestExtractText_PlainStringDescription(t *testing.T) {
	assert.Equal(t, "legacy description", ExtractTextFromJSON(json.RawMessage(`"legacy description"`)))
}

func TestExtractText_IgnoresNonStringTextAndScalarContent(t *testing.T) {
	raw := json.RawMessage(`{"content": [{"text": 7}, {"text": "kept", "content": "not a collection"}]}`)

	assert.Equal(t, "kept", ExtractTextFromJSON(raw))
}

func TestExtractTextFromJSON_InvalidInputReturnedAsIs(t *testing.T) {
	assert.Equal(t, "{broken", ExtractTextFromJSON(json.RawMessage(`{broken`)))
}

func TestParseDocument_Variants(t *testing.T) {
	node, err := ParseDocument(json.RawMessage(`{"type":"doc","content":[{"type":"text","text":"x"}]}`))
	require.NoError(t, err)

	obj, ok := node.(ObjectNode)
	require.True(t, ok)
	assert.Equal(t, "doc", obj.Type)
	assert.Nil(t, obj.Text)

	arr, ok := obj.Content.(ArrayNode)
	require.True(t, ok)
	require.Len(t, arr.Items, 1)
	assert.Equal(t, KindObject, arr.Items[0].Kind())

	empty, err := ParseDocument(json.RawMessage(`  `))
	require.NoError(t, err)
	assert.Nil(t, empty)
}

// Extraction is deterministic and yields the words of every text leaf in order
func TestProperty_ExtractJoinsLeavesInOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("paragraph of text leaves extracts to space-joined words", prop.ForAll(
		func(words []string) bool {
			leaves := make([]map[string]interface{}, 0, len(words))
			for _, w := range words {
				leaves = append(leaves, map[string]interface{}{"type": "text", "text": w})
			}
			doc := map[string]interface{}{
				"type":    "doc",
				"content": []interface{}{map[string]interface{}{"type": "paragraph", "content": leaves}},
			}
			raw, err := json.Marshal(doc)
			if err != nil {
				return false
			}

			first := ExtractTextFromJSON(raw)
			second := ExtractTextFromJSON(raw)
			return first == second && first == strings.Join(words, " ")
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("result never has surrounding whitespace", prop.ForAll(
		func(words []string) bool {
			items := make([]interface{}, 0, len(words))
			for _, w := range words {
				items = append(items, map[string]interface{}{"text": " " + w + " "})
			}
			raw, err := json.Marshal(map[string]interface{}{"content": items})
			if err != nil {
				return false
			}

			got := ExtractTextFromJSON(raw)
			return got == strings.TrimSpace(got)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
