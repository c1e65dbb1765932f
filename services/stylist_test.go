package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"fitmuseapi/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response string
	images   [][]byte
	err      error
}

func (f *fakeLLM) AnalyzeImage(ctx context.Context, prompt string, imageBase64 string, modelName LLMModelName) (*LLMResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &LLMResponse{Response: f.response}, nil
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string, modelName LLMModelName) (*LLMResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &LLMResponse{Response: f.response}, nil
}

func (f *fakeLLM) GenerateImage(ctx context.Context, prompt string, modelName LLMModelName) (*LLMResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &LLMResponse{Images: f.images}, nil
}

func threeItemCloset() []OutfitItem {
	analysis := ClothingAnalysis{
		Category:    "top",
		Colors:      []string{"white"},
		StyleVibes:  []string{"minimalist"},
		Formality:   "casual",
		Season:      []string{"summer"},
		Description: "A white tee",
	}
	return []OutfitItem{
		{Id: "item-a", Name: "White tee", Analysis: analysis},
		{Id: "item-b", Name: "Black jeans", Analysis: analysis},
		{Id: "item-c", Name: "Red skirt", Analysis: analysis},
	}
}

func TestGenerateOutfitRecommendationStripsDecoratedIds(t *testing.T) {
	llm := &fakeLLM{response: `{
		"selected_item_ids": ["[ID: item-a]", "ID: item-b", "bogus-id"],
		"explanation": "Crisp and clean.",
		"style_notes": "Tuck in the tee."
	}`}
	rec, err := GenerateOutfitRecommendation(context.Background(), llm, OutfitRequest{
		Items: threeItemCloset(),
		Mood:  "Calm",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"item-a", "item-b"}, rec.SelectedItemIds)
	assert.Equal(t, "Crisp and clean.", rec.Explanation)
	assert.Equal(t, "Tuck in the tee.", rec.StyleNotes)
}

func TestGenerateOutfitRecommendationExtractsIdsFromExplanation(t *testing.T) {
	llm := &fakeLLM{response: `{
		"selected_item_ids": [],
		"explanation": "Pair [ID: item-b] with [ID: item-c], and again [ID: item-b]."
	}`}
	rec, err := GenerateOutfitRecommendation(context.Background(), llm, OutfitRequest{
		Items: threeItemCloset(),
		Mood:  "Calm",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"item-b", "item-c"}, rec.SelectedItemIds)
}

func TestGenerateOutfitRecommendationFallsBackToFirstTwoItems(t *testing.T) {
	llm := &fakeLLM{response: `{"selected_item_ids": ["nope"], "explanation": "no tokens here"}`}
	rec, err := GenerateOutfitRecommendation(context.Background(), llm, OutfitRequest{
		Items: threeItemCloset(),
		Mood:  "Calm",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"item-a", "item-b"}, rec.SelectedItemIds)
	assert.Equal(t, "no tokens here", rec.Explanation)
	assert.Equal(t, "Accessorize as needed.", rec.StyleNotes)
}

func TestGenerateOutfitRecommendationDefaultsOnEmptyDocument(t *testing.T) {
	llm := &fakeLLM{response: `{}`}
	rec, err := GenerateOutfitRecommendation(context.Background(), llm, OutfitRequest{
		Items: threeItemCloset(),
		Mood:  "Calm",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"item-a", "item-b"}, rec.SelectedItemIds)
	assert.Equal(t, "A stylish outfit combination.", rec.Explanation)
	assert.Equal(t, "Accessorize as needed.", rec.StyleNotes)
}

func TestGenerateOutfitRecommendationOutputIsSubsetOfCloset(t *testing.T) {
	llm := &fakeLLM{response: `{
		"selected_item_ids": ["[ID: item-c]", "item-a", "made-up", "[ID: other]"],
		"explanation": "mixed bag"
	}`}
	items := threeItemCloset()
	rec, err := GenerateOutfitRecommendation(context.Background(), llm, OutfitRequest{Items: items, Mood: "Bold"})
	require.NoError(t, err)
	require.NotEmpty(t, rec.SelectedItemIds)
	valid := map[string]bool{}
	for _, item := range items {
		valid[item.Id] = true
	}
	for _, id := range rec.SelectedItemIds {
		assert.True(t, valid[id], "unexpected id %s", id)
	}
}

func TestGenerateOutfitRecommendationNonJSONResponse(t *testing.T) {
	llm := &fakeLLM{response: "sorry, I cannot help with that"}
	_, err := GenerateOutfitRecommendation(context.Background(), llm, OutfitRequest{
		Items: threeItemCloset(),
		Mood:  "Calm",
	})
	assert.Error(t, err)
}

func TestGenerateOutfitRecommendationTransportErrorPropagates(t *testing.T) {
	llm := &fakeLLM{err: fmt.Errorf("upstream down")}
	_, err := GenerateOutfitRecommendation(context.Background(), llm, OutfitRequest{
		Items: threeItemCloset(),
		Mood:  "Calm",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestBuildOutfitPromptIncludesGuidanceBlocks(t *testing.T) {
	moodboard := &models.Moodboard{
		Name:          "Calm",
		ColorPalette:  pq.StringArray{"Soft blue", "White"},
		Textures:      pq.StringArray{"Cotton"},
		Silhouettes:   pq.StringArray{"Relaxed fit"},
		TypicalPieces: pq.StringArray{"Oversized sweatshirt"},
		StylingLogic:  pq.StringArray{"Avoid sharp contrast", "Prioritize comfort"},
		ExampleOutfit: pq.StringArray{"Beige sweatshirt"},
	}
	styleVibe := &models.StyleVibe{
		Name:            "Minimalist",
		ColorTendencies: pq.StringArray{"Black", "White"},
		Textures:        pq.StringArray{"Smooth cotton"},
		Silhouettes:     pq.StringArray{"Clean lines"},
		TypicalPieces:   pq.StringArray{"Simple crewneck"},
		StylingRules:    pq.StringArray{"Avoid patterns"},
		ExampleOutfit:   pq.StringArray{"White crewneck"},
	}
	topDesc := "cropped white tank top"
	inspiration := &CelebrityOutfitAnalysis{
		TopDescription: &topDesc,
		TopColors:      []string{"white"},
		OverallVibe:    "minimalist",
		DominantColors: []string{"white", "black"},
	}

	prompt := BuildOutfitPrompt(OutfitRequest{
		Items:                threeItemCloset(),
		Mood:                 "Calm",
		Moodboard:            moodboard,
		StyleVibe:            styleVibe,
		ColorDirection:       "monochrome",
		HasSketch:            true,
		CelebrityInspiration: inspiration,
	})

	assert.Contains(t, prompt, "[ID: item-a] White tee - top, colors: white")
	assert.Contains(t, prompt, `MOODBOARD FOR "CALM" MOOD:`)
	assert.Contains(t, prompt, "- Styling Rules: Avoid sharp contrast; Prioritize comfort")
	assert.Contains(t, prompt, `STYLE VIBE: "MINIMALIST"`)
	assert.Contains(t, prompt, "CELEBRITY/CHARACTER INSPIRATION - MATCH THIS LOOK:")
	assert.Contains(t, prompt, "- Reference Top: cropped white tank top (colors: white)")
	assert.NotContains(t, prompt, "- Reference Bottom:")
	assert.Contains(t, prompt, "- Color Direction: monochrome")
	assert.Contains(t, prompt, "silhouette sketch")
}

func TestBuildOutfitPromptOmitsOptionalBlocks(t *testing.T) {
	prompt := BuildOutfitPrompt(OutfitRequest{Items: threeItemCloset(), Mood: "Dark"})
	assert.Contains(t, prompt, "- Mood: Dark")
	assert.NotContains(t, prompt, "MOODBOARD FOR")
	assert.NotContains(t, prompt, "STYLE VIBE:")
	assert.NotContains(t, prompt, "CELEBRITY")
	assert.NotContains(t, prompt, "Color Direction")
}

func TestBuildOutfitImagePrompt(t *testing.T) {
	items := []OutfitImageItem{
		{Name: "Tee", Analysis: ClothingAnalysis{Colors: []string{"white", "grey"}, Description: "soft cotton tee", Category: "top"}},
		{Name: "Jeans", Analysis: ClothingAnalysis{Colors: []string{"blue"}, Category: "jeans"}},
	}
	prompt := BuildOutfitImagePrompt(items, "Calm", "Minimalist")
	assert.True(t, strings.HasPrefix(prompt, "Fashion illustration of a stylish outfit: white and grey soft cotton tee, paired with blue jeans."))
	assert.Contains(t, prompt, "a calm mood with Minimalist style aesthetic")
}

func TestGenerateOutfitImageReturnsDataURL(t *testing.T) {
	llm := &fakeLLM{images: [][]byte{{0x89, 0x50, 0x4e, 0x47}}}
	url, err := GenerateOutfitImage(context.Background(), llm, []OutfitImageItem{
		{Name: "Tee", Analysis: ClothingAnalysis{Colors: []string{"white"}, Description: "a tee"}},
	}, "Calm", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestGenerateOutfitImageNoImageData(t *testing.T) {
	llm := &fakeLLM{}
	_, err := GenerateOutfitImage(context.Background(), llm, []OutfitImageItem{
		{Name: "Tee", Analysis: ClothingAnalysis{Colors: []string{"white"}}},
	}, "Calm", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image data")
}
