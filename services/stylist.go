package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"fitmuseapi/models"
)

type OutfitItem struct {
	Id       string           `json:"id"`
	Name     string           `json:"name"`
	Analysis ClothingAnalysis `json:"analysis"`
}

type OutfitRecommendation struct {
	SelectedItemIds []string `json:"selected_item_ids"`
	Explanation     string   `json:"explanation"`
	StyleNotes      string   `json:"style_notes"`
}

type OutfitRequest struct {
	Items                []OutfitItem
	Mood                 string
	Moodboard            *models.Moodboard
	StyleVibe            *models.StyleVibe
	ColorDirection       string
	HasSketch            bool
	CelebrityInspiration *CelebrityOutfitAnalysis
}

type OutfitImageItem struct {
	Name     string           `json:"name"`
	Analysis ClothingAnalysis `json:"analysis"`
}

var (
	idPrefixRule      = regexp.MustCompile(`(?i)^\[?ID:\s*`)
	idSuffixRule      = regexp.MustCompile(`\]$`)
	explanationIdRule = regexp.MustCompile(`\[ID:\s*([^\]]+)\]`)
)

func celebritySlotLine(label string, description *string, colors []string) string {
	if description == nil {
		return ""
	}
	return fmt.Sprintf("\n- Reference %s: %s (colors: %s)", label, *description, strings.Join(colors, ", "))
}

// BuildOutfitPrompt renders the full stylist prompt: the closet inventory with
// [ID: x] tokens, the mood/vibe/inspiration guidance blocks and the structural
// outfit rules.
func BuildOutfitPrompt(request OutfitRequest) string {
	lines := make([]string, 0, len(request.Items))
	for _, item := range request.Items {
		lines = append(lines, fmt.Sprintf(
			"[ID: %s] %s - %s, colors: %s, vibes: %s, formality: %s, description: %s",
			item.Id,
			item.Name,
			item.Analysis.Category,
			strings.Join(item.Analysis.Colors, ", "),
			strings.Join(item.Analysis.StyleVibes, ", "),
			item.Analysis.Formality,
			item.Analysis.Description,
		))
	}
	itemDescriptions := strings.Join(lines, "\n")

	moodGuidelines := ""
	if request.Moodboard != nil {
		mb := request.Moodboard
		moodGuidelines = fmt.Sprintf(`
MOODBOARD FOR %q MOOD:
- Target Colors: %s
- Preferred Textures: %s
- Silhouette Style: %s
- Typical Pieces: %s
- Styling Rules: %s
- Example Outfit: %s`,
			strings.ToUpper(request.Mood),
			strings.Join(mb.ColorPalette, ", "),
			strings.Join(mb.Textures, ", "),
			strings.Join(mb.Silhouettes, ", "),
			strings.Join(mb.TypicalPieces, ", "),
			strings.Join(mb.StylingLogic, "; "),
			strings.Join(mb.ExampleOutfit, ", "),
		)
	}

	styleVibeGuidelines := ""
	if request.StyleVibe != nil {
		sv := request.StyleVibe
		styleVibeGuidelines = fmt.Sprintf(`
STYLE VIBE: %q
- Color Tendencies: %s
- Preferred Textures: %s
- Silhouette Style: %s
- Typical Pieces: %s
- Styling Rules: %s
- Example Outfit: %s`,
			strings.ToUpper(sv.Name),
			strings.Join(sv.ColorTendencies, ", "),
			strings.Join(sv.Textures, ", "),
			strings.Join(sv.Silhouettes, ", "),
			strings.Join(sv.TypicalPieces, ", "),
			strings.Join(sv.StylingRules, "; "),
			strings.Join(sv.ExampleOutfit, ", "),
		)
	}

	celebrityGuidelines := ""
	if request.CelebrityInspiration != nil {
		ci := request.CelebrityInspiration
		celebrityGuidelines = fmt.Sprintf(`
CELEBRITY/CHARACTER INSPIRATION - MATCH THIS LOOK:%s%s%s%s
- Overall Vibe: %s
- Dominant Colors: %s

PRIORITY: Match the celebrity outfit as closely as possible using items from the user's closet. Find:
1. A TOP that matches the reference top's style, color, and vibe
2. A BOTTOM that matches the reference bottom's style, color, and vibe
Prioritize color matching and similar garment types.`,
			celebritySlotLine("Top", ci.TopDescription, ci.TopColors),
			celebritySlotLine("Bottom", ci.BottomDescription, ci.BottomColors),
			celebritySlotLine("Shoes", ci.ShoesDescription, ci.ShoesColors),
			celebritySlotLine("Outerwear", ci.OuterwearDescription, ci.OuterwearColors),
			ci.OverallVibe,
			strings.Join(ci.DominantColors, ", "),
		)
	}

	colorDirectionLine := ""
	if request.ColorDirection != "" {
		colorDirectionLine = fmt.Sprintf("\n- Color Direction: %s", request.ColorDirection)
	}
	sketchLine := ""
	if request.HasSketch {
		sketchLine = "\n- User provided a silhouette sketch - consider volume and shape"
	}

	return fmt.Sprintf(`You are a professional fashion stylist. Create an outfit from these clothing items:

%s

CONSTRAINTS:
- Mood: %s%s%s%s%s%s

OUTFIT REQUIREMENTS:
- Select EXACTLY 2 items: ONE top and ONE bottom
- Top categories include: top, shirt, blouse, tank, cami, sweater, hoodie, jacket, coat, outerwear, bikini top
- Bottom categories include: bottom, pants, jeans, shorts, skirt, trousers, bikini bottom
- If a dress is available and matches the mood, you may select just the dress (1 item)

IMPORTANT: Match clothing items to BOTH the mood criteria AND the style vibe criteria. Prioritize items whose colors, textures, silhouettes, and style match the guidelines. The outfit should feel cohesive with both the mood and vibe.

CRITICAL: You must ONLY select from the items provided above. Return the exact IDs (the strings in brackets like [ID: abc123]) of the items you select.

Return JSON with these exact fields:
- selected_item_ids: array of EXACTLY 2 item IDs (one top, one bottom) - strings only, from the [ID: xxx] brackets above
- explanation: 2-3 sentence explanation of why this outfit works for the mood/vibe and how items match the criteria
- style_notes: brief styling tip

Return ONLY valid JSON.`,
		itemDescriptions,
		request.Mood,
		moodGuidelines,
		styleVibeGuidelines,
		celebrityGuidelines,
		colorDirectionLine,
		sketchLine,
	)
}

// parseSelectedIds recovers the chosen item IDs in three tiers: clean the
// model's id list, then scan the explanation for bracket tokens, then fall
// back to the first two closet items. The result is always a non-empty subset
// of validItemIds (closet permitting).
func parseSelectedIds(doc map[string]any, validItemIds []string) []string {
	validSet := map[string]bool{}
	for _, id := range validItemIds {
		validSet[id] = true
	}

	selectedIds := []string{}
	if rawIds, ok := doc["selected_item_ids"].([]any); ok {
		for _, rawEntry := range rawIds {
			rawId, ok := rawEntry.(string)
			if !ok {
				continue
			}
			cleanId := strings.TrimSpace(idSuffixRule.ReplaceAllString(idPrefixRule.ReplaceAllString(rawId, ""), ""))
			if validSet[cleanId] {
				selectedIds = append(selectedIds, cleanId)
			} else if validSet[rawId] {
				selectedIds = append(selectedIds, rawId)
			}
		}
	}

	if len(selectedIds) == 0 {
		if explanation, ok := doc["explanation"].(string); ok {
			seen := map[string]bool{}
			for _, match := range explanationIdRule.FindAllStringSubmatch(explanation, -1) {
				extractedId := strings.TrimSpace(match[1])
				if validSet[extractedId] && !seen[extractedId] {
					seen[extractedId] = true
					selectedIds = append(selectedIds, extractedId)
				}
			}
		}
	}

	if len(selectedIds) == 0 {
		end := 2
		if len(validItemIds) < end {
			end = len(validItemIds)
		}
		selectedIds = append(selectedIds, validItemIds[:end]...)
	}
	return selectedIds
}

func GenerateOutfitRecommendation(ctx context.Context, llm LLMServiceProvider, request OutfitRequest) (*OutfitRecommendation, error) {
	result, err := llm.Complete(ctx, BuildOutfitPrompt(request), Flash25)
	if err != nil {
		return nil, err
	}
	fmt.Println("AI raw response:", result.Response)
	doc, err := parseLLMDocument(result.Response)
	if err != nil {
		return nil, err
	}

	validItemIds := make([]string, 0, len(request.Items))
	for _, item := range request.Items {
		validItemIds = append(validItemIds, item.Id)
	}
	selectedIds := parseSelectedIds(doc, validItemIds)
	fmt.Println("Valid item IDs:", validItemIds)
	fmt.Println("Selected item IDs:", selectedIds)

	return &OutfitRecommendation{
		SelectedItemIds: selectedIds,
		Explanation:     docString(doc, "explanation", "A stylish outfit combination."),
		StyleNotes:      docString(doc, "style_notes", "Accessorize as needed."),
	}, nil
}

// BuildOutfitImagePrompt turns the selected items into a fashion illustration
// prompt for the image model.
func BuildOutfitImagePrompt(items []OutfitImageItem, mood string, styleVibe string) string {
	descriptions := make([]string, 0, len(items))
	for _, item := range items {
		colors := strings.Join(item.Analysis.Colors, " and ")
		description := item.Analysis.Description
		if description == "" {
			description = item.Analysis.Category
		}
		descriptions = append(descriptions, fmt.Sprintf("%s %s", colors, description))
	}
	styleContext := "casual style"
	if styleVibe != "" {
		styleContext = fmt.Sprintf("%s style", styleVibe)
	}
	return fmt.Sprintf(
		"Fashion illustration of a stylish outfit: %s. The outfit has a %s mood with %s aesthetic. Show the complete outfit on a fashion model mannequin or flat lay presentation, professional fashion photography style, clean white background, high-end fashion magazine quality, soft lighting, elegant composition.",
		strings.Join(descriptions, ", paired with "),
		strings.ToLower(mood),
		styleContext,
	)
}

// GenerateOutfitImage renders the selected outfit and returns a PNG data URL.
func GenerateOutfitImage(ctx context.Context, llm LLMServiceProvider, items []OutfitImageItem, mood string, styleVibe string) (string, error) {
	prompt := BuildOutfitImagePrompt(items, mood, styleVibe)
	fmt.Println("Generating outfit image with prompt:", prompt)

	result, err := llm.GenerateImage(ctx, prompt, Flash25Image)
	if err != nil {
		return "", fmt.Errorf("failed to generate outfit image: %v", err)
	}
	if len(result.Images) == 0 {
		return "", fmt.Errorf("no image data returned from AI")
	}
	return EncodeDataURL("image/png", result.Images[0]), nil
}
