package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
)

type ClothingAnalysis struct {
	Category    string   `json:"category"`
	Colors      []string `json:"colors"`
	StyleVibes  []string `json:"style_vibes"`
	Formality   string   `json:"formality"`
	Season      []string `json:"season"`
	Description string   `json:"description"`
}

type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type DetectedGarment struct {
	Category    string      `json:"category"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Description string      `json:"description"`
	Confidence  float64     `json:"confidence"`
}

type CollageDetectionResult struct {
	IsCollage bool              `json:"isCollage"`
	Garments  []DetectedGarment `json:"garments"`
}

type CelebrityOutfitAnalysis struct {
	TopDescription       *string  `json:"topDescription"`
	TopColors            []string `json:"topColors"`
	BottomDescription    *string  `json:"bottomDescription"`
	BottomColors         []string `json:"bottomColors"`
	ShoesDescription     *string  `json:"shoesDescription"`
	ShoesColors          []string `json:"shoesColors"`
	OuterwearDescription *string  `json:"outerwearDescription"`
	OuterwearColors      []string `json:"outerwearColors"`
	AccessoryDescription *string  `json:"accessoryDescription"`
	AccessoryColors      []string `json:"accessoryColors"`
	OverallVibe          string   `json:"overallVibe"`
	DominantColors       []string `json:"dominantColors"`
}

var allowedFormalities = []string{"casual", "smart-casual", "formal", "athletic"}

const clothingAnalysisPrompt = `Analyze this image showing clothing. Even if there are multiple items, focus on the most prominent clothing piece visible. Provide a JSON response with these exact fields:
- category: the type of clothing (e.g., "shirt", "pants", "jacket", "dress", "shoes", "accessory", "top", "bottom", "outerwear")
- colors: array of dominant colors (e.g., ["black", "white", "navy"])
- style_vibes: array of style descriptors (e.g., ["streetwear", "minimalist", "vintage", "sporty", "romantic", "casual", "formal"])
- formality: one of "casual", "smart-casual", "formal", or "athletic"
- season: array of seasons this works for (e.g., ["spring", "summer", "fall", "winter"])
- description: brief 1-sentence description of the item

IMPORTANT: Always return valid JSON with all these fields. Never return an error message.`

const collageDetectionPrompt = `Analyze this image to detect if it's a collage containing MULTIPLE separate clothing items (like a grid of tops, pants, bikinis, etc.).

If the image shows MULTIPLE distinct clothing items arranged in a grid or collage format:
1. Set "isCollage" to true
2. For each clothing item, provide its bounding box as NORMALIZED coordinates (0-1 range where 0,0 is top-left and 1,1 is bottom-right)
3. The bounding box MUST capture the ENTIRE garment including:
   - All straps, ties, strings, and ribbons
   - The complete body/main portion of the garment
   - Any decorative elements that extend from the main piece
   - For bikini tops: include BOTH the cups AND all ties/straps
   - For tank tops: include the full body AND shoulder straps

If the image shows just ONE clothing item (or an outfit on a person), set "isCollage" to false and return an empty garments array.

Return JSON with this exact structure:
{
  "isCollage": boolean,
  "garments": [
    {
      "category": "top" | "bottom" | "dress" | "outerwear" | "shoes" | "accessory",
      "boundingBox": {
        "x": number (0-1, left edge - include some margin),
        "y": number (0-1, top edge - start ABOVE the topmost part like straps),
        "width": number (0-1),
        "height": number (0-1, extend BELOW the bottommost part)
      },
      "description": "brief description like 'white crew-neck t-shirt'",
      "confidence": number (0-1)
    }
  ]
}

CRITICAL INSTRUCTIONS:
- The bounding box MUST include the COMPLETE garment from the very top (including straps/ties) to the very bottom
- Add a small margin around each garment to ensure nothing is cut off
- For items with straps or ties: the y coordinate should start ABOVE the straps, and height should extend past the bottom of the garment
- Only return garments with confidence > 0.7
- Bounding boxes must be normalized (0-1 range)
- Maximum 20 garments per image`

const celebrityAnalysisPrompt = `Analyze this image of a celebrity or character outfit. Extract detailed information about each clothing piece visible.

Return JSON with this exact structure:
{
  "topDescription": "description of the top/shirt/blouse if visible, or null",
  "topColors": ["array of colors in the top"],
  "bottomDescription": "description of pants/skirt/shorts if visible, or null",
  "bottomColors": ["array of colors in the bottom"],
  "shoesDescription": "description of footwear if visible, or null",
  "shoesColors": ["array of colors in the shoes"],
  "outerwearDescription": "description of jacket/coat if visible, or null",
  "outerwearColors": ["array of colors in outerwear"],
  "accessoryDescription": "description of main accessories if visible, or null",
  "accessoryColors": ["array of colors in accessories"],
  "overallVibe": "one word describing the style: casual, formal, streetwear, vintage, sporty, romantic, minimalist, edgy, bohemian, preppy",
  "dominantColors": ["the 2-3 most prominent colors in the entire outfit"]
}

Be specific about:
- Clothing types (e.g., "cropped white tank top", "high-waisted blue jeans", "black leather ankle boots")
- Colors (use specific color names like "navy blue", "cream white", "olive green")
- Style elements that make the outfit distinctive

Return ONLY valid JSON.`

// parseLLMDocument decodes the model's JSON answer into an untyped document.
// An empty response counts as an empty document; malformed JSON is an error
// for the caller to surface.
func parseLLMDocument(raw string) (map[string]any, error) {
	if raw == "" {
		raw = "{}"
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("AI returned non-JSON response: %v", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func docString(doc map[string]any, key string, fallback string) string {
	if value, ok := doc[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

func docNullableString(doc map[string]any, key string) *string {
	if value, ok := doc[key].(string); ok && value != "" {
		return &value
	}
	return nil
}

func docStringList(doc map[string]any, key string, fallback []string) []string {
	raw, ok := doc[key].([]any)
	if !ok {
		return fallback
	}
	result := []string{}
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			result = append(result, s)
		}
	}
	if len(result) == 0 && len(fallback) > 0 {
		return fallback
	}
	return result
}

func docNumber(doc map[string]any, key string) (float64, bool) {
	value, ok := doc[key].(float64)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// AnalyzeClothingImage classifies the most prominent garment in the image.
// Every output field falls back to a safe default when the model omits or
// mangles it; only transport failures and non-JSON payloads become errors.
func AnalyzeClothingImage(ctx context.Context, llm LLMServiceProvider, imageBase64 string) (*ClothingAnalysis, error) {
	result, err := llm.AnalyzeImage(ctx, clothingAnalysisPrompt, imageBase64, Flash25)
	if err != nil {
		return nil, err
	}
	doc, err := parseLLMDocument(result.Response)
	if err != nil {
		return nil, err
	}

	formality := docString(doc, "formality", "casual")
	valid := false
	for _, allowed := range allowedFormalities {
		if formality == allowed {
			valid = true
			break
		}
	}
	if !valid {
		formality = "casual"
	}

	return &ClothingAnalysis{
		Category:    docString(doc, "category", "clothing"),
		Colors:      docStringList(doc, "colors", []string{"unknown"}),
		StyleVibes:  docStringList(doc, "style_vibes", []string{"casual"}),
		Formality:   formality,
		Season:      docStringList(doc, "season", []string{"all-seasons"}),
		Description: docString(doc, "description", "A clothing item"),
	}, nil
}

// DetectGarmentsInCollage finds individual garments in a multi-item collage.
// Boxes with non-numeric or non-positive dimensions are discarded, surviving
// boxes get 5% symmetric padding clamped into the unit square.
func DetectGarmentsInCollage(ctx context.Context, llm LLMServiceProvider, imageBase64 string) (*CollageDetectionResult, error) {
	result, err := llm.AnalyzeImage(ctx, collageDetectionPrompt, imageBase64, Flash25)
	if err != nil {
		return nil, err
	}
	doc, err := parseLLMDocument(result.Response)
	if err != nil {
		return nil, err
	}
	fmt.Println("Collage detection response:", result.Response)

	garments := []DetectedGarment{}
	rawGarments, _ := doc["garments"].([]any)
	for _, rawGarment := range rawGarments {
		garment, ok := rawGarment.(map[string]any)
		if !ok {
			continue
		}
		box, ok := garment["boundingBox"].(map[string]any)
		if !ok {
			continue
		}
		x, okX := docNumber(box, "x")
		y, okY := docNumber(box, "y")
		width, okW := docNumber(box, "width")
		height, okH := docNumber(box, "height")
		if !okX || !okY || !okW || !okH || width <= 0 || height <= 0 {
			continue
		}
		confidence, okC := docNumber(garment, "confidence")
		if !okC || confidence < 0.7 {
			continue
		}

		const padding = 0.05
		paddedX := math.Max(0, x-padding)
		paddedY := math.Max(0, y-padding)
		paddedWidth := math.Min(1-paddedX, width+padding*2)
		paddedHeight := math.Min(1-paddedY, height+padding*2)

		garments = append(garments, DetectedGarment{
			Category: docString(garment, "category", "clothing"),
			BoundingBox: BoundingBox{
				X:      paddedX,
				Y:      paddedY,
				Width:  math.Max(0.01, paddedWidth),
				Height: math.Max(0.01, paddedHeight),
			},
			Description: docString(garment, "description", "A clothing item"),
			Confidence:  confidence,
		})
	}

	isCollage, _ := doc["isCollage"].(bool)
	return &CollageDetectionResult{
		IsCollage: isCollage && len(garments) > 1,
		Garments:  garments,
	}, nil
}

// AnalyzeCelebrityOutfit extracts per-slot garment descriptions from a
// reference photo. Missing slots come back as nil with empty color lists.
func AnalyzeCelebrityOutfit(ctx context.Context, llm LLMServiceProvider, imageBase64 string) (*CelebrityOutfitAnalysis, error) {
	result, err := llm.AnalyzeImage(ctx, celebrityAnalysisPrompt, imageBase64, Flash25)
	if err != nil {
		return nil, err
	}
	doc, err := parseLLMDocument(result.Response)
	if err != nil {
		return nil, err
	}

	return &CelebrityOutfitAnalysis{
		TopDescription:       docNullableString(doc, "topDescription"),
		TopColors:            docStringList(doc, "topColors", []string{}),
		BottomDescription:    docNullableString(doc, "bottomDescription"),
		BottomColors:         docStringList(doc, "bottomColors", []string{}),
		ShoesDescription:     docNullableString(doc, "shoesDescription"),
		ShoesColors:          docStringList(doc, "shoesColors", []string{}),
		OuterwearDescription: docNullableString(doc, "outerwearDescription"),
		OuterwearColors:      docStringList(doc, "outerwearColors", []string{}),
		AccessoryDescription: docNullableString(doc, "accessoryDescription"),
		AccessoryColors:      docStringList(doc, "accessoryColors", []string{}),
		OverallVibe:          docString(doc, "overallVibe", "casual"),
		DominantColors:       docStringList(doc, "dominantColors", []string{}),
	}, nil
}
