package dbhelper

import (
	"log"

	"fitmuseapi/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var moodboardSeed = []models.Moodboard{
	{
		Name:          "Calm",
		ColorPalette:  pq.StringArray{"Soft blue", "Light grey", "White", "Beige", "Dusty lavender"},
		Textures:      pq.StringArray{"Cotton", "Soft knits", "Linen", "Light fleece"},
		Silhouettes:   pq.StringArray{"Relaxed fit", "Straight leg", "Loose sweaters", "Soft drape"},
		TypicalPieces: pq.StringArray{"Oversized sweatshirt", "Light knit sweaters", "Straight leg jeans", "Linen pants", "White sneakers", "Soft tote bag"},
		StylingLogic:  pq.StringArray{"Avoid sharp contrast", "Prioritize comfort and balance", "Keep colors light and muted", "Choose pieces with smooth textures"},
		ExampleOutfit: pq.StringArray{"Beige oversized sweatshirt", "Light blue denim", "Pale-toned sneakers", "Grey crossbody bag"},
	},
	{
		Name:          "Energetic",
		ColorPalette:  pq.StringArray{"Red", "Hot pink", "Yellow", "Orange", "Bright white"},
		Textures:      pq.StringArray{"Nylon", "Mesh", "Activewear materials", "Denim"},
		Silhouettes:   pq.StringArray{"Fitted tops", "Cropped cuts", "Sporty shapes", "High contrast color blocks"},
		TypicalPieces: pq.StringArray{"Bright cropped hoodie", "Color block jacket", "Track pants", "Sneakers with bold accents", "Chunky backpacks"},
		StylingLogic:  pq.StringArray{"Use at least one high-energy color", "Combine contrast colors", "Include sporty or movement-forward shapes", "Add at least one statement piece"},
		ExampleOutfit: pq.StringArray{"Yellow crop sweatshirt", "Black and white block leggings", "Red sneakers", "Mini backpack"},
	},
	{
		Name:          "Dark",
		ColorPalette:  pq.StringArray{"Black", "Charcoal", "Dark olive", "Deep navy"},
		Textures:      pq.StringArray{"Leather", "Denim", "Heavy cotton", "Ribbing"},
		Silhouettes:   pq.StringArray{"Structured", "Streamlined", "Slightly oversized outerwear"},
		TypicalPieces: pq.StringArray{"Black jeans", "Leather jacket", "Dark crewneck", "Combat boots", "Structured tote"},
		StylingLogic:  pq.StringArray{"Keep outfit low contrast", "Mix matte and slightly shiny textures", "Silhouette should feel grounded and strong"},
		ExampleOutfit: pq.StringArray{"Charcoal crewneck", "Black straight jeans", "Dark boots", "Olive structured bag"},
	},
	{
		Name:          "Bright",
		ColorPalette:  pq.StringArray{"Bright teal", "Hot pink", "Lime", "Sky blue", "Sunshine yellow"},
		Textures:      pq.StringArray{"Light cotton", "Breathable knits", "Canvas", "Fun prints"},
		Silhouettes:   pq.StringArray{"Playful", "Balanced but not too structured", "Layerable pieces"},
		TypicalPieces: pq.StringArray{"Patterned top", "Colorful skirt or relaxed pants", "Fun sneakers", "Small colorful accessories"},
		StylingLogic:  pq.StringArray{"Use at least two bright colors", "Add prints or patterns when possible", "Keep overall vibe fun and expressive"},
		ExampleOutfit: pq.StringArray{"Pink patterned top", "Sky-blue wide-leg pants", "Yellow canvas sneakers", "Colorful hair clip or bag"},
	},
	{
		Name:          "Soft",
		ColorPalette:  pq.StringArray{"Cream", "Rose", "Blush pink", "Warm beige", "Soft white"},
		Textures:      pq.StringArray{"Ribbed knit", "Wool blend", "Brushed cotton", "Satin accents"},
		Silhouettes:   pq.StringArray{"Flowy", "Delicate", "Light layering"},
		TypicalPieces: pq.StringArray{"Soft knit cardigan", "Satin cami", "Beige trousers", "Pink flats or white sneakers", "Light neutral bag"},
		StylingLogic:  pq.StringArray{"Blend warm-toned neutrals", "Avoid anything too sharp", "Use soft curves in silhouette", "Prioritize warmth and gentle color harmony"},
		ExampleOutfit: pq.StringArray{"Cream cardigan", "Blush satin tank", "Beige trousers", "White sneakers"},
	},
	{
		Name:          "Bold",
		ColorPalette:  pq.StringArray{"Black", "White", "Royal blue", "Red", "Metallic accents"},
		Textures:      pq.StringArray{"Leather", "Structured cotton", "Denim", "Satin or chrome-like finishes"},
		Silhouettes:   pq.StringArray{"Strong shoulders", "Defined waist", "Clean lines", "Statement shapes"},
		TypicalPieces: pq.StringArray{"Structured blazer", "High-waisted pants", "Tucked-in tee", "Boots or sleek sneakers", "Geometric bag"},
		StylingLogic:  pq.StringArray{"High contrast color pairing", "Choose strong, defined lines", "Keep the outfit intentional, not soft", "At least one dramatic element (shoulder, shoe, or color pop)"},
		ExampleOutfit: pq.StringArray{"White fitted tee", "Black wide-leg trousers", "Structured blazer", "Red bag or shoes"},
	},
}

var styleVibeSeed = []models.StyleVibe{
	{
		Name:            "Streetwear",
		ColorTendencies: pq.StringArray{"Black", "Grey", "White", "Earth tones", "Occasional bold accent (red, neon, graphic prints)"},
		Textures:        pq.StringArray{"Heavy cotton", "Fleece", "Nylon", "Denim", "Ribbed knits"},
		Silhouettes:     pq.StringArray{"Oversized tops", "Baggy or straight leg bottoms", "Cropped puffer jackets", "Layered hoodies and tees"},
		TypicalPieces:   pq.StringArray{"Hoodie", "Oversized tee", "Cargo pants", "Baggy jeans", "Puffer jacket", "Sneakers (chunky or skate style)", "Beanie or baseball cap"},
		StylingRules:    pq.StringArray{"Use relaxed silhouettes", "Use at least one statement piece (graphic print, oversized item, or bold sneaker)", "Keep color palette grounded with one accent", "Prioritize comfort and layering"},
		ExampleOutfit:   pq.StringArray{"Oversized grey hoodie", "Olive cargo pants", "White skate sneakers", "Black beanie"},
	},
	{
		Name:            "Minimalist",
		ColorTendencies: pq.StringArray{"Black", "White", "Cream", "Taupe", "Muted grey", "Very subtle pastels"},
		Textures:        pq.StringArray{"Smooth cotton", "Structured knits", "Wool blends", "Clean denim"},
		Silhouettes:     pq.StringArray{"Clean lines", "Straight or tapered pants", "Boxy tops", "Simple layers"},
		TypicalPieces:   pq.StringArray{"Simple crewneck", "Straight trousers", "Minimal sneakers", "Long-line coat", "Basic tee", "Structured tote"},
		StylingRules:    pq.StringArray{"Avoid patterns", "Keep contrast medium to low", "Use simple geometry (boxy top, straight pants)", "Select 2-3 colors max", "Favor structure and balance"},
		ExampleOutfit:   pq.StringArray{"White crewneck", "Black straight trousers", "Clean white sneakers", "Cream structured tote"},
	},
	{
		Name:            "Vintage",
		ColorTendencies: pq.StringArray{"Warm browns", "Washed denim blue", "Rust", "Mustard", "Forest green", "Cream"},
		Textures:        pq.StringArray{"Denim", "Wool", "Worn cotton", "Corduroy", "Crochet or knits"},
		Silhouettes:     pq.StringArray{"High-waisted pieces", "Straight or wide-leg pants", "Cropped cardigans", "Relaxed jackets"},
		TypicalPieces:   pq.StringArray{"Vintage wash jeans", "Cardigan", "Corduroy pants", "Retro sneakers or loafers", "Graphic tee", "Floral or textured blouse"},
		StylingRules:    pq.StringArray{"Use warm, nostalgic tones", "Mix textures (denim + knit, corduroy + cotton)", "Add one retro detail (collar, pattern, color tone)", "Avoid modern technical fabrics"},
		ExampleOutfit:   pq.StringArray{"Vintage wash jeans", "Cream cropped cardigan", "Brown loafers", "Small retro shoulder bag"},
	},
	{
		Name:            "Sporty",
		ColorTendencies: pq.StringArray{"Black", "White", "Grey", "Neon accents", "Primary colors"},
		Textures:        pq.StringArray{"Spandex", "Nylon", "Mesh", "Jersey fabric", "Technical blends"},
		Silhouettes:     pq.StringArray{"Fitted tops", "Leggings or track pants", "Layered performance jackets", "Cropped hoodies"},
		TypicalPieces:   pq.StringArray{"Sports bra or fitted tee", "Track jacket", "Leggings", "Running shoes", "Baseball cap"},
		StylingRules:    pq.StringArray{"Always include at least one technical fabric", "Allow bright accents for energy", "Keep silhouettes movement-friendly", "Prioritize comfort and flexibility"},
		ExampleOutfit:   pq.StringArray{"Black fitted tank", "White and grey track pants", "Neon-accent running shoes", "Lightweight zip jacket"},
	},
	{
		Name:            "Romantic",
		ColorTendencies: pq.StringArray{"Blush pink", "Warm beige", "Cream", "Soft florals", "Lavender"},
		Textures:        pq.StringArray{"Satin", "Silk-like fabrics", "Soft knits", "Lace", "Light cotton"},
		Silhouettes:     pq.StringArray{"Flowing shapes", "Soft drape", "Gentle waist emphasis", "Layered light fabrics"},
		TypicalPieces:   pq.StringArray{"Satin cami", "Knit cardigan", "Flowy skirt", "Soft trousers", "Ballet flats or dainty sneakers", "Ribbon details or delicate bags"},
		StylingRules:    pq.StringArray{"Keep everything soft, warm, or pastel-toned", "Use flowing or soft-edged silhouettes", "Avoid sharp lines or harsh contrast", "Add subtle feminine details (lace, bows, drape)"},
		ExampleOutfit:   pq.StringArray{"Blush satin cami", "Cream knit cardigan", "Soft beige wide-leg pants", "Light sneakers or ballet flats"},
	},
}

// SeedReferenceData upserts moodboards and style vibes by name. Runs on every
// startup so seed edits propagate.
func SeedReferenceData(db *gorm.DB) {
	log.Println("Seeding moodboards...")
	for _, moodboard := range moodboardSeed {
		var existing models.Moodboard
		db.Where("name = ?", moodboard.Name).Limit(1).Find(&existing)
		if existing.ID != 0 {
			moodboard.ID = existing.ID
			moodboard.CreatedAt = existing.CreatedAt
		}
		if err := db.Save(&moodboard).Error; err != nil {
			log.Printf("Failed to seed moodboard %s: %v", moodboard.Name, err)
		}
	}

	log.Println("Seeding style vibes...")
	for _, styleVibe := range styleVibeSeed {
		var existing models.StyleVibe
		db.Where("name = ?", styleVibe.Name).Limit(1).Find(&existing)
		if existing.ID != 0 {
			styleVibe.ID = existing.ID
			styleVibe.CreatedAt = existing.CreatedAt
		}
		if err := db.Save(&styleVibe).Error; err != nil {
			log.Printf("Failed to seed style vibe %s: %v", styleVibe.Name, err)
		}
	}
}
