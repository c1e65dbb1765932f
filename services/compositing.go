package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	compositeCanvasWidth   = 400
	compositeItemWidth     = 280
	compositeMaxItemHeight = 300
	compositeItemGap       = 20
	compositeEdgePadding   = 40
)

var topCategories = []string{"top", "shirt", "blouse", "jacket", "outerwear", "sweater", "hoodie", "coat", "dress"}
var bottomCategories = []string{"bottom", "pants", "jeans", "shorts", "skirt", "trousers"}
var footwearCategories = []string{"shoes", "boots", "sneakers", "heels", "sandals", "footwear"}

type CompositeItem struct {
	Category string
	Image    image.Image
}

// SlotTier maps a category to its vertical tier in the flat lay: 0 tops,
// 1 bottoms and anything unrecognized, 2 footwear. Matching is
// substring-based on the lowercased category, top tier checked first.
func SlotTier(category string) int {
	lowered := strings.ToLower(category)
	for _, keyword := range topCategories {
		if strings.Contains(lowered, keyword) {
			return 0
		}
	}
	for _, keyword := range bottomCategories {
		if strings.Contains(lowered, keyword) {
			return 1
		}
	}
	for _, keyword := range footwearCategories {
		if strings.Contains(lowered, keyword) {
			return 2
		}
	}
	return 1
}

// ScaleToFit scales width-first to the 280px item width, then rescales down
// if the result exceeds the 300px height cap.
func ScaleToFit(width, height int) (int, int) {
	scale := float64(compositeItemWidth) / float64(width)
	if float64(height)*scale > compositeMaxItemHeight {
		scale = float64(compositeMaxItemHeight) / float64(height)
	}
	return int(math.Round(float64(width) * scale)), int(math.Round(float64(height) * scale))
}

// ComposeFlatLay stacks garments top-to-bottom by tier on a white canvas,
// horizontally centered with fixed gaps and edge padding.
func ComposeFlatLay(items []CompositeItem) (image.Image, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no items to composite")
	}

	ordered := make([]CompositeItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return SlotTier(ordered[i].Category) < SlotTier(ordered[j].Category)
	})

	scaled := make([]image.Image, 0, len(ordered))
	totalHeight := compositeEdgePadding * 2
	for i, item := range ordered {
		bounds := item.Image.Bounds()
		if bounds.Dx() == 0 || bounds.Dy() == 0 {
			return nil, fmt.Errorf("item %d has an empty image", i)
		}
		w, h := ScaleToFit(bounds.Dx(), bounds.Dy())
		resized := imaging.Resize(item.Image, w, h, imaging.Lanczos)
		scaled = append(scaled, resized)
		totalHeight += h
		if i > 0 {
			totalHeight += compositeItemGap
		}
	}

	canvas := imaging.New(compositeCanvasWidth, totalHeight, color.White)
	y := compositeEdgePadding
	for _, img := range scaled {
		x := (compositeCanvasWidth - img.Bounds().Dx()) / 2
		canvas = imaging.Paste(canvas, img, image.Pt(x, y))
		y += img.Bounds().Dy() + compositeItemGap
	}
	return canvas, nil
}

// CropGarment cuts the normalized bounding box region out of the source image.
func CropGarment(src image.Image, box BoundingBox) (image.Image, error) {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	x0 := int(math.Round(box.X * float64(width)))
	y0 := int(math.Round(box.Y * float64(height)))
	cropWidth := int(math.Round(box.Width * float64(width)))
	cropHeight := int(math.Round(box.Height * float64(height)))
	if cropWidth < 1 || cropHeight < 1 {
		return nil, fmt.Errorf("bounding box resolves to an empty region")
	}

	cropped := imaging.Crop(src, image.Rect(x0, y0, x0+cropWidth, y0+cropHeight))
	if cropped.Bounds().Dx() == 0 || cropped.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("bounding box lies outside the image")
	}
	return cropped, nil
}

// EncodePNGDataURL renders the image as a base64 PNG data URL.
func EncodePNGDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode png: %v", err)
	}
	return EncodeDataURL("image/png", buf.Bytes()), nil
}

// DecodeImageDataURL decodes a base64 payload or data URL into an image.
func DecodeImageDataURL(imageBase64 string) (image.Image, error) {
	_, data, err := DecodeImagePayload(imageBase64)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	return img, nil
}
