package services

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(width, height int, c color.NRGBA) image.Image {
	img := imaging.New(width, height, c)
	return img
}

func TestSlotTier(t *testing.T) {
	assert.Equal(t, 0, SlotTier("top"))
	assert.Equal(t, 0, SlotTier("Dress"))
	assert.Equal(t, 0, SlotTier("bikini top"))
	assert.Equal(t, 0, SlotTier("Hoodie"))
	assert.Equal(t, 1, SlotTier("pants"))
	assert.Equal(t, 1, SlotTier("baggy jeans"))
	assert.Equal(t, 1, SlotTier("scarf"))
	assert.Equal(t, 1, SlotTier(""))
	assert.Equal(t, 2, SlotTier("shoes"))
	assert.Equal(t, 2, SlotTier("Sneakers"))
}

func TestScaleToFitWidthFirst(t *testing.T) {
	w, h := ScaleToFit(1000, 500)
	assert.Equal(t, 280, w)
	assert.Equal(t, 140, h)
}

func TestScaleToFitHeightCapped(t *testing.T) {
	w, h := ScaleToFit(280, 1000)
	assert.Equal(t, 84, w)
	assert.Equal(t, 300, h)
}

func TestComposeFlatLayOrdersTiersTopDown(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	items := []CompositeItem{
		// bottoms listed first: compositor must still stack the top above
		{Category: "pants", Image: solidImage(100, 50, blue)},
		{Category: "top", Image: solidImage(100, 100, red)},
	}
	composite, err := ComposeFlatLay(items)
	require.NoError(t, err)

	bounds := composite.Bounds()
	assert.Equal(t, 400, bounds.Dx())
	// 40 + 280 + 20 + 140 + 40
	assert.Equal(t, 520, bounds.Dy())

	r, _, b, _ := composite.At(200, 100).RGBA()
	assert.Greater(t, r, b, "top tier pixel should be red")

	r, _, b, _ = composite.At(200, 400).RGBA()
	assert.Greater(t, b, r, "bottom tier pixel should be blue")

	// edge padding stays white
	r, g, b, _ := composite.At(200, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestComposeFlatLayUnknownCategoryLandsInMiddle(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	items := []CompositeItem{
		{Category: "sneakers", Image: solidImage(100, 50, blue)},
		{Category: "scarf", Image: solidImage(100, 50, green)},
		{Category: "shirt", Image: solidImage(100, 50, red)},
	}
	composite, err := ComposeFlatLay(items)
	require.NoError(t, err)

	// three 280x140 tiles: rows at 40..180, 200..340, 360..500
	r, _, _, _ := composite.At(200, 100).RGBA()
	assert.Equal(t, uint32(0xffff), r, "shirt first")
	_, g, _, _ := composite.At(200, 270).RGBA()
	assert.Equal(t, uint32(0xffff), g, "scarf in the middle tier")
	_, _, b, _ := composite.At(200, 430).RGBA()
	assert.Equal(t, uint32(0xffff), b, "sneakers last")
}

func TestComposeFlatLayEmptyInput(t *testing.T) {
	_, err := ComposeFlatLay(nil)
	assert.Error(t, err)
}

func TestCropGarment(t *testing.T) {
	src := solidImage(200, 100, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	cropped, err := CropGarment(src, BoundingBox{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 100, cropped.Bounds().Dx())
	assert.Equal(t, 50, cropped.Bounds().Dy())
}

func TestCropGarmentEmptyRegion(t *testing.T) {
	src := solidImage(200, 100, color.NRGBA{A: 255})
	_, err := CropGarment(src, BoundingBox{X: 0.5, Y: 0.5, Width: 0.001, Height: 0.001})
	assert.Error(t, err)
}

func TestEncodeAndDecodePNGDataURL(t *testing.T) {
	src := solidImage(4, 4, color.NRGBA{R: 255, A: 255})
	dataURL, err := EncodePNGDataURL(src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	decoded, err := DecodeImageDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Bounds().Dx())
	assert.Equal(t, 4, decoded.Bounds().Dy())
}

func TestDecodeImageDataURLRejectsGarbage(t *testing.T) {
	_, err := DecodeImageDataURL("data:image/png;base64,!!!!")
	assert.Error(t, err)
}
