package controllers

import (
	"fmt"
	"net/http"

	"fitmuseapi/models"
	"fitmuseapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type StylingController struct {
	LLM services.LLMServiceProvider
}

func (controller *StylingController) StylingRoutes(g *echo.Group) {
	g.POST("/analyze-clothing", controller.AnalyzeClothing)
	g.POST("/detect-garments", controller.DetectGarments)
	g.POST("/analyze-celebrity-outfit", controller.AnalyzeCelebrityOutfit)
	g.POST("/generate-outfit", controller.GenerateOutfit)
	g.POST("/generate-outfit-image", controller.GenerateOutfitImage)
	g.POST("/crop-garment", controller.CropGarment)
	g.POST("/composite-outfit", controller.CompositeOutfit)
}

type AnalyzeImageIn struct {
	ImageBase64 string `json:"imageBase64"`
}

type GenerateOutfitIn struct {
	Items                []services.OutfitItem             `json:"items"`
	Mood                 string                            `json:"mood"`
	StyleVibe            *string                           `json:"styleVibe"`
	ColorDirection       *string                           `json:"colorDirection"`
	HasSketch            *bool                             `json:"hasSketch"`
	CelebrityInspiration *services.CelebrityOutfitAnalysis `json:"celebrityInspiration"`
}

type GenerateOutfitImageIn struct {
	Items     []services.OutfitImageItem `json:"items"`
	Mood      string                     `json:"mood"`
	StyleVibe *string                    `json:"styleVibe"`
}

type GenerateOutfitImageOut struct {
	ImageUrl string `json:"imageUrl"`
}

type CropGarmentIn struct {
	ImageBase64 string               `json:"imageBase64"`
	BoundingBox services.BoundingBox `json:"boundingBox"`
}

type CompositeItemIn struct {
	ImageBase64 string `json:"imageBase64"`
	Category    string `json:"category"`
}

type CompositeOutfitIn struct {
	Items []CompositeItemIn `json:"items"`
}

type ImageOut struct {
	ImageBase64 string `json:"imageBase64"`
}

func (controller *StylingController) AnalyzeClothing(c echo.Context) error {
	payload := new(AnalyzeImageIn)
	if err := c.Bind(payload); err != nil || payload.ImageBase64 == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing imageBase64"})
	}
	analysis, err := services.AnalyzeClothingImage(c.Request().Context(), controller.LLM, payload.ImageBase64)
	if err != nil {
		fmt.Println("Error analyzing clothing:", err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, analysis)
}

func (controller *StylingController) DetectGarments(c echo.Context) error {
	payload := new(AnalyzeImageIn)
	if err := c.Bind(payload); err != nil || payload.ImageBase64 == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing imageBase64"})
	}
	result, err := services.DetectGarmentsInCollage(c.Request().Context(), controller.LLM, payload.ImageBase64)
	if err != nil {
		fmt.Println("Error detecting garments:", err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (controller *StylingController) AnalyzeCelebrityOutfit(c echo.Context) error {
	payload := new(AnalyzeImageIn)
	if err := c.Bind(payload); err != nil || payload.ImageBase64 == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing imageBase64"})
	}
	analysis, err := services.AnalyzeCelebrityOutfit(c.Request().Context(), controller.LLM, payload.ImageBase64)
	if err != nil {
		fmt.Println("Error analyzing celebrity outfit:", err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, analysis)
}

func (controller *StylingController) GenerateOutfit(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	payload := new(GenerateOutfitIn)
	if err := c.Bind(payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Need at least 2 items in closet"})
	}
	if len(payload.Items) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Need at least 2 items in closet"})
	}
	if payload.Mood == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Mood is required"})
	}

	request := services.OutfitRequest{
		Items:                payload.Items,
		Mood:                 payload.Mood,
		CelebrityInspiration: payload.CelebrityInspiration,
	}
	var moodboard models.Moodboard
	if db.Where("name = ?", payload.Mood).Limit(1).Find(&moodboard); moodboard.ID != 0 {
		request.Moodboard = &moodboard
	}
	if payload.StyleVibe != nil && *payload.StyleVibe != "" {
		var styleVibe models.StyleVibe
		if db.Where("name = ?", *payload.StyleVibe).Limit(1).Find(&styleVibe); styleVibe.ID != 0 {
			request.StyleVibe = &styleVibe
		}
	}
	if payload.ColorDirection != nil {
		request.ColorDirection = *payload.ColorDirection
	}
	if payload.HasSketch != nil {
		request.HasSketch = *payload.HasSketch
	}

	recommendation, err := services.GenerateOutfitRecommendation(c.Request().Context(), controller.LLM, request)
	if err != nil {
		fmt.Println("Error generating outfit:", err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, recommendation)
}

func (controller *StylingController) GenerateOutfitImage(c echo.Context) error {
	payload := new(GenerateOutfitImageIn)
	if err := c.Bind(payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Need at least 1 item for outfit image"})
	}
	if len(payload.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Need at least 1 item for outfit image"})
	}
	if payload.Mood == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Mood is required"})
	}

	styleVibe := ""
	if payload.StyleVibe != nil {
		styleVibe = *payload.StyleVibe
	}
	imageUrl, err := services.GenerateOutfitImage(c.Request().Context(), controller.LLM, payload.Items, payload.Mood, styleVibe)
	if err != nil {
		fmt.Println("Error generating outfit image:", err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, GenerateOutfitImageOut{ImageUrl: imageUrl})
}

func (controller *StylingController) CropGarment(c echo.Context) error {
	payload := new(CropGarmentIn)
	if err := c.Bind(payload); err != nil || payload.ImageBase64 == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing imageBase64"})
	}
	src, err := services.DecodeImageDataURL(payload.ImageBase64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	cropped, err := services.CropGarment(src, payload.BoundingBox)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	dataURL, err := services.EncodePNGDataURL(cropped)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ImageOut{ImageBase64: dataURL})
}

func (controller *StylingController) CompositeOutfit(c echo.Context) error {
	payload := new(CompositeOutfitIn)
	if err := c.Bind(payload); err != nil || len(payload.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Need at least 1 item to composite"})
	}

	items := make([]services.CompositeItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		img, err := services.DecodeImageDataURL(item.ImageBase64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		items = append(items, services.CompositeItem{Category: item.Category, Image: img})
	}
	composite, err := services.ComposeFlatLay(items)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	dataURL, err := services.EncodePNGDataURL(composite)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, ImageOut{ImageBase64: dataURL})
}
