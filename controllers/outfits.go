package controllers

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"fitmuseapi/models"
	"fitmuseapi/services"
	"fitmuseapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type OutfitsController struct {
	AWSService services.AWSServiceProvider
	URLCache   services.URLCacheServiceProvider
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.GET("/moodboards", controller.ListMoodboards)
	g.GET("/style-vibes", controller.ListStyleVibes)
	g.GET("/saved-outfits", controller.ListSavedOutfits)
	g.POST("/saved-outfits", controller.CreateSavedOutfit)
	g.DELETE("/saved-outfits/:id", controller.DeleteSavedOutfit)
}

type SavedOutfitIn struct {
	Name           string                   `json:"name"`
	Mood           string                   `json:"mood"`
	StyleVibe      *string                  `json:"styleVibe"`
	Items          []models.SavedOutfitItem `json:"items"`
	Explanation    string                   `json:"explanation"`
	StyleNotes     *string                  `json:"styleNotes"`
	CompositeImage *string                  `json:"compositeImage"`
}

func (controller *OutfitsController) ListMoodboards(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	var moodboards []models.Moodboard
	if err := db.Order("id").Find(&moodboards).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch moodboards"})
	}
	return c.JSON(http.StatusOK, moodboards)
}

func (controller *OutfitsController) ListStyleVibes(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	var styleVibes []models.StyleVibe
	if err := db.Order("id").Find(&styleVibes).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch style vibes"})
	}
	return c.JSON(http.StatusOK, styleVibes)
}

// populateCompositeImageURLs swaps stored object keys for presigned read
// URLs, going through the in-process cache with a direct-presign failsafe.
func (controller *OutfitsController) populateCompositeImageURLs(c echo.Context, outfits []models.SavedOutfit) {
	bucketName := os.Getenv("R2_BUCKET_NAME")
	var wg sync.WaitGroup
	for i := range outfits {
		if outfits[i].CompositeObjectKey == nil {
			continue
		}
		wg.Add(1)
		go func(outfit *models.SavedOutfit) {
			defer wg.Done()
			objectKey := *outfit.CompositeObjectKey
			url, err := controller.URLCache.GetReadURL(c.Request().Context(), objectKey)
			if err != nil {
				sentry.WithScope(func(scope *sentry.Scope) {
					scope.SetExtra("objectKey", objectKey)
					sentry.CaptureException(err)
				})
				// failsafe: presign directly when the cache misbehaves
				url, err = controller.AWSService.GetPresignedR2FileReadURL(c.Request().Context(), bucketName, objectKey)
				if err != nil {
					fmt.Println("Failed to presign composite image", objectKey, err)
					return
				}
			}
			outfit.CompositeImage = &url
		}(&outfits[i])
	}
	wg.Wait()
}

func (controller *OutfitsController) ListSavedOutfits(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	currentUser := c.Get("currentUser").(models.UserAccount)

	var outfits []models.SavedOutfit
	if err := db.Where("owner_id = ?", currentUser.ID).Order("created_at desc").Find(&outfits).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch saved outfits"})
	}
	controller.populateCompositeImageURLs(c, outfits)
	return c.JSON(http.StatusOK, outfits)
}

func (controller *OutfitsController) CreateSavedOutfit(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	currentUser := c.Get("currentUser").(models.UserAccount)

	payload := new(SavedOutfitIn)
	if err := c.Bind(payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name, mood, and items are required"})
	}
	if payload.Name == "" || payload.Mood == "" || len(payload.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name, mood, and items are required"})
	}
	if payload.Explanation == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Explanation is required"})
	}

	outfit := models.SavedOutfit{
		OwnerID:        currentUser.ID,
		Name:           payload.Name,
		Mood:           payload.Mood,
		StyleVibe:      payload.StyleVibe,
		Items:          payload.Items,
		Explanation:    payload.Explanation,
		StyleNotes:     payload.StyleNotes,
		CompositeImage: payload.CompositeImage,
		UploadStatus:   models.CompositeUploadIdle,
	}
	if payload.CompositeImage != nil && *payload.CompositeImage != "" {
		outfit.UploadStatus = models.CompositeUploadPending
	}
	if err := db.Create(&outfit).Error; err != nil {
		fmt.Println("Error saving outfit:", err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfit"})
	}

	// offload the inline composite to object storage in the background
	if outfit.UploadStatus == models.CompositeUploadPending {
		asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
		if ok && asynqClient != nil {
			task, err := tasks.NewCompositeUploadTask(outfit.ID)
			if err == nil {
				_, err = asynqClient.Enqueue(task, asynq.Queue("media"), asynq.MaxRetry(3))
			}
			if err != nil {
				// non-fatal, row keeps the inline data URL
				fmt.Println("Failed to enqueue composite upload for outfit", outfit.ID, err)
				sentry.CaptureException(err)
				outfit.UploadStatus = models.CompositeUploadIdle
				db.Save(&outfit)
			}
		} else {
			outfit.UploadStatus = models.CompositeUploadIdle
			db.Save(&outfit)
		}
	}

	return c.JSON(http.StatusCreated, outfit)
}

func (controller *OutfitsController) DeleteSavedOutfit(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	currentUser := c.Get("currentUser").(models.UserAccount)

	var outfitId uint
	if err := echo.PathParamsBinder(c).Uint("id", &outfitId).BindError(); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found or not authorized"})
	}

	result := db.Where("id = ? AND owner_id = ?", outfitId, currentUser.ID).Delete(&models.SavedOutfit{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete outfit"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found or not authorized"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
