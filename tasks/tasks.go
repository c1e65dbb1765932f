package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"fitmuseapi/models"
	"fitmuseapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

const TypeCompositeUpload = "media:upload_composite"

type CompositeUploadPayload struct {
	OutfitID uint `json:"outfit_id"`
}

// NewCompositeUploadTask enqueues moving a saved outfit's inline composite
// image into object storage.
func NewCompositeUploadTask(outfitID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(CompositeUploadPayload{OutfitID: outfitID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCompositeUpload, payload), nil
}

// HandleCompositeUploadTask uploads the outfit's composite data URL to R2 via
// a presigned PUT and swaps the inline payload for the object key. Errors are
// returned so asynq retries; the row is marked failed in the meantime.
func HandleCompositeUploadTask(ctx context.Context, t *asynq.Task, db *gorm.DB, awsService services.AWSServiceProvider) error {
	var payload CompositeUploadPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal composite upload payload: %v", err)
	}

	var outfit models.SavedOutfit
	db.First(&outfit, payload.OutfitID)
	if outfit.ID == 0 {
		// outfit deleted before the worker got to it, nothing to do
		fmt.Printf("[Outfit: %v] not found, skipping composite upload\n", payload.OutfitID)
		return nil
	}
	if outfit.CompositeImage == nil || *outfit.CompositeImage == "" || outfit.CompositeObjectKey != nil {
		return nil
	}

	markFailed := func(err error) error {
		sentry.CaptureException(fmt.Errorf("[Outfit: %v] composite upload failed: %w", outfit.ID, err))
		outfit.UploadStatus = models.CompositeUploadFailed
		db.Save(&outfit)
		return err
	}

	_, imageBytes, err := services.DecodeImagePayload(*outfit.CompositeImage)
	if err != nil {
		return markFailed(err)
	}

	bucketName := os.Getenv("R2_BUCKET_NAME")
	objectKey := fmt.Sprintf("composites/outfit-%v.png", outfit.ID)
	uploadURL, err := awsService.PresignLink(ctx, bucketName, objectKey)
	if err != nil {
		return markFailed(err)
	}
	_, status, err := awsService.UploadToPresignedURL(ctx, bucketName, uploadURL, imageBytes)
	if err != nil {
		return markFailed(err)
	}
	if status >= 300 {
		return markFailed(fmt.Errorf("upload returned status %d", status))
	}

	outfit.CompositeObjectKey = &objectKey
	outfit.CompositeImage = nil
	outfit.UploadStatus = models.CompositeUploadUploaded
	if err := db.Save(&outfit).Error; err != nil {
		return markFailed(err)
	}
	fmt.Printf("[Outfit: %v] composite uploaded as %s\n", outfit.ID, objectKey)
	return nil
}
