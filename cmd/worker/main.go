package main

import (
	"context"
	"log"
	"os"

	"fitmuseapi/dbhelper"
	"fitmuseapi/services"
	"fitmuseapi/tasks"

	"github.com/hibiken/asynq"
)

func main() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")},
		asynq.Config{Concurrency: 10, Queues: map[string]int{
			"media": 7,
		}},
	)
	awsService := &services.AWSService{}
	err := awsService.InitPresignClient(context.Background())
	if err != nil {
		log.Fatal("[Queue] Failed to initialize AWS provider: S3")
	}

	db := dbhelper.SetupDB()
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCompositeUpload, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleCompositeUploadTask(ctx, t, db, awsService)
	})

	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
