package main

import (
	"os"

	"go.uber.org/zap"

	dbadapter "ripple/internal/adapters/database"
	"ripple/internal/adapters/httpapi"
	"ripple/internal/adapters/media"
	"ripple/internal/config"
	"ripple/internal/core/post"
	postapp "ripple/internal/core/post/service"
	"ripple/internal/core/user"
	userapp "ripple/internal/core/user/service"
)

func main() {
	config.InitLogger()
	defer config.Logger.Sync()

	config.Init()

	db, err := config.InitDB()
	if err != nil {
		config.Logger.Fatal("Error connecting to the database:", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&user.User{},
		&post.Post{},
		&post.Like{},
		&post.Comment{},
	); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}
	config.Logger.Info("database migrations completed")

	mediaStore, err := media.NewS3Store(
		os.Getenv("S3_BUCKET"),
		os.Getenv("AWS_REGION"),
		os.Getenv("MEDIA_BASE_URL"),
	)
	if err != nil {
		config.Logger.Fatal("Error creating media store:", zap.Error(err))
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	identitySvc := userapp.NewIdentityService(userRepo, []byte(os.Getenv("JWT_SECRET")))
	postSvc := postapp.NewPostService(postRepo, mediaStore, config.UploadTimeout(), config.Logger)

	r := httpapi.SetupRoutes(postSvc, identitySvc, config.AllowedOrigin())

	config.Logger.Info("App is running...", zap.String("port", config.AppPort()))
	if err := r.Run(":" + config.AppPort()); err != nil {
		config.Logger.Fatal("Server failed to start:", zap.Error(err))
	}
}
