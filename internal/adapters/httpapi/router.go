package httpapi

import (
	"context"
	"io"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ripple/internal/adapters/httpapi/middleware"
	postPort "ripple/internal/ports/post"
	userPort "ripple/internal/ports/user"
)

// PostUseCase is the inbound port the controllers need.
type PostUseCase interface {
	CreatePost(ctx context.Context, author userPort.Identity, text string, image io.Reader, imageName string) (*postPort.PostDTO, error)
	GetFeed(ctx context.Context, page, limit int) (*postPort.FeedDTO, error)
	ToggleLike(ctx context.Context, caller userPort.Identity, postID string) (*postPort.LikeResultDTO, error)
	AddComment(ctx context.Context, caller userPort.Identity, postID, text string) (*postPort.CommentDTO, error)
	DeletePost(ctx context.Context, caller userPort.Identity, postID string) error
}

// SetupRoutes wires the HTTP surface. Every post route sits behind identity
// verification; use cases are injected from the outside.
func SetupRoutes(postUC PostUseCase, verifier middleware.IdentityVerifier, allowedOrigin string) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{allowedOrigin}
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	pc := NewPostController(postUC)

	posts := r.Group("/api/posts", middleware.Auth(verifier))
	posts.POST("/create", pc.CreatePost)
	posts.GET("/feed", pc.GetFeed)
	posts.PUT("/like", pc.LikePost)
	posts.PUT("/comment", pc.AddComment)
	posts.DELETE("/:postId", pc.DeletePost)

	return r
}
