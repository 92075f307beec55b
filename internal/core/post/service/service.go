package postapp

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"ripple/internal/core/errs"
	postEntity "ripple/internal/core/post"
	mediaPort "ripple/internal/ports/media"
	postPort "ripple/internal/ports/post"
	userPort "ripple/internal/ports/user"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	mediaFolder = "posts"
)

type PostService struct {
	PostRepository postPort.PostRepository
	MediaStore     mediaPort.Store
	UploadTimeout  time.Duration
	Logger         *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	mediaStore mediaPort.Store,
	uploadTimeout time.Duration,
	logger *zap.Logger,
) *PostService {
	if uploadTimeout <= 0 {
		uploadTimeout = 10 * time.Second
	}
	return &PostService{
		PostRepository: postRepo,
		MediaStore:     mediaStore,
		UploadTimeout:  uploadTimeout,
		Logger:         logger,
	}
}

// CreatePost validates the input, uploads the image when one is attached and
// persists the new post. The upload happens before the insert so a rejected
// upload never leaves a half-formed post behind.
func (s *PostService) CreatePost(ctx context.Context, author userPort.Identity, text string, image io.Reader, imageName string) (*postPort.PostDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" && image == nil {
		return nil, errors.Wrap(errs.ErrValidation, "post must have text or image")
	}

	uid, err := uuid.FromString(author.ID)
	if err != nil {
		return nil, errors.Wrap(errs.ErrValidation, "invalid author id")
	}

	imageURL := ""
	if image != nil {
		uploadCtx, cancel := context.WithTimeout(ctx, s.UploadTimeout)
		defer cancel()

		imageURL, err = s.MediaStore.Upload(uploadCtx, mediaFolder, imageName, image)
		if err != nil {
			s.Logger.Error("image upload failed", zap.String("userID", author.ID), zap.Error(err))
			return nil, errors.Wrap(errs.ErrUpload, err.Error())
		}
	}

	p := &postEntity.Post{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    uid,
		Username:  author.Name,
		Text:      text,
		Image:     imageURL,
		CreatedAt: time.Now(),
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		s.Logger.Error("failed to create post", zap.String("userID", author.ID), zap.Error(err))
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}

	s.Logger.Info("post created", zap.String("postID", created.ID.String()), zap.String("userID", author.ID))
	return toPostDTO(created), nil
}

// GetFeed returns one page of the global feed, newest first. Page and limit
// fall back to their defaults when nonpositive; there is no upper bound on
// limit. The page and the total count are two separate queries, so the count
// may drift relative to the page under concurrent writes.
func (s *PostService) GetFeed(ctx context.Context, page, limit int) (*postPort.FeedDTO, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	skip := (page - 1) * limit

	posts, err := s.PostRepository.ListFeed(ctx, skip, limit)
	if err != nil {
		s.Logger.Error("failed to list feed", zap.Int("page", page), zap.Error(err))
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}

	total, err := s.PostRepository.Count(ctx)
	if err != nil {
		s.Logger.Error("failed to count posts", zap.Error(err))
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}

	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, toPostDTO(p))
	}

	return &postPort.FeedDTO{
		Posts:       dtos,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		TotalPosts:  total,
	}, nil
}

// ToggleLike adds the caller's like when absent and removes it when present.
// The repository performs the toggle atomically keyed by (post, user), so a
// racing pair of toggles cannot append a duplicate like.
func (s *PostService) ToggleLike(ctx context.Context, caller userPort.Identity, postID string) (*postPort.LikeResultDTO, error) {
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	like := &postEntity.Like{
		ID:       uuid.Must(uuid.NewV4()),
		PostID:   uuid.FromStringOrNil(postID),
		UserID:   uuid.FromStringOrNil(caller.ID),
		Username: caller.Name,
	}

	liked, err := s.PostRepository.ToggleLike(ctx, like)
	if err != nil {
		// The post may have been deleted between the existence check and the
		// toggle; report that as not-found rather than a server fault.
		if _, findErr := s.PostRepository.FindByID(ctx, postID); errors.Is(findErr, errs.ErrNotFound) {
			return nil, findErr
		}
		s.Logger.Error("failed to toggle like", zap.String("postID", postID), zap.Error(err))
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}

	likes, err := s.PostRepository.FindLikesByPostID(ctx, postID)
	if err != nil {
		s.Logger.Error("failed to load likes", zap.String("postID", postID), zap.Error(err))
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}

	return &postPort.LikeResultDTO{
		Message: message,
		Likes:   toLikeDTOs(likes),
	}, nil
}

// AddComment appends a comment to the post. Empty or whitespace-only text is
// rejected; comments are append-only, there is no edit or delete.
func (s *PostService) AddComment(ctx context.Context, caller userPort.Identity, postID, text string) (*postPort.CommentDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Wrap(errs.ErrValidation, "comment text is required")
	}

	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &postEntity.Comment{
		ID:        uuid.Must(uuid.NewV4()),
		PostID:    uuid.FromStringOrNil(postID),
		UserID:    uuid.FromStringOrNil(caller.ID),
		Username:  caller.Name,
		Text:      text,
		CreatedAt: time.Now(),
	}

	created, err := s.PostRepository.AddComment(ctx, comment)
	if err != nil {
		if _, findErr := s.PostRepository.FindByID(ctx, postID); errors.Is(findErr, errs.ErrNotFound) {
			return nil, findErr
		}
		s.Logger.Error("failed to add comment", zap.String("postID", postID), zap.Error(err))
		return nil, errors.Wrap(errs.ErrPersistence, err.Error())
	}

	dto := toCommentDTO(*created)
	return &dto, nil
}

// DeletePost removes the post together with its likes and comments. Only the
// author may delete; anyone else gets ErrForbidden and the post is untouched.
func (s *PostService) DeletePost(ctx context.Context, caller userPort.Identity, postID string) error {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if p.UserID.String() != caller.ID {
		return errors.Wrap(errs.ErrForbidden, "only the author can delete a post")
	}

	if err := s.PostRepository.Delete(ctx, postID); err != nil {
		s.Logger.Error("failed to delete post", zap.String("postID", postID), zap.Error(err))
		return errors.Wrap(errs.ErrPersistence, err.Error())
	}

	s.Logger.Info("post deleted", zap.String("postID", postID), zap.String("userID", caller.ID))
	return nil
}

func toPostDTO(p *postEntity.Post) *postPort.PostDTO {
	dto := &postPort.PostDTO{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		Username:  p.Username,
		Text:      p.Text,
		Image:     p.Image,
		Likes:     toLikeDTOs(p.Likes),
		Comments:  make([]postPort.CommentDTO, 0, len(p.Comments)),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, c := range p.Comments {
		dto.Comments = append(dto.Comments, toCommentDTO(c))
	}
	if p.User.ID != uuid.Nil {
		dto.User = &userPort.UserDTO{
			ID:         p.User.ID.String(),
			Name:       p.User.Name,
			ProfilePic: p.User.ProfilePic,
		}
	}
	return dto
}

func toLikeDTOs(likes []postEntity.Like) []postPort.LikeDTO {
	dtos := make([]postPort.LikeDTO, 0, len(likes))
	for _, l := range likes {
		dtos = append(dtos, postPort.LikeDTO{
			UserID:   l.UserID.String(),
			Username: l.Username,
		})
	}
	return dtos
}

func toCommentDTO(c postEntity.Comment) postPort.CommentDTO {
	return postPort.CommentDTO{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		Username:  c.Username,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
