package postapp

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ripple/internal/core/errs"
	postEntity "ripple/internal/core/post"
	userPort "ripple/internal/ports/user"
)

// fakePostRepository keeps posts in insertion order; ListFeed walks them in
// reverse, which matches created_at descending for sequential creations.
type fakePostRepository struct {
	posts []*postEntity.Post
}

func (r *fakePostRepository) find(id string) *postEntity.Post {
	for _, p := range r.posts {
		if p.ID.String() == id {
			return p
		}
	}
	return nil
}

func (r *fakePostRepository) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	r.posts = append(r.posts, p)
	return p, nil
}

func (r *fakePostRepository) FindByID(ctx context.Context, id string) (*postEntity.Post, error) {
	p := r.find(id)
	if p == nil {
		return nil, errors.Wrap(errs.ErrNotFound, id)
	}
	return p, nil
}

func (r *fakePostRepository) ListFeed(ctx context.Context, skip, limit int) ([]*postEntity.Post, error) {
	var page []*postEntity.Post
	for i := len(r.posts) - 1 - skip; i >= 0 && len(page) < limit; i-- {
		page = append(page, r.posts[i])
	}
	return page, nil
}

func (r *fakePostRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

func (r *fakePostRepository) ToggleLike(ctx context.Context, like *postEntity.Like) (bool, error) {
	p := r.find(like.PostID.String())
	if p == nil {
		return false, errors.New("foreign key violation")
	}
	for i, l := range p.Likes {
		if l.UserID == like.UserID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false, nil
		}
	}
	p.Likes = append(p.Likes, *like)
	return true, nil
}

func (r *fakePostRepository) FindLikesByPostID(ctx context.Context, postID string) ([]postEntity.Like, error) {
	p := r.find(postID)
	if p == nil {
		return nil, errors.Wrap(errs.ErrNotFound, postID)
	}
	return append([]postEntity.Like(nil), p.Likes...), nil
}

func (r *fakePostRepository) AddComment(ctx context.Context, comment *postEntity.Comment) (*postEntity.Comment, error) {
	p := r.find(comment.PostID.String())
	if p == nil {
		return nil, errors.New("foreign key violation")
	}
	p.Comments = append(p.Comments, *comment)
	return comment, nil
}

func (r *fakePostRepository) Delete(ctx context.Context, id string) error {
	for i, p := range r.posts {
		if p.ID.String() == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeMediaStore struct {
	url     string
	err     error
	uploads int
}

func (s *fakeMediaStore) Upload(ctx context.Context, folder, filename string, body io.Reader) (string, error) {
	s.uploads++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func newTestService() (*PostService, *fakePostRepository, *fakeMediaStore) {
	repo := &fakePostRepository{}
	store := &fakeMediaStore{url: "https://media.test/posts/img.jpg"}
	return NewPostService(repo, store, 0, zap.NewNop()), repo, store
}

func newIdentity(name string) userPort.Identity {
	return userPort.Identity{
		ID:   uuid.Must(uuid.NewV4()).String(),
		Name: name,
	}
}

func TestCreatePostRequiresTextOrImage(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.CreatePost(context.Background(), newIdentity("alice"), "   ", nil, "")
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Empty(t, repo.posts)
}

func TestCreatePostTextOnly(t *testing.T) {
	svc, _, store := newTestService()

	p, err := svc.CreatePost(context.Background(), newIdentity("alice"), "  hello world  ", nil, "")
	require.NoError(t, err)

	assert.Equal(t, "hello world", p.Text)
	assert.Equal(t, "", p.Image)
	assert.Equal(t, "alice", p.Username)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)
	assert.Zero(t, store.uploads)
}

func TestCreatePostWithImage(t *testing.T) {
	svc, _, store := newTestService()

	p, err := svc.CreatePost(context.Background(), newIdentity("alice"), "", strings.NewReader("binary"), "selfie.jpg")
	require.NoError(t, err)

	assert.Equal(t, store.url, p.Image)
	assert.Equal(t, 1, store.uploads)
}

func TestCreatePostUploadFailure(t *testing.T) {
	svc, repo, store := newTestService()
	store.err = errors.New("bucket unreachable")

	_, err := svc.CreatePost(context.Background(), newIdentity("alice"), "caption", strings.NewReader("binary"), "selfie.jpg")
	assert.True(t, errors.Is(err, errs.ErrUpload))
	// a failed upload must not leave a half-formed post behind
	assert.Empty(t, repo.posts)
}

func TestCreatePostInvalidAuthorID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreatePost(context.Background(), userPort.Identity{ID: "not-a-uuid", Name: "x"}, "hi", nil, "")
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestGetFeedPagination(t *testing.T) {
	svc, _, _ := newTestService()
	author := newIdentity("alice")

	const total = 25
	created := make([]string, 0, total)
	for i := 0; i < total; i++ {
		p, err := svc.CreatePost(context.Background(), author, "post "+string(rune('a'+i)), nil, "")
		require.NoError(t, err)
		created = append(created, p.ID)
	}

	feed, err := svc.GetFeed(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.CurrentPage)
	assert.Equal(t, 3, feed.TotalPages)
	assert.Equal(t, int64(total), feed.TotalPosts)
	assert.Len(t, feed.Posts, 10)

	// concatenating all pages yields every post exactly once, newest first
	var all []string
	for page := 1; page <= feed.TotalPages; page++ {
		f, err := svc.GetFeed(context.Background(), page, 10)
		require.NoError(t, err)
		for _, p := range f.Posts {
			all = append(all, p.ID)
		}
	}
	require.Len(t, all, total)
	for i, id := range all {
		assert.Equal(t, created[total-1-i], id)
	}
}

func TestGetFeedDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	author := newIdentity("alice")
	for i := 0; i < 12; i++ {
		_, err := svc.CreatePost(context.Background(), author, "post", nil, "")
		require.NoError(t, err)
	}

	feed, err := svc.GetFeed(context.Background(), 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.CurrentPage)
	assert.Len(t, feed.Posts, 10)
	assert.Equal(t, 2, feed.TotalPages)
}

func TestGetFeedEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	feed, err := svc.GetFeed(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
	assert.Equal(t, 0, feed.TotalPages)
	assert.Equal(t, int64(0), feed.TotalPosts)
}

func TestToggleLikePair(t *testing.T) {
	svc, _, _ := newTestService()
	author := newIdentity("alice")
	liker := newIdentity("bob")

	p, err := svc.CreatePost(context.Background(), author, "hello", nil, "")
	require.NoError(t, err)

	res, err := svc.ToggleLike(context.Background(), liker, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Post liked", res.Message)
	require.Len(t, res.Likes, 1)
	assert.Equal(t, liker.ID, res.Likes[0].UserID)
	assert.Equal(t, "bob", res.Likes[0].Username)

	res, err = svc.ToggleLike(context.Background(), liker, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Post unliked", res.Message)
	assert.Empty(t, res.Likes)
}

func TestToggleLikeKeepsOtherUsers(t *testing.T) {
	svc, _, _ := newTestService()
	author := newIdentity("alice")
	bob := newIdentity("bob")
	carol := newIdentity("carol")

	p, err := svc.CreatePost(context.Background(), author, "hello", nil, "")
	require.NoError(t, err)

	_, err = svc.ToggleLike(context.Background(), bob, p.ID)
	require.NoError(t, err)
	_, err = svc.ToggleLike(context.Background(), carol, p.ID)
	require.NoError(t, err)

	res, err := svc.ToggleLike(context.Background(), bob, p.ID)
	require.NoError(t, err)
	require.Len(t, res.Likes, 1)
	assert.Equal(t, carol.ID, res.Likes[0].UserID)
}

func TestToggleLikePostNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ToggleLike(context.Background(), newIdentity("bob"), uuid.Must(uuid.NewV4()).String())
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestAddComment(t *testing.T) {
	svc, repo, _ := newTestService()
	author := newIdentity("alice")
	commenter := newIdentity("bob")

	p, err := svc.CreatePost(context.Background(), author, "hello", nil, "")
	require.NoError(t, err)

	comment, err := svc.AddComment(context.Background(), commenter, p.ID, "  nice  ")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Text)
	assert.Equal(t, commenter.ID, comment.UserID)
	assert.Equal(t, "bob", comment.Username)

	stored := repo.find(p.ID)
	require.NotNil(t, stored)
	require.Len(t, stored.Comments, 1)
}

func TestAddCommentEmptyText(t *testing.T) {
	svc, _, _ := newTestService()
	author := newIdentity("alice")

	p, err := svc.CreatePost(context.Background(), author, "hello", nil, "")
	require.NoError(t, err)

	_, err = svc.AddComment(context.Background(), newIdentity("bob"), p.ID, "   ")
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestAddCommentPostNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddComment(context.Background(), newIdentity("bob"), uuid.Must(uuid.NewV4()).String(), "hi")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestDeletePostForbidden(t *testing.T) {
	svc, repo, _ := newTestService()
	author := newIdentity("alice")

	p, err := svc.CreatePost(context.Background(), author, "hello", nil, "")
	require.NoError(t, err)

	err = svc.DeletePost(context.Background(), newIdentity("mallory"), p.ID)
	assert.True(t, errors.Is(err, errs.ErrForbidden))
	assert.NotNil(t, repo.find(p.ID))
}

func TestDeletePostByAuthor(t *testing.T) {
	svc, _, _ := newTestService()
	author := newIdentity("alice")

	p, err := svc.CreatePost(context.Background(), author, "hello", nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), author, p.ID))

	err = svc.DeletePost(context.Background(), author, p.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

// Exercises the full post lifecycle end to end: create, like, unlike, comment,
// rejected delete, authored delete, then operations against the gone post.
func TestPostLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	author := newIdentity("alice")
	userA := newIdentity("userA")
	userB := newIdentity("userB")

	p, err := svc.CreatePost(context.Background(), author, "hello", nil, "")
	require.NoError(t, err)

	res, err := svc.ToggleLike(context.Background(), userA, p.ID)
	require.NoError(t, err)
	require.Len(t, res.Likes, 1)

	res, err = svc.ToggleLike(context.Background(), userA, p.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Likes)

	comment, err := svc.AddComment(context.Background(), userB, p.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Text)

	err = svc.DeletePost(context.Background(), userB, p.ID)
	assert.True(t, errors.Is(err, errs.ErrForbidden))

	require.NoError(t, svc.DeletePost(context.Background(), author, p.ID))

	_, err = svc.ToggleLike(context.Background(), userA, p.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
