package community

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/userdata"
)

// AnonymousAuthor is shown on posts created without a signed-in user.
const AnonymousAuthor = "คุณ"

var ErrNotFound = errors.New("post not found")

// Board is the shared community feed. It lives under the reserved
// community user id and starts out with the seed posts.
type Board struct {
	mu    sync.Mutex
	posts *userdata.List[models.CommunityPost]
	seed  func() []models.CommunityPost
	now   func() time.Time
	newID func() string
}

func NewBoard(store userdata.Store, mirror userdata.Mirror, seed func() []models.CommunityPost) *Board {
	if seed == nil {
		seed = func() []models.CommunityPost { return nil }
	}
	return &Board{
		posts: userdata.NewList[models.CommunityPost](store, mirror, userdata.KeyCommunityPosts),
		seed:  seed,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (b *Board) load(ctx context.Context) []models.CommunityPost {
	return b.posts.LoadOr(ctx, models.CommunityUserID, b.seed())
}

// List returns posts newest first, narrowed by a case-insensitive match on
// title, content or any tag.
func (b *Board) List(ctx context.Context, query string) []models.CommunityPost {
	posts := b.load(ctx)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return posts
	}
	out := []models.CommunityPost{}
	for _, p := range posts {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func (b *Board) Create(ctx context.Context, author string, req models.CreatePostRequest) (models.CommunityPost, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return models.CommunityPost{}, userdata.ErrEmptyText
	}
	postType := req.Type
	if postType == "" {
		postType = models.PostPrompt
	}
	if author == "" {
		author = AnonymousAuthor
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	post := models.CommunityPost{
		ID:      b.newID(),
		Author:  author,
		Type:    postType,
		Title:   title,
		Content: content,
		Tags:    SplitTags(req.Tags),
		Likes:   0,
		Date:    b.now().UTC().Format(time.DateOnly),
	}
	posts, err := b.posts.LoadForUpdate(ctx, models.CommunityUserID, b.seed())
	if err != nil {
		return models.CommunityPost{}, err
	}
	posts = append([]models.CommunityPost{post}, posts...)
	b.posts.Save(ctx, models.CommunityUserID, posts)
	return post, nil
}

func (b *Board) Like(ctx context.Context, id string) (models.CommunityPost, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	posts, err := b.posts.LoadForUpdate(ctx, models.CommunityUserID, b.seed())
	if err != nil {
		return models.CommunityPost{}, err
	}
	i := slices.IndexFunc(posts, func(p models.CommunityPost) bool { return p.ID == id })
	if i < 0 {
		return models.CommunityPost{}, ErrNotFound
	}
	posts[i].Likes++
	b.posts.Save(ctx, models.CommunityUserID, posts)
	return posts[i], nil
}

// SplitTags turns "a, b,,c" into [a b c].
func SplitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func matches(p models.CommunityPost, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Content), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
