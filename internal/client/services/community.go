package services

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/common"
	"github.com/google/uuid"
)

var CommunityCategories = []string{FilterAll, "Learning", "Community", "Tips", "Questions", "Events"}

// DefaultPostCategory is used when a post is published without a category.
const DefaultPostCategory = "Community"

// Community is the shared feed of posts, newest first.
type Community interface {
	List(category string) []models.Post
	ToggleLike(id string) (models.Post, error)
	ToggleBookmark(id string) (models.Post, error)
	Publish(author, avatar, content, category string) (models.Post, error)
}

type community struct {
	mu    sync.RWMutex
	posts []models.Post
	now   func() time.Time
}

func seedPosts(now time.Time) []models.Post {
	return []models.Post{
		{
			ID: "1", Author: "Sarah Chen", Avatar: "👩‍🦱",
			Content:   `Just learned the sign for "beautiful"! The way it flows from the face in a circular motion is so elegant. Love how ASL can be so expressive! 🤟`,
			CreatedAt: now.Add(-2 * time.Hour), Likes: 24, Comments: 8, Bookmarked: true, Category: "Learning",
		},
		{
			ID: "2", Author: "Mike Rodriguez", Avatar: "👨‍🦲",
			Content:   "Attended my first deaf community event today. The sense of belonging and warmth was incredible. Thank you to everyone who made me feel welcome! 💙",
			CreatedAt: now.Add(-5 * time.Hour), Likes: 67, Comments: 15, Liked: true, Category: "Community",
		},
		{
			ID: "3", Author: "Emma Johnson", Avatar: "👩‍🦰",
			Content:   "Quick tip: When fingerspelling, remember to keep your hand steady and form each letter clearly. Practice makes perfect! Who else is working on their fingerspelling speed?",
			CreatedAt: now.Add(-24 * time.Hour), Likes: 45, Comments: 12, Liked: true, Bookmarked: true, Category: "Tips",
		},
	}
}

// NewCommunity returns a feed seeded with the built-in posts.
func NewCommunity() Community {
	return newCommunity(time.Now)
}

func newCommunity(now func() time.Time) *community {
	return &community{posts: seedPosts(now()), now: now}
}

// List returns the posts in category, newest first.
func (c *community) List(category string) []models.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Post, 0, len(c.posts))
	for _, p := range c.posts {
		if matchesFilter(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (c *community) update(id string, fn func(p *models.Post)) (models.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.posts {
		if c.posts[i].ID == id {
			fn(&c.posts[i])
			return c.posts[i], nil
		}
	}
	return models.Post{}, fmt.Errorf("post %q: %w", id, common.ErrorNotFound)
}

// ToggleLike flips the like flag and moves the counter with it.
func (c *community) ToggleLike(id string) (models.Post, error) {
	return c.update(id, func(p *models.Post) {
		if p.Liked {
			p.Likes--
		} else {
			p.Likes++
		}
		p.Liked = !p.Liked
	})
}

func (c *community) ToggleBookmark(id string) (models.Post, error) {
	return c.update(id, func(p *models.Post) {
		p.Bookmarked = !p.Bookmarked
	})
}

// Publish adds a post to the top of the feed.
func (c *community) Publish(author, avatar, content, category string) (models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Post{}, fmt.Errorf("%w: empty post", common.ErrorValidation)
	}
	if category == "" {
		category = DefaultPostCategory
	}
	if category == FilterAll || !slices.Contains(CommunityCategories, category) {
		return models.Post{}, fmt.Errorf("%w: post category %q", common.ErrorValidation, category)
	}

	p := models.Post{
		ID:        uuid.NewString(),
		Author:    author,
		Avatar:    avatar,
		Content:   content,
		CreatedAt: c.now(),
		Category:  category,
	}

	c.mu.Lock()
	c.posts = slices.Insert(c.posts, 0, p)
	c.mu.Unlock()

	return p, nil
}
