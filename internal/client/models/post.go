package models

import "time"

// Post is a community feed entry.
type Post struct {
	ID         string    `json:"id"`
	Author     string    `json:"author"`
	Avatar     string    `json:"avatar"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Liked      bool      `json:"isLiked"`
	Bookmarked bool      `json:"isBookmarked"`
	Category   string    `json:"category"`
}
