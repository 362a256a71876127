package models

// PostDetail is everything the post page shows.
type PostDetail struct {
	Post         *Post      `json:"post"`
	Comments     []*Comment `json:"comments"`
	CommentCount int        `json:"comment_count"`
	LikeCount    int        `json:"like_count"`
	Related      []*Post    `json:"related"`
}

// HomePage is the ranked landing page listing.
type HomePage struct {
	Featured    []*Post `json:"featured"`
	Programming []*Post `json:"programming"`
	Writing     []*Post `json:"writing"`
	Technology  []*Post `json:"technology"`
	Other       []*Post `json:"other"`
}

// LikeResult is the JSON body answered by the like endpoint.
type LikeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ModerationQueue lists an owner's posts and every comment left on them.
type ModerationQueue struct {
	Posts    []*Post    `json:"posts"`
	Comments []*Comment `json:"comments"`
}
