package model

type Post struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}

// PostDetail is a post with its author's email projected in. Only the email
// is exposed, never the author's credential or code fields.
type PostDetail struct {
	Post
	AuthorEmail string `json:"author_email"`
}
