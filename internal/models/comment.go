package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to exactly one post via PostID. CommentIDs lists nested
// replies by id; every nested reply must carry the same PostID as the root
// post, so the comments of a post always form a forest.
type Comment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PostID        primitive.ObjectID   `bson:"post_id" json:"post_id"`
	CommenterInfo UserInfo             `bson:"commenter_info" json:"commenter_info"`
	Content       string               `bson:"content" json:"content"`
	CommentIDs    []primitive.ObjectID `bson:"comment_ids" json:"comment_ids"`
}

func (c *Comment) Validate() error {
	if c.PostID.IsZero() {
		return newFieldError("post_id", "is required")
	}
	return checkStringFields([]stringField{
		{name: "content", value: c.Content, required: true, minLen: 1, maxLen: 1000},
		{name: "commenter_info.user_id", value: c.CommenterInfo.UserID, required: true},
		{name: "commenter_info.user_name", value: c.CommenterInfo.UserName, required: true},
	})
}
