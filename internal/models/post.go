package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxVoteCount caps the upvote and downvote counters.
const MaxVoteCount = 1000000

// Post references its comments by id only. CommentIDs holds direct replies;
// AllCommentIDs holds the breadth-first closure of the whole thread. Deleting
// a post never cascades to the referenced comments.
type Post struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PostTitle      string               `bson:"post_title" json:"post_title"`
	PostURL        string               `bson:"post_url,omitempty" json:"post_url,omitempty"`
	PostDate       time.Time            `bson:"post_date" json:"post_date"`
	Content        string               `bson:"content" json:"content"`
	Upvote         int                  `bson:"upvote" json:"upvote"`
	Downvote       int                  `bson:"downvote" json:"downvote"`
	PosterUserInfo UserInfo             `bson:"poster_user_info" json:"poster_user_info"`
	CommentIDs     []primitive.ObjectID `bson:"comment_ids" json:"comment_ids"`
	AllCommentIDs  []primitive.ObjectID `bson:"all_comment_ids" json:"all_comment_ids"`
}

func (p *Post) Validate() error {
	if err := checkStringFields([]stringField{
		{name: "post_title", value: p.PostTitle, required: true, minLen: 3, maxLen: 200},
		{name: "post_url", value: p.PostURL},
		{name: "content", value: p.Content, required: true, minLen: 1, maxLen: 1000},
		{name: "poster_user_info.user_id", value: p.PosterUserInfo.UserID, required: true},
		{name: "poster_user_info.user_name", value: p.PosterUserInfo.UserName, required: true},
	}); err != nil {
		return err
	}
	if err := checkCounterFields([]counterField{
		{name: "upvote", value: p.Upvote, max: MaxVoteCount},
		{name: "downvote", value: p.Downvote, max: MaxVoteCount},
	}); err != nil {
		return err
	}
	return checkRequiredTime("post_date", p.PostDate)
}
