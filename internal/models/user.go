package models

// UserInfo is embedded inside posts and comments; it has no identity of its
// own and lives and dies with the owning document.
type UserInfo struct {
	UserID   string `bson:"user_id" json:"user_id"`
	UserName string `bson:"user_name" json:"user_name"`
}

// User is an independent document. Password always holds a client-precomputed
// opaque hash, never plaintext.
type User struct {
	UserID      string `bson:"user_id" json:"user_id"`
	Email       string `bson:"email" json:"email"`
	DisplayName string `bson:"display_name" json:"display_name"`
	Password    string `bson:"password" json:"-"`
}

// Info returns the embedded snapshot copied into posts and comments.
func (u *User) Info() UserInfo {
	return UserInfo{
		UserID:   u.UserID,
		UserName: u.DisplayName,
	}
}

func (u *User) Validate() error {
	return checkStringFields([]stringField{
		{name: "user_id", value: u.UserID, required: true},
		{name: "email", value: u.Email, required: true, minLen: 5, maxLen: 100},
		{name: "display_name", value: u.DisplayName, required: true, minLen: 1, maxLen: 50},
		{name: "password", value: u.Password, required: true, minLen: 128},
	})
}
