package models

import "time"

// SessionToken is one entry in a user's session registry. Tokens are kept
// in issuance order; an entry's presence is what makes a token valid.
type SessionToken struct {
	Token string `bson:"token" json:"token"`
}

// User is the account document persisted in the users collection. The
// session registry and the processed avatar live inside the document so
// deleting the user removes them in the same write.
type User struct {
	ID           string         `bson:"_id" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Email        string         `bson:"email" json:"email"`
	Age          int            `bson:"age" json:"age"`
	PasswordHash string         `bson:"password_hash" json:"-"`
	Tokens       []SessionToken `bson:"tokens" json:"-"`
	Avatar       []byte         `bson:"avatar,omitempty" json:"-"`
	CreatedAt    time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updatedAt"`
}

// AddToken appends a newly issued token to the registry.
func (u *User) AddToken(token string) {
	u.Tokens = append(u.Tokens, SessionToken{Token: token})
}

// RemoveToken strips exactly the matching token, leaving other sessions
// untouched.
func (u *User) RemoveToken(token string) {
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}

// ClearTokens empties the registry, revoking every session.
func (u *User) ClearTokens() {
	u.Tokens = nil
}

// HasToken reports whether the exact token string is currently registered.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t.Token == token {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so stores can hand out users without sharing
// the token slice or the avatar buffer.
func (u *User) Clone() *User {
	copied := *u
	copied.Tokens = append([]SessionToken(nil), u.Tokens...)
	if len(u.Avatar) > 0 {
		copied.Avatar = append([]byte(nil), u.Avatar...)
	}
	return &copied
}
