package model

import "time"

// SessionUser is the cached subset of the authenticated user that survives
// backend outages. It is written on every successful auth check and login,
// and deleted on logout.
type SessionUser struct {
	ID        string    `json:"_id" bson:"user_id"`
	FirstName string    `json:"firstName" bson:"first_name"`
	LastName  string    `json:"lastName" bson:"last_name"`
	EmailID   string    `json:"emailId" bson:"email_id"`
	Age       int       `json:"age,omitempty" bson:"age"`
	Gender    string    `json:"gender,omitempty" bson:"gender"`
	PhotoURL  string    `json:"photoUrl,omitempty" bson:"photo_url"`
	About     string    `json:"about,omitempty" bson:"about"`
	CachedAt  time.Time `json:"cachedAt" bson:"cached_at"`
}

// NewSessionUser snapshots the cacheable subset of a backend record.
func NewSessionUser(u BackendUser) SessionUser {
	return SessionUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		EmailID:   u.EmailID,
		Age:       u.Age,
		Gender:    u.Gender,
		PhotoURL:  u.PhotoURL,
		About:     u.About,
		CachedAt:  time.Now().UTC(),
	}
}

// BackendUser rehydrates the cached subset back into the raw record shape
// the views expect. Fields outside the cached subset stay zero.
func (s SessionUser) BackendUser() BackendUser {
	return BackendUser{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		EmailID:   s.EmailID,
		Age:       s.Age,
		Gender:    s.Gender,
		PhotoURL:  s.PhotoURL,
		About:     s.About,
	}
}
