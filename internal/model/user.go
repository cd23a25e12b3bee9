package model

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidUserData = errors.New("invalid user data: missing user id")

// Gender values after normalization. Anything the backend sends outside
// this set collapses to GenderOther.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	// DefaultAge is assumed when the backend record carries no age.
	DefaultAge = 25

	// DefaultAvatarURL is served when the backend record has no photo.
	DefaultAvatarURL = "/default-avatar.png"

	// DefaultUsername is used when the record has no email to derive from.
	DefaultUsername = "user"
)

// UserPreferences mirrors the backend preference blob.
type UserPreferences struct {
	GenderPreference []string `json:"gender_preference,omitempty"`
}

// UserLocation mirrors the backend GeoJSON-style location blob.
// Coordinates are [longitude, latitude].
type UserLocation struct {
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// BackendUser is a raw user record as returned by the core backend.
// Field presence is inconsistent across endpoints: age, gender and emailId
// may all be absent depending on which call produced the record, so every
// field except the id is optional here.
type BackendUser struct {
	ID               string           `json:"_id"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	EmailID          string           `json:"emailId"`
	Age              int              `json:"age"`
	Gender           string           `json:"gender"`
	PhotoURL         string           `json:"photoUrl"`
	About            string           `json:"about"`
	Skills           []string         `json:"skills,omitempty"`
	Preference       *UserPreferences `json:"preference,omitempty"`
	Location         *UserLocation    `json:"location,omitempty"`
	Education        string           `json:"education,omitempty"`
	Work             string           `json:"work,omitempty"`
	Religion         string           `json:"religion,omitempty"`
	Languages        []string         `json:"languages,omitempty"`
	RelationshipType string           `json:"relationshipType,omitempty"`
	Smoking          string           `json:"smoking,omitempty"`
	Drinking         string           `json:"drinking,omitempty"`
	Prompts          []string         `json:"prompts,omitempty"`
}

// UserProfile is the canonical read-only view model every view consumes.
// It is derived from a BackendUser; see NewUserProfile for the mapping.
type UserProfile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`

	// Birthdate is synthesized from the reported age: Jan 1 of
	// (current year - age). It is lossy and not a real birthdate.
	Birthdate time.Time `json:"birthdate"`

	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`

	Preferences UserPreferences `json:"preferences"`
	LocationLat *float64        `json:"location_lat,omitempty"`
	LocationLng *float64        `json:"location_lng,omitempty"`

	Skills           []string `json:"skills,omitempty"`
	Education        string   `json:"education,omitempty"`
	Work             string   `json:"work,omitempty"`
	Religion         string   `json:"religion,omitempty"`
	Languages        []string `json:"languages,omitempty"`
	RelationshipType string   `json:"relationshipType,omitempty"`
	Smoking          string   `json:"smoking,omitempty"`
	Drinking         string   `json:"drinking,omitempty"`

	// The backend does not report any of the following yet; they are
	// known placeholders, kept constant on purpose.
	LastActive time.Time `json:"last_active"`
	IsVerified bool      `json:"is_verified"`
	IsOnline   bool      `json:"is_online"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewUserProfile converts a raw backend record into the canonical profile.
// It fails only when the record carries no id; every other missing field
// degrades to a default instead of failing. The function is pure.
func NewUserProfile(u BackendUser) (UserProfile, error) {
	if u.ID == "" {
		return UserProfile{}, ErrInvalidUserData
	}

	now := time.Now().UTC()

	p := UserProfile{
		ID:               u.ID,
		FullName:         strings.TrimSpace(u.FirstName + " " + u.LastName),
		Username:         usernameFromEmail(u.EmailID),
		Email:            u.EmailID,
		Gender:           NormalizeGender(u.Gender),
		Birthdate:        birthdateFromAge(u.Age, now),
		Bio:              u.About,
		AvatarURL:        u.PhotoURL,
		Skills:           u.Skills,
		Education:        u.Education,
		Work:             u.Work,
		Religion:         u.Religion,
		Languages:        u.Languages,
		RelationshipType: u.RelationshipType,
		Smoking:          u.Smoking,
		Drinking:         u.Drinking,
		LastActive:       now,
		IsVerified:       true,
		IsOnline:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if p.AvatarURL == "" {
		p.AvatarURL = DefaultAvatarURL
	}

	if u.Preference != nil {
		p.Preferences = *u.Preference
	}

	// GeoJSON order: [lng, lat]
	if u.Location != nil && len(u.Location.Coordinates) == 2 {
		lng, lat := u.Location.Coordinates[0], u.Location.Coordinates[1]
		p.LocationLng = &lng
		p.LocationLat = &lat
	}

	return p, nil
}

// NormalizeGender maps an arbitrary-cased backend gender onto the closed
// {male, female, other} set.
func NormalizeGender(g string) string {
	switch strings.ToLower(g) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderOther
	}
}

// Age reports the profile's age as of now, recomputed from the synthetic
// birthdate.
func (p UserProfile) Age() int {
	now := time.Now().UTC()
	age := now.Year() - p.Birthdate.Year()
	if now.YearDay() < p.Birthdate.YearDay() {
		age--
	}
	return age
}

func usernameFromEmail(email string) string {
	if email == "" {
		return DefaultUsername
	}
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

func birthdateFromAge(age int, now time.Time) time.Time {
	if age <= 0 {
		age = DefaultAge
	}
	return time.Date(now.Year()-age, time.January, 1, 0, 0, 0, 0, time.UTC)
}
