package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewUserProfile_MissingIDFails(t *testing.T) {
	t.Parallel()

	_, err := NewUserProfile(BackendUser{FirstName: "Ada"})
	require.ErrorIs(t, err, ErrInvalidUserData)
}

func TestNewUserProfile_IDIsPreserved(t *testing.T) {
	t.Parallel()

	p, err := NewUserProfile(BackendUser{ID: "u1"})
	require.NoError(t, err)
	require.Equal(t, "u1", p.ID)
}

func TestNewUserProfile_Defaults(t *testing.T) {
	t.Parallel()

	p, err := NewUserProfile(BackendUser{ID: "u1"})
	require.NoError(t, err)

	require.Equal(t, DefaultUsername, p.Username)
	require.Equal(t, DefaultAvatarURL, p.AvatarURL)
	require.Equal(t, GenderOther, p.Gender)
	require.Equal(t, time.Now().UTC().Year()-DefaultAge, p.Birthdate.Year())
	require.True(t, p.IsVerified)
	require.False(t, p.IsOnline)
}

func TestNewUserProfile_UsernameFromEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"local part", "ada@example.com", "ada"},
		{"no at sign", "ada", "ada"},
		{"empty", "", DefaultUsername},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewUserProfile(BackendUser{ID: "u1", EmailID: tc.email})
			require.NoError(t, err)
			require.Equal(t, tc.want, p.Username)
		})
	}
}

func TestNewUserProfile_Idempotent(t *testing.T) {
	t.Parallel()

	// Running the derived username back through must not change it.
	u := BackendUser{ID: "u1", EmailID: "ada@example.com"}
	first, err := NewUserProfile(u)
	require.NoError(t, err)

	u.EmailID = first.Username
	second, err := NewUserProfile(u)
	require.NoError(t, err)
	require.Equal(t, first.Username, second.Username)
}

func TestNormalizeGender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Male", GenderMale},
		{"male", GenderMale},
		{"MALE", GenderMale},
		{"Female", GenderFemale},
		{"female", GenderFemale},
		{"nonbinary", GenderOther},
		{"", GenderOther},
	}

	for _, tc := range tests {
		t.Run("in="+tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeGender(tc.in))
		})
	}
}

func TestNewUserProfile_BirthdateFromAge(t *testing.T) {
	t.Parallel()

	p, err := NewUserProfile(BackendUser{ID: "u1", Age: 30})
	require.NoError(t, err)

	require.Equal(t, time.Now().UTC().Year()-30, p.Birthdate.Year())
	require.Equal(t, time.January, p.Birthdate.Month())
	require.Equal(t, 1, p.Birthdate.Day())
}

func TestUserProfile_Age(t *testing.T) {
	t.Parallel()

	p, err := NewUserProfile(BackendUser{ID: "u1", Age: 30})
	require.NoError(t, err)
	require.Equal(t, 30, p.Age())
}

func TestNewUserProfile_FullNameTrimmed(t *testing.T) {
	t.Parallel()

	p, err := NewUserProfile(BackendUser{ID: "u1", FirstName: "Ada"})
	require.NoError(t, err)
	require.Equal(t, "Ada", p.FullName)
}

func TestNewUserProfile_Location(t *testing.T) {
	t.Parallel()

	p, err := NewUserProfile(BackendUser{
		ID:       "u1",
		Location: &UserLocation{Coordinates: []float64{77.59, 12.97}},
	})
	require.NoError(t, err)
	require.NotNil(t, p.LocationLat)
	require.NotNil(t, p.LocationLng)
	require.Equal(t, 12.97, *p.LocationLat)
	require.Equal(t, 77.59, *p.LocationLng)

	// Malformed coordinate arrays are dropped, not an error.
	p, err = NewUserProfile(BackendUser{
		ID:       "u2",
		Location: &UserLocation{Coordinates: []float64{77.59}},
	})
	require.NoError(t, err)
	require.Nil(t, p.LocationLat)
	require.Nil(t, p.LocationLng)
}
