// Package profile provides commuter profiles and people search.
//
// # PII Considerations
//
// Profiles hold the personal details commuters choose to share:
//
// Visible to other users:
//   - Name, age and gender (gender drives the search filter)
//   - Optional bio, profile picture URL and social handles
//
// Visible only to the owner:
//   - Phone number
//
// The user ID is issued by the hosted auth provider; no credentials or email
// addresses are stored here.
package profile

import (
	"time"

	"github.com/metroconnect/metroconnect/internal/api/models"
)

// Profile is a commuter's profile.
type Profile struct {
	// ID is the user ID from the auth provider.
	ID string

	Name   string
	Age    int
	Gender string

	ProfilePicURL   *string
	Bio             *string
	InstagramHandle *string
	TwitterHandle   *string

	// PhoneNumber is never shown to other users.
	PhoneNumber *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public returns the part of the profile other users may see.
func (p *Profile) Public() models.PublicProfile {
	return models.PublicProfile{
		ID:              p.ID,
		Name:            p.Name,
		Age:             p.Age,
		Gender:          p.Gender,
		ProfilePicURL:   p.ProfilePicURL,
		Bio:             p.Bio,
		InstagramHandle: p.InstagramHandle,
		TwitterHandle:   p.TwitterHandle,
	}
}

// copyProfile creates a deep copy of a profile.
func copyProfile(p *Profile) *Profile {
	if p == nil {
		return nil
	}
	cpy := *p
	cpy.ProfilePicURL = copyString(p.ProfilePicURL)
	cpy.Bio = copyString(p.Bio)
	cpy.InstagramHandle = copyString(p.InstagramHandle)
	cpy.TwitterHandle = copyString(p.TwitterHandle)
	cpy.PhoneNumber = copyString(p.PhoneNumber)
	return &cpy
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
