package models

// PublicProfile is the part of a profile other users may see.
type PublicProfile struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	ProfilePicURL   *string `json:"profile_pic_url"`
	Bio             *string `json:"bio"`
	InstagramHandle *string `json:"instagram_handle"`
	TwitterHandle   *string `json:"twitter_handle"`
}

// Profile is the caller's own profile.
type Profile struct {
	PublicProfile
	PhoneNumber *string   `json:"phone_number"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// ProfileInput is the request body for updating a profile. Absent fields are
// left unchanged; empty optional strings clear the field.
type ProfileInput struct {
	Name            *string `json:"name,omitempty"`
	Age             *int    `json:"age,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	ProfilePicURL   *string `json:"profile_pic_url,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	InstagramHandle *string `json:"instagram_handle,omitempty"`
	TwitterHandle   *string `json:"twitter_handle,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
}

// Person is a people-search result annotated with the caller's connection to them.
type Person struct {
	PublicProfile
	ConnectionStatus ConnectionStatus `json:"connection_status"`
	ConnectionID     *string          `json:"connection_id"`
}

// PeopleList wraps people-search results.
type PeopleList struct {
	Items []Person `json:"items"`
}
