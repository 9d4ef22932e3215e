package models

// DefaultProfilePicture is the placeholder avatar used when the server has
// no picture on file for the user.
const DefaultProfilePicture = "https://cdn-icons-png.flaticon.com/512/3135/3135715.png"

// Profile is the editable, locally persisted projection of User. Phone is
// always present as a string (empty when unknown). Password is transient
// and write-only: it is never populated from a read and is cleared after a
// successful submission.
type Profile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture"`
}

// DefaultProfile returns an empty profile with the placeholder picture.
func DefaultProfile() Profile {
	return Profile{ProfilePicture: DefaultProfilePicture}
}

// ProfileFromUser derives a Profile from a server-issued User, applying the
// field defaults: missing phone becomes "", missing picture becomes the
// placeholder. Password is always empty.
func ProfileFromUser(u User) Profile {
	picture := u.ProfilePicture
	if picture == "" {
		picture = DefaultProfilePicture
	}
	return Profile{
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Password:       "",
		ProfilePicture: picture,
	}
}

// Merge returns a copy of p with the non-nil fields of patch applied.
func (p Profile) Merge(patch UpdateProfileData) Profile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Password != nil {
		p.Password = *patch.Password
	}
	if patch.ProfilePicture != nil {
		p.ProfilePicture = *patch.ProfilePicture
	}
	return p
}
