package domain

// Gender values accepted for a profile. The empty string means unspecified.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User is the profile of the signed-in customer. Email cannot be changed
// through a profile update; Addresses is a read-only view.
type User struct {
	ID              string    `json:"_id"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	Gender          string    `json:"gender,omitempty"`
	Birthday        string    `json:"birthday,omitempty"` // YYYY-MM-DD
	Avatar          string    `json:"avatar,omitempty"`
	IsPhoneVerified bool      `json:"isPhoneVerified"`
	Language        string    `json:"language,omitempty"`
	Addresses       []Address `json:"addresses,omitempty"`
}

// ProfilePatch is a partial profile update; nil fields are left unchanged.
type ProfilePatch struct {
	FullName    *string `json:"fullName,omitempty" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Gender      *string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Birthday    *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Avatar      *string `json:"avatar,omitempty" validate:"omitempty,url"`
	Language    *string `json:"language,omitempty" validate:"omitempty,oneof=vi en"`
}

// Apply returns a copy of u with the patch's non-nil fields set. Changing
// the phone number clears its verification.
func (p ProfilePatch) Apply(u User) User {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.PhoneNumber != nil && *p.PhoneNumber != u.PhoneNumber {
		u.PhoneNumber = *p.PhoneNumber
		u.IsPhoneVerified = false
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Birthday != nil {
		u.Birthday = *p.Birthday
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Language != nil {
		u.Language = *p.Language
	}
	return u
}

// PasswordChange is the body of a change-password request.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password,nefield=CurrentPassword"`
}

// PhoneVerification carries the identity token issued by the phone
// verification provider after the user confirmed the SMS code.
type PhoneVerification struct {
	IDToken string `json:"idToken" validate:"required"`
}
