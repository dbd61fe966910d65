package store

import (
	"context"
	"fmt"
	"io"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// User action types.
const (
	ActionFetchProfile             = "user/fetchProfile"
	ActionUpdateProfile            = "user/updateProfile"
	ActionChangePassword           = "user/changePassword"
	ActionConfirmPhoneVerification = "user/confirmPhoneVerification"
	ActionUploadAvatar             = "user/uploadAvatar"
)

// UserState holds the signed-in user's profile, nil until loaded.
type UserState struct {
	Profile *domain.User
	Status
}

// AvatarUpload is the input of UploadAvatar.
type AvatarUpload struct {
	Filename string
	Image    io.Reader
}

var fetchProfile = Thunk[struct{}, domain.User]{
	Type:     ActionFetchProfile,
	Fallback: "Failed to fetch profile",
	Run: func(ctx context.Context, sess Session, _ struct{}) (domain.User, error) {
		env, err := sess.Client().GetProfile(ctx)
		return env.Data, err
	},
}

var updateProfile = Thunk[domain.ProfilePatch, domain.User]{
	Type:     ActionUpdateProfile,
	Fallback: "Failed to update profile",
	Run: func(ctx context.Context, sess Session, patch domain.ProfilePatch) (domain.User, error) {
		env, err := sess.Client().UpdateProfile(ctx, patch)
		return env.Data, err
	},
}

// changePassword resolves to the server's confirmation message.
var changePassword = Thunk[domain.PasswordChange, string]{
	Type:     ActionChangePassword,
	Fallback: "Failed to change password",
	Run: func(ctx context.Context, sess Session, in domain.PasswordChange) (string, error) {
		env, err := sess.Client().ChangePassword(ctx, in)
		return env.Message, err
	},
}

var confirmPhoneVerification = Thunk[string, string]{
	Type:     ActionConfirmPhoneVerification,
	Fallback: "Failed to verify phone number",
	Run: func(ctx context.Context, sess Session, idToken string) (string, error) {
		env, err := sess.Client().ConfirmPhoneVerification(ctx, idToken)
		return env.Message, err
	},
}

var uploadAvatar = Thunk[AvatarUpload, domain.User]{
	Type:     ActionUploadAvatar,
	Fallback: "Failed to upload avatar",
	Run: func(ctx context.Context, sess Session, in AvatarUpload) (domain.User, error) {
		client := sess.Client()
		res, err := client.UploadImage(ctx, in.Filename, in.Image)
		if err != nil {
			return domain.User{}, err
		}
		if res.ImageURL == "" {
			return domain.User{}, fmt.Errorf("upload returned no image url")
		}
		env, err := client.UpdateProfile(ctx, domain.ProfilePatch{Avatar: &res.ImageURL})
		return env.Data, err
	},
}

// FetchProfile loads the signed-in user.
func (s *Store) FetchProfile(ctx context.Context) (domain.User, error) {
	return fetchProfile.Dispatch(ctx, s, struct{}{})
}

// UpdateProfile saves the fields set in patch.
func (s *Store) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.User, error) {
	return updateProfile.Dispatch(ctx, s, patch)
}

// ChangePassword returns the server's confirmation message.
func (s *Store) ChangePassword(ctx context.Context, in domain.PasswordChange) (string, error) {
	return changePassword.Dispatch(ctx, s, in)
}

// ConfirmPhoneVerification sends the verification provider's id token and
// marks the loaded profile's phone number verified.
func (s *Store) ConfirmPhoneVerification(ctx context.Context, idToken string) (string, error) {
	return confirmPhoneVerification.Dispatch(ctx, s, idToken)
}

// UploadAvatar uploads an image and sets it as the profile avatar.
func (s *Store) UploadAvatar(ctx context.Context, filename string, image io.Reader) (domain.User, error) {
	return uploadAvatar.Dispatch(ctx, s, AvatarUpload{Filename: filename, Image: image})
}

func (st *UserState) reduce(a Action) {
	switch a.Type {
	case ActionFetchProfile:
		st.reduceAsync(a, func() string {
			st.setProfile(a.Payload)
			return "Profile loaded successfully"
		})
	case ActionUpdateProfile:
		st.reduceAsync(a, func() string {
			st.setProfile(a.Payload)
			return "Profile updated successfully"
		})
	case ActionUploadAvatar:
		st.reduceAsync(a, func() string {
			st.setProfile(a.Payload)
			return "Avatar updated successfully"
		})
	case ActionChangePassword:
		st.reduceAsync(a, func() string {
			return messageOr(a.Payload, "Password changed successfully")
		})
	case ActionConfirmPhoneVerification:
		st.reduceAsync(a, func() string {
			if st.Profile != nil {
				st.Profile.IsPhoneVerified = true
			}
			return messageOr(a.Payload, "Phone number verified successfully")
		})

	// The profile arrives with the session; the auth slice owns the status.
	case ActionLogin, ActionRegister, ActionRestoreSession:
		if a.Phase == Fulfilled {
			if sess, ok := a.Payload.(domain.Session); ok && sess.Token != "" {
				st.setProfile(sess.User)
			}
		}
	}
}

func (st *UserState) setProfile(payload any) {
	if u, ok := payload.(domain.User); ok {
		st.Profile = cloneUser(&u)
	}
}
