package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/store"
	"github.com/hungrynow/hungrynow/internal/validate"
)

func (c *CLI) register(ctx context.Context, args []string) error {
	fs := c.flagSet("register")
	var reg domain.Registration
	fs.StringVar(&reg.FullName, "name", "", "full name")
	fs.StringVar(&reg.Email, "email", "", "email address")
	fs.StringVar(&reg.Password, "password", "", "password (8+ characters, mixed case, digit and symbol)")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := validate.Registration(reg); err != nil {
		return c.invalid(err)
	}

	sess, err := c.store.Register(ctx, reg)
	if err := c.settle(store.SliceAuth, err); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Signed in as %s\n", sess.User.Email)
	return nil
}

func (c *CLI) login(ctx context.Context, args []string) error {
	fs := c.flagSet("login")
	var cred domain.Credentials
	fs.StringVar(&cred.Email, "email", "", "email address")
	fs.StringVar(&cred.Password, "password", "", "password")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := validate.Credentials(cred); err != nil {
		return c.invalid(err)
	}

	sess, err := c.store.Login(ctx, cred.Email, cred.Password)
	if err := c.settle(store.SliceAuth, err); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Signed in as %s\n", sess.User.Email)
	return nil
}

func (c *CLI) logout(ctx context.Context, args []string) error {
	if err := c.parse(c.flagSet("logout"), args); err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}
	return c.settle(store.SliceAuth, c.store.Logout(ctx))
}

func (c *CLI) forgotPassword(ctx context.Context, args []string) error {
	fs := c.flagSet("forgot-password")
	email := fs.String("email", "", "email address")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if !validate.Email(*email) {
		fmt.Fprintln(c.errOut, "email: must be a valid email address")
		return ErrInvalidInput
	}
	_, err := c.store.ForgotPassword(ctx, *email)
	return c.settle(store.SliceAuth, err)
}

func (c *CLI) profile(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	return c.subcommand(ctx, "profile", "show", args, map[string]func(context.Context, []string) error{
		"show":   c.showProfile,
		"update": c.updateProfile,
	})
}

func (c *CLI) showProfile(ctx context.Context, args []string) error {
	if err := c.parse(c.flagSet("profile show"), args); err != nil {
		return err
	}
	_, err := c.store.FetchProfile(ctx)
	if err := c.settle(store.SliceUser, err); err != nil {
		return err
	}
	c.printProfile(store.SelectProfile(c.store.State()))
	return nil
}

func (c *CLI) updateProfile(ctx context.Context, args []string) error {
	fs := c.flagSet("profile update")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	gender := fs.String("gender", "", "male or female")
	birthday := fs.String("birthday", "", "birthday as YYYY-MM-DD")
	language := fs.String("language", "", "vi or en")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	set := visited(fs)
	var patch domain.ProfilePatch
	if set["name"] {
		patch.FullName = name
	}
	if set["phone"] {
		patch.PhoneNumber = phone
	}
	if set["gender"] {
		patch.Gender = gender
	}
	if set["birthday"] {
		patch.Birthday = birthday
	}
	if set["language"] {
		patch.Language = language
	}
	if len(set) == 0 {
		fmt.Fprintln(c.errOut, "nothing to update: pass at least one of -name, -phone, -gender, -birthday, -language")
		return ErrUsage
	}
	if err := validate.Profile(patch); err != nil {
		return c.invalid(err)
	}

	_, err := c.store.UpdateProfile(ctx, patch)
	if err := c.settle(store.SliceUser, err); err != nil {
		return err
	}
	c.printProfile(store.SelectProfile(c.store.State()))
	return nil
}

func (c *CLI) changePassword(ctx context.Context, args []string) error {
	fs := c.flagSet("change-password")
	var in domain.PasswordChange
	fs.StringVar(&in.CurrentPassword, "current", "", "current password")
	fs.StringVar(&in.NewPassword, "new", "", "new password")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := validate.PasswordChange(in); err != nil {
		return c.invalid(err)
	}
	_, err := c.store.ChangePassword(ctx, in)
	return c.settle(store.SliceUser, err)
}

func (c *CLI) verifyPhone(ctx context.Context, args []string) error {
	fs := c.flagSet("verify-phone")
	token := fs.String("token", "", "identity token from the phone verification provider")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}
	if *token == "" {
		fmt.Fprintln(c.errOut, "token: is required")
		return ErrInvalidInput
	}

	// The profile must be loaded for the verified flag to be applied.
	if _, err := c.store.FetchProfile(ctx); err != nil {
		return c.settle(store.SliceUser, err)
	}
	c.store.ClearMessages(store.SliceUser)

	_, err := c.store.ConfirmPhoneVerification(ctx, *token)
	return c.settle(store.SliceUser, err)
}

func (c *CLI) avatar(ctx context.Context, args []string) error {
	fs := c.flagSet("avatar")
	path := fs.String("file", "", "image file (jpeg, png, gif or webp)")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}
	if *path == "" {
		fmt.Fprintln(c.errOut, "file: is required")
		return ErrInvalidInput
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	user, err := c.store.UploadAvatar(ctx, filepath.Base(*path), f)
	if err := c.settle(store.SliceUser, err); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Avatar: %s\n", user.Avatar)
	return nil
}

func (c *CLI) printProfile(u *domain.User) {
	if u == nil {
		return
	}
	verified := "not verified"
	if u.IsPhoneVerified {
		verified = "verified"
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", u.FullName)
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	if u.PhoneNumber != "" {
		fmt.Fprintf(tw, "Phone\t%s (%s)\n", u.PhoneNumber, verified)
	}
	if u.Gender != "" {
		fmt.Fprintf(tw, "Gender\t%s\n", u.Gender)
	}
	if u.Birthday != "" {
		fmt.Fprintf(tw, "Birthday\t%s\n", u.Birthday)
	}
	if u.Avatar != "" {
		fmt.Fprintf(tw, "Avatar\t%s\n", u.Avatar)
	}
	if u.Language != "" {
		fmt.Fprintf(tw, "Language\t%s\n", u.Language)
	}
	_ = tw.Flush()
}
