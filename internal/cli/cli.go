// Package cli implements the hungrynow command line. Each command behaves
// like a screen: it validates input, dispatches to the store, prints the
// slice's message and clears it.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/hungrynow/hungrynow/internal/store"
	"github.com/hungrynow/hungrynow/internal/validate"
)

var (
	// ErrUsage is returned for unknown commands and malformed flags.
	ErrUsage = errors.New("invalid usage")
	// ErrInvalidInput is returned when input fails validation. The field
	// messages have already been printed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotSignedIn is returned by commands that need a session.
	ErrNotSignedIn = errors.New(`not signed in: run "hungrynow login" first`)
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string) error
}

// CLI runs one command per Run call against a store.
type CLI struct {
	store  *store.Store
	out    io.Writer
	errOut io.Writer

	commands []command

	restored   bool
	restoreErr error
}

// New creates a CLI printing results to out and diagnostics to errOut.
func New(s *store.Store, out, errOut io.Writer) *CLI {
	c := &CLI{store: s, out: out, errOut: errOut}
	c.commands = []command{
		{"register", "create an account and sign in", c.register},
		{"login", "sign in", c.login},
		{"logout", "sign out and forget the saved session", c.logout},
		{"forgot-password", "email a password reset link", c.forgotPassword},
		{"profile", "show or update the profile (show|update)", c.profile},
		{"change-password", "change the account password", c.changePassword},
		{"verify-phone", "confirm phone verification with a provider token", c.verifyPhone},
		{"avatar", "upload a profile picture", c.avatar},
		{"addresses", "manage the address book (list|add|update|default|delete)", c.addresses},
		{"categories", "list food categories", c.categories},
		{"foods", "list foods", c.foods},
		{"food", "show one food", c.food},
		{"cart", "manage the cart (show|add|update|remove|clear)", c.cart},
		{"favorites", "manage favorites (list|add|remove)", c.favorites},
		{"ratings", "read or write ratings (list|add)", c.ratings},
		{"vouchers", "list or apply vouchers (list|apply)", c.vouchers},
		{"notifications", "read notifications (list|read)", c.notifications},
	}
	return c
}

// Run executes the command named by args[0]. A persisted session is
// restored first.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		c.Usage()
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	i := slices.IndexFunc(c.commands, func(cmd command) bool { return cmd.name == args[0] })
	if i < 0 {
		fmt.Fprintf(c.errOut, "unknown command %q\n\n", args[0])
		c.Usage()
		return ErrUsage
	}

	c.restored, c.restoreErr = c.store.RestoreSession(ctx)
	c.store.ClearMessages(store.SliceAuth)

	return c.commands[i].run(ctx, args[1:])
}

// Usage prints the command list.
func (c *CLI) Usage() {
	fmt.Fprintln(c.errOut, "Usage: hungrynow [flags] <command> [subcommand] [flags]")
	fmt.Fprintln(c.errOut)
	fmt.Fprintln(c.errOut, "Commands:")
	for _, cmd := range c.commands {
		fmt.Fprintf(c.errOut, "  %-16s %s\n", cmd.name, cmd.summary)
	}
}

// Watch prints every dispatched action to w until the returned function is
// called.
func Watch(s *store.Store, w io.Writer) (stop func()) {
	return s.Subscribe(func(a store.Action, _ store.State) {
		if a.Phase == store.Rejected {
			fmt.Fprintf(w, "action %s: %s\n", a, a.Err)
			return
		}
		fmt.Fprintf(w, "action %s\n", a)
	})
}

func (c *CLI) requireAuth() error {
	if c.restored {
		return nil
	}
	if c.restoreErr != nil {
		return fmt.Errorf("restore session: %w", c.restoreErr)
	}
	return ErrNotSignedIn
}

func (c *CLI) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

func (c *CLI) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// visited returns the names of the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// subcommand dispatches args[0] to subs, defaulting to def when args is
// empty or starts with a flag.
func (c *CLI) subcommand(ctx context.Context, name, def string, args []string, subs map[string]func(context.Context, []string) error) error {
	sub := def
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}
	run, ok := subs[sub]
	if !ok {
		names := slices.Sorted(maps.Keys(subs))
		fmt.Fprintf(c.errOut, "unknown %s subcommand %q: want one of %s\n", name, sub, strings.Join(names, ", "))
		return ErrUsage
	}
	return run(ctx, args)
}

// settle prints the slice's success message or turns its error into the
// returned error, then clears both.
func (c *CLI) settle(slice string, err error) error {
	status, _ := store.SelectStatus(c.store.State(), slice)
	defer c.store.ClearMessages(slice)

	if errors.Is(err, store.ErrInFlight) {
		return err
	}
	if status.Error != "" {
		return &stateError{msg: status.Error, err: err}
	}
	if err != nil {
		return err
	}
	if status.SuccessMessage != "" {
		fmt.Fprintln(c.out, status.SuccessMessage)
	}
	return nil
}

// stateError reports the slice's error message and keeps the dispatch
// error for errors.Is and errors.As.
type stateError struct {
	msg string
	err error
}

func (e *stateError) Error() string { return e.msg }

func (e *stateError) Unwrap() error { return e.err }

// invalid prints per-field validation messages.
func (c *CLI) invalid(err error) error {
	fields := validate.FieldErrors(err)
	if fields == nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(c.errOut, "%s: %s\n", name, fields[name])
	}
	return ErrInvalidInput
}
