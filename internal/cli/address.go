package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/store"
	"github.com/hungrynow/hungrynow/internal/validate"
)

func (c *CLI) addresses(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	return c.subcommand(ctx, "addresses", "list", args, map[string]func(context.Context, []string) error{
		"list":    c.listAddresses,
		"add":     c.addAddress,
		"update":  c.updateAddress,
		"default": c.setDefaultAddress,
		"delete":  c.deleteAddress,
	})
}

func (c *CLI) listAddresses(ctx context.Context, args []string) error {
	if err := c.parse(c.flagSet("addresses list"), args); err != nil {
		return err
	}
	_, err := c.store.FetchAddresses(ctx)
	if err := c.settle(store.SliceAddress, err); err != nil {
		return err
	}
	c.printAddresses(store.SelectAddresses(c.store.State()))
	return nil
}

func (c *CLI) addAddress(ctx context.Context, args []string) error {
	fs := c.flagSet("addresses add")
	var a domain.Address
	fs.StringVar(&a.Label, "label", "", "label, e.g. Home")
	fs.StringVar(&a.AddressDetail, "detail", "", "street address")
	fs.Float64Var(&a.Latitude, "lat", 0, "latitude")
	fs.Float64Var(&a.Longitude, "lng", 0, "longitude")
	fs.BoolVar(&a.IsDefault, "default", false, "make this the default address")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := validate.Address(a); err != nil {
		return c.invalid(err)
	}

	_, err := c.store.AddAddress(ctx, a)
	if err := c.settle(store.SliceAddress, err); err != nil {
		return err
	}
	c.printAddresses(store.SelectAddresses(c.store.State()))
	return nil
}

func (c *CLI) updateAddress(ctx context.Context, args []string) error {
	fs := c.flagSet("addresses update")
	id := fs.String("id", "", "address id")
	label := fs.String("label", "", "label")
	detail := fs.String("detail", "", "street address")
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	isDefault := fs.Bool("default", false, "default flag")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if *id == "" {
		fmt.Fprintln(c.errOut, "id: is required")
		return ErrInvalidInput
	}

	set := visited(fs)
	var patch domain.AddressPatch
	if set["label"] {
		patch.Label = label
	}
	if set["detail"] {
		patch.AddressDetail = detail
	}
	if set["lat"] {
		patch.Latitude = lat
	}
	if set["lng"] {
		patch.Longitude = lng
	}
	if set["default"] {
		patch.IsDefault = isDefault
	}
	if patch.IsEmpty() {
		fmt.Fprintln(c.errOut, "nothing to update: pass at least one of -label, -detail, -lat, -lng, -default")
		return ErrUsage
	}
	if err := validate.AddressPatch(patch); err != nil {
		return c.invalid(err)
	}

	_, err := c.store.UpdateAddress(ctx, *id, patch)
	if err := c.settle(store.SliceAddress, err); err != nil {
		return err
	}
	c.printAddresses(store.SelectAddresses(c.store.State()))
	return nil
}

func (c *CLI) setDefaultAddress(ctx context.Context, args []string) error {
	id, err := c.idArg("addresses default", args)
	if err != nil {
		return err
	}
	_, err = c.store.SetDefaultAddress(ctx, id)
	return c.settle(store.SliceAddress, err)
}

func (c *CLI) deleteAddress(ctx context.Context, args []string) error {
	id, err := c.idArg("addresses delete", args)
	if err != nil {
		return err
	}
	return c.settle(store.SliceAddress, c.store.DeleteAddress(ctx, id))
}

// idArg accepts the id as -id or as the only positional argument.
func (c *CLI) idArg(name string, args []string) (string, error) {
	fs := c.flagSet(name)
	id := fs.String("id", "", "id")
	if err := c.parse(fs, args); err != nil {
		return "", err
	}
	if *id == "" && fs.NArg() == 1 {
		*id = fs.Arg(0)
	}
	if *id == "" {
		fmt.Fprintln(c.errOut, "id: is required")
		return "", ErrInvalidInput
	}
	return *id, nil
}

func (c *CLI) printAddresses(addrs []domain.Address) {
	if len(addrs) == 0 {
		fmt.Fprintln(c.out, "No addresses yet.")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tADDRESS\tLOCATION\tDEFAULT")
	for _, a := range addrs {
		def := ""
		if a.IsDefault {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.5f,%.5f\t%s\n", a.ID, a.Label, a.AddressDetail, a.Latitude, a.Longitude, def)
	}
	_ = tw.Flush()
}
