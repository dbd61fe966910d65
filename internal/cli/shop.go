package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/store"
	"github.com/hungrynow/hungrynow/internal/validate"
)

func (c *CLI) categories(ctx context.Context, args []string) error {
	if err := c.parse(c.flagSet("categories"), args); err != nil {
		return err
	}
	_, err := c.store.FetchCategories(ctx)
	if err := c.settle(store.SliceCatalog, err); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, cat := range store.SelectCategories(c.store.State()) {
		fmt.Fprintf(tw, "%s\t%s\n", cat.ID, cat.Name)
	}
	return tw.Flush()
}

func (c *CLI) foods(ctx context.Context, args []string) error {
	fs := c.flagSet("foods")
	var filter domain.FoodFilter
	fs.StringVar(&filter.CategoryID, "category", "", "category id")
	fs.StringVar(&filter.Search, "search", "", "search name and description")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	_, err := c.store.FetchFoods(ctx, filter)
	if err := c.settle(store.SliceCatalog, err); err != nil {
		return err
	}
	c.printFoods(store.SelectFoods(c.store.State()))
	return nil
}

func (c *CLI) food(ctx context.Context, args []string) error {
	id, err := c.idArg("food", args)
	if err != nil {
		return err
	}
	_, err = c.store.FetchFood(ctx, id)
	if err := c.settle(store.SliceCatalog, err); err != nil {
		return err
	}
	f := store.SelectSelectedFood(c.store.State())
	if f == nil {
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", f.Name)
	fmt.Fprintf(tw, "Description\t%s\n", f.Description)
	fmt.Fprintf(tw, "Price\t%s\n", formatVND(f.Price))
	fmt.Fprintf(tw, "Rating\t%.1f (%d)\n", f.Rating, f.RatingCount)
	fmt.Fprintf(tw, "Available\t%t\n", f.IsAvailable)
	return tw.Flush()
}

func (c *CLI) cart(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	return c.subcommand(ctx, "cart", "show", args, map[string]func(context.Context, []string) error{
		"show":   c.showCart,
		"add":    c.addToCart,
		"update": c.updateCartItem,
		"remove": c.removeCartItem,
		"clear":  c.clearCart,
	})
}

func (c *CLI) showCart(ctx context.Context, args []string) error {
	if err := c.parse(c.flagSet("cart show"), args); err != nil {
		return err
	}
	_, err := c.store.FetchCart(ctx)
	if err := c.settle(store.SliceCart, err); err != nil {
		return err
	}
	c.printCart(c.store.State())
	return nil
}

func (c *CLI) addToCart(ctx context.Context, args []string) error {
	fs := c.flagSet("cart add")
	var in domain.CartItemInput
	fs.StringVar(&in.FoodID, "food", "", "food id")
	fs.IntVar(&in.Quantity, "qty", 1, "quantity")
	fs.StringVar(&in.Note, "note", "", "note for the kitchen")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := validate.CartItem(in); err != nil {
		return c.invalid(err)
	}
	_, err := c.store.AddToCart(ctx, in)
	if err := c.settle(store.SliceCart, err); err != nil {
		return err
	}
	c.printCart(c.store.State())
	return nil
}

func (c *CLI) updateCartItem(ctx context.Context, args []string) error {
	fs := c.flagSet("cart update")
	foodID := fs.String("food", "", "food id")
	qty := fs.Int("qty", 1, "new quantity; 0 removes the line")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if *foodID == "" {
		fmt.Fprintln(c.errOut, "food: is required")
		return ErrInvalidInput
	}
	if *qty < 0 || *qty > 99 {
		fmt.Fprintln(c.errOut, "qty: must be between 0 and 99")
		return ErrInvalidInput
	}
	_, err := c.store.UpdateCartItem(ctx, *foodID, *qty)
	if err := c.settle(store.SliceCart, err); err != nil {
		return err
	}
	c.printCart(c.store.State())
	return nil
}

func (c *CLI) removeCartItem(ctx context.Context, args []string) error {
	fs := c.flagSet("cart remove")
	foodID := fs.String("food", "", "food id")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if *foodID == "" {
		fmt.Fprintln(c.errOut, "food: is required")
		return ErrInvalidInput
	}
	_, err := c.store.RemoveCartItem(ctx, *foodID)
	if err := c.settle(store.SliceCart, err); err != nil {
		return err
	}
	c.printCart(c.store.State())
	return nil
}

func (c *CLI) clearCart(ctx context.Context, args []string) error {
	if err := c.parse(c.flagSet("cart clear"), args); err != nil {
		return err
	}
	_, err := c.store.ClearCart(ctx)
	return c.settle(store.SliceCart, err)
}

func (c *CLI) favorites(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	return c.subcommand(ctx, "favorites", "list", args, map[string]func(context.Context, []string) error{
		"list": func(ctx context.Context, args []string) error {
			if err := c.parse(c.flagSet("favorites list"), args); err != nil {
				return err
			}
			_, err := c.store.FetchFavorites(ctx)
			if err := c.settle(store.SliceFavorite, err); err != nil {
				return err
			}
			c.printFoods(store.SelectFavorites(c.store.State()))
			return nil
		},
		"add": func(ctx context.Context, args []string) error {
			id, err := c.idArg("favorites add", args)
			if err != nil {
				return err
			}
			_, err = c.store.AddFavorite(ctx, id)
			return c.settle(store.SliceFavorite, err)
		},
		"remove": func(ctx context.Context, args []string) error {
			id, err := c.idArg("favorites remove", args)
			if err != nil {
				return err
			}
			return c.settle(store.SliceFavorite, c.store.RemoveFavorite(ctx, id))
		},
	})
}

func (c *CLI) ratings(ctx context.Context, args []string) error {
	return c.subcommand(ctx, "ratings", "list", args, map[string]func(context.Context, []string) error{
		"list": c.listRatings,
		"add":  c.addRating,
	})
}

func (c *CLI) listRatings(ctx context.Context, args []string) error {
	fs := c.flagSet("ratings list")
	foodID := fs.String("food", "", "food id")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if *foodID == "" {
		fmt.Fprintln(c.errOut, "food: is required")
		return ErrInvalidInput
	}
	_, err := c.store.FetchRatings(ctx, *foodID)
	if err := c.settle(store.SliceRating, err); err != nil {
		return err
	}
	ratings := store.SelectRatings(c.store.State(), *foodID)
	if len(ratings) == 0 {
		fmt.Fprintln(c.out, "No ratings yet.")
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARS\tBY\tDATE\tCOMMENT")
	for _, r := range ratings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", strings.Repeat("*", r.Stars), r.UserName, r.CreatedAt.Format(time.DateOnly), r.Comment)
	}
	return tw.Flush()
}

func (c *CLI) addRating(ctx context.Context, args []string) error {
	fs := c.flagSet("ratings add")
	var in domain.RatingInput
	fs.StringVar(&in.FoodID, "food", "", "food id")
	fs.IntVar(&in.Stars, "stars", 5, "stars from 1 to 5")
	fs.StringVar(&in.Comment, "comment", "", "comment")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := validate.Rating(in); err != nil {
		return c.invalid(err)
	}
	_, err := c.store.AddRating(ctx, in)
	return c.settle(store.SliceRating, err)
}

func (c *CLI) vouchers(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	return c.subcommand(ctx, "vouchers", "list", args, map[string]func(context.Context, []string) error{
		"list":  c.listVouchers,
		"apply": c.applyVoucher,
	})
}

func (c *CLI) listVouchers(ctx context.Context, args []string) error {
	if err := c.parse(c.flagSet("vouchers list"), args); err != nil {
		return err
	}
	_, err := c.store.FetchVouchers(ctx)
	if err := c.settle(store.SliceVoucher, err); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tDISCOUNT\tMIN ORDER\tEXPIRES\tDESCRIPTION")
	for _, v := range store.SelectVouchers(c.store.State()) {
		discount := formatVND(v.DiscountValue)
		if v.DiscountType == domain.DiscountPercent {
			discount = strconv.FormatFloat(v.DiscountValue, 'f', -1, 64) + "%"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.Code, discount, formatVND(v.MinOrderValue), v.ExpiresAt.Format(time.DateOnly), v.Description)
	}
	return tw.Flush()
}

// applyVoucher applies a code to the current cart.
func (c *CLI) applyVoucher(ctx context.Context, args []string) error {
	fs := c.flagSet("vouchers apply")
	code := fs.String("code", "", "voucher code")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if *code == "" {
		fmt.Fprintln(c.errOut, "code: is required")
		return ErrInvalidInput
	}

	if _, err := c.store.FetchCart(ctx); err != nil {
		return c.settle(store.SliceCart, err)
	}
	c.store.ClearMessages(store.SliceCart)

	subtotal := store.SelectCartSubtotal(c.store.State())
	_, err := c.store.ApplyVoucher(ctx, strings.ToUpper(*code), subtotal)
	if err := c.settle(store.SliceVoucher, err); err != nil {
		return err
	}
	c.printCart(c.store.State())
	return nil
}

func (c *CLI) notifications(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	return c.subcommand(ctx, "notifications", "list", args, map[string]func(context.Context, []string) error{
		"list": func(ctx context.Context, args []string) error {
			if err := c.parse(c.flagSet("notifications list"), args); err != nil {
				return err
			}
			_, err := c.store.FetchNotifications(ctx)
			if err := c.settle(store.SliceNotification, err); err != nil {
				return err
			}
			st := c.store.State()
			fmt.Fprintf(c.out, "%d unread\n", store.SelectUnreadCount(st))
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, n := range store.SelectNotifications(st) {
				mark := " "
				if !n.IsRead {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, n.ID, n.Title, n.Body)
			}
			return tw.Flush()
		},
		"read": func(ctx context.Context, args []string) error {
			id, err := c.idArg("notifications read", args)
			if err != nil {
				return err
			}
			_, err = c.store.MarkNotificationRead(ctx, id)
			return c.settle(store.SliceNotification, err)
		},
	})
}

func (c *CLI) printFoods(foods []domain.Food) {
	if len(foods) == 0 {
		fmt.Fprintln(c.out, "Nothing found.")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tRATING\tAVAILABLE")
	for _, f := range foods {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%t\n", f.ID, f.Name, formatVND(f.Price), f.Rating, f.IsAvailable)
	}
	_ = tw.Flush()
}

func (c *CLI) printCart(st store.State) {
	cart := store.SelectCart(st)
	if len(cart.Items) == 0 {
		fmt.Fprintln(c.out, "Your cart is empty.")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FOOD\tQTY\tPRICE\tNOTE")
	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", item.Food.Name, item.Quantity, formatVND(item.Food.Price*float64(item.Quantity)), item.Note)
	}
	fmt.Fprintf(tw, "Subtotal\t\t%s\t\n", formatVND(store.SelectCartSubtotal(st)))
	if applied := store.SelectAppliedVoucher(st); applied != nil {
		fmt.Fprintf(tw, "Voucher %s\t\t-%s\t\n", applied.Voucher.Code, formatVND(applied.Discount))
		fmt.Fprintf(tw, "Total\t\t%s\t\n", formatVND(store.SelectOrderTotal(st)))
	}
	_ = tw.Flush()
}

// formatVND renders an amount with thousands separators, e.g. 55.000đ.
func formatVND(amount float64) string {
	digits := strconv.FormatInt(int64(amount), 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "đ"
}
