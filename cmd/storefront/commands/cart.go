package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storefront/cmd/storefront/output"
	"storefront/cmd/storefront/render"
	"storefront/internal/cart"
	"storefront/internal/httpx"
	"storefront/internal/orders"
)

var (
	// Cart flags
	quantity      int
	customerName  string
	customerEmail string
	customerPhone string
)

// cartCmd represents the cart command
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the session cart and check out",
	Long: `Manage the cart tied to this profile's session token.

Subcommands:
  show      - Show the current cart
  add       - Add a product
  update    - Change a line item's quantity
  remove    - Remove a line item
  checkout  - Place the order`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCartShow()
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCartShow()
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return runCartAdd(id)
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Change a line item's quantity (0 removes it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		return runCartUpdate(id)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a line item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		return runCartRemove(id)
	},
}

var cartCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place the order for the current cart",
	Long: `Place the order for the current cart. The contact fields are required;
on success the cart is cleared and a fresh session token is issued.

Examples:
  storefront cart checkout --name "Jo Smith" --email jo@example.com --phone "+15550100"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCartCheckout()
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartCheckoutCmd)

	cartAddCmd.Flags().IntVarP(&quantity, "qty", "q", 1, "Quantity to add")
	cartUpdateCmd.Flags().IntVarP(&quantity, "qty", "q", 1, "New quantity")

	cartCheckoutCmd.Flags().StringVar(&customerName, "name", "", "Customer name (required)")
	cartCheckoutCmd.Flags().StringVar(&customerEmail, "email", "", "Customer email (required)")
	cartCheckoutCmd.Flags().StringVar(&customerPhone, "phone", "", "Customer phone (required)")
}

func printCart(a *app, c *cart.Cart) error {
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(c)
	}
	fmt.Println(render.CartView(c, a.images))
	return nil
}

func runCartShow() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c, err := a.cart.Refresh(context.Background())
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	return printCart(a, c)
}

func runCartAdd(productID int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c, err := a.cart.AddItem(context.Background(), productID, quantity)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("Added to cart")
	return printCart(a, c)
}

func runCartUpdate(itemID int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c, err := a.cart.UpdateQuantity(context.Background(), itemID, quantity)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	return printCart(a, c)
}

func runCartRemove(itemID int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c, err := a.cart.RemoveItem(context.Background(), itemID)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("Removed")
	return printCart(a, c)
}

func runCartCheckout() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	pending, err := a.cart.BeginCheckout(ctx)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			output.Warning("Your cart is empty.")
			return nil
		}
		output.Error("%s", httpx.Message(err))
		return err
	}
	fmt.Println(render.OrderSummary(pending))

	order, err := a.cart.SubmitCheckout(ctx, orders.CheckoutForm{
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		CustomerPhone: customerPhone,
	})
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(order)
	}
	fmt.Println(render.OrderSuccess(order))
	return nil
}
