package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"storefront/cmd/storefront/output"
	"storefront/cmd/storefront/render"
	"storefront/internal/adminops"
	"storefront/internal/catalog"
	"storefront/internal/httpx"
)

var (
	// Admin flags
	adminKeyFlag string
	confirmYes   bool

	productName    string
	productDesc    string
	productPrice   float64
	productStock   int
	productCat     string
	productMerch   string
	productAffURL  string
	productImgURL  string
	productImgPath string
	productIsDeal  bool
	productDeal    float64
	productListP   float64
)

// adminCmd represents the admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin console: products, moderation, tickets",
	Long: `Admin console. Log in once with the admin key; it is stored in the
profile and attached to every privileged request until logout.

Subcommands:
  login / logout / status
  product  - create, update, delete, upload images, import from a URL
  reviews  - list pending reviews and approve or reject them
  tickets  - list support tickets and move their status`,
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify and store the admin key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminLogin()
	},
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored admin key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminLogout()
	},
}

var adminStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether admin mode is active",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminStatus()
	},
}

var adminProductCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products",
}

var adminProductCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Long: `Create a product. With --image the product is sent as a multipart upload;
otherwise it goes as JSON.

Examples:
  storefront admin product create --name "LED Desk Lamp" --description "Warm white." \
    --price 29.99 --stock 40 --category Home
  storefront admin product create --name "LED Desk Lamp" --description "Warm white." \
    --price 29.99 --image ./lamp.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminProductSave(cmd, 0)
	},
}

var adminProductUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Update a product (unset flags keep their current values)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return runAdminProductSave(cmd, id)
	},
}

var adminProductDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return runAdminProductDelete(id)
	},
}

var adminProductImagesCmd = &cobra.Command{
	Use:   "images <product-id> <file>...",
	Short: "Upload gallery images for a product",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return runAdminProductImages(id, args[1:])
	},
}

var adminProductImportCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import a product from a merchant URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminProductImport(args[0])
	},
}

var adminReviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Moderate pending reviews",
}

var adminReviewsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List reviews awaiting moderation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminReviewsPending()
	},
}

var adminReviewsModerateCmd = &cobra.Command{
	Use:   "moderate <review-id> <approved|rejected>",
	Short: "Approve or reject a pending review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid review id %q", args[0])
		}
		return runAdminReviewsModerate(id, args[1])
	},
}

var adminTicketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "List and triage support tickets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminTickets()
	},
}

var adminTicketsStatusCmd = &cobra.Command{
	Use:   "status <ticket-id> <open|in_progress|resolved>",
	Short: "Move a ticket to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ticket id %q", args[0])
		}
		return runAdminTicketsStatus(id, args[1])
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminLoginCmd, adminLogoutCmd, adminStatusCmd, adminProductCmd, adminReviewsCmd, adminTicketsCmd)
	adminProductCmd.AddCommand(adminProductCreateCmd, adminProductUpdateCmd, adminProductDeleteCmd, adminProductImagesCmd, adminProductImportCmd)
	adminReviewsCmd.AddCommand(adminReviewsPendingCmd, adminReviewsModerateCmd)
	adminTicketsCmd.AddCommand(adminTicketsStatusCmd)

	adminLoginCmd.Flags().StringVar(&adminKeyFlag, "key", "", "Admin key (default $STOREFRONT_ADMIN_KEY)")
	adminProductDeleteCmd.Flags().BoolVarP(&confirmYes, "yes", "y", false, "Skip the confirmation prompt")

	for _, c := range []*cobra.Command{adminProductCreateCmd, adminProductUpdateCmd} {
		c.Flags().StringVar(&productName, "name", "", "Product name")
		c.Flags().StringVar(&productDesc, "description", "", "Product description")
		c.Flags().Float64Var(&productPrice, "price", 0, "Price")
		c.Flags().IntVar(&productStock, "stock", 0, "Stock count")
		c.Flags().StringVar(&productCat, "category", "", "Category")
		c.Flags().StringVar(&productMerch, "merchant", "", "Merchant name")
		c.Flags().StringVar(&productAffURL, "affiliate-url", "", "External merchant URL")
		c.Flags().StringVar(&productImgURL, "image-url", "", "Image URL")
		c.Flags().StringVar(&productImgPath, "image", "", "Local image file to upload (forces multipart)")
		c.Flags().BoolVar(&productIsDeal, "deal", false, "Mark as a deal")
		c.Flags().Float64Var(&productDeal, "deal-price", 0, "Deal price")
		c.Flags().Float64Var(&productListP, "original-price", 0, "Original (list) price")
	}
}

func runAdminLogin() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	key := adminKeyFlag
	if key == "" {
		key = os.Getenv("STOREFRONT_ADMIN_KEY")
	}
	if key == "" {
		return errors.New("--key or STOREFRONT_ADMIN_KEY is required")
	}

	if err := a.console.Login(context.Background(), key); err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("Admin mode on")
	return nil
}

func runAdminLogout() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.console.Logout(); err != nil {
		return err
	}
	output.Success("Admin mode off")
	return nil
}

func runAdminStatus() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.console.LoggedIn() {
		output.Info("Admin mode is on")
	} else {
		output.Muted("Admin mode is off")
	}
	return nil
}

func productFormFromFlags(cmd *cobra.Command, base adminops.ProductForm) adminops.ProductForm {
	form := base
	if cmd.Flags().Changed("name") {
		form.Name = productName
	}
	if cmd.Flags().Changed("description") {
		form.Description = productDesc
	}
	if cmd.Flags().Changed("price") {
		form.Price = productPrice
	}
	if cmd.Flags().Changed("stock") {
		form.Stock = productStock
	}
	if cmd.Flags().Changed("category") {
		form.Category = productCat
	}
	if cmd.Flags().Changed("merchant") {
		form.Merchant = productMerch
	}
	if cmd.Flags().Changed("affiliate-url") {
		form.AffiliateURL = productAffURL
	}
	if cmd.Flags().Changed("image-url") {
		form.ImageURL = productImgURL
	}
	if cmd.Flags().Changed("image") {
		form.ImagePath = productImgPath
	}
	if cmd.Flags().Changed("deal") {
		form.IsDeal = productIsDeal
	}
	if cmd.Flags().Changed("deal-price") {
		v := productDeal
		form.DealPrice = &v
		form.IsDeal = true
	}
	if cmd.Flags().Changed("original-price") {
		v := productListP
		form.OriginalPrice = &v
	}
	return form
}

// runAdminProductSave handles create (id == 0) and update.
func runAdminProductSave(cmd *cobra.Command, id int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	var base adminops.ProductForm
	if id != 0 {
		existing, err := a.catalog.Get(ctx, id)
		if err != nil {
			output.Error("%s", httpx.Message(err))
			return err
		}
		base = adminops.FormFromProduct(*existing)
	}
	form := productFormFromFlags(cmd, base)

	var saved *catalog.Product
	if id == 0 {
		saved, err = a.console.CreateProduct(ctx, form)
	} else {
		saved, err = a.console.UpdateProduct(ctx, id, form)
	}
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(saved)
	}
	if id == 0 {
		output.Success("Product created")
	} else {
		output.Success("Product %d updated", id)
	}
	return nil
}

func runAdminProductDelete(id int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	err = a.console.DeleteProduct(context.Background(), id, confirmYes)
	if errors.Is(err, adminops.ErrNotConfirmed) {
		output.Warning("Deleting product %d is permanent. Re-run with --yes to confirm.", id)
		return nil
	}
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("Product %d deleted", id)
	return nil
}

func runAdminProductImages(id int, paths []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	product, err := a.console.UploadImages(context.Background(), id, paths)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("Uploaded %d image(s); product now has %d", len(paths), len(product.ImageURLs))
	return nil
}

func runAdminProductImport(url string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.console.ImportURL(context.Background(), url)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	output.Success("%s", result.Message)
	for _, part := range importDetails(*result, a.images) {
		fmt.Println(part)
	}
	return nil
}

// importDetails renders the extracted product card, when extraction produced
// one, followed by the cleaner's diagnostic notes one per line.
func importDetails(result adminops.ImportResult, images catalog.ImageResolver) []string {
	var parts []string
	if result.Product.ID != 0 {
		parts = append(parts, render.ProductCard(result.Product, nil, render.Options{AdminMode: true, Images: images}))
	}
	if len(result.AICleanerReport) > 0 {
		lines := make([]string, 0, len(result.AICleanerReport)+1)
		lines = append(lines, output.Accent("Cleaner report"))
		for _, note := range result.AICleanerReport {
			lines = append(lines, "  - "+note)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return parts
}

func runAdminReviewsPending() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	pending, err := a.console.PendingReviews(context.Background())
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(pending)
	}
	if len(pending) == 0 {
		output.Muted("No reviews waiting.")
		return nil
	}
	for _, p := range pending {
		fmt.Printf("  #%d  %s  %q by %s (%s)\n", p.ID, p.ProductName, p.Title, p.ReviewerName, p.Status)
	}
	return nil
}

func runAdminReviewsModerate(id int, status string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	remaining, err := a.console.ModerateReview(context.Background(), id, status)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("Review %d %s", id, status)
	output.Muted("%d still pending", len(remaining))
	return nil
}

func runAdminTickets() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tickets, err := a.console.Tickets(context.Background())
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(tickets)
	}
	if len(tickets) == 0 {
		output.Muted("No tickets.")
		return nil
	}
	for _, t := range tickets {
		fmt.Println(render.TicketLine(t))
	}
	return nil
}

func runAdminTicketsStatus(id int, status string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.console.SetTicketStatus(context.Background(), id, status); err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("Ticket %d moved to %s", id, status)
	return nil
}
