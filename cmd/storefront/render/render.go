// Package render turns API responses into terminal cards, the CLI's stand-in
// for the storefront's HTML templates.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"storefront/cmd/storefront/output"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/orders"
	"storefront/internal/reviews"
	"storefront/internal/support"
)

const descriptionLimit = 100

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1).
			Width(46)

	recommendedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("#10B981"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	strikeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Strikethrough(true)

	ctaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	outOfStockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))
)

// Options carries per-render flags: admin mode adds the upload affordance
// line, Images resolves the displayed image.
type Options struct {
	AdminMode bool
	Images    catalog.ImageResolver
}

// ProductCard renders one product. carousel may be nil for the default
// first-image view.
func ProductCard(p catalog.Product, carousel *Carousel, opts Options) string {
	var b strings.Builder

	category := p.CategoryName()
	if category == "" {
		category = "General"
	}
	b.WriteString(tagStyle.Render(category) + "\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.Name) + "\n")

	image := imageFor(p, carousel, opts)
	b.WriteString(output.Dim("img: "+image) + "\n")
	if carousel != nil && carousel.HasNav() {
		b.WriteString(output.Dim(fmt.Sprintf("‹ %s › (%d/%d)", carousel.Dots(), carousel.Index+1, carousel.Count)) + "\n")
	}

	b.WriteString(Truncate(p.Description) + "\n")
	b.WriteString(priceLine(p) + "\n")
	b.WriteString(cta(p))

	if p.Why != nil && len(p.Why.Reasons) > 0 {
		b.WriteString("\n" + whyPanel(*p.Why))
	}
	if opts.AdminMode {
		b.WriteString("\n" + output.Dim(fmt.Sprintf("admin: storefront admin images %d <files...>", p.ID)))
	}

	return cardStyle.Render(b.String())
}

func imageFor(p catalog.Product, carousel *Carousel, opts Options) string {
	if carousel != nil && len(p.ImageURLs) > 0 {
		idx := carousel.Index
		if idx >= 0 && idx < len(p.ImageURLs) {
			if opts.Images != nil {
				return opts.Images.Repair(p.ImageURLs[idx], p.Name, p.CategoryName())
			}
			return p.ImageURLs[idx]
		}
	}
	if opts.Images != nil {
		return opts.Images.Resolve(p)
	}
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	if p.ImageURL != nil {
		return *p.ImageURL
	}
	return ""
}

// Truncate cuts a description at 100 runes with an ellipsis, and fills in
// the placeholder line for products without one.
func Truncate(description string) string {
	if description == "" {
		return "Product details coming soon."
	}
	runes := []rune(description)
	if len(runes) <= descriptionLimit {
		return description
	}
	return string(runes[:descriptionLimit]) + "..."
}

func priceLine(p catalog.Product) string {
	if p.DealPrice != nil && *p.DealPrice > 0 {
		line := priceStyle.Render(fmt.Sprintf("$%.2f", *p.DealPrice))
		line += " " + strikeStyle.Render(fmt.Sprintf("$%.2f", p.ListPrice()))
		if p.IsDeal {
			line += " " + tagStyle.Render("DEAL")
		}
		return line
	}
	return priceStyle.Render(fmt.Sprintf("$%.2f", p.Price))
}

// cta picks the call to action: affiliate stores link out, everything else
// gates "Add to Cart" on stock.
func cta(p catalog.Product) string {
	if p.AffiliateURL != nil && *p.AffiliateURL != "" {
		seller := p.MerchantName()
		if seller == "" {
			seller = "merchant"
		}
		return ctaStyle.Render("View at "+seller) + " " + output.Dim(*p.AffiliateURL)
	}
	if p.Stock > 0 {
		return ctaStyle.Render(fmt.Sprintf("Add to Cart  (storefront cart add %d)", p.ID))
	}
	return outOfStockStyle.Render("Out of Stock")
}

func whyPanel(why catalog.WhyThisProduct) string {
	var b strings.Builder
	b.WriteString(tagStyle.Render("Why this product") + " " + output.Dim(confidenceLabel(why.Confidence)))
	for _, reason := range why.Reasons {
		b.WriteString("\n  • " + reason)
	}
	return b.String()
}

func confidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.75:
		return fmt.Sprintf("(high confidence, %.0f%%)", confidence*100)
	case confidence >= 0.5:
		return fmt.Sprintf("(medium confidence, %.0f%%)", confidence*100)
	default:
		return fmt.Sprintf("(low confidence, %.0f%%)", confidence*100)
	}
}

// ProductGrid renders the whole list, or the empty-state line.
func ProductGrid(products []catalog.Product, opts Options) string {
	if len(products) == 0 {
		return output.Dim("No products found.")
	}
	cards := make([]string, len(products))
	for i, p := range products {
		var carousel *Carousel
		if len(p.ImageURLs) > 1 {
			carousel = NewCarousel(len(p.ImageURLs))
		}
		cards[i] = ProductCard(p, carousel, opts)
	}
	return strings.Join(cards, "\n")
}

// Chips renders the active-filter strip with its removal hints.
func Chips(chips []catalog.Chip) string {
	if len(chips) == 0 {
		return ""
	}
	parts := make([]string, len(chips))
	for i, chip := range chips {
		parts[i] = output.ChipStyle.Render(chip.Label+" ✕") + output.Dim(" (--remove "+chip.Kind+")")
	}
	return strings.Join(parts, " ") + "\n" + output.Dim("clear all: storefront browse --clear")
}

// CartView prints the server cart verbatim: quantities, subtotals, and the
// total all come from the response.
func CartView(c *cart.Cart, images catalog.ImageResolver) string {
	if c.Empty() {
		return output.Dim("Your cart is empty")
	}
	var b strings.Builder
	for _, item := range c.Items {
		image := ""
		if images != nil {
			image = images.Resolve(item.Product)
		}
		b.WriteString(fmt.Sprintf("#%d  %s  x%d  %s\n",
			item.ID,
			lipgloss.NewStyle().Bold(true).Render(item.Product.Name),
			item.Quantity,
			priceStyle.Render(fmt.Sprintf("$%.2f", item.Subtotal)),
		))
		if image != "" {
			b.WriteString(output.Dim("    "+image) + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("%d item(s), total %s", c.ItemCount, priceStyle.Render(fmt.Sprintf("$%.2f", c.Total))))
	return b.String()
}

// OrderSummary is the checkout modal's line-item recap.
func OrderSummary(c *cart.Cart) string {
	var b strings.Builder
	for _, item := range c.Items {
		b.WriteString(fmt.Sprintf("%s x %d  $%.2f\n", item.Product.Name, item.Quantity, item.Subtotal))
	}
	b.WriteString(fmt.Sprintf("Total: %s", priceStyle.Render(fmt.Sprintf("$%.2f", c.Total))))
	return b.String()
}

func OrderSuccess(o *orders.Order) string {
	var b strings.Builder
	b.WriteString(priceStyle.Render("Order placed!") + "\n")
	b.WriteString("Order number: " + lipgloss.NewStyle().Bold(true).Render(o.OrderNumber) + "\n")
	b.WriteString(o.ContactMessage())
	return b.String()
}

// CompareView lays out the stat cards with the server's pick highlighted,
// then the rationale.
func CompareView(result *catalog.CompareResult) string {
	var b strings.Builder
	for _, p := range result.Products {
		style := cardStyle
		header := p.Name
		if p.ID == result.Summary.RecommendedProductID {
			style = recommendedCardStyle
			header += "  " + priceStyle.Render("RECOMMENDED")
		}

		var card strings.Builder
		card.WriteString(lipgloss.NewStyle().Bold(true).Render(header) + "\n")
		if merchant := p.MerchantName(); merchant != "" {
			card.WriteString("Merchant: " + merchant + "\n")
		}
		if category := p.CategoryName(); category != "" {
			card.WriteString("Category: " + category + "\n")
		}
		card.WriteString("Price: " + priceStyle.Render(fmt.Sprintf("$%.2f", p.CurrentPrice())))
		if discount := discountPercent(p.Product); discount > 0 {
			card.WriteString(" " + strikeStyle.Render(fmt.Sprintf("$%.2f", p.ListPrice())))
			card.WriteString(output.Dim(fmt.Sprintf(" (-%d%%)", discount)))
		}
		card.WriteString("\n")
		if p.Rating != nil {
			count := 0
			if p.ReviewCount != nil {
				count = *p.ReviewCount
			}
			card.WriteString(fmt.Sprintf("Rating: %.1f (%d reviews)\n", *p.Rating, count))
		}
		card.WriteString(fmt.Sprintf("Score: %.2f", p.Score))

		b.WriteString(style.Render(card.String()) + "\n")
	}

	b.WriteString(tagStyle.Render("Summary") + " " + output.Dim("confidence: "+result.Summary.Confidence) + "\n")
	if result.Summary.RecommendedReason != "" {
		b.WriteString(result.Summary.RecommendedReason + "\n")
	}
	for _, point := range result.Summary.KeyPoints {
		b.WriteString("  • " + point + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func discountPercent(p catalog.Product) int {
	list := p.ListPrice()
	current := p.CurrentPrice()
	if list <= 0 || current >= list {
		return 0
	}
	return int((list - current) / list * 100)
}

// ReviewCards lists approved reviews with their helpful controls; disabled
// tells the renderer which controls this profile has exhausted.
func ReviewCards(list []reviews.Review, disabled func(reviewID int) bool) string {
	if len(list) == 0 {
		return output.Dim("No approved reviews yet. Be the first to review.")
	}
	var b strings.Builder
	for _, review := range list {
		title := review.Title
		if title == "" {
			title = "Customer Review"
		}
		var card strings.Builder
		card.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "  " + reviews.Stars(review.Rating) + "\n")
		card.WriteString("By " + review.ReviewerName)
		if review.VerifiedPurchase {
			card.WriteString("  " + tagStyle.Render("Verified Purchase"))
		}
		card.WriteString("\n" + review.Body + "\n")
		if review.PhotoURL != nil && *review.PhotoURL != "" {
			card.WriteString(output.Dim("photo: "+*review.PhotoURL) + "\n")
		}
		helpful := fmt.Sprintf("Helpful (%d)", review.HelpfulCount)
		if disabled != nil && disabled(review.ID) {
			card.WriteString(output.Dim(helpful + " — already voted"))
		} else {
			card.WriteString(ctaStyle.Render(helpful))
		}
		b.WriteString(cardStyle.Render(card.String()) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FAQList shows the first five entries, like the compact widget did.
func FAQList(faqs []support.FAQ) string {
	if len(faqs) == 0 {
		return output.Dim("FAQ unavailable. Please try again later.")
	}
	if len(faqs) > 5 {
		faqs = faqs[:5]
	}
	var b strings.Builder
	for _, faq := range faqs {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(faq.Question) + "\n")
		b.WriteString("  " + faq.Answer + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func TicketLine(t support.Ticket) string {
	return fmt.Sprintf("%s  [%s]  %s", lipgloss.NewStyle().Bold(true).Render(t.TicketNumber), t.Status, t.Subject)
}
