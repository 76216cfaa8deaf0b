package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storefront/cmd/storefront/output"
	"storefront/cmd/storefront/render"
	"storefront/internal/httpx"
	"storefront/internal/reviews"
)

var (
	// Review flags
	reviewerName  string
	reviewerEmail string
	reviewRating  int
	reviewTitle   string
	reviewBody    string
	reviewOrder   string
	reviewPhoto   string
)

// reviewsCmd represents the reviews command
var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Read, write, and vote on product reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list <product-id>",
	Short: "List a product's approved reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return runReviewsList(id)
	},
}

var reviewsSubmitCmd = &cobra.Command{
	Use:   "submit <product-id>",
	Short: "Submit a review (it is held for moderation)",
	Long: `Submit a review. New reviews are held until an admin approves them.

Examples:
  storefront reviews submit 12 --name "Jo" --rating 5 --body "Great lamp."
  storefront reviews submit 12 --name "Jo" --rating 4 --body "Solid." --photo ./desk.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return runReviewsSubmit(id)
	},
}

var reviewsHelpfulCmd = &cobra.Command{
	Use:   "helpful <review-id>",
	Short: "Mark a review as helpful",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid review id %q", args[0])
		}
		return runReviewsHelpful(id)
	},
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
	reviewsCmd.AddCommand(reviewsListCmd, reviewsSubmitCmd, reviewsHelpfulCmd)

	reviewsSubmitCmd.Flags().StringVar(&reviewerName, "name", "", "Reviewer name (required)")
	reviewsSubmitCmd.Flags().StringVar(&reviewerEmail, "email", "", "Reviewer email")
	reviewsSubmitCmd.Flags().IntVar(&reviewRating, "rating", 0, "Star rating, 1-5 (required)")
	reviewsSubmitCmd.Flags().StringVar(&reviewTitle, "title", "", "Review title")
	reviewsSubmitCmd.Flags().StringVar(&reviewBody, "body", "", "Review text (required)")
	reviewsSubmitCmd.Flags().StringVar(&reviewOrder, "order", "", "Order number, marks the review verified")
	reviewsSubmitCmd.Flags().StringVar(&reviewPhoto, "photo", "", "Path to a photo to attach")
}

func runReviewsList(productID int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.reviews.List(context.Background(), productID)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(list)
	}
	fmt.Println(render.ReviewCards(list, a.voter.Disabled))
	return nil
}

func runReviewsSubmit(productID int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	msg, err := a.reviews.Submit(context.Background(), productID, reviews.Form{
		ReviewerName:  reviewerName,
		ReviewerEmail: reviewerEmail,
		Rating:        reviewRating,
		Title:         reviewTitle,
		Body:          reviewBody,
		OrderNumber:   reviewOrder,
		PhotoPath:     reviewPhoto,
	})
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("%s", msg)
	return nil
}

func runReviewsHelpful(reviewID int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	result := a.voter.VoteHelpful(context.Background(), reviewID)
	if result == nil {
		// Vote failures are swallowed; the count just doesn't move.
		output.Muted("Vote not recorded.")
		return nil
	}
	if result.AlreadyVoted {
		output.Muted("You already found this review helpful.")
		return nil
	}
	output.Success("Helpful (%d)", result.HelpfulCount)
	return nil
}
