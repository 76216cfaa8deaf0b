package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"storefront/cmd/storefront/output"
	"storefront/cmd/storefront/render"
	"storefront/cmd/storefront/tui"
	"storefront/internal/httpx"
	"storefront/internal/support"
)

var (
	// Support flags
	contactName    string
	contactEmail   string
	contactSubject string
	contactMessage string
	ticketEmail    string
)

// supportCmd represents the support command
var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "FAQ, support tickets, and the chat assistant",
}

var supportFAQCmd = &cobra.Command{
	Use:   "faq",
	Short: "Show frequently asked questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSupportFAQ()
	},
}

var supportContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Open a support ticket",
	Long: `Open a support ticket. The returned ticket number can be looked up later
with "support ticket".

Examples:
  storefront support contact --name Jo --email jo@example.com \
    --subject "Missing item" --message "Order SF-1001 arrived short one lamp."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSupportContact()
	},
}

var supportTicketCmd = &cobra.Command{
	Use:   "ticket <ticket-number>",
	Short: "Look up a ticket's status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSupportTicket(args[0])
	},
}

var supportAskCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the assistant a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSupportAsk(strings.Join(args, " "))
	},
}

var supportChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSupportChat()
	},
}

func init() {
	rootCmd.AddCommand(supportCmd)
	supportCmd.AddCommand(supportFAQCmd, supportContactCmd, supportTicketCmd, supportAskCmd, supportChatCmd)

	supportContactCmd.Flags().StringVar(&contactName, "name", "", "Your name (required)")
	supportContactCmd.Flags().StringVar(&contactEmail, "email", "", "Your email (required)")
	supportContactCmd.Flags().StringVar(&contactSubject, "subject", "", "Subject (required)")
	supportContactCmd.Flags().StringVar(&contactMessage, "message", "", "Message (required)")

	supportTicketCmd.Flags().StringVar(&ticketEmail, "email", "", "Email the ticket was opened with (required)")
}

func runSupportFAQ() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	faqs, err := a.support.FAQs(context.Background())
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(faqs)
	}
	fmt.Println(render.FAQList(faqs))
	return nil
}

func runSupportContact() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ticket, err := a.support.Contact(context.Background(), support.ContactForm{
		Name:    contactName,
		Email:   contactEmail,
		Subject: contactSubject,
		Message: contactMessage,
	})
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("Ticket opened: %s", ticket.TicketNumber)
	output.Muted("Keep this number to check the status later.")
	return nil
}

func runSupportTicket(number string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ticket, err := a.support.Lookup(context.Background(), number, ticketEmail)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(ticket)
	}
	fmt.Println(render.TicketLine(*ticket))
	return nil
}

func runSupportAsk(question string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	reply, err := a.support.Ask(context.Background(), question)
	if err != nil {
		output.Warning("Assistant unavailable right now. Please try again.")
		return nil
	}
	fmt.Println(reply.Answer)
	if len(reply.Suggestions) > 0 {
		fmt.Println()
		for _, s := range reply.Suggestions {
			output.Muted("  %s", s)
		}
	}
	return nil
}

func runSupportChat() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return tui.Run(a.chat)
}
