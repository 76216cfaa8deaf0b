package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"storefront/cmd/storefront/output"
	"storefront/internal/auth"
	"storefront/internal/httpx"
)

var (
	// Auth flags
	regName     string
	regEmail    string
	regPassword string
	regConfirm  string
	regAddress1 string
	regAddress2 string
	regCity     string
	regState    string
	regZip      string
	regCountry  string

	resetToken string
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Account registration and password recovery",
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthRegister()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthLogin()
	},
}

var authForgotCmd = &cobra.Command{
	Use:   "forgot",
	Short: "Request a password reset link",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthForgot()
	},
}

var authResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Set a new password with a reset token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthReset()
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authRegisterCmd, authLoginCmd, authForgotCmd, authResetCmd)

	authRegisterCmd.Flags().StringVar(&regName, "name", "", "Full name (required)")
	authRegisterCmd.Flags().StringVar(&regEmail, "email", "", "Email (required)")
	authRegisterCmd.Flags().StringVar(&regPassword, "password", "", "Password, 8+ characters (required)")
	authRegisterCmd.Flags().StringVar(&regConfirm, "confirm", "", "Repeat the password (required)")
	authRegisterCmd.Flags().StringVar(&regAddress1, "address1", "", "Address line 1 (required)")
	authRegisterCmd.Flags().StringVar(&regAddress2, "address2", "", "Address line 2")
	authRegisterCmd.Flags().StringVar(&regCity, "city", "", "City (required)")
	authRegisterCmd.Flags().StringVar(&regState, "state", "", "State / province")
	authRegisterCmd.Flags().StringVar(&regZip, "zip", "", "Postal code")
	authRegisterCmd.Flags().StringVar(&regCountry, "country", "", "Country code (default US)")

	authLoginCmd.Flags().StringVar(&regEmail, "email", "", "Email (required)")
	authLoginCmd.Flags().StringVar(&regPassword, "password", "", "Password (required)")

	authForgotCmd.Flags().StringVar(&regEmail, "email", "", "Email (required)")

	authResetCmd.Flags().StringVar(&resetToken, "token", "", "Reset token from the email link (required)")
	authResetCmd.Flags().StringVar(&regPassword, "password", "", "New password (required)")
	authResetCmd.Flags().StringVar(&regConfirm, "confirm", "", "Repeat the new password (required)")
}

func runAuthRegister() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	msg, err := a.account.Register(context.Background(), auth.RegisterForm{
		Name:         regName,
		Email:        regEmail,
		Password:     regPassword,
		RePassword:   regConfirm,
		AddressLine1: regAddress1,
		AddressLine2: regAddress2,
		City:         regCity,
		State:        regState,
		ZipCode:      regZip,
		CountryCode:  regCountry,
	})
	if err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			output.Warning("Passwords do not match.")
			return nil
		}
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("%s", msg)
	return nil
}

func runAuthLogin() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	msg, err := a.account.Login(context.Background(), regEmail, regPassword)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("%s", msg)
	return nil
}

func runAuthForgot() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	msg, resetLink, err := a.account.ForgotPassword(context.Background(), regEmail)
	if err != nil {
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("%s", msg)
	if resetLink != "" {
		output.Muted("Reset link: %s", resetLink)
	}
	return nil
}

func runAuthReset() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	msg, err := a.account.ResetPassword(context.Background(), resetToken, regPassword, regConfirm)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingToken):
			output.Warning("The reset link is missing its token. Request a new one.")
			return nil
		case errors.Is(err, auth.ErrPasswordTooShort):
			output.Warning("Password must be at least 8 characters.")
			return nil
		case errors.Is(err, auth.ErrPasswordMismatch):
			output.Warning("Passwords do not match.")
			return nil
		}
		output.Error("%s", httpx.Message(err))
		return err
	}
	output.Success("%s", msg)
	return nil
}
