package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
	"mediassist/internal/validation"
)

func loginCmd(a *app) *cobra.Command {
	var creds clinic.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticate(cmd, creds, false)
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	return cmd
}

func signupCmd(a *app) *cobra.Command {
	var creds clinic.Credentials
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticate(cmd, creds, true)
		},
	}
	cmd.Flags().StringVar(&creds.Username, "username", "", "display name")
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	return cmd
}

func (a *app) authenticate(cmd *cobra.Command, creds clinic.Credentials, signup bool) error {
	if errs := validation.Credentials(creds, signup); !errs.Empty() {
		a.printErrors(errs)
		return errReported
	}

	login := a.client.Login
	if signup {
		login = a.client.Signup
	}
	user, err := login(cmd.Context(), creds)
	if err != nil {
		fmt.Fprintln(a.errOut, api.AuthFailureMessage(err))
		return errReported
	}
	if err := a.sessions.Save(a.client.Session()); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Username, user.Email)
	return nil
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.client.Logout()
			if err := a.sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.client.Session()
			if !s.Authenticated() {
				fmt.Fprintln(a.out, "Not logged in.")
				return nil
			}
			u := s.User()
			fmt.Fprintf(a.out, "%s (%s)\n", u.Username, u.Email)
			return nil
		},
	}
}
