package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

// Usage example on the command line:
// > go run . list --match Muster
// > go run . add --given Hans --family Wurst --phone 0815
// > go run . bench --sizes 1000,5000
func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "contacts",
		Short:        "CLI client for the contacts bridge REST API",
		SilenceUsage: true,
	}
	var apiURL string
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api", "a", "http://localhost:8080", "contacts bridge base URL")

	var match string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := newAPI(apiURL).list(match)
			if err != nil {
				return err
			}
			return printJSON(out, contacts)
		},
	}
	listCmd.Flags().StringVarP(&match, "match", "m", "", "only contacts whose full name contains this text")
	rootCmd.AddCommand(listCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "get RECORD_ID",
		Short: "Get a contact by record id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, err := newAPI(apiURL).get(args[0])
			if err != nil {
				return err
			}
			return printJSON(out, contact)
		},
	})

	var given, family, phone, email string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if given == "" && family == "" {
				return fmt.Errorf("--given or --family required")
			}
			c := model.Contact{GivenName: given, FamilyName: family}
			if phone != "" {
				c.PhoneNumbers = []model.PhoneNumber{{Label: "mobile", Number: phone}}
			}
			if email != "" {
				c.EmailAddresses = []model.EmailAddress{{Label: "home", Email: email}}
			}
			created, err := newAPI(apiURL).add(c)
			if err != nil {
				return err
			}
			return printJSON(out, created)
		},
	}
	addCmd.Flags().StringVarP(&given, "given", "g", "", "given name")
	addCmd.Flags().StringVarP(&family, "family", "f", "", "family name")
	addCmd.Flags().StringVarP(&phone, "phone", "p", "", "mobile phone number")
	addCmd.Flags().StringVarP(&email, "email", "e", "", "home email address")
	rootCmd.AddCommand(addCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "delete RECORD_ID",
		Short: "Delete a contact by record id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPI(apiURL).delete(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, "deleted", args[0])
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the number of contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := newAPI(apiURL).count()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, n)
			return nil
		},
	})

	var request bool
	permissionCmd := &cobra.Command{
		Use:   "permission",
		Short: "Check or request the contacts permission",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := newAPI(apiURL).permission(request)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, status)
			return nil
		},
	}
	permissionCmd.Flags().BoolVarP(&request, "request", "r", false, "request the permission instead of checking it")
	rootCmd.AddCommand(permissionCmd)

	rootCmd.AddCommand(newBenchCmd(out, &apiURL))
	return rootCmd
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
