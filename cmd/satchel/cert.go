// Certificate commands: issue, complete, verify, and list certificates.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satchel-io/satchel/pkg/types"
)

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Manage completion certificates",
}

var certIssueCmd = &cobra.Command{
	Use:   "issue <user-id> <type>",
	Short: "Issue a certificate and print its verification code",
	Args:  cobra.ExactArgs(2),
	RunE:  runCertIssue,
}

var certCompleteCmd = &cobra.Command{
	Use:   "complete <code>",
	Short: "Mark a certificate as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runCertComplete,
}

var certVerifyCmd = &cobra.Command{
	Use:   "verify <code>",
	Short: "Verify a certificate code",
	Args:  cobra.ExactArgs(1),
	RunE:  runCertVerify,
}

var certListCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "List a user's certificates, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCertList,
}

func init() {
	certCmd.AddCommand(certIssueCmd)
	certCmd.AddCommand(certCompleteCmd)
	certCmd.AddCommand(certVerifyCmd)
	certCmd.AddCommand(certListCmd)
}

func runCertIssue(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	code, err := store.CreateCertificate(id, args[1])
	if err != nil {
		return fmt.Errorf("issue certificate: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, map[string]string{"certificate_code": code})
	}
	fmt.Fprintln(cmd.OutOrStdout(), code)
	return nil
}

func runCertComplete(cmd *cobra.Command, args []string) error {
	code := args[0]

	if err := store.CompleteCertificate(code); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("no certificate with code %s", code)
		}
		return fmt.Errorf("complete certificate: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Certificate %s completed\n", code)
	return nil
}

func runCertVerify(cmd *cobra.Command, args []string) error {
	verification, err := store.VerifyCertificate(args[0])
	if err != nil {
		return fmt.Errorf("verify certificate: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, verification)
	}
	out := cmd.OutOrStdout()
	if !verification.IsValid {
		fmt.Fprintln(out, "INVALID")
		return nil
	}
	fmt.Fprintf(out, "Valid %s certificate for %s, issued %s\n",
		verification.Type, verification.Username,
		verification.IssueDate.Format("2006-01-02"))
	if verification.IsCompleted {
		fmt.Fprintf(out, "Completed %s\n", verification.CompletedDate.Format("2006-01-02"))
	} else {
		fmt.Fprintln(out, "Not yet completed")
	}
	return nil
}

func runCertList(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	certificates, err := store.UserCertificates(id)
	if err != nil {
		return fmt.Errorf("list certificates: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, certificates)
	}
	for _, c := range certificates {
		status := "issued"
		if c.IsCompleted {
			status = "completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
			c.Code, c.Type, status, c.IssueDate.Format("2006-01-02"))
	}
	return nil
}
