package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gojournal-cli",
		Short: "GoJournal CLI tool",
		Long:  `A command line interface for interacting with the GoJournal API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoJournal API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(postCmd())
	rootCmd.AddCommand(entriesCmd())
	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(idempotencyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func postCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post <type> <file.json>",
		Short: "Post a business event from a JSON file",
		Long: `Posts a business event to the journal. Type is one of:
sales-invoice, purchase-invoice, sales-return, purchase-return,
receipt, payment, stock-adjustment, stock-transfer, or "entry" for a
generic caller-assembled journal entry.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			path := "/api/v1/postings/" + args[0]
			if args[0] == "entry" {
				path = "/api/v1/journal-entries"
			}

			return doPost(path, body)
		},
	}

	return cmd
}

func entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Journal entry operations",
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a journal entry by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/api/v1/journal-entries/" + args[0])
		},
	}

	var companyID string
	var limit, offset int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries for a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("company_id", companyID)
			q.Set("limit", fmt.Sprint(limit))
			q.Set("offset", fmt.Sprint(offset))

			return doGet("/api/v1/journal-entries?" + q.Encode())
		},
	}
	listCmd.Flags().StringVar(&companyID, "company", "", "Company ID")
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	listCmd.MarkFlagRequired("company")

	var refType, refID string

	findCmd := &cobra.Command{
		Use:   "find",
		Short: "Find the entry posted for a business document",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("company_id", companyID)
			q.Set("reference_type", refType)
			q.Set("reference_id", refID)

			return doGet("/api/v1/journal-entries/by-reference?" + q.Encode())
		},
	}
	findCmd.Flags().StringVar(&companyID, "company", "", "Company ID")
	findCmd.Flags().StringVar(&refType, "type", "", "Reference type")
	findCmd.Flags().StringVar(&refID, "ref", "", "Reference ID")
	findCmd.MarkFlagRequired("company")
	findCmd.MarkFlagRequired("type")
	findCmd.MarkFlagRequired("ref")

	cmd.AddCommand(getCmd, listCmd, findCmd)

	return cmd
}

func chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart of accounts configuration",
	}

	getCmd := &cobra.Command{
		Use:   "get <companyID>",
		Short: "Show a company's resolved role-to-account mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doGet("/api/v1/admin/companies/" + args[0] + "/accounts")
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <companyID> <role> <accountID>",
		Short: "Override the account used for a role",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]string{"account_id": args[2]})
			if err != nil {
				return err
			}

			return doPut("/api/v1/admin/companies/"+args[0]+"/accounts/"+args[1], body)
		},
	}

	cmd.AddCommand(getCmd, setCmd)

	return cmd
}

func idempotencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idempotency",
		Short: "Idempotency maintenance",
	}

	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired idempotency records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPost("/api/v1/admin/idempotency/cleanup", nil)
		},
	}

	cmd.AddCommand(cleanupCmd)

	return cmd
}

func doGet(path string) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func doPost(path string, body []byte) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func doPut(path string, body []byte) error {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodPut, baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return nil
	}

	printJSON(pretty)

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}

	fmt.Println(string(out))
}
