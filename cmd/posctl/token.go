package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spec-kit/pos-backoffice/internal/auth"
	"github.com/spec-kit/pos-backoffice/internal/domain"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect session tokens",
	}
	cmd.AddCommand(tokenIssueCmd())
	cmd.AddCommand(tokenVerifyCmd())
	return cmd
}

func tokenIssueCmd() *cobra.Command {
	var userID int64
	var email, roles string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a session token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user-id is required")
			}
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			roleList, err := parseRoles(roles)
			if err != nil {
				return err
			}

			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Auth.SessionTTL()
			}

			token, expiresAt, err := auth.NewIssuer(cfg.Auth.SessionSecret, ttl).Issue(auth.Subject{
				UserID: userID,
				Email:  email,
				Roles:  roleList,
			})
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			switch outputFormat {
			case "json":
				return writeJSON(cmd.OutOrStdout(), map[string]any{"token": token, "expiresAt": expiresAt.UTC()})
			case "table":
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			default:
				return fmt.Errorf("unsupported output format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "User id")
	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&roles, "roles", "", "Comma-separated roles (OWNER, MANAGER, CASHIER, INVENTORY, ACCOUNTANT)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default AUTH_SESSION_TTL_HOURS)")
	return cmd
}

func tokenVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify a session token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}

			claims, err := auth.NewVerifier(cfg.Auth.SessionSecret).Verify(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("token rejected (%s): %w", auth.FailureReason(err), err)
			}

			switch outputFormat {
			case "json":
				return writeJSON(cmd.OutOrStdout(), claims)
			case "table":
				outputClaimsTable(cmd.OutOrStdout(), claims)
				return nil
			default:
				return fmt.Errorf("unsupported output format: %s", outputFormat)
			}
		},
	}
}

func parseRoles(raw string) ([]string, error) {
	roles := []string{}
	for _, part := range strings.Split(raw, ",") {
		role := strings.ToUpper(strings.TrimSpace(part))
		if role == "" {
			continue
		}
		if !domain.IsKnownRole(role) {
			return nil, fmt.Errorf("unknown role: %s", role)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func outputClaimsTable(w io.Writer, claims *auth.SessionClaims) {
	table := tablewriter.NewWriter(w)
	table.Append([]string{"Field", "Value"})
	table.Append([]string{"User ID", strconv.FormatInt(claims.UserID, 10)})
	table.Append([]string{"Email", claims.Email})
	table.Append([]string{"Roles", strings.Join(claims.Roles, ", ")})
	if claims.IssuedAt != 0 {
		table.Append([]string{"Issued", formatTime(time.Unix(claims.IssuedAt, 0))})
	}
	expires := "Never"
	if exp, ok := claims.Expiry(); ok {
		expires = formatTime(exp)
	}
	table.Append([]string{"Expires", expires})
	table.Render()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
