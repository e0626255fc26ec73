package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	rbac "github.com/paulvitic/rbac-admin"
	"github.com/paulvitic/rbac-admin/inMemory"
	"github.com/spf13/cobra"
)

const columnGap = "  "

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

func newUsersCmd(opts *rootOptions) *cobra.Command {
	var (
		search string
		sortBy string
		desc   bool
	)

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Fetch the users once and print them as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := rbac.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			coordinator := rbac.NewCoordinator(inMemory.NewUserService(inMemory.WithServiceLogger(logger)), rbac.WithLogger(logger))
			res := coordinator.FetchUsers(cmd.Context())
			if !res.Ok() {
				return res.Err()
			}

			query := rbac.NewUserQuery()
			query.Search = search
			query.SortKey = key
			if desc {
				query.Direction = rbac.Descending
			}
			return printUsers(cmd.OutOrStdout(), rbac.Select(res.Value(), query), len(res.Value()))
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive filter over name, email and role")
	cmd.Flags().StringVar(&sortBy, "sort", string(rbac.SortByName), "sort column: name, email, role or status")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func printUsers(out io.Writer, res rbac.QueryResponse, total int) error {
	rows := make([][]string, 0, len(res.Items()))
	for _, u := range res.Items() {
		rows = append(rows, []string{u.ID.String(), u.Name, u.Email, string(u.Role), string(u.Status)})
	}
	header := []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS"}
	if _, err := io.WriteString(out, table(header, rows, headerStyle.Render)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, footerStyle.Render(fmt.Sprintf("%d of %d users", res.Count(), total)))
	return err
}

// table aligns cells by their display width. Header cells are padded before
// styleHeader runs, so escape sequences it adds never shift the columns.
func table(header []string, rows [][]string, styleHeader func(...string) string) string {
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	line := func(cells []string, style func(...string) string) {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			if i < len(cells)-1 {
				cell += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			}
			if style != nil {
				cell = style(cell)
			}
			padded[i] = cell
		}
		b.WriteString(strings.Join(padded, columnGap))
		b.WriteByte('\n')
	}
	line(header, styleHeader)
	for _, row := range rows {
		line(row, nil)
	}
	return b.String()
}
