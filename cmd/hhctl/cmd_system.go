package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := apiClient.Admin.DashboardStats(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flagFmt == "json" {
				return formatJSON(out, st)
			}
			formatTable(out, []string{"TOTAL", "AVAILABLE", "RENTED", "SOLD", "FEATURED"}, [][]string{{
				strconv.Itoa(st.TotalProperties), strconv.Itoa(st.AvailableProperties),
				strconv.Itoa(st.RentedProperties), strconv.Itoa(st.SoldProperties),
				strconv.Itoa(st.FeaturedProperties),
			}})
			fmt.Fprintln(out)
			rows := make([][]string, 0, len(st.PropertiesByType))
			for _, t := range st.PropertiesByType {
				rows = append(rows, []string{t.Type, strconv.Itoa(t.Count)})
			}
			formatTable(out, []string{"TYPE", "COUNT"}, rows)
			fmt.Fprintln(out)
			rows = rows[:0]
			for _, l := range st.PropertiesByLocation {
				rows = append(rows, []string{l.Location, strconv.Itoa(l.Count)})
			}
			formatTable(out, []string{"LOCATION", "COUNT"}, rows)
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the server and its database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := apiClient.Health(context.Background())
			if err != nil {
				return err
			}
			if flagFmt == "json" {
				return formatJSON(cmd.OutOrStdout(), h)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status=%s database=%s api_version=%s\n", h.Status, h.Database, h.APIVersion)
			if h.Status != "healthy" {
				return fmt.Errorf("server reports %s", h.Status)
			}
			return nil
		},
	}
}
