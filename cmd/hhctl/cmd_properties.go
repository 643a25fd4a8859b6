package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"househunters/client"
	"househunters/listing"
)

func newPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"props"},
		Short:   "Browse and manage listings",
	}
	cmd.AddCommand(propertiesListCmd(), propertiesGetCmd(), propertiesDeleteCmd(), propertiesBrochureCmd())
	return cmd
}

// listFlags are the filter flags of "properties list".
type listFlags struct {
	locations    []string
	types        []string
	listingType  string
	bucket       string
	minPrice     string
	maxPrice     string
	bedrooms     string
	bathrooms    int
	availability string
	featured     string
	search       string
	sort         string
	page         int
	pageSize     int
}

// criteria converts the flags. Unlike query strings, bad flag values are
// reported instead of dropped.
func (f listFlags) criteria() (listing.Criteria, error) {
	c := listing.Criteria{
		Locations:    f.locations,
		ListingType:  listing.ListingType(strings.ToLower(f.listingType)),
		Bucket:       strings.ToLower(f.bucket),
		MinBathrooms: f.bathrooms,
		Availability: listing.Availability(strings.ToLower(f.availability)),
		Search:       strings.TrimSpace(f.search),
		Sort:         listing.SortKey(f.sort),
		Page:         f.page,
		PageSize:     f.pageSize,
	}
	for _, t := range f.types {
		pt := listing.PropertyType(strings.ToLower(strings.TrimSpace(t)))
		if !pt.Valid() {
			return c, fmt.Errorf("unknown property type %q", t)
		}
		c.Types = append(c.Types, pt)
	}
	if c.ListingType != "" && !c.ListingType.Valid() {
		return c, fmt.Errorf("--listing must be rent or buy")
	}
	if c.Availability != "" && !c.Availability.Valid() {
		return c, fmt.Errorf("unknown availability %q", f.availability)
	}
	if c.Sort != "" && !c.Sort.Valid() {
		return c, fmt.Errorf("unknown sort %q", f.sort)
	}
	if f.minPrice != "" {
		m, err := listing.ParseMoney(f.minPrice)
		if err != nil {
			return c, fmt.Errorf("--min-price: %w", err)
		}
		c.Price.Min = m
	}
	if f.maxPrice != "" {
		m, err := listing.ParseMoney(f.maxPrice)
		if err != nil {
			return c, fmt.Errorf("--max-price: %w", err)
		}
		c.Price.Max = m
	}
	if f.bedrooms != "" {
		b, ok := listing.ParseBedrooms(f.bedrooms)
		if !ok {
			return c, fmt.Errorf("--bedrooms: want a count like 2, 4+ or =5")
		}
		c.Bedrooms = &b
	}
	if f.featured != "" {
		v, err := strconv.ParseBool(f.featured)
		if err != nil {
			return c, fmt.Errorf("--featured: %w", err)
		}
		c.Featured = &v
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func propertiesListCmd() *cobra.Command {
	var f listFlags
	var local bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.criteria()
			if err != nil {
				return err
			}
			ctx := context.Background()
			var page listing.Page[listing.Property]
			if local {
				// Fetch everything once and filter in process, as the web browser view does.
				all, err := apiClient.Properties.ListAll(ctx, listing.Criteria{})
				if err != nil {
					return err
				}
				page = listing.Paginate(listing.Filter(all, c), c.Page, c.PageSize)
			} else {
				resp, err := apiClient.Properties.List(ctx, c)
				if err != nil {
					return err
				}
				page = listing.Page[listing.Property]{
					Items: resp.Properties, Total: resp.Total, Page: resp.Page,
					PageSize: resp.PageSize, TotalPages: resp.TotalPages,
				}
			}
			out := cmd.OutOrStdout()
			if err := printProperties(out, page.Items); err != nil {
				return err
			}
			if flagFmt != "json" {
				fmt.Fprintf(out, "\npage %d of %d, %d total\n", page.Page, page.TotalPages, page.Total)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringArrayVar(&f.locations, "location", nil, "Location substring (repeatable, any match)")
	fl.StringSliceVar(&f.types, "type", nil, "Property types, comma separated")
	fl.StringVar(&f.listingType, "listing", "", "rent|buy")
	fl.StringVar(&f.bucket, "bucket", "", "Named price bucket, e.g. under-50000")
	fl.StringVar(&f.minPrice, "min-price", "", "Minimum price (inclusive)")
	fl.StringVar(&f.maxPrice, "max-price", "", "Maximum price (exclusive)")
	fl.StringVar(&f.bedrooms, "bedrooms", "", "Bedrooms: 2, 4+ (4 or more is a floor), =5 for exactly 5")
	fl.IntVar(&f.bathrooms, "bathrooms", 0, "Minimum bathrooms")
	fl.StringVar(&f.availability, "availability", "", "available|rented|sold|pending")
	fl.StringVar(&f.featured, "featured", "", "true|false")
	fl.StringVar(&f.search, "search", "", "Free text over title, location and description")
	fl.StringVar(&f.sort, "sort", "", "newest|oldest|price_asc|price_desc|bedrooms_desc")
	fl.IntVar(&f.page, "page", 1, "Page number")
	fl.IntVar(&f.pageSize, "page-size", listing.DefaultPageSize, "Page size")
	fl.BoolVar(&local, "local", false, "Fetch all listings and filter locally")
	return cmd
}

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func propertiesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			p, err := apiClient.Properties.Get(context.Background(), id)
			if err != nil {
				return err
			}
			if flagFmt == "json" {
				return formatJSON(cmd.OutOrStdout(), p)
			}
			return printProperties(cmd.OutOrStdout(), []listing.Property{*p})
		},
	}
}

func propertiesDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a listing and its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			d := client.NewDeleteConfirmation(apiClient, nil)
			d.Request(id)
			if !yes {
				d.Cancel()
				fmt.Fprintf(cmd.OutOrStdout(), "not deleted: re-run with --yes to delete listing %d\n", id)
				return nil
			}
			if err := d.Confirm(context.Background()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted listing %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}

func propertiesBrochureCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "brochure <id>",
		Short: "Download the PDF brochure of a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			data, name, err := apiClient.Properties.Brochure(context.Background(), id)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = name
			}
			if outPath == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if _, err := os.Stat(outPath); err == nil {
				return errors.New(outPath + " already exists")
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", outPath, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file, - for stdout (default: server file name)")
	return cmd
}
