package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/Lixing-Zhang/storefront/internal/catalog"
	"github.com/Lixing-Zhang/storefront/internal/repository"
	"github.com/Lixing-Zhang/storefront/internal/service"
	"github.com/Lixing-Zhang/storefront/internal/store"
	"github.com/Lixing-Zhang/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	url      string
	timeout  time.Duration
	offline  bool
	logLevel string
}

// deps builds a fresh store and product service for one command run
func (o *rootOptions) deps(stderr io.Writer) *service.ProductService {
	var f catalog.Fetcher = catalog.NewHTTPFetcher(o.url, o.timeout)
	if o.offline {
		f = catalog.NewStaticFetcher()
	}

	s := store.New(f, logger.NewWithWriter(stderr, o.logLevel))
	return service.NewProductService(repository.NewCatalogRepository(s), s, 0)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Browse the storefront product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.url, "url", catalog.DefaultURL, "product catalog endpoint")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "catalog request timeout")
	root.PersistentFlags().BoolVar(&opts.offline, "offline", false, "use the built-in sample catalog instead of the network")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newProductsCmd(opts),
		newCategoriesCmd(opts),
		newProductCmd(opts),
	)

	return root
}

func newProductsCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		sort     string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := service.ParseSortKey(sort)
			if err != nil {
				return err
			}
			if page < 1 {
				return fmt.Errorf("invalid page %d: pages start at 1", page)
			}
			if pageSize < 1 || pageSize > service.MaxPageSize {
				return fmt.Errorf("invalid page size %d: must be between 1 and %d", pageSize, service.MaxPageSize)
			}

			svc := opts.deps(cmd.ErrOrStderr())
			result, err := svc.ListProducts(cmd.Context(), service.ListQuery{
				Category: category,
				Sort:     key,
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tRATING")
			for _, p := range result.Products {
				fmt.Fprintf(tw, "%d\t%s\t%s\t$%s\t%.1f (%d)\n",
					p.ID, p.Title, p.Category, p.Price.StringFixed(2), p.Rating.Rate, p.Rating.Count)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "page %d of %d (%d products)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list this category")
	cmd.Flags().StringVar(&sort, "sort", "name", "sort by name, price or rating")
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", service.DefaultPageSize, "products per page")

	return cmd
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := opts.deps(cmd.ErrOrStderr()).Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newProductCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			p, err := opts.deps(cmd.ErrOrStderr()).GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", p.Title)
			fmt.Fprintf(out, "  id:       %d\n", p.ID)
			fmt.Fprintf(out, "  category: %s\n", p.Category)
			fmt.Fprintf(out, "  price:    $%s\n", p.Price.StringFixed(2))
			fmt.Fprintf(out, "  rating:   %.1f (%d reviews)\n", p.Rating.Rate, p.Rating.Count)
			fmt.Fprintf(out, "  image:    %s\n", p.Image)
			if p.Description != "" {
				fmt.Fprintf(out, "\n%s\n", p.Description)
			}
			return nil
		},
	}
}

