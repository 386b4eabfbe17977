package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/notes/internal/catalog"
)

func newProductCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := a.catalog().Product(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProduct(a.out, p)
			return nil
		},
	}
}

func printProduct(w io.Writer, p *catalog.Product) {
	fmt.Fprintln(w, titleStyle.Render(p.Title))
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
	fmt.Fprintln(w)

	rows := [][]string{
		{"Category", p.Category},
		{"Brand", p.Brand},
		{"Price", catalog.FormatRupiah(p.PriceRupiah())},
	}
	if p.DiscountPercentage > 0 {
		rows = append(rows, []string{"Discounted", fmt.Sprintf("%s (-%.2f%%)", catalog.FormatRupiah(p.DiscountedRupiah()), p.DiscountPercentage)})
	}
	rows = append(rows,
		[]string{"Rating", fmt.Sprintf("%.2f", p.Rating)},
		[]string{"Stock", stockLabel(p)},
	)
	if len(p.Tags) > 0 {
		rows = append(rows, []string{"Tags", strings.Join(p.Tags, ", ")})
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%-12s %s\n", row[0]+":", row[1])
	}
}

func stockLabel(p *catalog.Product) string {
	if !p.InStock() {
		return mutedStyle.Render("out of stock")
	}
	return fmt.Sprintf("%d", p.Stock)
}
