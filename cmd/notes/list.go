package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.controller()
			if err != nil {
				return err
			}
			if err := c.Mount(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", c.View().Message, err)
			}
			printNotesTable(a.out, c.Notes())
			return nil
		},
	}
}
