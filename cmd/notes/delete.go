package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Long:  `Delete asks for confirmation before removing the note unless --yes is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.controller()
			if err != nil {
				return err
			}

			c.RequestDelete(id)
			if !yes && !a.confirm(fmt.Sprintf("Delete note %d?", id)) {
				c.CancelDelete()
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if err := c.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Note deleted: %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

// confirm asks a y/N question on the app's input. Anything but y or yes is no.
func (a *app) confirm(question string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", question)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
