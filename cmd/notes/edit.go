package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/notes/internal/domain"
)

func newEditCmd(a *app) *cobra.Command {
	var title, content string
	var status domain.Status

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing note",
		Long: `Edit loads the note with the given id and saves it with any of --title,
--content and --status replaced. Fields not given keep their current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.controller()
			if err != nil {
				return err
			}
			if err := c.Mount(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", c.View().Message, err)
			}

			note, ok := findNote(c.Notes(), id)
			if !ok {
				return fmt.Errorf("no note with id %d", id)
			}
			c.Edit(note)

			flags := cmd.Flags()
			if flags.Changed("title") {
				_ = c.SetField("title", title)
			}
			if flags.Changed("content") {
				_ = c.SetField("content", content)
			}
			if flags.Changed("status") {
				_ = c.SetField("status", string(status))
			}

			if err := c.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, c.View().Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().Var((*statusFlag)(&status), "status", "pending or done")
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", raw)
	}
	return id, nil
}

func findNote(notes []domain.Note, id int64) (domain.Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Note{}, false
}
