package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/notes/internal/domain"
)

func newAddCmd(a *app) *cobra.Command {
	var draft domain.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Long:  `Add creates a note. A note without --status is saved as pending.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.controller()
			if err != nil {
				return err
			}
			c.SetDraft(draft)
			if err := c.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, c.View().Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "Note title")
	cmd.Flags().StringVar(&draft.Content, "content", "", "Note content")
	cmd.Flags().Var((*statusFlag)(&draft.Status), "status", "pending or done")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

// statusFlag lets a domain.Status be set from the command line.
type statusFlag domain.Status

func (f *statusFlag) String() string { return string(*f) }

func (f *statusFlag) Set(v string) error {
	s := domain.Status(v)
	if !s.Valid() {
		return domain.ErrInvalidStatus
	}
	*f = statusFlag(s)
	return nil
}

func (f *statusFlag) Type() string { return "status" }
