package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sourcery.dny.nu/pragmatic"
)

func compactCmd(opts *options) *cobra.Command {
	var (
		indent       bool
		only, except []string
	)

	cmd := &cobra.Command{
		Use:   "compact [INPUT]",
		Short: "Print the compacted JSON-LD document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			res, err := s.resource(cmd, opts, args)
			if err != nil {
				return err
			}

			doc, err := s.compactor.Document(res, pragmatic.ProjectionOptions{
				Only:   only,
				Except: except,
			})
			s.report()
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), doc, indent)
		},
	}

	cmd.Flags().BoolVar(&indent, "indent", false, "Indent the output")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Only project these fields")
	cmd.Flags().StringSliceVar(&except, "except", nil, "Leave these fields out of the projection")

	return cmd
}

func contextCmd(opts *options) *cobra.Command {
	var indent bool

	cmd := &cobra.Command{
		Use:   "context [INPUT]",
		Short: "Print the @context of the document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			res, err := s.resource(cmd, opts, args)
			if err != nil {
				return err
			}

			ctx, err := s.compactor.Context(res)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), map[string]any{
				pragmatic.KeywordContext: ctx,
			}, indent)
		},
	}

	cmd.Flags().BoolVar(&indent, "indent", false, "Indent the output")

	return cmd
}

func uncontextualizedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "uncontextualized [INPUT]",
		Short: "List the fields without a term definition",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			res, err := s.resource(cmd, opts, args)
			if err != nil {
				return err
			}

			terms, err := s.compactor.UncontextualizedTerms(res)
			if err != nil {
				return err
			}

			for _, t := range terms {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
