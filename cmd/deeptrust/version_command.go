package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/execute-aditya/Deep-Trust/internal/daemon"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the DeepTrust version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "deeptrust "+daemon.Version)
		},
	}
}
