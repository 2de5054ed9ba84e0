package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/ss58"
)

func newSS58Cmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ss58",
		Short: "Convert between public keys and SS58 addresses",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "encode <hex>",
			Short: "Render a public key or account index as an address",
			Long: "Render a public key or account index as an address of the configured " +
				"network format, Substrate (42) when none is set",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pub, err := hexArg(args[0])
				if err != nil {
					return err
				}
				format := ss58.Substrate
				if a.cfg.SS58Format != nil {
					format = *a.cfg.SS58Format
				}
				addr, err := ss58.Encode(pub, format)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), addr)
				return err
			},
		},
		&cobra.Command{
			Use:   "decode <address>",
			Short: "Extract the public key and network format of an address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pub, format, err := ss58.Decode(args[0])
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), map[string]any{
					"public_key": buffer.EncodeHex(pub),
					"format":     format,
				})
			},
		},
	)
	return cmd
}
