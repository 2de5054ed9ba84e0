package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/extrinsic"
)

func newExtrinsicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extrinsic",
		Short: "Encode and decode extrinsics of the configured runtime",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "decode <hex>",
			Short: "Decode a length-prefixed extrinsic",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				xc, err := a.extrinsicCodec()
				if err != nil {
					return err
				}
				data, err := hexArg(args[0])
				if err != nil {
					return err
				}
				x, err := xc.Decode(data)
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), x)
			},
		},
		&cobra.Command{
			Use:   "encode <value>",
			Short: "Encode an extrinsic from YAML",
			Long: "Encode an extrinsic from a YAML map with call_module, call_function and " +
				"call_args, plus address, signature, era, nonce and tip when signed",
			Example: `  scale -m kusama.scale extrinsic encode \
    "{call_module: Balances, call_function: transfer_keep_alive, call_args: {dest: {Id: 0x586c...}, value: 1000}}"`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				xc, err := a.extrinsicCodec()
				if err != nil {
					return err
				}
				v, err := parseValue(args[0])
				if err != nil {
					return err
				}
				data, err := a.codec.Encode(xc.TypeDef(), v)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), buffer.EncodeHex(data))
				return err
			},
		},
	)
	return cmd
}

func (a *app) extrinsicCodec() (*extrinsic.Codec, error) {
	m, err := a.metadata("")
	if err != nil {
		return nil, err
	}
	return extrinsic.New(m, a.codec), nil
}
