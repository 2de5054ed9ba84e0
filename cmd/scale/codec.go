package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/scale-codec/buffer"
)

func newDecodeCmd(a *app) *cobra.Command {
	var partial bool
	cmd := &cobra.Command{
		Use:   "decode <type> <hex>",
		Short: "Decode hex input as a type expression",
		Example: `  scale decode u16 0x2efb
  scale decode "(u8, Vec<u8>)" 0x010c010203
  scale --metadata kusama.scale decode Call 0x0507...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			td, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			data, err := hexArg(args[1])
			if err != nil {
				return err
			}

			if partial {
				v, rest, err := a.codec.DecodePartial(td, data)
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), map[string]any{
					"value":     v,
					"remainder": rest,
				})
			}
			v, err := a.codec.Decode(td, data)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().BoolVarP(&partial, "partial", "p", false, "Allow trailing input and print it")
	return cmd
}

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <type> <value>",
		Short: "Encode a YAML value as a type expression",
		Example: `  scale encode "[u32; 3]" "[1, 2, 3]"
  scale encode "Option<Compact<u64>>" 5
  scale encode "BTreeMap<Text, bool>" "{a: true, b: false}"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			td, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			v, err := parseValue(args[1])
			if err != nil {
				return err
			}
			data, err := a.codec.Encode(td, v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), buffer.EncodeHex(data))
			return err
		},
	}
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types [prefix]",
		Short: "List registered type names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Metadata != "" {
				if _, err := a.metadata(""); err != nil {
					return err
				}
			}
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			out := cmd.OutOrStdout()
			for _, name := range a.reg.Names() {
				if !strings.HasPrefix(name, prefix) {
					continue
				}
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
