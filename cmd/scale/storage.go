package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/storage"
)

func newStorageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Build storage keys and hash values",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "key <pallet> <entry> [key...]",
			Short: "Build the storage key of an entry",
			Long: "Build the storage key of an entry from YAML key values. Fewer keys than " +
				"the entry takes yield an iteration prefix",
			Args: cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.metadata("")
				if err != nil {
					return err
				}
				entry, err := m.StorageEntry(args[0], args[1])
				if err != nil {
					return err
				}
				keys := make([]any, len(args)-2)
				for i, s := range args[2:] {
					if keys[i], err = parseValue(s); err != nil {
						return err
					}
				}
				key, err := entry.Key(a.codec, keys...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), buffer.EncodeHex(key))
				return err
			},
		},
		&cobra.Command{
			Use:   "default <pallet> <entry>",
			Short: "Decode the default value of an entry",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.metadata("")
				if err != nil {
					return err
				}
				entry, err := m.StorageEntry(args[0], args[1])
				if err != nil {
					return err
				}
				if entry.Value == nil {
					return fmt.Errorf("value type %s of %s.%s is unknown", entry.ValueName, args[0], args[1])
				}
				v, err := a.codec.Decode(entry.Value, entry.Default)
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), v)
			},
		},
		&cobra.Command{
			Use:   "hash <hasher> <hex>",
			Short: "Hash raw bytes with a storage hasher",
			Example: `  scale storage hash Twox64Concat 0x01000000
  scale storage hash Blake2_128 0x`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := storage.ParseHasher(args[0])
				if err != nil {
					return err
				}
				data, err := hexArg(args[1])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), buffer.EncodeHex(h.Hash(data)))
				return err
			},
		},
	)
	return cmd
}
