package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/ss58"
	"github.com/wippyai/scale-codec/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	log     *zap.Logger
	reg     *registry.Registry
	codec   *codec.Codec
	meta    *metadata.Metadata
	cfgFile string
	flags   flagValues
	cfg     Config
}

type flagValues struct {
	logLevel    string
	metadata    string
	presets     []string
	specVersion uint32
	ss58Format  uint16
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "scale",
		Short: "Encode and decode SCALE values",
		Long: "Encode and decode SCALE values against registry type expressions and " +
			"runtime metadata, build storage keys and inspect extrinsics",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "Path to a YAML config file")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.Uint16Var(&a.flags.ss58Format, "ss58-format", 0, "Render account ids as SS58 addresses of this network")
	pf.Uint32Var(&a.flags.specVersion, "spec-version", 0, "Runtime spec version selecting type overrides")
	pf.StringSliceVar(&a.flags.presets, "preset", nil, "Type presets to load, by embedded name or file path")
	pf.StringVarP(&a.flags.metadata, "metadata", "m", "", "Metadata blob file, binary or 0x hex")

	root.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newTypesCmd(a),
		newMetadataCmd(a),
		newExtrinsicCmd(a),
		newStorageCmd(a),
		newSS58Cmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := readConfig(a.cfgFile)
	if err != nil {
		return err
	}
	a.applyFlags(cmd, &cfg)
	a.cfg = cfg

	if a.log, err = newLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	registry.SetLogger(a.log.Named("registry"))
	metadata.SetLogger(a.log.Named("metadata"))

	a.reg = registry.New()
	for _, p := range cfg.Presets {
		if err := loadPreset(a.reg, p); err != nil {
			return fmt.Errorf("load preset %s: %w", p, err)
		}
	}

	var opts []codec.Option
	if cfg.SS58Format != nil {
		opts = append(opts, codec.WithAddressFormatter(ss58.NewFormatter(*cfg.SS58Format)))
	}
	a.codec = codec.New(opts...)

	a.log.Debug("configured",
		zap.Strings("presets", cfg.Presets),
		zap.Any("spec_version", cfg.SpecVersion),
		zap.Any("ss58_format", cfg.SS58Format))
	return nil
}

// applyFlags lets explicitly set flags win over file and environment.
func (a *app) applyFlags(cmd *cobra.Command, cfg *Config) {
	fl := cmd.Flags()
	if fl.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if fl.Changed("ss58-format") {
		f := a.flags.ss58Format
		cfg.SS58Format = &f
	}
	if fl.Changed("spec-version") {
		v := a.flags.specVersion
		cfg.SpecVersion = &v
	}
	if fl.Changed("preset") {
		cfg.Presets = a.flags.presets
	}
	if fl.Changed("metadata") {
		cfg.Metadata = a.flags.metadata
	}
}

func loadPreset(reg *registry.Registry, name string) error {
	if slices.Contains(registry.PresetNames(), name) {
		return reg.LoadNamedPreset(name)
	}
	return reg.LoadPresetFile(name)
}

func (a *app) resolver() *registry.Resolver {
	if a.cfg.SpecVersion != nil {
		return a.reg.Resolver(*a.cfg.SpecVersion)
	}
	return a.reg.Unversioned()
}

// resolve resolves a type expression, registering the metadata types first
// when metadata is configured.
func (a *app) resolve(expr string) (*types.TypeDef, error) {
	if a.cfg.Metadata != "" {
		if _, err := a.metadata(""); err != nil {
			return nil, err
		}
	}
	return a.resolver().Resolve(expr)
}
