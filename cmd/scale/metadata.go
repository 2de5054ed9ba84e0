package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/types"
)

// metadata loads the metadata blob once per invocation and registers its
// types so type expressions can name them. An empty path falls back to the
// configured metadata file.
func (a *app) metadata(path string) (*metadata.Metadata, error) {
	if a.meta != nil {
		return a.meta, nil
	}
	if path == "" {
		path = a.cfg.Metadata
	}
	if path == "" {
		return nil, fmt.Errorf("no metadata: pass --metadata or set SCALE_METADATA")
	}

	data, err := readBlob(path)
	if err != nil {
		return nil, err
	}
	m, err := metadata.Decode(data, a.resolver())
	if err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", path, err)
	}
	if err := m.RegisterTypes(a.reg); err != nil {
		return nil, fmt.Errorf("register metadata types: %w", err)
	}
	a.log.Info("loaded metadata",
		zap.String("file", path),
		zap.Uint8("version", m.Version),
		zap.Int("pallets", len(m.Pallets)))
	a.meta = m
	return m, nil
}

// readBlob reads a binary blob or a file holding its 0x hex form.
func readBlob(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if text := bytes.TrimSpace(data); bytes.HasPrefix(text, []byte("0x")) {
		return buffer.DecodeHex(string(text))
	}
	return data, nil
}

func newMetadataCmd(a *app) *cobra.Command {
	var (
		interactive bool
		pallet      string
	)
	cmd := &cobra.Command{
		Use:   "metadata [file]",
		Short: "Summarise runtime metadata",
		Long: "Summarise runtime metadata, show the calls, storage and constants of one " +
			"pallet, or browse it interactively",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Metadata
			if len(args) == 1 {
				path = args[0]
			}
			m, err := a.metadata(path)
			if err != nil {
				return err
			}

			if interactive {
				if !term.IsTerminal(int(os.Stdout.Fd())) {
					return fmt.Errorf("interactive mode needs a terminal")
				}
				return runBrowser(m, a.codec, path)
			}
			if pallet != "" {
				p, err := m.Pallet(pallet)
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), describePallet(m, p))
			}
			return printValue(cmd.OutOrStdout(), summarize(m))
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the metadata in a terminal UI")
	cmd.Flags().StringVarP(&pallet, "pallet", "p", "", "Show the items of one pallet")
	return cmd
}

type metadataSummary struct {
	Version          uint8           `yaml:"version"`
	ExtrinsicVersion uint8           `yaml:"extrinsic_version"`
	Types            int             `yaml:"types"`
	SignedExtensions []string        `yaml:"signed_extensions,omitempty"`
	Pallets          []palletSummary `yaml:"pallets"`
}

type palletSummary struct {
	Name      string `yaml:"name"`
	Index     uint8  `yaml:"index"`
	Calls     int    `yaml:"calls"`
	Events    int    `yaml:"events"`
	Errors    int    `yaml:"errors"`
	Storage   int    `yaml:"storage"`
	Constants int    `yaml:"constants"`
}

func summarize(m *metadata.Metadata) metadataSummary {
	s := metadataSummary{
		Version:          m.Version,
		ExtrinsicVersion: m.ExtrinsicVersion(),
		Types:            len(m.Types),
	}
	for _, ext := range m.Extrinsic.SignedExtensions {
		s.SignedExtensions = append(s.SignedExtensions, ext.Identifier)
	}
	for _, p := range m.Pallets {
		s.Pallets = append(s.Pallets, palletSummary{
			Name:      p.Name,
			Index:     p.Index,
			Calls:     len(p.Calls),
			Events:    len(p.Events),
			Errors:    len(p.Errors),
			Storage:   len(p.Storage),
			Constants: len(p.Constants),
		})
	}
	return s
}

type palletDetail struct {
	Name      string         `yaml:"name"`
	Index     uint8          `yaml:"index"`
	Calls     []string       `yaml:"calls,omitempty"`
	Events    []string       `yaml:"events,omitempty"`
	Errors    []string       `yaml:"errors,omitempty"`
	Storage   []string       `yaml:"storage,omitempty"`
	Constants map[string]any `yaml:"constants,omitempty"`
}

func describePallet(m *metadata.Metadata, p *metadata.Pallet) palletDetail {
	d := palletDetail{Name: p.Name, Index: p.Index}
	for _, f := range p.Calls {
		d.Calls = append(d.Calls, formatFunction(f.Index, f.Name, f.Args))
	}
	for _, e := range p.Events {
		d.Events = append(d.Events, formatFunction(e.Index, e.Name, e.Args))
	}
	for _, e := range p.Errors {
		d.Errors = append(d.Errors, fmt.Sprintf("%d %s", e.Index, e.Name))
	}
	for _, s := range p.Storage {
		d.Storage = append(d.Storage, formatStorage(s))
	}
	if len(p.Constants) > 0 {
		d.Constants = make(map[string]any, len(p.Constants))
		for _, c := range p.Constants {
			v, err := m.Constant(p.Name, c.Name)
			if err != nil {
				d.Constants[c.Name] = buffer.EncodeHex(c.Value)
				continue
			}
			d.Constants[c.Name] = plain(v)
		}
	}
	return d
}

func formatFunction(index uint8, name string, args []metadata.Arg) string {
	params := make([]string, len(args))
	for i, arg := range args {
		params[i] = typeLabel(arg.Type, arg.TypeName)
		if arg.Name != "" {
			params[i] = arg.Name + ": " + params[i]
		}
	}
	return fmt.Sprintf("%d %s(%s)", index, name, strings.Join(params, ", "))
}

func formatStorage(s *metadata.StorageEntry) string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(": ")
	for i, h := range s.Hashers {
		name := ""
		if i < len(s.KeyNames) {
			name = s.KeyNames[i]
		}
		var td *types.TypeDef
		if i < len(s.Keys) {
			td = s.Keys[i]
		}
		fmt.Fprintf(&b, "%s(%s) -> ", h, typeLabel(td, name))
	}
	b.WriteString(typeLabel(s.Value, s.ValueName))
	if s.Modifier != "" {
		fmt.Fprintf(&b, " [%s]", s.Modifier)
	}
	return b.String()
}

// typeLabel prefers the source type name over the rendered definition.
func typeLabel(td *types.TypeDef, name string) string {
	switch {
	case name != "":
		return name
	case td == nil:
		return "?"
	case td.Name != "":
		return td.Name
	}
	return td.String()
}
