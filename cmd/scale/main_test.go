package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/scale-codec/buffer"
	scaleerrors "github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/internal/testmeta"
	"github.com/wippyai/scale-codec/storage"
)

const (
	alice         = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceAddress  = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	dest          = "0x586cb27c291c813ce74e86a60dad270609abf2fc8bee107e44a80ac00225c409"
	destKusama    = "EaG2CRhJWPb7qmdcJvy3LiWdh26Jreu9Dx6R1rXxPmYXoDk"
	transferCall  = "0x050700586cb27c291c813ce74e86a60dad270609abf2fc8bee107e44a80ac00225c409070010a5d4e8"
	transferXt    = "0xa804050700586cb27c291c813ce74e86a60dad270609abf2fc8bee107e44a80ac00225c409070010a5d4e8"
	aliceAccount  = "0x26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9de1e86a9a8c739864cf3cc5ec2bea59fd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	transferInput = "{call_module: Balances, call_function: transfer_keep_alive, call_args: {dest: {Id: " + dest + "}, value: 1000000000000}}"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"encode u16", []string{"encode", "u16", "64302"}, "0x2efb\n"},
		{"decode i16", []string{"decode", "i16", "0x2efb"}, "-1234\n"},
		{"decode without prefix", []string{"decode", "u16", "2efb"}, "64302\n"},
		{"encode array", []string{"encode", "[u32; 3]", "[1, 2, 3]"}, "0x010000000200000003000000\n"},
		{"encode compact", []string{"encode", "Compact<u32>", "16384"}, "0x02000100\n"},
		{"encode map", []string{"encode", "BTreeMap<Text, bool>", "{a: true}"}, "0x04046101\n"},
		{"encode bytes from hex", []string{"encode", "Vec<u8>", "0x010203"}, "0x0c010203\n"},
		{"encode wide integer", []string{"encode", "u128", "340282366920938463463374607431768211455"}, "0xffffffffffffffffffffffffffffffff\n"},
		{"decode tuple", []string{"decode", "(u8, bool)", "0x0701"}, "- 7\n- true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"invalid bool", []string{"decode", "bool", "0x02"}, scaleerrors.ErrInvalidData},
		{"trailing bytes", []string{"decode", "u8", "0x0102"}, scaleerrors.ErrRemainingBytes},
		{"short input", []string{"decode", "u32", "0x0102"}, scaleerrors.ErrBufferUnderflow},
		{"unknown type", []string{"decode", "NoSuchType", "0x00"}, scaleerrors.ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodePartial(t *testing.T) {
	out, err := execute(t, "decode", "--partial", "u8", "0x0102")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "value: 1") || !strings.Contains(out, "0x02") {
		t.Errorf("output = %q", out)
	}
}

func TestDecodeWideInteger(t *testing.T) {
	out, err := execute(t, "decode", "u128", "0xffffffffffffffffffffffffffffffff")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "340282366920938463463374607431768211455") {
		t.Errorf("output = %q", out)
	}
}

func TestMetadataCommands(t *testing.T) {
	blob := testmeta.KusamaV14()
	binary := writeFile(t, "kusama.scale", blob)
	hexFile := writeFile(t, "kusama.hex", []byte(buffer.EncodeHex(blob)+"\n"))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"summary", []string{"metadata", binary}, []string{"version: 14", "name: Balances", "index: 5", "CheckNonce"}},
		{"summary from hex", []string{"-m", hexFile, "metadata"}, []string{"name: Utility", "index: 26"}},
		{"pallet", []string{"metadata", binary, "--pallet", "Balances"}, []string{"transfer_keep_alive", "ExistentialDeposit: 1000000000"}},
		{"pallet storage", []string{"metadata", binary, "-p", "System"}, []string{"Account: Blake2_128Concat(", "BlockHashCount: 2400"}},
		{"decode call", []string{"-m", binary, "decode", "Call", transferCall}, []string{"Balances:", "transfer_keep_alive:", "value: 1000000000000"}},
		{"decode extrinsic", []string{"-m", binary, "extrinsic", "decode", transferXt}, []string{"call_function: transfer_keep_alive", "call_module: Balances", "signed: false"}},
		{"encode extrinsic", []string{"-m", binary, "extrinsic", "encode", transferInput}, []string{transferXt}},
		{"storage key", []string{"-m", binary, "storage", "key", "System", "Account", alice}, []string{aliceAccount}},
		{"storage prefix", []string{"-m", binary, "storage", "key", "System", "Number"}, []string{buffer.EncodeHex(storage.Prefix("System", "Number"))}},
		{"portable types", []string{"-m", binary, "types", "scale_info::"}, []string{"scale_info::0\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestMetadataErrors(t *testing.T) {
	binary := writeFile(t, "kusama.scale", testmeta.KusamaV14())

	if _, err := execute(t, "extrinsic", "decode", transferXt); err == nil || !strings.Contains(err.Error(), "no metadata") {
		t.Errorf("missing metadata error = %v", err)
	}
	if _, err := execute(t, "-m", binary, "storage", "default", "System", "Number"); !errors.Is(err, scaleerrors.ErrBufferUnderflow) {
		t.Errorf("empty default error = %v", err)
	}
	if _, err := execute(t, "-m", binary, "storage", "key", "System", "Missing"); !errors.Is(err, scaleerrors.ErrInvalidData) {
		t.Errorf("unknown entry error = %v", err)
	}
	if _, err := execute(t, "metadata", writeFile(t, "junk.scale", []byte("junk data"))); !errors.Is(err, scaleerrors.ErrInvalidData) {
		t.Errorf("bad blob error = %v", err)
	}
}

func TestLegacyMetadata(t *testing.T) {
	path := writeFile(t, "template.scale", testmeta.NodeTemplateV13())

	out, err := execute(t, "--preset", "default", "--preset", "legacy", "metadata", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"version: 13", "name: Example", "index: 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSS58(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default format", []string{"ss58", "encode", alice}, aliceAddress + "\n"},
		{"kusama format", []string{"--ss58-format", "2", "ss58", "encode", dest}, destKusama + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}

	out, err := execute(t, "ss58", "decode", destKusama)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "format: 2") || !strings.Contains(out, dest[2:]) {
		t.Errorf("decode output = %q", out)
	}

	if _, err := execute(t, "ss58", "encode", "0x0102030405"); !errors.Is(err, scaleerrors.ErrInvalidData) {
		t.Errorf("bad payload error = %v", err)
	}
}

func TestStorageHash(t *testing.T) {
	out, err := execute(t, "storage", "hash", "Blake2_128Concat", alice)
	if err != nil {
		t.Fatal(err)
	}
	if want := "0xde1e86a9a8c739864cf3cc5ec2bea59f" + alice[2:] + "\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	out, err = execute(t, "storage", "hash", "Identity", "0x0102")
	if err != nil || out != "0x0102\n" {
		t.Errorf("identity = %q, %v", out, err)
	}

	if _, err := execute(t, "storage", "hash", "Sha256", "0x00"); err == nil {
		t.Error("unknown hasher should fail")
	}
}

func TestConfigPrecedence(t *testing.T) {
	cfgFile := writeFile(t, "scale.yaml", []byte("log_level: debug\nss58_format: 2\npresets: [default, legacy]\n"))

	t.Run("file", func(t *testing.T) {
		cfg, err := readConfig(cfgFile)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "console" || cfg.SS58Format == nil || *cfg.SS58Format != 2 {
			t.Errorf("cfg = %+v", cfg)
		}
		if len(cfg.Presets) != 2 || cfg.Presets[1] != "legacy" {
			t.Errorf("presets = %v", cfg.Presets)
		}
	})

	t.Run("environment over file", func(t *testing.T) {
		t.Setenv("SCALE_LOG_LEVEL", "error")
		t.Setenv("SCALE_SPEC_VERSION", "9430")
		cfg, err := readConfig(cfgFile)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.LogLevel != "error" || cfg.SpecVersion == nil || *cfg.SpecVersion != 9430 {
			t.Errorf("cfg = %+v", cfg)
		}
		if *cfg.SS58Format != 2 {
			t.Errorf("ss58 format = %d", *cfg.SS58Format)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := readConfig("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.LogLevel != "warn" || cfg.SS58Format != nil || len(cfg.Presets) != 1 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("flags over environment", func(t *testing.T) {
		t.Setenv("SCALE_SS58_FORMAT", "0")
		out, err := execute(t, "--config", cfgFile, "ss58", "encode", dest)
		if err != nil {
			t.Fatal(err)
		}
		polkadot := out

		out, err = execute(t, "--config", cfgFile, "--ss58-format", "2", "ss58", "encode", dest)
		if err != nil {
			t.Fatal(err)
		}
		if out != destKusama+"\n" || polkadot == out {
			t.Errorf("outputs = %q, %q", polkadot, out)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := readConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("missing config file should fail")
		}
	})
}

func TestBadLogLevel(t *testing.T) {
	if _, err := execute(t, "--log-level", "loud", "ss58", "decode", aliceAddress); err == nil {
		t.Error("bad log level should fail")
	}
}
