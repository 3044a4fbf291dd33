package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/disctl/internal/inspect"
	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/spf13/cobra"
)

var errNoInput = errors.New("one of --hex or --file is required")

func decodeCmd() *cobra.Command {
	var (
		path     string
		hexInput string
		file     string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode PDUs and print their field trees",
		Long: `Decode one datagram holding one or more back-to-back PDUs.

Examples:
  disctl decode --hex "$(disctl sample EntityState)"
  disctl decode --file capture.bin --format toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			data, err := readInput(hexInput, file)
			if err != nil {
				return err
			}
			pdus, decodeErr := pdu.NewDecoder(nil, cfg.Limits.Wire()).DecodeStream(data)
			for _, p := range pdus {
				if err := writePdu(cmd.OutOrStdout(), p, format); err != nil {
					return err
				}
			}
			if decodeErr != nil {
				return fmt.Errorf("decode after %d pdu(s): %w", len(pdus), decodeErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "disctl.toml supplying decoder [limits]")
	cmd.Flags().StringVar(&hexInput, "hex", "", "datagram as hex (whitespace ignored)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a raw datagram, - for stdin")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text|toml|json")
	return cmd
}

func readInput(hexInput, file string) ([]byte, error) {
	switch {
	case hexInput != "" && file != "":
		return nil, errors.New("--hex and --file are mutually exclusive")
	case hexInput != "":
		data, err := hex.DecodeString(strings.Join(strings.Fields(hexInput), ""))
		if err != nil {
			return nil, fmt.Errorf("parse hex: %w", err)
		}
		return data, nil
	case file == "-":
		return io.ReadAll(os.Stdin)
	case file != "":
		return os.ReadFile(file)
	default:
		return nil, errNoInput
	}
}

func writePdu(w io.Writer, p *pdu.Pdu, format string) error {
	tree := pdu.Describe(p)
	switch format {
	case "text":
		_, err := io.WriteString(w, inspect.RenderText(tree))
		return err
	case "toml":
		out, err := inspect.RenderTOML(tree)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
