package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/receiver"
	"github.com/spf13/cobra"
)

func parseType(name string) (pdu.Type, error) {
	typ, ok := pdu.ParseType(name)
	if !ok {
		return 0, fmt.Errorf("unknown pdu type %q (see disctl types)", name)
	}
	return typ, nil
}

func sampleCmd() *cobra.Command {
	var (
		exercise uint8
		format   string
	)

	cmd := &cobra.Command{
		Use:   "sample <type>",
		Short: "Print a sample PDU of the given type as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := parseType(args[0])
			if err != nil {
				return err
			}
			p, err := pdu.SamplePdu(exercise, typ)
			if err != nil {
				return err
			}
			if format != "hex" {
				return writePdu(cmd.OutOrStdout(), p, format)
			}
			b, err := pdu.Marshal(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
			return nil
		},
	}

	cmd.Flags().Uint8Var(&exercise, "exercise", 1, "exercise ID stamped in the header")
	cmd.Flags().StringVar(&format, "format", "hex", "output format: hex|text|toml|json")
	return cmd
}

func sendCmd() *cobra.Command {
	var (
		to       string
		exercise uint8
		count    int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send <type>",
		Short: "Send sample PDUs of the given type over UDP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := parseType(args[0])
			if err != nil {
				return err
			}
			sender, err := receiver.Dial(to)
			if err != nil {
				return err
			}
			defer sender.Close()

			for i := 0; i < count; i++ {
				p, err := pdu.SamplePdu(exercise, typ)
				if err != nil {
					return err
				}
				p.Header.Timestamp = uint32(i)
				if err := sender.Send(p); err != nil {
					return err
				}
				if i+1 < count && interval > 0 {
					time.Sleep(interval)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d %s pdu(s) to %s\n", count, typ, to)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "127.0.0.1:3000", "destination UDP address")
	cmd.Flags().Uint8Var(&exercise, "exercise", 1, "exercise ID stamped in the header")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of PDUs to send")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "delay between PDUs")
	return cmd
}
