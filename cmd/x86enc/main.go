// x86enc encodes single x86 instructions from Intel-syntax text and prints their bytes.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
	"golang.org/x/xerrors"

	"github.com/umbrellaos/x86enc"
	x86lookup "github.com/umbrellaos/x86enc/lookup"
	"github.com/umbrellaos/x86enc/verify"
)

type options struct {
	mode     string
	verify   bool
	debug    bool
	prefixes string

	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "x86enc",
		Short:        "x86 instruction encoder",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.debug)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&opts.mode, "mode", env.Str("X86ENC_MODE", "protected"), "Operating mode (protected, real, smm, compat, 64)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", env.Bool("X86ENC_DEBUG"), "Log encoding decisions to stderr")

	rootCmd.AddCommand(newEncodeCmd(opts), newFormsCmd(), newModesCmd())
	return rootCmd
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newEncodeCmd(opts *options) *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode MNEMONIC [OPERANDS]",
		Short: "Encode one instruction and print its bytes in hex",
		Example: `  x86enc encode adc al, 0x12
  x86enc encode --mode 64 --verify adc qword [rbx+r15*2+8], 1:8
  x86enc encode --prefix lock,fs adc dword [eax], ebx
  x86enc encode --mode real jne short -4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.OutOrStdout(), opts, args[0], strings.Join(args[1:], " "))
		},
	}
	encodeCmd.Flags().BoolVar(&opts.verify, "verify", env.Bool("X86ENC_VERIFY"), "Decode the result and print it in Intel syntax")
	encodeCmd.Flags().StringVar(&opts.prefixes, "prefix", "", "Comma-separated legacy prefixes emitted before the instruction")
	// operands such as "short -4" must not be parsed as flags
	encodeCmd.Flags().SetInterspersed(false)
	return encodeCmd
}

func runEncode(w io.Writer, opts *options, mnemonic, operands string) error {
	mode, ok := x86lookup.Mode(opts.mode)
	if !ok {
		return xerrors.Errorf("mode %q: %w", opts.mode, x86enc.ErrUnsupported)
	}
	inst, ok := x86lookup.Inst(mnemonic)
	if !ok {
		return xerrors.Errorf("mnemonic %q: %w", mnemonic, x86enc.ErrUnsupported)
	}
	prefixes, err := x86lookup.Prefixes(opts.prefixes)
	if err != nil {
		return err
	}
	args, err := x86lookup.Args(mode, operands)
	if err != nil {
		return err
	}
	opts.logger.Debug("encoding", "mode", mode, "inst", inst, "args", len(args), "prefixes", len(prefixes))

	code, err := x86enc.EncodeWithPrefixes(mode, prefixes, inst, args...)
	if err != nil {
		return err
	}
	opts.logger.Debug("encoded", "inst", inst, "len", len(code))

	if !opts.verify {
		_, err = fmt.Fprintf(w, "% x\n", code)
		return err
	}
	text, err := verify.Intel(mode, code)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "% x\t%s\n", code, text)
	return err
}

func newFormsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms [MNEMONIC...]",
		Short: "List the operand forms of each instruction, in selection order",
		RunE: func(cmd *cobra.Command, args []string) error {
			insts := x86enc.Insts()
			if len(args) > 0 {
				insts = insts[:0]
				for _, name := range args {
					inst, ok := x86lookup.Inst(name)
					if !ok {
						return xerrors.Errorf("mnemonic %q: %w", name, x86enc.ErrUnsupported)
					}
					insts = append(insts, inst)
				}
			}
			w := cmd.OutOrStdout()
			for _, inst := range insts {
				fmt.Fprintln(w, inst.Name())
				for _, f := range inst.Forms() {
					fmt.Fprintf(w, "  %-24s %-14s %s\n", f.Operands, f.Opcode, strings.Join(f.Flags, "|"))
				}
			}
			return nil
		},
	}
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List operating modes with their default operand and address sizes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, m := range x86enc.Modes() {
				fmt.Fprintf(w, "%-18s bits=%d operand=%d address=%d\n",
					m, m.Bits(), int(m.DefaultOperandSize())*8, int(m.DefaultAddressSize())*8)
			}
		},
	}
}
