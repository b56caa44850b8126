package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jxsl13/pkgdirs/config"
)

func main() {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootContext struct {
	Config config.Config
	Log    zerolog.Logger
	out    io.Writer
	errOut io.Writer
}

func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	rctx := &rootContext{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "pkgdirs",
		Short: "validate and render the directories a package owns",
		Long: `pkgdirs reads the directory declarations of a package configuration
(toml, yaml or json), validates them and renders them as rpm %files entries.
It can also verify that a built package or archive contains them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), config.Default())
			if err != nil {
				return err
			}
			rctx.Config = cfg
			rctx.Log = newLogger(errOut, cfg.Level())
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	config.RegisterFlags(cmd.PersistentFlags(), config.Default())

	cmd.AddCommand(newRenderCmd(rctx))
	cmd.AddCommand(newVerifyCmd(rctx))
	return cmd
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
