package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jxsl13/pkgdirs/config"
	"github.com/jxsl13/pkgdirs/dirs"
	"github.com/jxsl13/pkgdirs/rpmfile"
)

func newRenderCmd(rctx *rootContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render <document>",
		Short: "print the rpm %files entries of all declared directories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadDirs(rctx, args[0])
			if err != nil {
				return err
			}

			if rctx.Config.Format == config.FormatJSON {
				enc := json.NewEncoder(rctx.out)
				enc.SetIndent("", "  ")
				return enc.Encode(opts)
			}

			for _, o := range opts {
				fmt.Fprintln(rctx.out, o.SpecLine())
			}
			return nil
		},
	}
}

// loadDirs reads the document at path and renders its directory declarations.
func loadDirs(rctx *rootContext, path string) ([]*rpmfile.FileOptions, error) {
	if !config.IsSupported(path) {
		return nil, fmt.Errorf("unsupported document format: %s", path)
	}

	doc, err := config.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	values, err := doc.Dirs(rctx.Config.Key)
	if err != nil {
		return nil, err
	}
	rctx.Log.Debug().
		Str("document", path).
		Str("key", rctx.Config.Key).
		Int("entries", len(values)).
		Msg("loaded directory declarations")

	parsed, err := dirs.Parse(dirs.Values(values))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	opts, err := dirs.RenderAll(parsed, rpmfile.New)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return opts, nil
}
