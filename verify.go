package main

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jxsl13/pkgdirs/archive"
	"github.com/jxsl13/pkgdirs/model"
)

// errMismatch makes the process exit with a non zero code after the report was printed.
var errMismatch = errors.New("archive does not match the declared directories")

func newVerifyCmd(rctx *rootContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <document> <archive>",
		Short: "check that an rpm, archive or directory contains the declared directories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, target := args[0], args[1]
			if !archive.IsSupported(target) {
				return fmt.Errorf("unsupported archive format: %s", target)
			}

			opts, err := loadDirs(rctx, document)
			if err != nil {
				return err
			}

			entries := make(map[string]model.File, 1024)
			err = archive.Walk(target, func(path string, info fs.FileInfo, err error) error {
				if err != nil {
					return fmt.Errorf("failed to process file: %s: %w", path, err)
				}
				f := model.FromFileInfo(path, info, archive.OwnerOf(info))
				entries[f.Path] = f
				return nil
			})
			if err != nil {
				return errors.Wrapf(err, "failed to walk %s", target)
			}
			rctx.Log.Debug().
				Str("archive", target).
				Int("entries", len(entries)).
				Int("dirs", len(opts)).
				Msg("walked archive")

			mismatches := model.Verify(opts, entries)
			if len(mismatches) == 0 {
				rctx.Log.Info().Int("dirs", len(opts)).Msg("all declared directories found")
				return nil
			}

			printMismatches(rctx, document, target, mismatches, entries)
			return errMismatch
		},
	}
}

func printMismatches(rctx *rootContext, document, target string, mismatches []model.Mismatch, entries map[string]model.File) {
	var maxUser, maxGroup, maxUid, maxGid int
	for _, m := range mismatches {
		f := entries[model.CleanPath(m.Path)]
		maxUser = max(maxUser, len(f.Username))
		maxGroup = max(maxGroup, len(f.Groupname))
		maxUid = max(maxUid, len(strconv.Itoa(f.Uid)))
		maxGid = max(maxGid, len(strconv.Itoa(f.Gid)))
	}
	model.SetOwnerFormat(maxUser, maxGroup, maxUid, maxGid)

	fmt.Fprintf(rctx.out, "--- mismatches (%s -> %s) ---\n", document, target)
	for _, m := range mismatches {
		line := m.String()
		if m.Kind == model.WrongUser || m.Kind == model.WrongGroup {
			line += " (" + entries[model.CleanPath(m.Path)].OwnerString() + ")"
		}
		fmt.Fprintln(rctx.out, line)
	}
}
