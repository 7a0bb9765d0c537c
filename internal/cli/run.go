package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/export"
	"github.com/Makepad-fr/tada/internal/script"
	"github.com/Makepad-fr/tada/internal/ui"
)

type runFlags struct {
	json  bool
	out   string
	group bool
}

func newRunCmd(gf *globalFlags) *cobra.Command {
	rf := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Replay a session script and print the resulting list",
		Long: `Replay a YAML session script through the todo form and print the list.

Steps: fill, files, add_file, clear_files, submit, create, edit, cancel,
toggle, delete. Records are targeted with "ref" (a name bound by "as")
or "index" (1-based position in the current list).`,
		Example: `  tada run session.yaml
  tada run session.yaml --group
  tada run session.yaml --json --out snapshot.json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, gf, rf, args[0])
		},
	}
	cmd.Flags().BoolVar(&rf.json, "json", false, "print the list as JSON")
	cmd.Flags().StringVar(&rf.out, "out", "", "write the JSON snapshot to this file")
	cmd.Flags().BoolVar(&rf.group, "group", false, "group output by pending/done")
	return cmd
}

func runScript(cmd *cobra.Command, gf *globalFlags, rf *runFlags, path string) error {
	sc, err := script.ParseFile(path)
	if err != nil {
		return err
	}
	sess, err := newSession(gf, stderr, func(*config.Config) bool { return sc.SeedExample })
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := script.NewRunner(sess.ctrl, sess.log.WithPrefix("script")).Run(sc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	items := sess.ctrl.List(sess.cfg.Location)
	preview := sess.ctrl.AttachmentsPreview()
	w := cmd.OutOrStdout()

	switch {
	case rf.out != "":
		if err := export.WriteFile(rf.out, export.New(items, preview, time.Now())); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		ui.OK("wrote " + rf.out)
	case rf.json:
		return export.Encode(w, export.New(items, preview, time.Now()))
	default:
		ui.Panel(w, ui.ListLines(items, rf.group, preview))
	}
	return nil
}
