package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <model>",
		Short: "list the controls discovered in a glTF/GLB model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			cfg.Model.Path = args[0]

			sc, err := loadScene(cfg, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "model: %s (%d controls)\n\n", args[0], sc.Count())

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tPOSITION\tROTATION\tBOUNDS")
			for _, c := range sc.All() {
				writeControl(w, c)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if screen, ok := sc.Screen(); ok {
				fmt.Fprintf(out, "\nscreen: %s centre %v size %v\n", screen.Name,
					fmtVec(screen.World.Mul4x1(screen.Bounds.Center().Vec4(1)).Vec3()), fmtVec(screen.Bounds.Size()))
			}
			return nil
		},
	}
}

func writeControl(w *tabwriter.Writer, c control.Control) {
	rest := c.RestPose()
	b := c.Bounds()
	fmt.Fprintf(w, "%s\t%s\t%s\t%.3f %s\t%s..%s\n",
		c.Name(), c.Kind(),
		fmtVec(rest.Position),
		rest.Rotation.W, fmtVec(rest.Rotation.V),
		fmtVec(b.Min), fmtVec(b.Max),
	)
}

func fmtVec[T ~[3]float32](v T) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
