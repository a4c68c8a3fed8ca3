package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"floatpos/pkg/js"
)

func newScriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script <scene> [file.js]",
		Short: "Run JavaScript against the scene's document",
		Long: `Script builds the scene's document and runs JavaScript against it. The
script comes from the file argument, or from the scene's script field.
document, window, console, computePosition and createVirtualElement are
available; console output goes to the log. The script's completion value,
if any, is printed as YAML.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			s, built, err := loadScene(cmd, rt, args[0], nil)
			if err != nil {
				return err
			}

			name, src := args[0], s.Script
			if len(args) == 2 {
				data, err := os.ReadFile(args[1])
				if err != nil {
					return err
				}
				name, src = args[1], string(data)
			}
			if src == "" {
				return errors.New("no script: pass a file or set the scene's script field")
			}

			engine := js.New(rt.log)
			engine.Bind(built.Document)
			v, err := engine.Run(name, src)
			if err != nil {
				return err
			}
			if v == nil {
				return nil
			}
			out, err := yaml.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding script result: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	return cmd
}
