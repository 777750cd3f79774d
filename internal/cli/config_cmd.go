package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd создаёт группу команд для конфигурации.
func NewConfigCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect client configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rt.Output()

			cfg, err := rt.Config()
			if err != nil {
				return err
			}
			redacted := cfg.Redacted()

			if out.JSONMode() {
				out.JSON(redacted)
				return nil
			}
			data, err := redacted.Marshal()
			if err != nil {
				return err
			}
			out.Line(string(data))
			return nil
		},
	})

	return cmd
}
