package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd создаёт корневую команду azkaban со всеми подкомандами.
func NewRootCmd(rt *Runtime, version string) *cobra.Command {
	o := rt.opts

	rootCmd := &cobra.Command{
		Use:           "azkaban",
		Short:         "Azkaban CLI — submit, run and schedule Azkaban flows",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.InsecureSet = cmd.Flags().Changed("insecure")
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.ConfigPath, "config", "", "Config file (default $HOME/.azkaban/config.yaml)")
	pf.StringVarP(&o.Endpoint, "endpoint", "e", "", "Azkaban URL, e.g. https://azkaban:8443")
	pf.StringVarP(&o.Username, "username", "u", "", "Azkaban user")
	pf.StringVarP(&o.Password, "password", "p", "", "Azkaban password")
	pf.StringVar(&o.SessionID, "session-id", "", "Existing session.id (skips login)")
	pf.BoolVar(&o.Insecure, "insecure", false, "Skip TLS certificate verification")
	pf.DurationVar(&o.Timeout, "timeout", 0, "HTTP request timeout (0 = none)")
	pf.BoolVar(&o.JSON, "json", false, "Output in JSON format")
	pf.BoolVarP(&o.Verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		NewLoginCmd(rt),
		NewFlowCmd(rt),
		NewScheduleCmd(rt),
		NewProjectCmd(rt),
		NewHistoryCmd(rt),
		NewEventsCmd(rt),
		NewConfigCmd(rt),
	)

	return rootCmd
}
