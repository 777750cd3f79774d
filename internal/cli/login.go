package cli

import (
	"github.com/spf13/cobra"
)

// NewLoginCmd создаёт команду login: получает session.id для последующих вызовов.
func NewLoginCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and print a session id",
		Long: `Log in with --username/--password and print the session id.

The id can be reused via --session-id or AZKABAN_SESSION_ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()

			client, err := rt.Client(ctx)
			if err != nil {
				return err
			}
			auth, err := rt.Login(ctx, client)
			if err != nil {
				return err
			}

			if out.JSONMode() {
				out.JSON(auth)
				return nil
			}
			out.Line(string(auth.SessionID))
			return nil
		},
	}
}
