package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/mq"
)

// NewEventsCmd создаёт группу команд для шины событий.
func NewEventsCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow operation events on RabbitMQ",
	}

	cmd.AddCommand(newEventsTailCmd(rt))
	return cmd
}

func newEventsTailCmd(rt *Runtime) *cobra.Command {
	var binding string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print operation events as they are published",
		Example: `  azkaban events tail
  azkaban events tail --binding 'flow.*' --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()

			conn, err := rt.dialAMQP(ctx, true)
			if err != nil {
				return err
			}
			queue, err := mq.DeclareTailQueue(ctx, conn, binding)
			if err != nil {
				return err
			}
			rt.Logger().Info("tailing events", "queue", queue, "binding", binding)

			if !out.JSONMode() {
				out.Line(strings.Join(eventHeaders, "\t"))
			}
			handler := func(_ context.Context, ev *domain.Event) error {
				if out.JSONMode() {
					out.JSON(ev)
				} else {
					out.Line(strings.Join(eventRow(ev), "\t"))
				}
				return nil
			}

			err = mq.NewConsumer(conn, queue, handler, rt.Logger()).Run(ctx)
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&binding, "binding", mq.BindAll, "Routing key pattern, e.g. flow.* or project.removed")
	return cmd
}
