package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/repo"
)

// NewHistoryCmd создаёт команду просмотра журнала операций.
func NewHistoryCmd(rt *Runtime) *cobra.Command {
	var project, eventType string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent operations from the audit store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()

			audit, err := rt.Audit(ctx)
			if err != nil {
				return err
			}

			events, err := audit.ListRecent(ctx, repo.EventFilter{
				Project: project,
				Type:    domain.EventType(eventType),
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			if events == nil {
				events = []domain.Event{}
			}

			out.Print(eventHeaders, eventRows(events), events)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Filter by project")
	cmd.Flags().StringVar(&eventType, "type", "", "Filter by event type, e.g. flow.executed")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events")

	cmd.AddCommand(newHistoryShowCmd(rt))

	return cmd
}

func newHistoryShowCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show EVENT_ID",
		Short: "Show a single operation from the audit store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id %q: %w", args[0], err)
			}

			audit, err := rt.Audit(ctx)
			if err != nil {
				return err
			}

			ev, err := audit.GetByID(ctx, id)
			if err != nil {
				return err
			}

			rt.Output().Print(eventHeaders, [][]string{eventRow(ev)}, ev)
			return nil
		},
	}
}

var eventHeaders = []string{"ID", "TIME", "TYPE", "OUTCOME", "PROJECT", "FLOW", "EXEC_ID", "DETAIL"}

func eventRows(events []domain.Event) [][]string {
	rows := make([][]string, len(events))
	for i, ev := range events {
		rows[i] = eventRow(&ev)
	}
	return rows
}

func eventRow(ev *domain.Event) []string {
	detail := ev.Detail
	if ev.Error != "" {
		detail = ev.Error
	}
	return []string{
		ev.ID.String(),
		ev.Time.Local().Format(time.DateTime),
		string(ev.Type),
		string(ev.Outcome),
		ev.Project,
		ev.Flow,
		ev.ExecID.String(),
		detail,
	}
}
