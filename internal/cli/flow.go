package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// NewFlowCmd создаёт группу команд для запуска и отмены flows.
func NewFlowCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Execute, inspect and cancel flows",
	}

	cmd.AddCommand(
		newFlowExecuteCmd(rt),
		newFlowRunningCmd(rt),
		newFlowCancelCmd(rt),
	)

	return cmd
}

func newFlowExecuteCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "execute PROJECT FLOW",
		Short: "Start a flow execution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			project, flow := args[0], args[1]

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}

			res := rt.client.Executions.Execute(ctx, session, project, flow)

			ev := rt.newEvent(domain.EventFlowExecuted)
			ev.Project, ev.Flow, ev.ExecID, ev.Detail = project, flow, res.ExecID, res.Message
			if res.HasError() {
				rt.Finish(ctx, "execute", ev.Fail(res.Error))
				return fmt.Errorf("%w: execute %s/%s: %s", ErrOperationFailed, project, flow, res.Error)
			}
			rt.Finish(ctx, "execute", ev)

			out.Success(fmt.Sprintf("Execution started: %s", res.ExecID))
			out.Print(
				[]string{"PROJECT", "FLOW", "EXEC_ID", "MESSAGE"},
				[][]string{{project, flow, res.ExecID.String(), res.Message}},
				res,
			)
			return nil
		},
	}
}

func newFlowRunningCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "running PROJECT FLOW",
		Short: "List running executions of a flow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}

			res, err := rt.client.Executions.Running(ctx, session, args[0], args[1])
			rt.Observe("running", err)
			if err != nil {
				return err
			}
			if res.HasError() {
				return fmt.Errorf("%w: %s", ErrOperationFailed, res.Error)
			}

			rows := make([][]string, len(res.ExecIDs))
			for i, id := range res.ExecIDs {
				rows[i] = []string{id.String()}
			}
			out.Print([]string{"EXEC_ID"}, rows, res)
			return nil
		},
	}
}

func newFlowCancelCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel EXEC_ID",
		Short: "Cancel a running execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			execID := domain.ID(args[0])

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}

			msg, err := rt.client.Executions.Cancel(ctx, session, execID)
			if err != nil {
				rt.Observe("cancel", err)
				return err
			}

			ev := rt.newEvent(domain.EventExecutionCancelled)
			ev.ExecID = execID
			if msg != "" {
				rt.Finish(ctx, "cancel", ev.Fail(msg))
				return fmt.Errorf("%w: cancel %s: %s", ErrOperationFailed, execID, msg)
			}
			rt.Finish(ctx, "cancel", ev)

			out.Success(fmt.Sprintf("Execution cancelled: %s", execID))
			return nil
		},
	}
}
