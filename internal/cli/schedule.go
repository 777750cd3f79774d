package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/azkaban-submitter/internal/azkaban"
	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/scheduler"
)

// NewScheduleCmd создаёт группу команд для управления расписаниями flows.
func NewScheduleCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage flow schedules",
	}

	cmd.AddCommand(
		newScheduleCreateCmd(rt),
		newScheduleCronCmd(rt),
		newScheduleRemoveCmd(rt),
		newScheduleShowCmd(rt),
	)

	return cmd
}

func newScheduleCreateCmd(rt *Runtime) *cobra.Command {
	var projectID, date, timeSpec, period string

	cmd := &cobra.Command{
		Use:   "create PROJECT FLOW",
		Short: "Schedule a flow by first run time and optional period",
		Long: `Schedule a flow.

Without --date and --time the first run is two minutes from now.
--time uses the Azkaban format "hour,minute,am|pm,timezone", e.g. "13,5,pm,UTC".
--period is a number with a unit: M (months), w, d, h, m or s, e.g. 1d.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			project, flow := args[0], args[1]

			if period != "" {
				if err := scheduler.ValidatePeriod(period); err != nil {
					return fmt.Errorf("%w: schedule %s/%s: %w", ErrOperationFailed, project, flow, err)
				}
			}

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}
			id, err := resolveProjectID(ctx, rt, session, project, projectID)
			if err != nil {
				return err
			}

			res := rt.client.Schedules.Schedule(ctx, session, azkaban.ScheduleRequest{
				ProjectName: project,
				ProjectID:   id,
				Flow:        flow,
				Date:        date,
				Time:        timeSpec,
				Period:      period,
			})

			ev := rt.newEvent(domain.EventFlowScheduled)
			ev.Project, ev.ProjectID, ev.Flow, ev.Detail = project, id, flow, res.Message
			if res.HasError() || res.Status == domain.StatusError {
				msg := res.Error
				if msg == "" {
					msg = res.Message
				}
				rt.Finish(ctx, "schedule", ev.Fail(msg))
				return fmt.Errorf("%w: schedule %s/%s: %s", ErrOperationFailed, project, flow, msg)
			}
			rt.Finish(ctx, "schedule", ev)

			out.Success(fmt.Sprintf("Flow scheduled: %s/%s", project, flow))
			out.Print(
				[]string{"PROJECT", "FLOW", "STATUS", "MESSAGE"},
				[][]string{{project, flow, res.Status, res.Message}},
				res,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "Numeric project id (looked up if not set)")
	cmd.Flags().StringVar(&date, "date", "", "First run date, MM/DD/YYYY")
	cmd.Flags().StringVar(&timeSpec, "time", "", `First run time, "hour,minute,am|pm,timezone"`)
	cmd.Flags().StringVar(&period, "period", "", "Repeat period, e.g. 1d, 12h, 30m")

	return cmd
}

func newScheduleCronCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "cron PROJECT FLOW EXPRESSION",
		Short: "Schedule a flow with a Quartz cron expression",
		Example: `  azkaban schedule cron P F "0 0 3 ? * MON-FRI"
  azkaban schedule cron P F "0 */15 * * * ?"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			project, flow, expr := args[0], args[1], args[2]

			if err := scheduler.ValidateCron(expr); err != nil {
				return err
			}

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}

			res := rt.client.Schedules.ScheduleCron(ctx, session, azkaban.CronRequest{
				ProjectName:    project,
				Flow:           flow,
				CronExpression: expr,
			})

			ev := rt.newEvent(domain.EventFlowScheduled)
			ev.Project, ev.Flow, ev.Detail = project, flow, expr
			if res.HasError() || res.Status == domain.StatusError {
				msg := res.Error
				if msg == "" {
					msg = res.Message
				}
				rt.Finish(ctx, "schedule_cron", ev.Fail(msg))
				return fmt.Errorf("%w: schedule %s/%s: %s", ErrOperationFailed, project, flow, msg)
			}
			rt.Finish(ctx, "schedule_cron", ev)

			next := ""
			cfg, _ := rt.Config()
			if t, err := scheduler.NextFire(expr, rt.now(), cfg.Location()); err == nil {
				next = t.Format("2006-01-02 15:04:05 MST")
			} else if !errors.Is(err, scheduler.ErrQuartzOnly) {
				rt.Logger().Debug("next fire time unavailable", "error", err)
			}

			out.Success(fmt.Sprintf("Flow scheduled: %s/%s", project, flow))
			out.Print(
				[]string{"PROJECT", "FLOW", "SCHEDULE_ID", "CRON", "NEXT_RUN"},
				[][]string{{project, flow, res.ScheduleID.String(), expr, next}},
				res,
			)
			return nil
		},
	}
}

func newScheduleRemoveCmd(rt *Runtime) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "remove PROJECT FLOW",
		Short: "Remove a flow schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			project, flow := args[0], args[1]

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}
			id, err := resolveProjectID(ctx, rt, session, project, projectID)
			if err != nil {
				return err
			}

			res, err := rt.client.Schedules.RemoveSchedule(ctx, session, id, flow)
			if err != nil {
				rt.Observe("remove_schedule", err)
				return err
			}

			ev := rt.newEvent(domain.EventFlowUnscheduled)
			ev.Project, ev.ProjectID, ev.Flow, ev.Detail = project, id, flow, res.Message
			if res.HasError() {
				rt.Finish(ctx, "remove_schedule", ev.Fail(res.Message))
				return fmt.Errorf("%w: unschedule %s/%s: %s", ErrOperationFailed, project, flow, res.Message)
			}
			rt.Finish(ctx, "remove_schedule", ev)

			if res.Status == domain.StatusUnknown {
				out.Warn(res.Message)
			} else {
				out.Success(fmt.Sprintf("Schedule removed: %s/%s", project, flow))
			}
			out.Print(
				[]string{"PROJECT", "FLOW", "STATUS", "MESSAGE"},
				[][]string{{project, flow, res.Status, res.Message}},
				res,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "Numeric project id (looked up if not set)")
	return cmd
}

func newScheduleShowCmd(rt *Runtime) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "show PROJECT FLOW",
		Short: "Show a flow schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			project, flow := args[0], args[1]

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}
			id, err := resolveProjectID(ctx, rt, session, project, projectID)
			if err != nil {
				return err
			}

			res, err := rt.client.Schedules.FetchSchedule(ctx, session, id, flow)
			rt.Observe("fetch_schedule", err)
			if err != nil {
				return err
			}
			if res.HasError() {
				return fmt.Errorf("%w: %s", ErrOperationFailed, res.Error)
			}

			if res.Schedule == nil {
				if out.JSONMode() {
					out.JSON(res)
				} else {
					out.Success(fmt.Sprintf("Flow %s/%s is not scheduled", project, flow))
				}
				return nil
			}

			s := res.Schedule
			out.Print(
				[]string{"SCHEDULE_ID", "SUBMIT_USER", "FIRST_RUN", "NEXT_RUN", "PERIOD"},
				[][]string{{s.ScheduleID.String(), s.SubmitUser, s.FirstSchedTime, s.NextExecTime, s.Period}},
				res,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "Numeric project id (looked up if not set)")
	return cmd
}

// resolveProjectID возвращает given или ищет числовой ID проекта через fetchprojectflows.
func resolveProjectID(ctx context.Context, rt *Runtime, session domain.Session, project, given string) (domain.ID, error) {
	if given != "" {
		return domain.ID(given), nil
	}

	res, err := rt.client.Projects.FetchFlows(ctx, session, project)
	rt.Observe("fetch_flows", err)
	if err != nil {
		return "", err
	}
	if res == nil || res.ProjectID == "" {
		msg := "project not found"
		if res != nil && res.HasError() {
			msg = res.Error
		}
		return "", fmt.Errorf("%w: %s: %s", ErrOperationFailed, project, msg)
	}
	return res.ProjectID, nil
}
