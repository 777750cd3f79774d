package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shaiso/azkaban-submitter/internal/artifact"
	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/orchestrator"
	"github.com/shaiso/azkaban-submitter/internal/telemetry"
)

// NewProjectCmd создаёт группу команд для управления проектами.
func NewProjectCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(rt),
		newProjectFlowsCmd(rt),
		newProjectUploadCmd(rt),
		newProjectSubmitCmd(rt),
		newProjectRemoveCmd(rt),
	)

	return cmd
}

func newProjectCreateCmd(rt *Runtime) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			name := args[0]

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}

			if err := createProject(cmd, rt, session, name, description); err != nil {
				return err
			}
			out.Success(fmt.Sprintf("Project created: %s", name))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Project description (default: project name)")
	return cmd
}

func createProject(cmd *cobra.Command, rt *Runtime, session domain.Session, name, description string) error {
	ctx := cmd.Context()
	if description == "" {
		description = name
	}

	res := rt.client.Projects.Create(ctx, session, name, description)

	ev := rt.newEvent(domain.EventProjectCreated)
	ev.Project, ev.Detail = name, res.Message
	if res.HasError() {
		rt.Finish(ctx, "create_project", ev.Fail(res.Message))
		return fmt.Errorf("%w: create %s: %s", ErrOperationFailed, name, res.Message)
	}
	rt.Finish(ctx, "create_project", ev)
	return nil
}

func newProjectFlowsCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "flows NAME",
		Short: "List flows of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}

			res, err := rt.client.Projects.FetchFlows(ctx, session, args[0])
			rt.Observe("fetch_flows", err)
			if err != nil {
				return err
			}
			if res == nil {
				return fmt.Errorf("%w: %s: project not found", ErrOperationFailed, args[0])
			}
			if res.HasError() {
				return fmt.Errorf("%w: %s: %s", ErrOperationFailed, args[0], res.Error)
			}

			names := res.FlowNames()
			rows := make([][]string, len(names))
			for i, n := range names {
				rows[i] = []string{res.ProjectID.String(), n}
			}
			out.Print([]string{"PROJECT_ID", "FLOW"}, rows, res)
			return nil
		},
	}
}

func newProjectUploadCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "upload NAME FILE.zip",
		Short: "Upload a zip archive to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}

			res, err := upload(cmd, rt, session, args[0], args[1])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Uploaded %s: project id %s, version %s", args[0], res.ProjectID, res.Version))
			out.Print(
				[]string{"PROJECT", "PROJECT_ID", "VERSION"},
				[][]string{{args[0], res.ProjectID.String(), res.Version.String()}},
				res,
			)
			return nil
		},
	}
}

func upload(cmd *cobra.Command, rt *Runtime, session domain.Session, project, path string) (*domain.UploaderResult, error) {
	ctx := cmd.Context()
	res := rt.client.Uploads.UploadFile(ctx, session, project, path)

	ev := rt.newEvent(domain.EventProjectUploaded)
	ev.Project, ev.ProjectID, ev.Detail = project, res.ProjectID, "version "+res.Version.String()
	if res.HasError() {
		ev.Detail = ""
		rt.Finish(ctx, "upload", ev.Fail(res.Error))
		return nil, fmt.Errorf("%w: upload %s: %s", ErrOperationFailed, project, res.Error)
	}
	rt.Finish(ctx, "upload", ev)
	return res, nil
}

// submitResult — итог project submit.
type submitResult struct {
	Project    string    `json:"project"`
	ProjectID  domain.ID `json:"project_id"`
	Version    domain.ID `json:"version"`
	Jar        string    `json:"jar"`
	SecurityID string    `json:"security_id,omitempty"`
}

func newProjectSubmitCmd(rt *Runtime) *cobra.Command {
	var workDir string
	var create, keep bool

	cmd := &cobra.Command{
		Use:   "submit NAME ARCHIVE.tar.gz",
		Short: "Unpack a job archive, repack it as zip and upload it",
		Long: `Unpack a .tar.gz job archive into a fresh directory, check that it
contains lib/*.jar, repack the tree as zip and upload it to the project.

config/ and config/ssl/<id>/ are reported if present.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			project, archive := args[0], args[1]
			logger := telemetry.WithProject(rt.Logger(), project)

			if workDir == "" {
				workDir = os.TempDir()
			}
			root, err := artifact.ExtractFile(workDir, archive)
			if err != nil {
				return err
			}
			if !keep {
				defer os.RemoveAll(root)
			}
			logger.Debug("archive extracted", "dir", root)

			layout, err := artifact.Inspect(root)
			if err != nil {
				return err
			}
			if layout.ConfDir == "" {
				out.Warn("no config directory in archive")
			}

			zipPath, err := artifact.ZipToTemp(root)
			if err != nil {
				return err
			}
			defer os.Remove(zipPath)

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}
			if create {
				if err := createProject(cmd, rt, session, project, ""); err != nil {
					return err
				}
			}

			res, err := upload(cmd, rt, session, project, zipPath)
			rt.Observe("submit", err)
			if err != nil {
				return err
			}

			result := submitResult{
				Project:    project,
				ProjectID:  res.ProjectID,
				Version:    res.Version,
				Jar:        filepath.Base(layout.JarPath),
				SecurityID: layout.SecurityID(),
			}
			out.Success(fmt.Sprintf("Submitted %s: project id %s, version %s", project, res.ProjectID, res.Version))
			out.Print(
				[]string{"PROJECT", "PROJECT_ID", "VERSION", "JAR", "SECURITY_ID"},
				[][]string{{project, res.ProjectID.String(), res.Version.String(), result.Jar, result.SecurityID}},
				result,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&workDir, "work-dir", "", "Directory for extraction (default: system temp dir)")
	cmd.Flags().BoolVar(&create, "create", false, "Create the project before uploading")
	cmd.Flags().BoolVar(&keep, "keep", false, "Keep the extracted directory")
	return cmd
}

func newProjectRemoveCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Unschedule all flows, cancel running executions and delete the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := rt.Output()
			project := args[0]

			session, err := rt.Session(ctx)
			if err != nil {
				return err
			}

			teardown := orchestrator.NewFromClient(rt.client, rt.Logger())
			report, err := teardown.Remove(ctx, session, project)

			ev := rt.newEvent(domain.EventProjectRemoved)
			ev.Project, ev.ProjectID = project, report.ProjectID
			ev.Detail = fmt.Sprintf("%d step(s), %d warning(s)", len(report.Steps), len(report.Warnings()))
			if err != nil {
				rt.Finish(ctx, "remove_project", ev.Fail(err.Error()))
			} else {
				rt.Finish(ctx, "remove_project", ev)
			}

			rows := make([][]string, len(report.Steps))
			for i, s := range report.Steps {
				rows[i] = []string{string(s.Stage), s.Target, string(s.Outcome), s.Detail}
			}
			out.Print([]string{"STAGE", "TARGET", "OUTCOME", "DETAIL"}, rows, report)

			if err != nil {
				return err
			}
			out.Success(fmt.Sprintf("Project removed: %s (id %s)", project, report.ProjectID))
			return nil
		},
	}
}
