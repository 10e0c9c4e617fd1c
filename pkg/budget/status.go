package budget

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/harrisonrobin/budgetsync/pkg/asana"
)

// StatusTaskName is the reserved sentinel name of the singleton summary
// task in each project. The aggregator excludes it from metrics by GID.
const StatusTaskName = "Project Status"

const statusTaskNotes = "This task contains summary information about the project budget."

// StatusManager finds or lazily creates the one status task per project.
type StatusManager struct {
	gw  Gateway
	log *zap.Logger
}

func NewStatusManager(gw Gateway, log *zap.Logger) *StatusManager {
	return &StatusManager{gw: gw, log: log}
}

// FindStatus returns the GID of the project's status task, or "" when none
// exists. Absence is not an error. If duplicates ever exist (a concurrent
// external writer won a create race), the first match in enumeration order
// wins deterministically, so later passes converge on one record.
func (m *StatusManager) FindStatus(ctx context.Context, projectGID string) (string, error) {
	tasks, err := m.gw.ListProjectTasks(ctx, projectGID)
	if err != nil {
		return "", fmt.Errorf("listing tasks in project %s: %w", projectGID, err)
	}
	for _, t := range tasks {
		if t.Name == StatusTaskName {
			return t.GID, nil
		}
	}
	return "", nil
}

// FindOrCreateStatus returns the status task GID, creating the task in the
// project's workspace when absent. The remote store has no uniqueness
// constraint, so callers must hold the per-project lease to keep
// find-before-create race free within this process.
func (m *StatusManager) FindOrCreateStatus(ctx context.Context, projectGID string) (string, error) {
	gid, err := m.FindStatus(ctx, projectGID)
	if err != nil {
		return "", err
	}
	if gid != "" {
		return gid, nil
	}

	project, err := m.gw.GetProject(ctx, projectGID)
	if err != nil {
		return "", fmt.Errorf("resolving workspace for project %s: %w", projectGID, err)
	}
	if project.Workspace.GID == "" {
		return "", fmt.Errorf("project %s has no workspace", projectGID)
	}

	created, err := m.gw.CreateTask(ctx, asana.NewTask{
		Name:         StatusTaskName,
		Notes:        statusTaskNotes,
		WorkspaceGID: project.Workspace.GID,
		ProjectGIDs:  []string{projectGID},
	})
	if err != nil {
		return "", fmt.Errorf("creating status task in project %s: %w", projectGID, err)
	}
	m.log.Info("created status task",
		zap.String("project", projectGID), zap.String("task", created.GID))
	return created.GID, nil
}
