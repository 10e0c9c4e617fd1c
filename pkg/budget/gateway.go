// Package budget is the reconciliation engine: it decides which projects
// need their budget summary recomputed, aggregates per-task cost fields
// into project metrics, and writes the rendered summary back onto each
// project's singleton status task.
package budget

import (
	"context"

	"github.com/harrisonrobin/budgetsync/pkg/asana"
)

// Gateway is the narrow view of the remote task store the engine depends
// on. *asana.Client satisfies it; tests substitute a fake. Every call may
// fail transiently and callers treat errors as local signals, never as
// reasons to abort a whole pass.
type Gateway interface {
	GetProject(ctx context.Context, projectGID string) (asana.Project, error)
	ListProjects(ctx context.Context, workspaceGID string) ([]asana.Project, error)
	ListProjectTasks(ctx context.Context, projectGID string) ([]asana.Task, error)
	GetTask(ctx context.Context, taskGID string) (asana.Task, error)
	ListCustomFieldSettings(ctx context.Context, projectGID string) ([]asana.CustomFieldSetting, error)
	CreateTask(ctx context.Context, t asana.NewTask) (asana.Task, error)
	UpdateTaskNotes(ctx context.Context, taskGID, notes string) error
	CreateWebhook(ctx context.Context, resourceGID, targetURL string) (asana.Webhook, error)
}
