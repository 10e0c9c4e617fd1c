package budget

import (
	"context"

	"github.com/harrisonrobin/budgetsync/pkg/asana"
)

// fakeGateway implements Gateway with overridable func fields. Methods with
// a nil func return zero values and no error.
type fakeGateway struct {
	GetProjectFunc              func(ctx context.Context, projectGID string) (asana.Project, error)
	ListProjectsFunc            func(ctx context.Context, workspaceGID string) ([]asana.Project, error)
	ListProjectTasksFunc        func(ctx context.Context, projectGID string) ([]asana.Task, error)
	GetTaskFunc                 func(ctx context.Context, taskGID string) (asana.Task, error)
	ListCustomFieldSettingsFunc func(ctx context.Context, projectGID string) ([]asana.CustomFieldSetting, error)
	CreateTaskFunc              func(ctx context.Context, t asana.NewTask) (asana.Task, error)
	UpdateTaskNotesFunc         func(ctx context.Context, taskGID, notes string) error
	CreateWebhookFunc           func(ctx context.Context, resourceGID, targetURL string) (asana.Webhook, error)
}

func (f *fakeGateway) GetProject(ctx context.Context, projectGID string) (asana.Project, error) {
	if f.GetProjectFunc != nil {
		return f.GetProjectFunc(ctx, projectGID)
	}
	return asana.Project{}, nil
}

func (f *fakeGateway) ListProjects(ctx context.Context, workspaceGID string) ([]asana.Project, error) {
	if f.ListProjectsFunc != nil {
		return f.ListProjectsFunc(ctx, workspaceGID)
	}
	return nil, nil
}

func (f *fakeGateway) ListProjectTasks(ctx context.Context, projectGID string) ([]asana.Task, error) {
	if f.ListProjectTasksFunc != nil {
		return f.ListProjectTasksFunc(ctx, projectGID)
	}
	return nil, nil
}

func (f *fakeGateway) GetTask(ctx context.Context, taskGID string) (asana.Task, error) {
	if f.GetTaskFunc != nil {
		return f.GetTaskFunc(ctx, taskGID)
	}
	return asana.Task{}, nil
}

func (f *fakeGateway) ListCustomFieldSettings(ctx context.Context, projectGID string) ([]asana.CustomFieldSetting, error) {
	if f.ListCustomFieldSettingsFunc != nil {
		return f.ListCustomFieldSettingsFunc(ctx, projectGID)
	}
	return nil, nil
}

func (f *fakeGateway) CreateTask(ctx context.Context, t asana.NewTask) (asana.Task, error) {
	if f.CreateTaskFunc != nil {
		return f.CreateTaskFunc(ctx, t)
	}
	return asana.Task{}, nil
}

func (f *fakeGateway) UpdateTaskNotes(ctx context.Context, taskGID, notes string) error {
	if f.UpdateTaskNotesFunc != nil {
		return f.UpdateTaskNotesFunc(ctx, taskGID, notes)
	}
	return nil
}

func (f *fakeGateway) CreateWebhook(ctx context.Context, resourceGID, targetURL string) (asana.Webhook, error) {
	if f.CreateWebhookFunc != nil {
		return f.CreateWebhookFunc(ctx, resourceGID, targetURL)
	}
	return asana.Webhook{}, nil
}

func fptr(v float64) *float64 { return &v }

// costFields builds the two custom field settings used by most tests.
func costFields(estimatedGID, actualGID string) []asana.CustomFieldSetting {
	return []asana.CustomFieldSetting{
		{CustomField: asana.CustomFieldValue{GID: estimatedGID, Name: "Budget"}},
		{CustomField: asana.CustomFieldValue{GID: actualGID, Name: "Actual Cost"}},
	}
}
