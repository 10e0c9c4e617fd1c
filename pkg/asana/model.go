package asana

// Workspace is a compact reference to an Asana workspace.
type Workspace struct {
	GID  string `json:"gid"`
	Name string `json:"name,omitempty"`
}

// Project is a read-only projection of an Asana project. The Workspace
// field is populated on full fetches but not on compact list entries.
type Project struct {
	GID       string    `json:"gid"`
	Name      string    `json:"name"`
	Workspace Workspace `json:"workspace"`
}

// CustomFieldValue is a custom field as it appears on a task. NumberValue
// is a pointer: a nil value means the field has never been filled in, which
// is not the same as zero.
type CustomFieldValue struct {
	GID         string   `json:"gid"`
	Name        string   `json:"name"`
	NumberValue *float64 `json:"number_value"`
}

// CustomFieldSetting attaches a custom field definition to a project.
type CustomFieldSetting struct {
	GID         string           `json:"gid"`
	CustomField CustomFieldValue `json:"custom_field"`
}

// Task is an Asana task. List endpoints return compact tasks (GID and Name
// only); GetTask fills in Notes, Projects and CustomFields.
type Task struct {
	GID          string             `json:"gid"`
	Name         string             `json:"name"`
	Notes        string             `json:"notes,omitempty"`
	Projects     []Project          `json:"projects,omitempty"`
	CustomFields []CustomFieldValue `json:"custom_fields,omitempty"`
}

// NewTask is the creation payload for POST /tasks.
type NewTask struct {
	Name         string   `json:"name"`
	Notes        string   `json:"notes,omitempty"`
	WorkspaceGID string   `json:"workspace"`
	ProjectGIDs  []string `json:"projects,omitempty"`
}

// Webhook is a registered change subscription.
type Webhook struct {
	GID       string `json:"gid"`
	Active    bool   `json:"active,omitempty"`
	TargetURL string `json:"target"`
}
