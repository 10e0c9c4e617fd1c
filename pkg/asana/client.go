package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://app.asana.com/api/1.0"
	pageSize       = 100
)

// taskOptFields asks the API to expand the fields the aggregator reads;
// the default task payload omits custom_fields entirely.
const taskOptFields = "name,notes,projects,custom_fields.number_value,custom_fields.name"

// Client is a typed client for the Asana REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client authenticated with a personal access token.
func NewClient(ctx context.Context, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: oauth2.NewClient(ctx, src),
	}
}

// NewClientWithBaseURL points the client at an alternate API root. Used by
// tests to target an httptest server.
func NewClientWithBaseURL(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Asana wraps every request and response body in a "data" envelope; list
// responses additionally carry a next_page cursor.
type dataEnvelope struct {
	Data     json.RawMessage `json:"data"`
	NextPage *struct {
		Offset string `json:"offset"`
	} `json:"next_page"`
}

type apiError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload any) (*dataEnvelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(struct {
			Data any `json:"data"`
		}{Data: payload})
		if err != nil {
			return nil, fmt.Errorf("asana: encoding %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asana: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("asana: reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && len(apiErr.Errors) > 0 {
			return nil, fmt.Errorf("asana: %s %s: %s (status %d)", method, path, apiErr.Errors[0].Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("asana: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	var env dataEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("asana: decoding %s %s response: %w", method, path, err)
	}
	return &env, nil
}

// getOne fetches a single resource into out.
func (c *Client) getOne(ctx context.Context, path string, query url.Values, out any) error {
	env, err := c.roundTrip(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(env.Data, out)
}

// listPages walks a paginated collection, handing each page's raw data array
// to collect.
func (c *Client) listPages(ctx context.Context, path string, query url.Values, collect func(json.RawMessage) error) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("limit", strconv.Itoa(pageSize))
	for {
		env, err := c.roundTrip(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return err
		}
		if err := collect(env.Data); err != nil {
			return err
		}
		if env.NextPage == nil || env.NextPage.Offset == "" {
			return nil
		}
		query.Set("offset", env.NextPage.Offset)
	}
}

// GetProject fetches a project including its workspace reference.
func (c *Client) GetProject(ctx context.Context, projectGID string) (Project, error) {
	var p Project
	err := c.getOne(ctx, "/projects/"+projectGID, nil, &p)
	return p, err
}

// ListProjects enumerates all projects in a workspace.
func (c *Client) ListProjects(ctx context.Context, workspaceGID string) ([]Project, error) {
	var projects []Project
	query := url.Values{"workspace": {workspaceGID}}
	err := c.listPages(ctx, "/projects", query, func(data json.RawMessage) error {
		var page []Project
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		projects = append(projects, page...)
		return nil
	})
	return projects, err
}

// ListProjectTasks enumerates the compact tasks in a project.
func (c *Client) ListProjectTasks(ctx context.Context, projectGID string) ([]Task, error) {
	var tasks []Task
	err := c.listPages(ctx, "/projects/"+projectGID+"/tasks", nil, func(data json.RawMessage) error {
		var page []Task
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		tasks = append(tasks, page...)
		return nil
	})
	return tasks, err
}

// GetTask fetches a task's full detail, including custom field values and
// parent project references.
func (c *Client) GetTask(ctx context.Context, taskGID string) (Task, error) {
	var t Task
	query := url.Values{"opt_fields": {taskOptFields}}
	err := c.getOne(ctx, "/tasks/"+taskGID, query, &t)
	return t, err
}

// ListCustomFieldSettings enumerates the custom field definitions attached
// to a project.
func (c *Client) ListCustomFieldSettings(ctx context.Context, projectGID string) ([]CustomFieldSetting, error) {
	var settings []CustomFieldSetting
	err := c.listPages(ctx, "/projects/"+projectGID+"/custom_field_settings", nil, func(data json.RawMessage) error {
		var page []CustomFieldSetting
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		settings = append(settings, page...)
		return nil
	})
	return settings, err
}

// CreateTask creates a task in a workspace, attached to the given projects.
func (c *Client) CreateTask(ctx context.Context, t NewTask) (Task, error) {
	env, err := c.roundTrip(ctx, http.MethodPost, "/tasks", nil, t)
	if err != nil {
		return Task{}, err
	}
	var created Task
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return Task{}, fmt.Errorf("asana: decoding created task: %w", err)
	}
	return created, nil
}

// UpdateTaskNotes overwrites a task's notes field wholesale.
func (c *Client) UpdateTaskNotes(ctx context.Context, taskGID, notes string) error {
	payload := struct {
		Notes string `json:"notes"`
	}{Notes: notes}
	_, err := c.roundTrip(ctx, http.MethodPut, "/tasks/"+taskGID, nil, payload)
	return err
}

// CreateWebhook registers a change subscription on a resource (here always
// a workspace) pointed at targetURL.
func (c *Client) CreateWebhook(ctx context.Context, resourceGID, targetURL string) (Webhook, error) {
	payload := struct {
		Resource string `json:"resource"`
		Target   string `json:"target"`
	}{Resource: resourceGID, Target: targetURL}
	env, err := c.roundTrip(ctx, http.MethodPost, "/webhooks", nil, payload)
	if err != nil {
		return Webhook{}, err
	}
	var hook Webhook
	if err := json.Unmarshal(env.Data, &hook); err != nil {
		return Webhook{}, fmt.Errorf("asana: decoding created webhook: %w", err)
	}
	return hook, nil
}
