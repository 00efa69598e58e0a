package domain

import "fmt"

// Action is a CRUD-style action targeted at a resource.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDestroy  Action = "destroy"
)

// Resource is a type of persisted entity exposed over HTTP.
type Resource string

const (
	ResourceBlog         Resource = "blog"
	ResourceProject      Resource = "project"
	ResourceSubscription Resource = "subscription"
)

// Model-level permission codenames granted to accounts.
const (
	PermAddBlog       = "can_add_blog"
	PermChangeBlog    = "can_change_blog"
	PermDeleteBlog    = "can_delete_blog"
	PermAddProject    = "can_add_project"
	PermChangeProject = "can_change_project"
	PermDeleteProject = "can_delete_project"
)

// AllPermissions lists every known codename, used when provisioning the
// initial admin account.
var AllPermissions = []string{
	PermAddBlog,
	PermChangeBlog,
	PermDeleteBlog,
	PermAddProject,
	PermChangeProject,
	PermDeleteProject,
}

// RequiredPermission returns the codename a write action on the given
// resource requires. List and retrieve require none.
func RequiredPermission(action Action, resource Resource) (string, error) {
	switch resource {
	case ResourceBlog:
		switch action {
		case ActionCreate:
			return PermAddBlog, nil
		case ActionUpdate:
			return PermChangeBlog, nil
		case ActionDestroy:
			return PermDeleteBlog, nil
		}
	case ResourceProject:
		switch action {
		case ActionCreate:
			return PermAddProject, nil
		case ActionUpdate:
			return PermChangeProject, nil
		case ActionDestroy:
			return PermDeleteProject, nil
		}
	}
	return "", fmt.Errorf("no permission codename for %s on %s", action, resource)
}
