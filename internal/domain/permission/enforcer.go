package permission

// Resources are the route families guarded by role policies. Status-aware
// decisions on a single ticket are made by the policy package.
const (
	ResourceTicket     = "ticket"
	ResourceDevTask    = "devtask"
	ResourceSprint     = "sprint"
	ResourceProduct    = "product"
	ResourceEscalation = "escalation"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionManage = "manage"
	// ActionAny in a policy grants every action on the resource.
	ActionAny = "*"
)

// PermissionEnforcer answers whether a role may perform an action on a
// resource family.
type PermissionEnforcer interface {
	Enforce(role string, resource string, action string) (bool, error)
	AddPolicy(role string, resource string, action string) error
	RemovePolicy(role string, resource string, action string) error
	GetPermissionsForRole(role string) ([][]string, error)
	LoadPolicy() error
}
