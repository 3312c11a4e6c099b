package domain

// Operation identifies one caller-facing operation for authorization
// purposes, independent of HTTP routing.
type Operation string

const (
	OpCustomerCreate Operation = "customer:create"
	OpCustomerList   Operation = "customer:list"
	OpCustomerGet    Operation = "customer:get"
	OpCustomerDelete Operation = "customer:delete"

	OpTaskCreate       Operation = "task:create"
	OpTaskList         Operation = "task:list"
	OpTaskGet          Operation = "task:get"
	OpTaskUpdateStatus Operation = "task:update-status"
	OpTaskActivity     Operation = "task:activity"

	OpUserList       Operation = "user:list"
	OpUserGet        Operation = "user:get"
	OpUserUpdateRole Operation = "user:update-role"
)

// rolePolicy is the single allow-list consulted for every operation. It is
// static: role checks never look at resource state.
var rolePolicy = map[Operation][]Role{
	OpCustomerCreate: {RoleAdmin},
	OpCustomerList:   {RoleAdmin, RoleEmployee},
	OpCustomerGet:    {RoleAdmin, RoleEmployee},
	OpCustomerDelete: {RoleAdmin},

	OpTaskCreate:       {RoleAdmin},
	OpTaskList:         {RoleAdmin, RoleEmployee},
	OpTaskGet:          {RoleAdmin, RoleEmployee},
	OpTaskUpdateStatus: {RoleAdmin, RoleEmployee},
	OpTaskActivity:     {RoleAdmin, RoleEmployee},

	OpUserList:       {RoleAdmin},
	OpUserGet:        {RoleAdmin},
	OpUserUpdateRole: {RoleAdmin},
}

// IsRoleAllowed reports whether role may invoke op. Unknown operations and
// unknown roles are denied.
func IsRoleAllowed(op Operation, role Role) bool {
	for _, allowed := range rolePolicy[op] {
		if allowed == role {
			return true
		}
	}
	return false
}

// TaskAction is a resource-level action checked by the ownership policy.
type TaskAction int

const (
	TaskActionRead TaskAction = iota
	TaskActionUpdateStatus
)

// CanActOnTask resolves whether identity may perform action on this specific
// task, beyond the role check. ADMIN may always act. EMPLOYEE may read any
// task but may only update the status of tasks assigned to them; the
// read/update asymmetry is deliberate and matches the behavior the API has
// always had.
func CanActOnTask(identity Identity, task *Task, action TaskAction) bool {
	if identity.Role == RoleAdmin {
		return true
	}
	if identity.Role != RoleEmployee {
		return false
	}
	switch action {
	case TaskActionRead:
		return true
	case TaskActionUpdateStatus:
		return task.AssignedToID == identity.UserID
	default:
		return false
	}
}
