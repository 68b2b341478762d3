package authz

import "vertgarden/gardenhub/internal/model"

// Action names one gateable operation. Handlers always pass a named action;
// unknown actions are denied.
type Action string

const (
	// Resource-independent actions, decided by the role gate alone.
	ActionManageUsers     Action = "manage_users"
	ActionManageProviders Action = "manage_providers"
	ActionIssueInvitation Action = "issue_invitation"
	ActionCreateItem      Action = "create_item"
	ActionListItems       Action = "list_items"
	ActionRecordUsage     Action = "record_usage"

	// Resource-dependent actions, decided against a specific inventory item.
	ActionEditItem        Action = "edit_item"
	ActionUseItem         Action = "use_item"
	ActionViewItemHistory Action = "view_item_history"
	ActionDeleteItem      Action = "delete_item"
)

// roleGate is the single source of truth for which primary roles may perform
// each resource-independent action unconditionally. The administrator is not
// implicitly allowed everything: each action lists its roles explicitly.
var roleGate = map[Action]map[model.Role]bool{
	ActionManageUsers: {
		model.RoleAdministrator: true,
	},
	ActionManageProviders: {
		model.RoleAdministrator: true,
		model.RoleTechnician:    true,
	},
	ActionIssueInvitation: {
		model.RoleAdministrator: true,
	},
	ActionCreateItem: {
		model.RoleAdministrator: true,
		model.RoleTechnician:    true,
		model.RoleResident:      true,
	},
	ActionListItems: {
		model.RoleAdministrator: true,
		model.RoleTechnician:    true,
		model.RoleResident:      true,
	},
	ActionRecordUsage: {
		model.RoleAdministrator: true,
		model.RoleTechnician:    true,
		model.RoleResident:      true,
	},
}

// requiredGrant maps each resource-dependent action to the delegated grant
// kind that can stand in for ownership or an elevated role. Deleting an item
// is delegable through the edit grant.
var requiredGrant = map[Action]model.GrantKind{
	ActionEditItem:        model.GrantEdit,
	ActionUseItem:         model.GrantUse,
	ActionViewItemHistory: model.GrantViewHistory,
	ActionDeleteItem:      model.GrantEdit,
}

// Allowed reports whether the role gate permits the action for the given
// primary role. Unknown actions deny.
func Allowed(action Action, role model.Role) bool {
	return roleGate[action][role]
}

// ResourceDependent reports whether the action is decided against a specific
// resource rather than by the role gate.
func ResourceDependent(action Action) bool {
	_, ok := requiredGrant[action]
	return ok
}

// GrantFor returns the grant kind that satisfies a resource-dependent action.
func GrantFor(action Action) (model.GrantKind, bool) {
	k, ok := requiredGrant[action]
	return k, ok
}
