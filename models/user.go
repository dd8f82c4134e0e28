package models

import "fmt"

// UserRole is an integer claim in the access token and drives every route
// guard and view gate in the client.
type UserRole int

const (
	RoleUserAdmin UserRole = iota + 1
	RoleManager
	RoleWaitStaff
	RoleKitchenStaff
	RoleCustomerTablet
)

var roleNames = map[UserRole]string{
	RoleUserAdmin:      "USER_ADMIN",
	RoleManager:        "MANAGER",
	RoleWaitStaff:      "WAIT_STAFF",
	RoleKitchenStaff:   "KITCHEN_STAFF",
	RoleCustomerTablet: "CUSTOMER_TABLET",
}

func (r UserRole) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("UserRole(%d)", int(r))
}

func (r UserRole) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Capability names one gated action or screen. Views and route guards ask
// Can(role, capability) instead of comparing roles inline.
type Capability string

const (
	CapManageUsers       Capability = "manage_users"
	CapManageMenu        Capability = "manage_menu"
	CapViewActivityPanel Capability = "view_activity_panel"
	CapViewKitchen       Capability = "view_kitchen"
	CapUpdateOrderStatus Capability = "update_order_status"
	CapHandleAssistance  Capability = "handle_assistance"
	CapCompleteSession   Capability = "complete_session"
	CapTableSession      Capability = "table_session"
)

var roleCapabilities = map[Capability][]UserRole{
	CapManageUsers:       {RoleUserAdmin},
	CapManageMenu:        {RoleManager},
	CapViewActivityPanel: {RoleManager, RoleWaitStaff},
	CapViewKitchen:       {RoleManager, RoleKitchenStaff},
	CapUpdateOrderStatus: {RoleManager, RoleWaitStaff, RoleKitchenStaff},
	CapHandleAssistance:  {RoleManager, RoleWaitStaff},
	CapCompleteSession:   {RoleManager, RoleWaitStaff},
	CapTableSession:      {RoleCustomerTablet},
}

// Can reports whether the role holds the capability.
func Can(role UserRole, cap Capability) bool {
	for _, r := range roleCapabilities[cap] {
		if r == role {
			return true
		}
	}
	return false
}

// User is the admin-managed account record. Password is write-only; the
// backend never returns it and the client never stores it.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"password,omitempty"`
	Role     UserRole `json:"role"`
}

// ProtectedRole reports whether admin screens must refuse to modify or
// delete accounts with this role. The backend is the authority; this only
// keeps the control from being offered.
func ProtectedRole(role UserRole) bool {
	return role == RoleUserAdmin
}
