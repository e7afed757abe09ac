package domain

// Role names seeded for the back office.
const (
	RoleOwner      = "OWNER"
	RoleManager    = "MANAGER"
	RoleCashier    = "CASHIER"
	RoleInventory  = "INVENTORY"
	RoleAccountant = "ACCOUNTANT"
)

// KnownRoles lists every seeded role name.
var KnownRoles = []string{RoleOwner, RoleManager, RoleCashier, RoleInventory, RoleAccountant}

// IsKnownRole reports whether name is one of the seeded roles.
func IsKnownRole(name string) bool {
	for _, r := range KnownRoles {
		if r == name {
			return true
		}
	}
	return false
}
