package identity

// Role is a closed set of user roles. Authorization checks work off the
// role value, never off free-form strings.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleStaff        Role = "staff"
	RoleStoreManager Role = "store_manager"
	RoleSupplier     Role = "supplier"
	RoleCustomer     Role = "customer"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleStoreManager, RoleSupplier, RoleCustomer:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// ParseRole normalizes a raw role string
func ParseRole(raw string) (Role, bool) {
	r := Role(raw)
	if r.IsValid() {
		return r, true
	}
	return "", false
}

// IsStaffLike reports whether the role belongs to warehouse personnel
func (r Role) IsStaffLike() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleStoreManager
}

// CanCreatePurchaseOrder reports whether the role may open purchase orders.
// Suppliers raise purchase orders against the business; staff roles may
// raise them on a supplier's behalf.
func (r Role) CanCreatePurchaseOrder() bool {
	return r == RoleSupplier || r.IsStaffLike()
}

// CanCreateSalesOrder reports whether the role may open sales orders
func (r Role) CanCreateSalesOrder() bool {
	return r == RoleCustomer || r.IsStaffLike()
}

// CanApproveOrders reports whether the role may move orders past pending
func (r Role) CanApproveOrders() bool {
	return r.IsStaffLike()
}

// CanManageStock reports whether the role may adjust or transfer stock
func (r Role) CanManageStock() bool {
	return r.IsStaffLike()
}
