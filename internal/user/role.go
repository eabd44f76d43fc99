// File: internal/user/role.go
package user

import (
	"fmt"

	"nopea_backend/internal/common"
)

// Permission is a closed set of named capabilities. Membership never changes
// at runtime; there is no mechanism to grant ad-hoc permissions to an
// individual user.
type Permission string

const (
	// Customer permissions
	PermissionPlaceOrder       Permission = "PLACE_ORDER"
	PermissionViewOrderHistory Permission = "VIEW_ORDER_HISTORY"
	PermissionCancelOrder      Permission = "CANCEL_ORDER"
	PermissionRateMerchant     Permission = "RATE_MERCHANT"

	// Merchant permissions
	PermissionManageMenu        Permission = "MANAGE_MENU"
	PermissionViewOrders        Permission = "VIEW_ORDERS"
	PermissionAcceptOrder       Permission = "ACCEPT_ORDER"
	PermissionRejectOrder       Permission = "REJECT_ORDER"
	PermissionUpdateOrderStatus Permission = "UPDATE_ORDER_STATUS"
	PermissionViewAnalytics     Permission = "VIEW_ANALYTICS"

	// Courier permissions
	PermissionViewDeliveryRequests Permission = "VIEW_DELIVERY_REQUESTS"
	PermissionAcceptDelivery       Permission = "ACCEPT_DELIVERY"
	PermissionUpdateDeliveryStatus Permission = "UPDATE_DELIVERY_STATUS"
	PermissionViewDeliveryHistory  Permission = "VIEW_DELIVERY_HISTORY"

	// Admin permissions
	PermissionManageUsers         Permission = "MANAGE_USERS"
	PermissionManageMerchants     Permission = "MANAGE_MERCHANTS"
	PermissionManageCouriers      Permission = "MANAGE_COURIERS"
	PermissionViewSystemAnalytics Permission = "VIEW_SYSTEM_ANALYTICS"
	PermissionModerateContent     Permission = "MODERATE_CONTENT"
	PermissionSystemConfiguration Permission = "SYSTEM_CONFIGURATION"
)

// AllPermissions lists every permission in the system, grouped by actor type.
var AllPermissions = []Permission{
	PermissionPlaceOrder,
	PermissionViewOrderHistory,
	PermissionCancelOrder,
	PermissionRateMerchant,
	PermissionManageMenu,
	PermissionViewOrders,
	PermissionAcceptOrder,
	PermissionRejectOrder,
	PermissionUpdateOrderStatus,
	PermissionViewAnalytics,
	PermissionViewDeliveryRequests,
	PermissionAcceptDelivery,
	PermissionUpdateDeliveryStatus,
	PermissionViewDeliveryHistory,
	PermissionManageUsers,
	PermissionManageMerchants,
	PermissionManageCouriers,
	PermissionViewSystemAnalytics,
	PermissionModerateContent,
	PermissionSystemConfiguration,
}

// Role is a closed enumeration of exactly four values.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleMerchant Role = "MERCHANT"
	RoleCourier  Role = "COURIER"
	RoleAdmin    Role = "ADMIN"
)

// customerPermissions are included in every role that can also act as a
// customer (all roles; couriers and merchants place orders too).
var customerPermissions = []Permission{
	PermissionPlaceOrder,
	PermissionViewOrderHistory,
	PermissionCancelOrder,
}

var rolePermissions = map[Role]map[Permission]struct{}{
	RoleCustomer: permissionSet(
		PermissionPlaceOrder,
		PermissionViewOrderHistory,
		PermissionCancelOrder,
		PermissionRateMerchant,
	),
	RoleMerchant: permissionSet(append([]Permission{
		PermissionManageMenu,
		PermissionViewOrders,
		PermissionAcceptOrder,
		PermissionRejectOrder,
		PermissionUpdateOrderStatus,
		PermissionViewAnalytics,
	}, customerPermissions...)...),
	RoleCourier: permissionSet(append([]Permission{
		PermissionViewDeliveryRequests,
		PermissionAcceptDelivery,
		PermissionUpdateDeliveryStatus,
		PermissionViewDeliveryHistory,
	}, customerPermissions...)...),
	RoleAdmin: permissionSet(AllPermissions...),
}

// roleCapabilities holds the three derived capability booleans per role.
// They are computed from permission-set membership at this single definition
// site; they carry no independent data.
type roleCapability struct {
	placeOrder     bool
	manageMerchant bool
	deliverOrder   bool
}

var roleCapabilities = func() map[Role]roleCapability {
	caps := make(map[Role]roleCapability, len(rolePermissions))
	for role, perms := range rolePermissions {
		_, placeOrder := perms[PermissionPlaceOrder]
		_, manageMerchant := perms[PermissionManageMenu]
		_, deliverOrder := perms[PermissionAcceptDelivery]
		caps[role] = roleCapability{
			placeOrder:     placeOrder,
			manageMerchant: manageMerchant,
			deliverOrder:   deliverOrder,
		}
	}
	return caps
}()

var roleDisplayNames = map[Role]string{
	RoleCustomer: "Customer",
	RoleMerchant: "Merchant",
	RoleCourier:  "Courier",
	RoleAdmin:    "Admin",
}

var roleDescriptions = map[Role]string{
	RoleCustomer: "Can place orders and rate merchants",
	RoleMerchant: "Can manage restaurant menu and orders",
	RoleCourier:  "Can accept and deliver orders",
	RoleAdmin:    "Has full system access and management capabilities",
}

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.IsValid() {
		return "", common.NewInvalidArgumentError(fmt.Sprintf("Unknown role: %s", raw))
	}
	return role, nil
}

// IsValid reports whether the role is one of the four known values.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns the role's statically-assigned permission set.
func (r Role) Permissions() []Permission {
	set := rolePermissions[r]
	perms := make([]Permission, 0, len(set))
	// iterate AllPermissions to keep a stable order
	for _, p := range AllPermissions {
		if _, ok := set[p]; ok {
			perms = append(perms, p)
		}
	}
	return perms
}

// HasPermission is the single source of truth for authorization: true iff p
// is a member of the role's permission set.
func (r Role) HasPermission(p Permission) bool {
	_, ok := rolePermissions[r][p]
	return ok
}

func (r Role) CanPlaceOrder() bool { return roleCapabilities[r].placeOrder }

func (r Role) CanManageMerchant() bool { return roleCapabilities[r].manageMerchant }

func (r Role) CanDeliverOrder() bool { return roleCapabilities[r].deliverOrder }

// DisplayName returns the human-readable role name.
func (r Role) DisplayName() string {
	return roleDisplayNames[r]
}

// Description returns the human-readable role description.
func (r Role) Description() string {
	return roleDescriptions[r]
}

func (r Role) String() string {
	return string(r)
}
