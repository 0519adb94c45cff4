package models

// Role is the closed set of membership roles a user can hold in a company.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RoleDispatcher Role = "dispatcher"
	RoleDriver     Role = "driver"
	RoleOwner      Role = "owner" // owner-operator
	RoleUser       Role = "user"
)

// ParseRole maps a raw claim value onto the closed role set. Unknown or
// missing values fall back to the generic user role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleAccountant, RoleDispatcher, RoleDriver, RoleOwner:
		return Role(s)
	default:
		return RoleUser
	}
}

// IsDriverRole reports whether the role is scoped to its own driver record.
func (r Role) IsDriverRole() bool {
	return r == RoleDriver || r == RoleOwner
}

type Entity string

const (
	EntityCompanies  Entity = "companies"
	EntityDrivers    Entity = "drivers"
	EntityTrips      Entity = "trips"
	EntityLoads      Entity = "loads"
	EntityExpenses   Entity = "expenses"
	EntityReceipts   Entity = "receipts"
	EntityPayments   Entity = "payments"
	EntityStatements Entity = "statements"
)

type Operation string

const (
	OpRead  Operation = "read"
	OpWrite Operation = "write"
)

// permissions is the declarative entity × operation → allowed-roles table.
// Driver/owner read access is additionally restricted to their own driver
// record by the driver-access guard; this table only answers "may this role
// touch this entity at all".
var permissions = map[Entity]map[Operation][]Role{
	EntityCompanies: {
		OpRead:  {RoleAdmin, RoleManager, RoleAccountant, RoleDispatcher},
		OpWrite: {RoleAdmin},
	},
	EntityDrivers: {
		OpRead:  {RoleAdmin, RoleManager, RoleAccountant, RoleDispatcher, RoleDriver, RoleOwner},
		OpWrite: {RoleAdmin, RoleManager},
	},
	EntityTrips: {
		OpRead:  {RoleAdmin, RoleManager, RoleAccountant, RoleDispatcher, RoleDriver, RoleOwner},
		OpWrite: {RoleAdmin, RoleManager},
	},
	EntityLoads: {
		OpRead:  {RoleAdmin, RoleManager, RoleAccountant, RoleDispatcher, RoleDriver, RoleOwner},
		OpWrite: {RoleAdmin, RoleManager, RoleDispatcher},
	},
	EntityExpenses: {
		OpRead:  {RoleAdmin, RoleManager, RoleAccountant, RoleDriver, RoleOwner},
		OpWrite: {RoleAdmin, RoleManager, RoleDriver, RoleOwner},
	},
	EntityReceipts: {
		OpRead:  {RoleAdmin, RoleManager, RoleAccountant, RoleDriver, RoleOwner},
		OpWrite: {RoleAdmin, RoleManager, RoleDriver, RoleOwner},
	},
	EntityPayments: {
		OpRead:  {RoleAdmin, RoleManager, RoleAccountant, RoleDriver, RoleOwner},
		OpWrite: {RoleAdmin, RoleManager, RoleAccountant},
	},
	EntityStatements: {
		OpRead:  {RoleAdmin, RoleManager, RoleAccountant, RoleDriver, RoleOwner},
		OpWrite: {RoleAdmin, RoleManager, RoleAccountant},
	},
}

// Allowed evaluates the permission table for a role.
func Allowed(role Role, entity Entity, op Operation) bool {
	ops, ok := permissions[entity]
	if !ok {
		return false
	}
	for _, r := range ops[op] {
		if r == role {
			return true
		}
	}
	return false
}
