package domain

// AccountRole names a position in a company's chart of accounts. Roles
// are the abstraction boundary between posting logic and the concrete
// account codes a company maps them to.
type AccountRole string

const (
	RoleCash            AccountRole = "CASH"
	RoleBanks           AccountRole = "BANKS"
	RoleCustomers       AccountRole = "CUSTOMERS"
	RoleInventory       AccountRole = "INVENTORY"
	RoleSuppliers       AccountRole = "SUPPLIERS"
	RoleVATPayable      AccountRole = "VAT_PAYABLE"
	RoleSalesRevenue    AccountRole = "SALES_REVENUE"
	RoleSalesReturns    AccountRole = "SALES_RETURNS"
	RoleCOGS            AccountRole = "COGS"
	RolePurchaseReturns AccountRole = "PURCHASE_RETURNS"
)

// defaultAccountCodes is the fallback mapping used when a company has
// no override for a role.
var defaultAccountCodes = map[AccountRole]string{
	RoleCash:            "1110",
	RoleBanks:           "1120",
	RoleCustomers:       "1130",
	RoleInventory:       "1140",
	RoleSuppliers:       "2110",
	RoleVATPayable:      "2130",
	RoleSalesRevenue:    "4100",
	RoleSalesReturns:    "4110",
	RoleCOGS:            "5110",
	RolePurchaseReturns: "5120",
}

// DefaultAccountCode returns the fallback account code for a role.
func DefaultAccountCode(role AccountRole) (string, bool) {
	code, ok := defaultAccountCodes[role]
	return code, ok
}

// AccountRoles lists every known role.
func AccountRoles() []AccountRole {
	roles := make([]AccountRole, 0, len(defaultAccountCodes))
	for role := range defaultAccountCodes {
		roles = append(roles, role)
	}

	return roles
}

// ValidRole reports whether the role is known.
func ValidRole(role AccountRole) bool {
	_, ok := defaultAccountCodes[role]
	return ok
}

// ChartMapping holds one company's role-to-account overrides.
type ChartMapping struct {
	CompanyID string
	Accounts  map[AccountRole]string
}

// Resolve returns the company's account for a role, falling back to the
// default code when the company carries no override.
func (m *ChartMapping) Resolve(role AccountRole) (string, error) {
	if m.Accounts != nil {
		if account, ok := m.Accounts[role]; ok && account != "" {
			return account, nil
		}
	}

	code, ok := defaultAccountCodes[role]
	if !ok {
		return "", ErrUnknownAccountRole
	}

	return code, nil
}
