package domain

// UserRole scopes what a back-office operator may do.
type UserRole string

const (
	RoleOwner   UserRole = "OWNER"
	RoleManager UserRole = "MANAGER"
	RoleCashier UserRole = "CASHIER"
)

// User is a back-office operator. RestaurantID is nil for owners who span
// all restaurants.
type User struct {
	UserID       string   `json:"userID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	RestaurantID *string  `json:"restaurantID,omitempty"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
