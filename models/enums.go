package models

// Role is a user's role in the marketplace.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBuyer, RoleSeller:
		return true
	}
	return false
}

// OrderType says how an order is handed over to the buyer.
type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

// Valid reports whether the order type is one of the known types.
func (t OrderType) Valid() bool {
	return t == OrderTypePickup || t == OrderTypeDelivery
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
)

// Valid reports whether the status is one of the known statuses.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusFulfilled
}
