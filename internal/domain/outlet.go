package domain

import "time"

// Outlet is a physical store location.
type Outlet struct {
	ID        int64
	Name      string
	Code      string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserOutlet links a user to an outlet they may operate.
type UserOutlet struct {
	UserID    int64
	OutletID  int64
	IsDefault bool
	Outlet    Outlet
}
