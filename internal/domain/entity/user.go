package entity

import "time"

// User representa um usuário do sistema (pertence a uma Store).
type User struct {
	ID           string
	StoreID      string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro no domínio após persistir
	Name         string
	Role         string // ADMIN, MANAGER, CASHIER
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
