package domain

// Actor é a tripla (usuário, papel, loja) fornecida pelo middleware de auth.
// Toda operação do núcleo recebe o Actor explicitamente; nenhuma decisão de
// autorização confia em estado mantido pelo cliente.
type Actor struct {
	UserID  string
	Role    string
	StoreID string
}

// IsAdmin verifica o papel ADMIN.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsManagerOrAdmin verifica MANAGER ou ADMIN.
func (a Actor) IsManagerOrAdmin() bool {
	return a.Role == RoleManager || a.Role == RoleAdmin
}
