package domain

// UserRole é o papel do usuário como cadastrado no sistema de origem
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleSeller   UserRole = "VENDEUR"
	UserRoleAnalyst  UserRole = "ANALYSTE"
	UserRoleInvestor UserRole = "INVESTISSEUR"
)

// Seller é a identidade usada para rotular rankings de vendedores
type Seller struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName,omitempty"`
	Email    string   `json:"email,omitempty"`
	Role     UserRole `json:"role"`
	Active   bool     `json:"active"`
}

// DisplayName retorna o nome completo ou, na falta dele, o username
func (s Seller) DisplayName() string {
	if s.FullName != "" {
		return s.FullName
	}
	return s.Username
}

// Snapshot agrupa as quatro coleções carregadas para um cálculo de dashboard
type Snapshot struct {
	Sales      []SaleRecord
	Products   []Product
	Categories []Category
	Users      []Seller
}
