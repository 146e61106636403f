package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Papéis de perfil
const (
	RoleCustomer    = "customer"
	RoleUpholsterer = "upholsterer" // estofador: precisa de aprovação do admin
)

// Address é o endereço de entrega salvo no perfil (e copiado no pedido)
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Receiver   string `json:"receiver,omitempty"`
	Reference  string `json:"reference,omitempty"`
}

// Profile é o cadastro do cliente/estofador, ligado 1:1 ao usuário do
// provedor de identidade (local ou social via goth)
type Profile struct {
	ID         gocql.UUID `json:"id"`
	Provider   string     `json:"provider,omitempty"` // "local", "google", "facebook"
	ProviderID string     `json:"-"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"-"` // hash bcrypt (apenas provider local)
	CPF        string     `json:"cpf,omitempty"`
	CNPJ       string     `json:"cnpj,omitempty"` // obrigatório para estofadores
	Phone      string     `json:"phone,omitempty"`
	Role       string     `json:"role"`
	Approved   bool       `json:"approved"` // cliente nasce aprovado, estofador não
	Address    Address    `json:"address"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CanSeeTradePrice indica se o perfil desbloqueia o preço de estofador
func (p *Profile) CanSeeTradePrice() bool {
	return p.Role == RoleUpholsterer && p.Approved
}
