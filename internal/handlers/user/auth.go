package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/markbates/goth/gothic"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/middleware"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

// withProvider injeta o provider da rota na query, onde o gothic o procura
func withProvider(c *gin.Context, provider string) {
	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()
}

const profileColumns = `profile_id, provider, provider_id, name, email, password, cpf, cnpj, phone, role, approved, street, number, complement, district, city, state, zip_code, receiver, reference, created_at`

func profileDest(p *models.Profile) []interface{} {
	return []interface{}{
		&p.ID, &p.Provider, &p.ProviderID, &p.Name, &p.Email, &p.Password,
		&p.CPF, &p.CNPJ, &p.Phone, &p.Role, &p.Approved,
		&p.Address.Street, &p.Address.Number, &p.Address.Complement,
		&p.Address.District, &p.Address.City, &p.Address.State,
		&p.Address.ZipCode, &p.Address.Receiver, &p.Address.Reference,
		&p.CreatedAt,
	}
}

func insertProfile(p models.Profile) error {
	return database.Scylla.Query(
		`INSERT INTO profiles (`+profileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Provider, p.ProviderID, p.Name, p.Email, p.Password,
		p.CPF, p.CNPJ, p.Phone, p.Role, p.Approved,
		p.Address.Street, p.Address.Number, p.Address.Complement,
		p.Address.District, p.Address.City, p.Address.State,
		p.Address.ZipCode, p.Address.Receiver, p.Address.Reference,
		p.CreatedAt,
	).Exec()
}

// FetchProfile carrega o perfil pelo id
func FetchProfile(id gocql.UUID) (models.Profile, error) {
	var p models.Profile
	err := database.Scylla.Query(
		`SELECT `+profileColumns+` FROM profiles WHERE profile_id = ?`, id,
	).Scan(profileDest(&p)...)
	return p, err
}

// findByEmail varre o índice de email e filtra pelo provider
func findByEmail(email, provider string) (models.Profile, bool) {
	iter := database.Scylla.Query(
		`SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email,
	).Iter()
	defer iter.Close()

	var p models.Profile
	for iter.Scan(profileDest(&p)...) {
		if p.Provider == provider {
			return p, true
		}
		p = models.Profile{}
	}
	return models.Profile{}, false
}

// ================== AUTH LOCAL ==================

// Signup cria o perfil. Cliente nasce aprovado; estofador precisa de
// CNPJ e espera a aprovação do admin para ver o preço de estofador.
func Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"`
		CPF      string `json:"cpf"`
		CNPJ     string `json:"cnpj"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleUpholsterer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Papel inválido"})
		return
	}
	if role == models.RoleUpholsterer && input.CNPJ == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CNPJ é obrigatório para estofadores"})
		return
	}

	if _, exists := findByEmail(input.Email, "local"); exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe uma conta com esse email"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar hash da senha"})
		return
	}

	p := models.Profile{
		ID:        gocql.TimeUUID(),
		Provider:  "local",
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		CPF:       input.CPF,
		CNPJ:      input.CNPJ,
		Phone:     input.Phone,
		Role:      role,
		Approved:  role == models.RoleCustomer,
		CreatedAt: time.Now(),
	}

	if err := insertProfile(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if role == models.RoleUpholsterer {
		log.Printf("🔔 Novo estofador aguardando aprovação: %s (%s)", p.Name, p.CNPJ)
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    generateJWT(p),
		"id":       p.ID.String(),
		"name":     p.Name,
		"email":    p.Email,
		"role":     p.Role,
		"approved": p.Approved,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, found := findByEmail(input.Email, "local")
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Conta não encontrada"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha incorreta"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    generateJWT(p),
		"id":       p.ID.String(),
		"name":     p.Name,
		"email":    p.Email,
		"role":     p.Role,
		"approved": p.Approved,
	})
}

// ================== AUTH SOCIAL ==================

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider não informado"})
		return
	}

	withProvider(c, provider)
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider não informado"})
		return
	}

	withProvider(c, provider)

	userInfo, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, found := findByEmail(userInfo.Email, provider)
	if !found {
		// Login social entra sempre como cliente; estofador faz o
		// cadastro completo com CNPJ pelo formulário
		p = models.Profile{
			ID:         gocql.TimeUUID(),
			Provider:   provider,
			ProviderID: userInfo.UserID,
			Name:       userInfo.Name,
			Email:      userInfo.Email,
			Role:       models.RoleCustomer,
			Approved:   true,
			CreatedAt:  time.Now(),
		}
		if err := insertProfile(p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar perfil"})
			return
		}
		log.Printf("✅ Novo perfil social criado: %s via %s", p.Email, provider)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    generateJWT(p),
		"provider": provider,
		"email":    p.Email,
		"name":     p.Name,
		"role":     p.Role,
	})
}

// ================== UTILITÁRIOS ==================

func generateJWT(p models.Profile) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  p.ID.String(),
		"email":    p.Email,
		"role":     p.Role,
		"approved": p.Approved,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, _ := token.SignedString(middleware.JWTSecret())
	return tokenString
}
