package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

func currentProfileID(c *gin.Context) (gocql.UUID, bool) {
	raw, ok := c.Get("user_id")
	if !ok {
		return gocql.UUID{}, false
	}
	id, err := gocql.ParseUUID(raw.(string))
	if err != nil {
		return gocql.UUID{}, false
	}
	return id, true
}

// Me devolve o perfil do token
func Me(c *gin.Context) {
	id, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	p, err := FetchProfile(id)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Perfil não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProfile atualiza dados de contato e o endereço de entrega padrão
func UpdateProfile(c *gin.Context) {
	id, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	p, err := FetchProfile(id)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Perfil não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var body struct {
		Name    *string         `json:"name"`
		Phone   *string         `json:"phone"`
		CPF     *string         `json:"cpf"`
		Address *models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Name != nil {
		p.Name = *body.Name
	}
	if body.Phone != nil {
		p.Phone = *body.Phone
	}
	if body.CPF != nil {
		p.CPF = *body.CPF
	}
	if body.Address != nil {
		p.Address = *body.Address
	}

	err = database.Scylla.Query(
		`UPDATE profiles SET name = ?, phone = ?, cpf = ?, street = ?, number = ?, complement = ?, district = ?, city = ?, state = ?, zip_code = ?, receiver = ?, reference = ? WHERE profile_id = ?`,
		p.Name, p.Phone, p.CPF,
		p.Address.Street, p.Address.Number, p.Address.Complement,
		p.Address.District, p.Address.City, p.Address.State,
		p.Address.ZipCode, p.Address.Receiver, p.Address.Reference,
		p.ID,
	).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}
