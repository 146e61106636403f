package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

// ListPendingUpholsterers lista os estofadores aguardando aprovação
func ListPendingUpholsterers(c *gin.Context) {
	iter := database.Scylla.Query(
		`SELECT profile_id, name, email, cnpj, phone, approved, created_at FROM profiles WHERE role = ?`,
		models.RoleUpholsterer,
	).Iter()

	pending := []models.Profile{}
	var p models.Profile
	for iter.Scan(&p.ID, &p.Name, &p.Email, &p.CNPJ, &p.Phone, &p.Approved, &p.CreatedAt) {
		if !p.Approved {
			p.Role = models.RoleUpholsterer
			pending = append(pending, p)
		}
		p = models.Profile{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// ApproveUpholsterer libera o preço de estofador para o perfil
func ApproveUpholsterer(c *gin.Context) {
	id, ok := upholstererFromPath(c)
	if !ok {
		return
	}

	if err := database.Scylla.Query(
		`UPDATE profiles SET approved = ? WHERE profile_id = ?`, true, id,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("✅ Estofador %s aprovado", id)
	c.JSON(http.StatusOK, gin.H{"profile_id": id.String(), "approved": true})
}

// RejectUpholsterer nega o cadastro pendente e remove o perfil; o
// candidato pode se cadastrar de novo com os dados corrigidos
func RejectUpholsterer(c *gin.Context) {
	id, ok := upholstererFromPath(c)
	if !ok {
		return
	}

	if err := database.Scylla.Query(
		`DELETE FROM profiles WHERE profile_id = ?`, id,
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("⚠️ Estofador %s rejeitado e removido", id)
	c.JSON(http.StatusOK, gin.H{"profile_id": id.String(), "rejected": true})
}

func upholstererFromPath(c *gin.Context) (gocql.UUID, bool) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de perfil inválido"})
		return gocql.UUID{}, false
	}

	var role string
	err = database.Scylla.Query(`SELECT role FROM profiles WHERE profile_id = ?`, id).Scan(&role)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Perfil não encontrado"})
		return gocql.UUID{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return gocql.UUID{}, false
	}

	if role != models.RoleUpholsterer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Perfil não é estofador"})
		return gocql.UUID{}, false
	}

	return id, true
}
