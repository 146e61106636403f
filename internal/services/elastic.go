package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"
	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const productIndex = "products"

//
// --- INDEXAÇÃO NO ELASTICSEARCH ---
//

// IndexProduct indexa um produto para a busca da loja
func IndexProduct(p models.Product) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic não inicializado, produto não indexado:", p.Name)
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erro ao enviar para o Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic retornou erro para %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Produto indexado no Elasticsearch: %s", p.Name)
	}
}

// RemoveProduct tira o produto do índice após exclusão no admin
func RemoveProduct(productID string) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{Index: productIndex, DocumentID: productID}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erro ao remover do Elastic:", err)
		return
	}
	res.Body.Close()
}

//
// --- BUSCA ---
//

// SearchProducts busca por nome, categoria e composição. Quem chama decide
// o fallback quando o Elastic está fora.
func SearchProducts(query string) ([]models.Product, error) {
	if database.Elastic == nil {
		return nil, errors.New("cliente Elasticsearch não inicializado")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "category", "composition"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erro ao codificar consulta: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erro na consulta ao Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("índice não encontrado ou vazio")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %v", err)
	}

	products := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
