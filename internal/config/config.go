package config

import (
	"log"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Nenhum arquivo .env encontrado, seguindo com as variáveis de ambiente do sistema")
	} else {
		log.Println("✅ Arquivo .env carregado com sucesso")
	}
}
