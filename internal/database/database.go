package database

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// --- Clientes Globais ---
var (
	Scylla  *gocql.Session
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
)

// ConnectDatabases inicializa todas as conexões na ordem de dependência
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectScylla()
	connectRedis(ctx)
	connectElastic()
	connectMinIO(ctx)

	log.Println("✅ Todas as bases de dados conectadas")
}

// =============================================
// SCYLLA DB
// =============================================

func connectScylla() {
	hosts := strings.Split(os.Getenv("SCYLLA_HOSTS"), ",")
	keyspace := os.Getenv("SCYLLA_KEYSPACE")
	if keyspace == "" {
		keyspace = "rio_verde"
	}

	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 10
	cluster.ReconnectInterval = 1 * time.Second

	if user := os.Getenv("SCYLLA_USERNAME"); user != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: user,
			Password: os.Getenv("SCYLLA_PASSWORD"),
		}
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no ScyllaDB: %v", err)
	}

	// Tabelas criadas manualmente via scripts/scylla_init.cql
	Scylla = session
	log.Printf("✅ Conectado ao ScyllaDB (keyspace %q)", keyspace)
}

// CloseScylla fecha a sessão do ScyllaDB
func CloseScylla() {
	if Scylla != nil {
		Scylla.Close()
		log.Println("🔌 Sessão ScyllaDB encerrada")
	}
}

// =============================================
// REDIS
// =============================================

func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erro na conexão com o Redis:", err)
	}
	log.Println("✅ Conectado ao Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================

func connectElastic() {
	cfg := elasticsearch.Config{
		Addresses: []string{os.Getenv("ELASTIC_URL")},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Fatal("❌ Erro ao criar cliente Elasticsearch:", err)
	}

	res, err := client.Info()
	if err != nil {
		// A busca tem fallback por varredura no Scylla, então o Elastic
		// fora do ar não derruba o servidor
		log.Println("⚠️ Elasticsearch indisponível, busca usará o fallback:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Conectado ao Elasticsearch")
}

// =============================================
// MINIO
// =============================================

func connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatal("❌ Erro na conexão com o MinIO:", err)
	}

	bucketName := os.Getenv("MINIO_BUCKET")
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Fatal("❌ Erro ao verificar bucket MinIO:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("❌ Erro ao criar bucket MinIO:", err)
		}
		log.Println("🪣 Bucket criado:", bucketName)
	} else {
		log.Println("🪣 Bucket MinIO já existe:", bucketName)
	}

	MinIO = client
	log.Println("✅ Conectado ao MinIO:", endpoint)
}
