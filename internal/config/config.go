// Package config loads service configuration from environment variables.
// Every service reads the same keys; a key prefixed with the service name
// (LANE_APP_PORT, SHOE_DB_HOST, ...) wins over the shared key so that all
// services can share one .env file during development.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Service names one of the deployable processes.
type Service string

const (
	ServiceLane        Service = "lane"
	ServiceBall        Service = "ball"
	ServiceShoe        Service = "shoe"
	ServiceTransaction Service = "transaction"
	ServiceGateway     Service = "gateway"
)

// IDFormat selects how strictly path identifiers are checked before they
// reach the store.
type IDFormat string

const (
	IDFormatUUID IDFormat = "uuid" // must parse as a UUID
	IDFormatAny  IDFormat = "any"  // any non-blank string
)

// Accepts reports whether id satisfies the policy.
func (f IDFormat) Accepts(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	if f == IDFormatUUID {
		_, err := uuid.Parse(id)
		return err == nil
	}
	return true
}

// DBConfig describes one relational datastore.  Driver is "mysql" or
// "postgres".
type DBConfig struct {
	Driver string
	User   string
	Pass   string
	Host   string
	Port   string
	Name   string
}

// ClientsConfig holds the base URLs of downstream services.  Only
// transaction-service and the gateway use it.
type ClientsConfig struct {
	LaneURL        string
	BallURL        string
	ShoeURL        string
	TransactionURL string
}

// Config is the immutable runtime configuration of one service.  It is
// built once at startup and passed by value into constructors.
type Config struct {
	Service        Service
	Env            string   // application environment (dev, test, prod)
	Port           string   // HTTP port to listen on
	IDFormat       IDFormat // path id policy
	DB             DBConfig
	Clients        ClientsConfig
	AMQPURL        string // RabbitMQ URL; empty disables event publishing
	JWTSecret      string // gateway write guard; empty disables it
	SeedSampleData bool   // insert sample transactions into an empty store
	LogDownstream  bool   // log every downstream URL called
}

type defaults struct {
	port     string
	idFormat IDFormat
	driver   string
	dbPort   string
	dbName   string
}

var serviceDefaults = map[Service]defaults{
	ServiceGateway:     {port: "8080", idFormat: IDFormatUUID},
	ServiceLane:        {port: "8081", idFormat: IDFormatAny, driver: "mysql", dbPort: "3306", dbName: "lane_db"},
	ServiceBall:        {port: "8082", idFormat: IDFormatAny, driver: "mysql", dbPort: "3306", dbName: "bowlingball_db"},
	ServiceShoe:        {port: "8083", idFormat: IDFormatUUID, driver: "postgres", dbPort: "5432", dbName: "shoe_db"},
	ServiceTransaction: {port: "8084", idFormat: IDFormatUUID, driver: "mysql", dbPort: "3306", dbName: "transaction_db"},
}

// LoadDotEnv loads a .env file from the working directory when one exists.
// A missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: could not read .env: %v", err)
	}
}

// Load builds the Config for svc.  An unknown service or an invalid id
// format is fatal.
func Load(svc Service) Config {
	def, ok := serviceDefaults[svc]
	if !ok {
		log.Fatalf("config: unknown service %q", svc)
	}
	cfg := Config{
		Service:  svc,
		Env:      lookup(svc, "APP_ENV", "dev"),
		Port:     lookup(svc, "APP_PORT", def.port),
		IDFormat: IDFormat(strings.ToLower(lookup(svc, "ID_FORMAT", string(def.idFormat)))),
		DB: DBConfig{
			Driver: lookup(svc, "DB_DRIVER", def.driver),
			User:   lookup(svc, "DB_USER", "root"),
			Pass:   lookup(svc, "DB_PASS", ""),
			Host:   lookup(svc, "DB_HOST", "localhost"),
			Port:   lookup(svc, "DB_PORT", def.dbPort),
			Name:   lookup(svc, "DB_NAME", def.dbName),
		},
		Clients: ClientsConfig{
			LaneURL:        serviceURL(svc, "LANE_SERVICE", serviceDefaults[ServiceLane].port),
			BallURL:        serviceURL(svc, "BOWLINGBALL_SERVICE", serviceDefaults[ServiceBall].port),
			ShoeURL:        serviceURL(svc, "SHOE_SERVICE", serviceDefaults[ServiceShoe].port),
			TransactionURL: serviceURL(svc, "TRANSACTION_SERVICE", serviceDefaults[ServiceTransaction].port),
		},
		AMQPURL:        lookup(svc, "RABBITMQ_URL", ""),
		JWTSecret:      lookup(svc, "JWT_SECRET", ""),
		SeedSampleData: parseBool(lookup(svc, "SEED_SAMPLE_DATA", ""), false),
		LogDownstream:  parseBool(lookup(svc, "LOG_DOWNSTREAM", ""), false),
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.IDFormat {
	case IDFormatUUID, IDFormatAny:
	default:
		return fmt.Errorf("invalid ID_FORMAT %q (want uuid or any)", c.IDFormat)
	}
	if c.Port == "" {
		return fmt.Errorf("APP_PORT is empty")
	}
	switch c.DB.Driver {
	case "", "mysql", "postgres":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (want mysql or postgres)", c.DB.Driver)
	}
	return nil
}

// lookup returns <SERVICE>_<key>, then <key>, then def.
func lookup(svc Service, key, def string) string {
	if v := os.Getenv(strings.ToUpper(string(svc)) + "_" + key); v != "" {
		return v
	}
	return envStr(key, def)
}

// serviceURL resolves a downstream base URL.  <name>_URL wins; otherwise
// the URL is built from <name>_HOST and <name>_PORT.
func serviceURL(svc Service, name, defPort string) string {
	if u := lookup(svc, name+"_URL", ""); u != "" {
		return strings.TrimRight(u, "/")
	}
	host := lookup(svc, name+"_HOST", "localhost")
	port := lookup(svc, name+"_PORT", defPort)
	return "http://" + host + ":" + port
}
