package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_GetDSN(t *testing.T) {
	mysqlCfg := DatabaseConfig{Driver: DriverMySQL, Host: "db", Port: 3306, Username: "u", Password: "p", Database: "deskflow"}
	assert.Equal(t, "u:p@tcp(db:3306)/deskflow?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC", mysqlCfg.GetDSN())
	assert.Equal(t, "mysql", mysqlCfg.GooseDialect())

	pgCfg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, Username: "u", Password: "p", Database: "deskflow"}
	assert.Contains(t, pgCfg.GetDSN(), "sslmode=disable")
	assert.Equal(t, "postgres", pgCfg.GooseDialect())

	liteCfg := DatabaseConfig{Driver: DriverSQLite, Database: "deskflow.db"}
	assert.Equal(t, "deskflow.db", liteCfg.GetDSN())
	assert.Equal(t, "sqlite3", liteCfg.GooseDialect())
}

func TestKafkaConfig_BrokerList(t *testing.T) {
	k := KafkaConfig{Brokers: " kafka-1:9092, ,kafka-2:9092 "}
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, k.BrokerList())

	empty := KafkaConfig{}
	assert.Empty(t, empty.BrokerList())
}

func TestServerConfig_OriginList(t *testing.T) {
	s := ServerConfig{AllowedOrigins: "https://desk.example.com,http://localhost:3000"}
	assert.Equal(t, []string{"https://desk.example.com", "http://localhost:3000"}, s.OriginList())
}
