package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p Postgres) ConnStr() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

func (p Postgres) ReplicationConnStr() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s replication=database", p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

type Nats struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	Stream          string `mapstructure:"stream"`
	ProductsSubject string `mapstructure:"productsSubject"`
}

func (n Nats) ConnStr() string {
	return fmt.Sprintf("nats://%s:%s", n.Host, n.Port)
}

type Replication struct {
	Name string `mapstructure:"name"`
	Slot string `mapstructure:"slot"`
}

type Ollama struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	EmbeddingModel string `mapstructure:"embeddingModel"`
}

func (o *Ollama) Address() string {
	return fmt.Sprintf("http://%s:%s", o.Host, o.Port)
}

// Groq configures the language-model collaborator. The API key comes from the
// environment only (GROQ_APIKEY); the agent refuses to start without it.
type Groq struct {
	APIKey  string `mapstructure:"apikey"`
	BaseURL string `mapstructure:"baseUrl"`
	Model   string `mapstructure:"model"`
}

type Server struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Embedder struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queueSize"`
}

type Catalog struct {
	Path string `mapstructure:"path"`
}

// Assistant tunes the conversation core. HistoryLimit bounds retained
// history entries (rounded down to user+bot pairs); the caps are presentation
// concerns applied before formatting, not filter invariants.
type Assistant struct {
	HistoryLimit    int `mapstructure:"historyLimit"`
	MaxProducts     int `mapstructure:"maxProducts"`
	MaxDocs         int `mapstructure:"maxDocs"`
	FallbackResults int `mapstructure:"fallbackResults"`
	RetrieverTopK   int `mapstructure:"retrieverTopK"`
}

type Config struct {
	Postgres    Postgres    `mapstructure:"postgres"`
	Nats        Nats        `mapstructure:"nats"`
	Ollama      Ollama      `mapstructure:"ollama"`
	Groq        Groq        `mapstructure:"groq"`
	Replication Replication `mapstructure:"replication"`
	Server      Server      `mapstructure:"server"`
	Embedder    Embedder    `mapstructure:"embedder"`
	Catalog     Catalog     `mapstructure:"catalog"`
	Assistant   Assistant   `mapstructure:"assistant"`
}

func LoadConfig() *Config {
	viper.SetConfigFile("./config/config.yaml")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Registered so AutomaticEnv can fill it from GROQ_APIKEY.
	viper.SetDefault("groq.apikey", "")
	viper.SetDefault("groq.baseUrl", "https://api.groq.com/openai/v1")
	viper.SetDefault("groq.model", "llama-3.1-8b-instant")
	viper.SetDefault("catalog.path", "./new_export.csv")
	viper.SetDefault("assistant.historyLimit", 12)
	viper.SetDefault("assistant.maxProducts", 5)
	viper.SetDefault("assistant.maxDocs", 3)
	viper.SetDefault("assistant.fallbackResults", 2)
	viper.SetDefault("assistant.retrieverTopK", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal(err)
	}

	return &config
}
