package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	DBName        string
	Port          string
	ClientOrigin  string
	FBProjectID   string
	FBClientEmail string
	FBPrivateKey  string
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local; en producción se ignora.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return &Config{
		MongoURI:      getEnv("MONGODB_URI", ""),
		DBName:        getEnv("DB_NAME", "importExportHub"),
		Port:          getEnv("PORT", "8080"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", ""),
		FBProjectID:   getEnv("FB_PROJECT_ID", ""),
		FBClientEmail: getEnv("FB_CLIENT_EMAIL", ""),
		FBPrivateKey:  getEnv("FB_PRIVATE_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
