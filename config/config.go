package config

import (
	"log"
	"os"
	"strconv"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

var Cloudinary *cloudinary.Cloudinary

// ConnectCloudinary reads CLOUDINARY_URL; without it receipt upload is disabled
func ConnectCloudinary() error {
	url := GetEnv("CLOUDINARY_URL")
	if url == "" {
		log.Println("CLOUDINARY_URL not set, receipt upload disabled")
		return nil
	}
	var err error
	Cloudinary, err = cloudinary.NewFromURL(url)
	return err
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
