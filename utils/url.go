package utils

import "os"

// GenerateDownloadLink builds an absolute URL for a generated file path.
func GenerateDownloadLink(filePath string) string {
	port := os.Getenv("PORT")
	appEnv := os.Getenv("APP_ENV")

	baseURL := "http://localhost:" + port
	if appEnv == "production" {
		baseURL = os.Getenv("BASE_URL")
	}

	return baseURL + filePath
}
