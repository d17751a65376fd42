package config

// ServerConfig holds configuration for the fixture menu server
type ServerConfig struct {
	Port         string
	TemplatesDir string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080"
	}

	templates := getenv("MENUCHECK_TEMPLATES")
	if templates == "" {
		templates = "templates"
	}

	return ServerConfig{
		Port:         port,
		TemplatesDir: templates,
	}
}
