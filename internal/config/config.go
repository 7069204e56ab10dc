// Package config loads the repository list and credentials used by the tool.
// Everything is read once at startup and passed by parameter from there;
// no component reads the environment on its own.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/harukei/github-digest/internal/domain"
)

// Credentials holds the access token and account identifier, both required
// before any network activity can start.
type Credentials struct {
	Token string
	User  string
}

// LoadCredentials reads GITHUB_TOKEN and GITHUB_USER from the environment.
// A .env file in the working directory is loaded first when present.
func LoadCredentials() (Credentials, error) {
	_ = godotenv.Load(".env") // optional

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return Credentials{}, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}
	user := os.Getenv("GITHUB_USER")
	if user == "" {
		return Credentials{}, fmt.Errorf("GITHUB_USER environment variable is not set")
	}
	return Credentials{Token: token, User: user}, nil
}

type repoFile struct {
	Repositories []domain.Repository `yaml:"repositories"`
}

// LoadRepositories reads the ordered repository list from a YAML file.
func LoadRepositories(path string) ([]domain.Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository config: %w", err)
	}
	var f repoFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse repository config: %w", err)
	}
	return f.Repositories, nil
}
