package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukei/github-digest/internal/domain"
)

func TestLoadCredentials(t *testing.T) {
	testCases := []struct {
		name           string
		token          string
		user           string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:  "both values present",
			token: "ghp_example",
			user:  "octocat",
		},
		{
			name:           "missing token",
			token:          "",
			user:           "octocat",
			expectError:    true,
			expectedErrMsg: "GITHUB_TOKEN",
		},
		{
			name:           "missing user",
			token:          "ghp_example",
			user:           "",
			expectError:    true,
			expectedErrMsg: "GITHUB_USER",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tc.token)
			t.Setenv("GITHUB_USER", tc.user)

			creds, err := LoadCredentials()
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, Credentials{Token: tc.token, User: tc.user}, creds)
			}
		})
	}
}

func TestLoadRepositories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.yaml")
	content := `repositories:
  - name: alpha
    label: Alpha
  - name: beta
    label: Beta
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repos, err := LoadRepositories(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{
		{Name: "alpha", Label: "Alpha"},
		{Name: "beta", Label: "Beta"},
	}, repos, "list order follows the file")
}

func TestLoadRepositories_MissingFile(t *testing.T) {
	_, err := LoadRepositories(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read repository config")
}

func TestLoadRepositories_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repositories: [pure nonsense"), 0o644))

	_, err := LoadRepositories(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse repository config")
}
