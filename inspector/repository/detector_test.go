package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_DetectProject(t *testing.T) {
	testCases := []struct {
		description  string
		files        map[string]string
		target       string
		expectType   string
		expectName   string
		expectRelDir string
	}{
		{
			description: "composer project",
			files: map[string]string{
				"composer.json":  `{"name": "acme/shop", "description": "Shop"}`,
				"src/Cart.php":   "<?php\n",
				"src/Item/X.php": "<?php\n",
			},
			target:       "src/Item/X.php",
			expectType:   "composer",
			expectName:   "acme/shop",
			expectRelDir: "src/Item/X.php",
		},
		{
			description: "composer without name",
			files: map[string]string{
				"composer.json": `{}`,
				"index.php":     "<?php\n",
			},
			target:       "index.php",
			expectType:   "composer",
			expectRelDir: "index.php",
		},
		{
			description: "git project with origin",
			files: map[string]string{
				".git/config": "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = git@github.com:acme/blog.git\n",
				"index.php":   "<?php\n",
			},
			target:       "index.php",
			expectType:   "git",
			expectName:   "blog",
			expectRelDir: "index.php",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			root := t.TempDir()
			for name, content := range testCase.files {
				location := filepath.Join(root, name)
				require.NoError(t, os.MkdirAll(filepath.Dir(location), 0755))
				require.NoError(t, os.WriteFile(location, []byte(content), 0644))
			}
			project, err := New().DetectProject(filepath.Join(root, testCase.target))
			require.NoError(t, err)
			assert.Equal(t, testCase.expectType, project.Type)
			assert.Equal(t, root, project.RootPath)
			assert.Equal(t, testCase.expectRelDir, project.RelativePath)
			expectName := testCase.expectName
			if expectName == "" {
				expectName = filepath.Base(root)
			}
			assert.Equal(t, expectName, project.Name)
		})
	}
}

func TestDetector_DetectRepository(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "config"), []byte("[remote \"origin\"]\n\turl = https://github.com/acme/app.git\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "composer.json"), []byte(`{"name":"acme/app"}`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))

	repo, err := New().DetectRepository(filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.Equal(t, "git", repo.Kind)
	assert.Equal(t, root, repo.Root)
	assert.Equal(t, "https://github.com/acme/app.git", repo.Origin)
	require.NotNil(t, repo.Info)
	assert.Equal(t, "composer", repo.Info.Type)
	assert.Equal(t, "acme/app", repo.Info.Name)
	assert.Equal(t, "src", repo.Info.RelativePath)

	_, err = New().DetectRepository(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestDetector_DetectProject_malformedComposer(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "composer.json"), []byte(`{"name": `), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.php"), []byte("<?php\n"), 0644))

	_, err := New().DetectProject(filepath.Join(root, "index.php"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}
