package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

const (
	// ComposerManifest marks a composer managed PHP project root
	ComposerManifest = "composer.json"
	gitMarker        = ".git"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs      afs.Service
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			ComposerManifest, // Composer projects
			gitMarker,        // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string, baseURL ...string) (*Project, error) {
	absPath, startDir, err := d.resolve(filePath)
	if err != nil {
		return nil, err
	}
	rootPath, projectType := d.findProjectRoot(startDir)

	info := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}
	if rootPath == "" && len(baseURL) > 0 && baseURL[0] != "" {
		info.RootPath = baseURL[0]
	} else if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	switch projectType {
	case "composer":
		manifest, err := d.loadComposer(filepath.Join(rootPath, ComposerManifest))
		if err != nil {
			return nil, err
		}
		info.Name = manifest.Name
		info.Description = manifest.Description
		if info.Name == "" {
			info.Name = filepath.Base(rootPath)
		}
	case "git":
		info.Name = extractGitProjectName(d.extractGitOrigin(rootPath), rootPath)
	}
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(filePath string) (*Repository, error) {
	_, startDir, err := d.resolve(filePath)
	if err != nil {
		return nil, err
	}
	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		repo := &Repository{
			Kind:   "git",
			Root:   gitRoot,
			Origin: d.extractGitOrigin(gitRoot),
		}
		if info, err := d.DetectProject(filePath); err == nil {
			repo.Info = info
		}
		return repo, nil
	}

	info, err := d.DetectProject(filePath)
	if err != nil {
		return nil, err
	}
	return &Repository{
		Kind: info.Type,
		Root: info.RootPath,
		Info: info,
	}, nil
}

// resolve returns absolute path and directory to start search from
func (d *Detector) resolve(filePath string) (string, string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", "", err
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return "", "", err
	}
	if !fileInfo.IsDir() {
		return absPath, filepath.Dir(absPath), nil
	}
	return absPath, absPath, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, gitMarker)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || homeDir == parent {
			return ""
		}
		dir = parent
	}
}

type composerManifest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// loadComposer reads and decodes composer manifest
func (d *Detector) loadComposer(location string) (*composerManifest, error) {
	data, err := d.fs.DownloadWithURL(context.Background(), location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	manifest := &composerManifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", location, err)
	}
	return manifest, nil
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(gitRoot string) string {
	data, err := d.fs.DownloadWithURL(context.Background(), filepath.Join(gitRoot, gitMarker, "config"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = strings.Contains(line, `[remote "origin"]`)
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

func extractGitProjectName(origin, gitRoot string) string {
	if origin = strings.TrimSuffix(origin, ".git"); origin != "" {
		parts := strings.Split(origin, "/")
		if name := parts[len(parts)-1]; name != "" {
			return name
		}
	}
	return filepath.Base(gitRoot)
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case ComposerManifest:
		return "composer"
	case gitMarker:
		return "git"
	default:
		return "unknown"
	}
}
