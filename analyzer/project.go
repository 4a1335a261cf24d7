package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/phplint/inspector"
	"golang.org/x/sync/errgroup"
)

// excluded lists directory names whose content is never analyzed
var excluded = []string{"vendor", ".git", "node_modules"}

// AnalyzeProject analyzes a PHP file or every PHP file under a directory
func (a *Analyzer) AnalyzeProject(ctx context.Context, URL string) (*Report, error) {
	object, err := a.fs.Object(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", URL, err)
	}
	report := &Report{Location: URL}
	if project, err := a.detector.DetectProject(url.Path(URL)); err == nil {
		report.Project = project
	} else {
		a.logger.Debug("project not detected", "url", URL, "error", err)
	}
	if !object.IsDir() {
		result, err := a.AnalyzeFile(ctx, URL)
		if err != nil {
			return nil, err
		}
		report.Files = []*FileResult{result}
		report.summarize()
		return report, nil
	}

	files, err := a.projectFiles(ctx, URL)
	if err != nil {
		return nil, err
	}
	report.Files = make([]*FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			src, err := a.fs.DownloadWithURL(gctx, file.URL)
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", file.URL, err)
			}
			result, err := a.AnalyzeSource(file.URL, src)
			if err != nil {
				a.logger.Warn("failed to analyze file", "url", file.URL, "error", err)
				result = &FileResult{URL: file.URL, Hash: a.cache.sum(src), Error: err.Error()}
			}
			report.Files[i] = &FileResult{
				URL:         result.URL,
				Path:        file.Path,
				Hash:        result.Hash,
				Error:       result.Error,
				Diagnostics: result.Diagnostics,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report.summarize()
	errors, warnings := report.Counts()
	a.logger.Info("analyzed project", "url", URL, "files", len(report.Files), "errors", errors, "warnings", warnings)
	return report, nil
}

type projectFile struct {
	URL  string
	Path string
}

// projectFiles returns supported files under URL sorted by relative path
func (a *Analyzer) projectFiles(ctx context.Context, URL string) ([]*projectFile, error) {
	var files []*projectFile
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() || isExcluded(parent) || !inspector.IsSupported(info.Name()) {
			return true, nil
		}
		relative := path.Join(strings.Trim(parent, "/"), info.Name())
		files = append(files, &projectFile{
			URL:  url.Join(baseURL, relative),
			Path: relative,
		})
		return true, nil
	}
	if err := a.fs.Walk(ctx, URL, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", URL, err)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func isExcluded(parent string) bool {
	for _, segment := range strings.Split(parent, "/") {
		for _, name := range excluded {
			if segment == name {
				return true
			}
		}
	}
	return false
}
