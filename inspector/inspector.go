package inspector

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/phplint/inspector/php"
	"github.com/viant/phplint/token"
)

// Inspector provides an interface for tokenizing source code
type Inspector interface {
	// InspectSource tokenizes source code from a byte slice
	InspectSource(src []byte, filename string) (*token.Stream, error)

	// InspectFile downloads and tokenizes a source file, it also returns file content
	InspectFile(ctx context.Context, URL string) (*token.Stream, []byte, error)
}

// Extensions lists supported source file extensions
var Extensions = []string{".php", ".phtml", ".inc"}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	fs  afs.Service
	php *php.Inspector
}

// NewFactory creates a new inspector factory, nil fs defaults to afs.New()
func NewFactory(fs afs.Service) *Factory {
	if fs == nil {
		fs = afs.New()
	}
	return &Factory{fs: fs, php: php.NewInspector(fs)}
}

// IsSupported returns true if filename has a supported extension
func IsSupported(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, candidate := range Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	if !IsSupported(filename) {
		return nil, fmt.Errorf("unsupported file type: %s", path.Ext(filename))
	}
	return f.php, nil
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(ctx context.Context, URL string) (*token.Stream, []byte, error) {
	inspector, err := f.GetInspector(URL)
	if err != nil {
		return nil, nil, err
	}
	return inspector.InspectFile(ctx, URL)
}
