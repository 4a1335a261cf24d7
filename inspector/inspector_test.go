package inspector_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/phplint/inspector"
)

func TestFactory_GetInspector(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantErr   bool
		inspector string
	}{
		{
			name:      "PHP file",
			filename:  "Foo.php",
			inspector: "php",
		},
		{
			name:      "Upper case extension",
			filename:  "Foo.PHP",
			inspector: "php",
		},
		{
			name:      "Template file",
			filename:  "view.phtml",
			inspector: "php",
		},
		{
			name:      "Include file",
			filename:  "config.inc",
			inspector: "php",
		},
		{
			name:     "Unsupported file",
			filename: "main.go",
			wantErr:  true,
		},
	}

	factory := inspector.NewFactory(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insp, err := factory.GetInspector(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("Factory.GetInspector() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if insp == nil {
				t.Errorf("Factory.GetInspector() returned nil inspector")
				return
			}
			if inspType := reflect.TypeOf(insp).String(); !strings.Contains(inspType, tt.inspector) {
				t.Errorf("Factory.GetInspector() returned %s inspector, want %s", inspType, tt.inspector)
			}
		})
	}
}

func TestFactory_InspectFile(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "index.php")
	require.NoError(t, os.WriteFile(location, []byte("<?php\n$fooBar = 1;\n"), 0644))

	factory := inspector.NewFactory(nil)
	stream, src, err := factory.InspectFile(context.Background(), location)
	require.NoError(t, err)
	assert.NotZero(t, stream.Len())
	assert.Equal(t, "<?php\n$fooBar = 1;\n", string(src))

	_, _, err = factory.InspectFile(context.Background(), filepath.Join(dir, "README.md"))
	assert.Error(t, err)
}
