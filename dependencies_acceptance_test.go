package staykit_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestModuleDependencies_GinPresent(t *testing.T) {
	testModulePresence(t, "github.com/gin-gonic/gin")
}

func TestModuleDependencies_KoanfPresent(t *testing.T) {
	testModulePresence(t, "github.com/knadh/koanf/v2")
}

func TestModuleDependencies_GormPresent(t *testing.T) {
	testModulePresence(t, "gorm.io/gorm")
}

func TestModuleDependencies_QueryStringPresent(t *testing.T) {
	testModulePresence(t, "github.com/google/go-querystring")
}

func TestModuleDependencies_WebsocketPresent(t *testing.T) {
	testModulePresence(t, "github.com/gorilla/websocket")
}

func TestModuleDependencies_JWTPresent(t *testing.T) {
	testModulePresence(t, "github.com/golang-jwt/jwt/v5")
}

func TestModuleDependencies_XSyncPresent(t *testing.T) {
	testModulePresence(t, "golang.org/x/sync")
}

func TestModuleDependencies_UUIDPresent(t *testing.T) {
	testModulePresence(t, "github.com/google/uuid")
}

func TestClientPackages_NoGinImport(t *testing.T) {
	t.Run("happy_client_tree_is_gin_free", func(t *testing.T) {
		matches := make([]string, 0)
		for _, dir := range []string{"internal/rest", "internal/service", "internal/notify"} {
			found, err := findGinImports(dir)
			if err != nil {
				t.Fatalf("scan %s: %v", dir, err)
			}
			matches = append(matches, found...)
		}
		if len(matches) != 0 {
			t.Fatalf("expected no gin imports in client packages, found in: %v", matches)
		}
	})

	t.Run("error_fixture_with_gin_import_is_detected", func(t *testing.T) {
		fixture := `package client

import "github.com/gin-gonic/gin"

var _ = gin.New`
		if !hasGinImport(fixture) {
			t.Fatal("expected gin import to be detected in fixture")
		}
	})
}

func testModulePresence(t *testing.T, module string) {
	t.Helper()

	t.Run("happy_present_in_real_go_mod", func(t *testing.T) {
		goMod, err := os.ReadFile("go.mod")
		if err != nil {
			t.Fatalf("read go.mod: %v", err)
		}
		if !moduleRequired(string(goMod), module) {
			t.Fatalf("expected module %q to be present in go.mod", module)
		}
	})

	t.Run("error_missing_module_in_fixture", func(t *testing.T) {
		fixture := `module example.com/demo

go 1.25.0

require (
	github.com/stretchr/testify v1.11.1
)`
		if moduleRequired(fixture, module) {
			t.Fatalf("expected fixture to not contain module %q", module)
		}
	})
}

func moduleRequired(goModContent, module string) bool {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(module) + `\s+v\S+`)
	return re.MatchString(goModContent)
}

func findGinImports(root string) ([]string, error) {
	matches := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		b, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		if hasGinImport(string(b)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func hasGinImport(content string) bool {
	return strings.Contains(content, `"github.com/gin-gonic/gin"`)
}
