package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	original := &Config{
		Package: PackageInfo{Name: "calc", Version: "1.2.3"},
		Build:   BuildInfo{Output: "calc.snb", Kind: "exe"},
	}
	if err := original.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *original {
		t.Errorf("loaded = %+v, want %+v", loaded, original)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load should fail for missing file")
	}
}

func TestGenerateDefault(t *testing.T) {
	cfg := GenerateDefault("/home/user/My Project")
	if cfg.Package.Name != "my-project" {
		t.Errorf("name = %q, want my-project", cfg.Package.Name)
	}
	if cfg.Package.Version != "0.1.0" {
		t.Errorf("version = %q, want 0.1.0", cfg.Package.Version)
	}
	if cfg.Build.Kind != "exe" {
		t.Errorf("kind = %q, want exe", cfg.Build.Kind)
	}
	if cfg.Build.Output != "my-project.snb" {
		t.Errorf("output = %q, want my-project.snb", cfg.Build.Output)
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(root, ConfigFileName)
	if err := GenerateDefault(root).Save(configPath); err != nil {
		t.Fatal(err)
	}

	// 从深层子目录向上找到根配置
	found := FindConfigFile(sub)
	if found == "" {
		t.Fatal("config file not found from nested dir")
	}
	if filepath.Dir(found) != Root(sub) {
		t.Errorf("Root() = %q, inconsistent with found path %q", Root(sub), found)
	}
}

func TestFindConfigFileAbsent(t *testing.T) {
	if found := FindConfigFile(t.TempDir()); found != "" {
		t.Errorf("found unexpected config: %q", found)
	}
}
