package config

import (
	"fmt"
	"os"
	"path"

	"github.com/joho/godotenv"
)

// FileSystem abstracts the file operations the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem on the local disk.
type RealFileSystem struct{}

func (RealFileSystem) Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func (RealFileSystem) LoadEnv(p string) error {
	return godotenv.Load(p)
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolver finds a service's config.yml and .env file.
type Resolver struct {
	FileSystem FileSystem
}

// ResolveFiles returns explicit paths when given, otherwise searches the
// standard locations relative to the working directory.
func (r *Resolver) ResolveFiles(serviceName string, lc LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(configCandidates(serviceName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envCandidates(serviceName))
	}
	return resolved
}

func (r *Resolver) first(candidates []string) string {
	for _, p := range candidates {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func configCandidates(serviceName string) []string {
	var out []string
	for _, prefix := range []string{".", "..", "../.."} {
		out = append(out, path.Join(prefix, "cmd", serviceName, "config.yml"))
	}
	return append(out, "./config/config.yml", "../config/config.yml", "./config.yml")
}

func envCandidates(serviceName string) []string {
	var out []string
	for _, name := range []string{fmt.Sprintf(".env.%s", serviceName), ".env"} {
		for _, dir := range []string{
			path.Join("cmd", serviceName), path.Join("..", "cmd", serviceName),
			"config", "../config",
			".", "..", "../..",
		} {
			out = append(out, path.Join(dir, name))
		}
	}
	return out
}
