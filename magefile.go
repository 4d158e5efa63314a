//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir = "bin"
	tmpDir = "tmp"

	// binary name -> main package
	commands = map[string]string{
		"admin-web":     "./cmd/web",
		"admin-tui":     "./cmd/tui",
		"admin-mockapi": "./cmd/tools/mockapi",
	}
)

var Default = Dev

// templVersion matches the a-h/templ require in go.mod; generated files
// record the generator version.
const templVersion = "v0.2.793"

// Dev runs the web front-end against a local mock backend.
func Dev() error {
	mg.Deps(Tidy, Gen)

	mock := exec.Command("go", "run", "./cmd/tools/mockapi", "-latency", "400ms")
	mock.Stdout, mock.Stderr = os.Stdout, os.Stderr
	if err := mock.Start(); err != nil {
		return err
	}
	defer func() { _ = mock.Process.Kill() }()

	env := map[string]string{"API_BASE_URL": "http://localhost:5000/api", "LOG_LEVEL": "debug"}
	return sh.RunWithV(env, "go", "run", "./cmd/web")
}

// Gen regenerates the *_templ.go page components from templates/pages.
func Gen() error {
	if _, err := exec.LookPath("templ"); err != nil {
		return fmt.Errorf("templ not found. Install with: mage Tools")
	}
	fmt.Println("Generating templ components...")
	return sh.RunV("templ", "generate", "-path", "./templates")
}

func Run() error {
	mg.Deps(Gen)
	fmt.Println("Running (go run) on :8080 ...")
	return sh.RunV("go", "run", "./cmd/web")
}

// MockAPI serves the seeded in-memory backend on :5000.
func MockAPI() error {
	return sh.RunV("go", "run", "./cmd/tools/mockapi")
}

// TUI starts the terminal front-end.
func TUI() error {
	return sh.RunV("go", "run", "./cmd/tui")
}

func Build() error {
	mg.Deps(Tidy, Gen)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	env := map[string]string{"CGO_ENABLED": "0"}
	for name, pkg := range commands {
		out := filepath.Join(binDir, name+exeSuffix())
		fmt.Println("Building:", out)
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

func Test() error {
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...", "-count=1")
}

func TestRace() error {
	fmt.Println("Testing with -race...")
	return sh.RunV("go", "test", "./...", "-race", "-count=1")
}

func Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("gofmt", "-w", "./cmd", "./internal", "./pkg", "./templates", "./magefile.go")
}

func Lint() error {
	fmt.Println("Linting (golangci-lint)...")
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		return fmt.Errorf("golangci-lint not found. Install with: mage Tools")
	}
	return sh.RunV("golangci-lint", "run", "--timeout=3m", "./...")
}

func Check() error {
	mg.Deps(Gen, Fmt, Lint, TestRace)
	fmt.Println("Check OK.")
	return nil
}

func Tidy() error {
	fmt.Println("Tidying go.mod/go.sum...")
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	fmt.Println("Cleaning...")
	_ = os.RemoveAll(binDir)
	_ = os.RemoveAll(tmpDir)
	return nil
}

// Tools installs templ and golangci-lint.
func Tools() error {
	fmt.Println("Installing tools (templ, golangci-lint)...")
	if err := sh.RunV("go", "install", "github.com/a-h/templ/cmd/templ@"+templVersion); err != nil {
		return err
	}
	if err := sh.RunV("go", "install", "github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest"); err != nil {
		return err
	}
	fmt.Println("Tools installed. Ensure GOBIN/GOPATH/bin is in PATH.")
	return nil
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
