// Package healthcheck reports on the runtime environment of the tool.
package healthcheck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"aita/pkg/schema"
)

// ProjectMarker identifies the project root when walking up from cwd.
const ProjectMarker = "go.mod"

// Info is a snapshot of the environment.
type Info struct {
	ReportID            string `json:"report_id"`
	TimestampUTC        string `json:"timestamp_utc"`
	CWD                 string `json:"cwd"`
	ProjectRoot         string `json:"project_root"`
	ProjectRootDetected bool   `json:"project_root_detected"`
	GoVersion           string `json:"go_version"`
	Executable          string `json:"executable"`
	ModulePath          string `json:"module_path"`
	ModuleVersion       string `json:"module_version"`
	OS                  string `json:"os"`
	Arch                string `json:"arch"`
	NumCPU              int    `json:"num_cpu"`
}

// Healthy reports whether the environment passes the check.
func (i *Info) Healthy() bool {
	return i.ProjectRootDetected
}

// Collect gathers environment facts. An empty cwd means the process
// working directory.
func Collect(cwd string, now time.Time) (*Info, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		cwd = wd
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	reportID, err := schema.NewReportID()
	if err != nil {
		return nil, fmt.Errorf("generate report id: %w", err)
	}

	root, found := DetectProjectRoot(cwd)
	info := &Info{
		ReportID:            reportID,
		TimestampUTC:        now.UTC().Format("2006-01-02T15:04:05Z"),
		CWD:                 cwd,
		ProjectRoot:         root,
		ProjectRootDetected: found,
		GoVersion:           runtime.Version(),
		ModulePath:          "unknown",
		ModuleVersion:       "unknown",
		OS:                  runtime.GOOS,
		Arch:                runtime.GOARCH,
		NumCPU:              runtime.NumCPU(),
	}

	if exe, err := os.Executable(); err == nil {
		info.Executable = exe
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		if bi.Main.Version != "" {
			info.ModuleVersion = bi.Main.Version
		}
	}
	return info, nil
}

// DetectProjectRoot walks up from start looking for ProjectMarker. When
// none is found it returns start and false.
func DetectProjectRoot(start string) (string, bool) {
	cur := filepath.Clean(start)
	for {
		if _, err := os.Stat(filepath.Join(cur, ProjectMarker)); err == nil {
			return cur, true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return filepath.Clean(start), false
		}
		cur = parent
	}
}

// RenderMarkdown renders the report as Markdown.
func RenderMarkdown(info *Info) string {
	verdict := "**HEALTHY**: project root detected and the Go runtime is visible."
	if !info.Healthy() {
		verdict = fmt.Sprintf("**UNHEALTHY**: no %s found above the working directory.", ProjectMarker)
	}

	lines := []string{
		"# Environment Healthcheck Report",
		"",
		fmt.Sprintf("- Report: `%s`", info.ReportID),
		fmt.Sprintf("- Generated (UTC): **%s**", info.TimestampUTC),
		"",
		"## Runtime",
		fmt.Sprintf("- Go version: **%s**", info.GoVersion),
		fmt.Sprintf("- Executable: `%s`", info.Executable),
		fmt.Sprintf("- Module: `%s` (%s)", info.ModulePath, info.ModuleVersion),
		"",
		"## System",
		fmt.Sprintf("- OS: **%s/%s**", info.OS, info.Arch),
		fmt.Sprintf("- CPUs: **%d**", info.NumCPU),
		"",
		"## Project",
		fmt.Sprintf("- CWD: `%s`", info.CWD),
		fmt.Sprintf("- Project root (detected): `%s`", info.ProjectRoot),
		"",
		"## Verdict",
		"- " + verdict,
		"",
	}
	return strings.Join(lines, "\n")
}

// ToJSON renders the report as indented JSON with a trailing newline.
func ToJSON(info *Info) ([]byte, error) {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
