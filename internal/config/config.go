package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultHandle is loaded when neither an argument nor a persisted handle is available.
const DefaultHandle = "NaifAlFareed"

// Config holds application configuration loaded from environment variables.
type Config struct {
	GitHubToken   string
	GitHubAPIURL  string
	SlackMode     bool
	DebugMode     bool
	StateFile     string
	NoState       bool
	HistoryDB     string
	DefaultHandle string
	ListenAddr    string
	HTTPTimeout   time.Duration
	ExportHandles []string
	S3Bucket      string
	S3ObjectKey   string
	AWSRegion     string
}

// FromEnvironment creates a Config from environment variables.
func FromEnvironment() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("STATE_FILE", filepath.Join(os.TempDir(), "gh-repopanel-state.gob"))
	v.SetDefault("DEFAULT_HANDLE", DefaultHandle)
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("HTTP_TIMEOUT", "15s")

	timeout := v.GetDuration("HTTP_TIMEOUT")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return Config{
		GitHubToken:   v.GetString("GITHUB_TOKEN"),
		GitHubAPIURL:  v.GetString("GITHUB_API_URL"),
		SlackMode:     truthy(v.GetString("SLACK_MODE")),
		DebugMode:     truthy(v.GetString("DEBUG")),
		StateFile:     v.GetString("STATE_FILE"),
		HistoryDB:     v.GetString("HISTORY_DB"),
		DefaultHandle: v.GetString("DEFAULT_HANDLE"),
		ListenAddr:    v.GetString("LISTEN_ADDR"),
		HTTPTimeout:   timeout,
		ExportHandles: splitList(v.GetString("EXPORT_HANDLES")),
		S3Bucket:      v.GetString("S3_BUCKET_NAME"),
		S3ObjectKey:   v.GetString("S3_OBJECT_KEY"),
		AWSRegion:     v.GetString("AWS_REGION"),
	}
}

func truthy(val string) bool {
	return val != "" && val != "0" && strings.ToLower(val) != "false"
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
