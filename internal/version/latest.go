package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultLatestReleaseURL = "https://api.github.com/repos/janekbaraniewski/timeplot/releases/latest"
	defaultRequestTimeout   = 1500 * time.Millisecond
)

type CheckOptions struct {
	CurrentVersion   string
	LatestReleaseURL string
	Timeout          time.Duration
	HTTPClient       *http.Client
}

type Release struct {
	Current         string
	Latest          string
	UpdateAvailable bool
}

// CheckLatest compares the running version with the newest stable release.
// Development builds are never reported as outdated.
func CheckLatest(ctx context.Context, opts CheckOptions) (Release, error) {
	current := normalize(opts.CurrentVersion)
	res := Release{Current: current}
	if current == "" {
		return res, nil
	}

	url := strings.TrimSpace(opts.LatestReleaseURL)
	if url == "" {
		url = defaultLatestReleaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return res, fmt.Errorf("build latest release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "timeplot/"+current)

	resp, err := client.Do(req)
	if err != nil {
		return res, fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return res, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var payload struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return res, fmt.Errorf("decode latest release payload: %w", err)
	}
	latest := normalize(payload.TagName)
	if latest == "" {
		return res, fmt.Errorf("latest release tag is not a stable semver: %q", payload.TagName)
	}
	res.Latest = latest
	res.UpdateAvailable = semver.Compare(latest, current) > 0
	return res, nil
}
