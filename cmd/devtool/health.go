package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const slowResponseThreshold = time.Second

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Probe /healthz, /readyz and /version of a running service [base-url]"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := getEnv("API_URL", "http://localhost:8080")
	if len(args) > 0 {
		base = args[0]
	}
	base = strings.TrimRight(base, "/")

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	client := &http.Client{Timeout: 5 * time.Second}
	failed := false
	for _, path := range []string{"/healthz", "/readyz", "/version"} {
		body, elapsed, err := probe(client, base+path)
		switch {
		case err != nil:
			PrintError("%s: %v", path, err)
			failed = true
		case elapsed > slowResponseThreshold:
			PrintWarning("%s slow (%v): %s", path, elapsed, body)
		default:
			PrintSuccess("%s ok (%v): %s", path, elapsed, body)
		}
	}

	if failed {
		return fmt.Errorf("health check failed")
	}
	return nil
}

func probe(client *http.Client, url string) (string, time.Duration, error) {
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	elapsed := time.Since(start)
	if resp.StatusCode != http.StatusOK {
		return "", elapsed, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return strings.TrimSpace(string(body)), elapsed, nil
}
