package main

import (
	"context"
	"fmt"
)

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (tools + env + db)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	hasError := false

	for _, tool := range []string{"go", "docker"} {
		if commandExists(tool) {
			PrintSuccess("%s found", tool)
		} else {
			PrintWarning("%s not found in PATH", tool)
		}
	}

	for _, key := range []string{"API_KEY", "OWNER_ACCOUNT"} {
		if getEnv(key, "") == "" {
			PrintError("%s is not set", key)
			hasError = true
		}
	}

	if getEnv("STORE_BACKEND", "postgres") == "postgres" {
		if err := pingOnce(context.Background(), serviceDBURL()); err != nil {
			PrintError("Database check failed: %v", err)
			hasError = true
		} else {
			PrintSuccess("Database OK")
		}
	} else {
		PrintInfo("In-memory store selected, skipping database check")
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}
