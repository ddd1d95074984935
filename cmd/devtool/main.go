package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&MigrateCommand{})
	registry.Register(&WaitForDBCommand{})
	registry.Register(&ResetDBCommand{})
	registry.Register(&HealthCheckCommand{})
	registry.Register(&WatchEventsCommand{})
	registry.Register(&BenchCommand{})
	registry.Register(&DoctorCommand{})
	registry.Register(&ReplayDeadLetterCommand{})

	os.Exit(registry.Dispatch(os.Args[1:]))
}
