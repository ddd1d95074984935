package main

import (
	"fmt"
	"sort"
)

const (
	envDev     = "dev"
	appName    = "boxledger"
	confirmYes = "yes"
)

// Command interface that all devtool commands must implement
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry manages the available commands
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// Dispatch runs the command named by args[0] and returns the process exit code
func (r *Registry) Dispatch(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		r.PrintHelp()
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	cmd, ok := r.Get(args[0])
	if !ok {
		PrintError("unknown command: %s", args[0])
		r.PrintHelp()
		return 1
	}

	if err := cmd.Run(args[1:]); err != nil {
		PrintError("%s: %v", cmd.Name(), err)
		return 1
	}
	return 0
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp() {
	fmt.Printf("Usage: devtool <command> [args...]  (%s)\n", appName)
	fmt.Println("\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > maxLen {
			maxLen = len(cmd.Name())
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Name()) + 2
		fmt.Printf("  %s%*s%s\n", cmd.Name(), padding, "", cmd.Description())
	}
}
