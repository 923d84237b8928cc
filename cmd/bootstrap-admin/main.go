// Command bootstrap-admin creates the first admin account. Registration over
// HTTP never grants the admin flag, so this is the only supported escalation
// path.
//
// Usage:
//
//	bootstrap-admin <email> <username> <password>
package main

import (
	"fmt"
	"os"

	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/database"
	"github.com/phyn2-2/veritas-phase1/internal/services"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: bootstrap-admin <email> <username> <password>")
		os.Exit(1)
	}
	email, username, password := os.Args[1], os.Args[2], os.Args[3]

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "database connection failed:", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		fmt.Fprintln(os.Stderr, "migration failed:", err)
		os.Exit(1)
	}

	authService := services.NewAuthService(database.DB, cfg)
	admin, err := authService.CreateAdmin(username, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "admin creation failed:", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created: %s (ID: %s)\n", admin.Username, admin.ID)
	fmt.Printf("    Email: %s\n", admin.Email)
}
