// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/blogs/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Blog platform application",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-user",
				Usage: "Create a new user account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Display name for the account",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Email address used as the login",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Initial password for the account",
					},
					&cli.StringFlag{
						Name:    "role",
						Aliases: []string{"r"},
						Value:   "USER",
						Usage:   "Account role: USER, EDITOR or ADMIN",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateUser(
						ctx,
						cmd.String("name"),
						cmd.String("email"),
						cmd.String("password"),
						cmd.String("role"),
					)
				},
			},
			{
				Name:  "assign-permission",
				Usage: "Grant a capability to an existing user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user-id",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "User ID (UUID)",
					},
					&cli.StringFlag{
						Name:     "capability",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Capability name (e.g. CREATE_BLOG, EDIT_BLOG, DELETE_BLOG)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunAssignPermission(
						ctx,
						cmd.String("user-id"),
						cmd.String("capability"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
