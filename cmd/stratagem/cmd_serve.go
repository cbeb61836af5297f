package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"stratagem/internal/logging"
	mcpserver "stratagem/internal/mcp"
	"stratagem/internal/store"
)

var serveFlags struct {
	dbPath string
	memory bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the planning tools
(list_domains, generate_plan, get_plan, list_cases) to agent clients.

The server monitors for parent process death. When the client disconnects,
the server self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.dbPath, "db", store.DefaultDBPath, "SQLite database path")
	f.BoolVar(&serveFlags.memory, "memory", false, "Use an in-memory store (nothing persists)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	var st store.Store
	if serveFlags.memory {
		st = store.NewMemStore()
	} else {
		sqlStore, err := store.Open(serveFlags.dbPath)
		if err != nil {
			return err
		}
		st = sqlStore
	}
	defer st.Close()

	srv := mcpserver.NewServer(st, version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchStdin(ctx, nil, cancel)

	logging.New("mcp").Info("starting stratagem MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
