// Command graph-mcp serves the world graph's navigation queries over MCP
// stdio, so external narrator clients can read the map of a saved session.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tatianab/story-atlas/internal/graphtools"
	"github.com/tatianab/story-atlas/internal/models"
)

func main() {
	saveDir := flag.String("save-dir", models.SaveDir, "directory holding saved sessions")
	session := flag.String("session", "current", "session name to serve")
	flag.Parse()

	models.SaveDir = *saveDir
	log.SetPrefix("[graph-mcp] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := graphtools.NewServer(func() (*models.GameSession, error) {
		return models.LoadSession(*session)
	})
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
