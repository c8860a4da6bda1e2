package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/imgshape/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("imgshape-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("imgshape-mcp - MCP server for image shape statistics")
			fmt.Println()
			fmt.Println("Usage: imgshape-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env):")
			fmt.Println("  IMGSHAPE_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Optional; a missing .env is not an error.
	_ = godotenv.Load()

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Pipeline progress is only interesting when debugging.
	toolLog := log.New(io.Discard, "", 0)
	if debugEnabled(os.Getenv) {
		log.Printf("imgshape MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		toolLog = log.Default()
	}

	srv := server.New(Version, toolLog)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// debugEnabled reports whether IMGSHAPE_LOG_LEVEL asks for debug output. The
// value is matched the same way the imgshape CLI matches it.
func debugEnabled(getenv func(string) string) bool {
	return strings.EqualFold(strings.TrimSpace(getenv("IMGSHAPE_LOG_LEVEL")), "debug")
}
