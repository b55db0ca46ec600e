package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/onrampdev/onramp/pkg/logger"
	"github.com/onrampdev/onramp/proxy"
)

const defaultUpstream = "http://localhost:1234/v1"

func main() {
	// Parse command line flags
	listenAddr := flag.String("listen", ":8080", "Address to listen on")
	upstreamURL := flag.String("upstream", upstreamFromEnv(), "LM Studio base URL")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Set up logger
	logger := logger.NewLogger(*debug)
	defer logger.Sync()

	logger.Info("onramp LLM proxy starting",
		zap.String("listen", *listenAddr),
		zap.String("upstream", *upstreamURL),
		zap.Bool("debug", *debug),
	)

	config := proxy.Config{
		ListenAddr:  *listenAddr,
		UpstreamURL: *upstreamURL,
	}

	p := proxy.New(config, logger)
	if err := p.Run(); err != nil {
		logger.Fatal("proxy server failed", zap.Error(err))
	}
}

func upstreamFromEnv() string {
	if url := os.Getenv("LM_STUDIO_URL"); url != "" {
		return url
	}
	return defaultUpstream
}
