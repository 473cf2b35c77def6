// Command stubserver runs the stub booking platform: the full HTTP
// surface the client layer talks to, backed by SQLite or PostgreSQL.
package main

import (
	"flag"
	"log"

	"github.com/staykit/staykit-go/internal/config"
	"github.com/staykit/staykit-go/internal/stub"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	a, err := stub.New(cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}

	if err := a.Run(); err != nil {
		log.Fatal("server error: ", err)
	}
}
