package main

import (
	"log"
	"net/http"

	"github.com/motaterry/bubble-board/internal/config"
	"github.com/motaterry/bubble-board/internal/serverapp"
)

func main() {
	cfg, err := config.Load("bubbleboard.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       cfg.Storage.DataDir,
		StaticDir:     cfg.Static.Dir,
		UseDiskStatic: cfg.Static.UseDisk || serverapp.UseDiskStaticByEnv(),
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
