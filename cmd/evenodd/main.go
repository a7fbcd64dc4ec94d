package main

import (
	"os"

	"github.com/Anthya1104/evenodd-store/internal/cli"
	"github.com/Anthya1104/evenodd-store/internal/config"
	"github.com/Anthya1104/evenodd-store/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := logger.InitLogger(config.LogLevelInfo); err != nil {
		logrus.Fatalf("Error initializing Logger: %v", err)
	}

	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		logrus.Errorf("evenodd: %v", err)
		os.Exit(cli.ExitCode(err))
	}
}
