package main

import (
	"spendenlauf-api/core/logger"
	"spendenlauf-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
