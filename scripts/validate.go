package main

import (
	"os"

	"tourdesk/internal/logger"
	"tourdesk/internal/validation"
)

func main() {
	logger.Init("info", "text")
	validation.RunValidation(os.Args[1:])
}
