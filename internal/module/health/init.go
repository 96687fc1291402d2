package health

import (
	"log/slog"

	"techfest-backend/internal/global/logger"
)

var log = slog.Default()

type ModuleHealth struct{}

func (p *ModuleHealth) GetName() string {
	return "Health"
}

func (p *ModuleHealth) Init() {
	log = logger.New("Health")
}
