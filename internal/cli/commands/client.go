package commands

import (
	"CreditScoreZ/internal/cli/render"
	fsrepo "CreditScoreZ/internal/cli/repo/fs"
	cliservice "CreditScoreZ/internal/cli/service"
	"CreditScoreZ/internal/config"
)

var renderer = render.New()

// newClient собирает клиента API из конфигурации: адрес сервера и файл с cookie сессии.
func newClient(cfg *config.Config) *cliservice.DashboardClient {
	return cliservice.NewDashboardClient(cfg.ServerURL, fsrepo.TokenFSStore{Path: cfg.TokenFile})
}
