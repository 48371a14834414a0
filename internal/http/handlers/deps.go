package handlers

import (
	"ammanroofing/internal/config"
	"ammanroofing/internal/repos"
	"ammanroofing/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PageHandler    *PageHandler
	StockHandler   *StockHandler
	AdminHandler   *AdminHandler
	ProductAPI     *ProductAPIHandler
	ChatHandler    *ChatHandler
	ContactHandler *ContactHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	stockSvc := services.NewStockService(prodRepo)
	chatSvc := services.NewChatService(prodRepo, cfg.GeminiAPIKey, cfg.ChatModel)
	mailSvc := services.NewMailService(cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey)

	return &Deps{
		PageHandler:    &PageHandler{Catalog: catalogSvc},
		StockHandler:   &StockHandler{Stock: stockSvc},
		AdminHandler:   &AdminHandler{Catalog: catalogSvc},
		ProductAPI:     &ProductAPIHandler{Catalog: catalogSvc},
		ChatHandler:    &ChatHandler{Chat: chatSvc},
		ContactHandler: &ContactHandler{Mail: mailSvc},
	}
}
