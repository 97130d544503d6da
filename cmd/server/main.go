package main

import (
	"log"

	"github.com/benbeisheim/chessrules/internal/bot"
	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/controller"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOriginsHeader(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		ExposeHeaders:    "X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	opponent := bot.NewRandomBot(cfg.BotSeed)
	gameManager := service.NewGameManager(opponent)
	gameService := service.NewGameService(gameManager)
	controller.RegisterRoutes(app, gameService, cfg.AllowOrigins)

	log.Printf("listening on %s (%s bot, seed %d)", cfg.ListenAddr, opponent.Name(), cfg.BotSeed)
	log.Fatal(app.Listen(cfg.ListenAddr))
}
