package main

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodplate-dashboard/config"
	"github.com/yeremiapane/foodplate-dashboard/dashboard"
	"github.com/yeremiapane/foodplate-dashboard/kds"
	"github.com/yeremiapane/foodplate-dashboard/router"
	"github.com/yeremiapane/foodplate-dashboard/services"
	"github.com/yeremiapane/foodplate-dashboard/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	utils.InitLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	foodsAPI := services.NewFoodsAPI(cfg.FoodsAPI.BaseURL, cfg.FoodsAPI.Timeout())
	dash := dashboard.New(foodsAPI)

	hub := kds.NewHub()
	dash.SetListener(hub)

	r, err := router.SetupRouter(dash, hub, router.Options{CORSOrigin: cfg.CORSOrigin})
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to set up router: %v", err)
	}

	utils.InfoLogger.Printf("Foods API at %s", cfg.FoodsAPI.BaseURL)
	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
