package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodplate-dashboard/controllers"
	"github.com/yeremiapane/foodplate-dashboard/dashboard"
	"github.com/yeremiapane/foodplate-dashboard/kds"
	"github.com/yeremiapane/foodplate-dashboard/middlewares"
	"github.com/yeremiapane/foodplate-dashboard/templates"
)

type Options struct {
	CORSOrigin string
}

func SetupRouter(dash *dashboard.Dashboard, hub *kds.Hub, opts Options) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	dashCtrl := controllers.NewDashboardController(dash)
	kdsCtrl := controllers.NewKDSController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/dashboard")
	})

	d := r.Group("/dashboard")
	{
		d.GET("", dashCtrl.ShowDashboard)
		d.GET("/state", dashCtrl.GetState)

		d.POST("/modals/add/open", dashCtrl.OpenAddModal)
		d.POST("/modals/add/close", dashCtrl.CloseAddModal)
		d.POST("/modals/edit/:id/open", dashCtrl.OpenEditModal)
		d.POST("/modals/edit/close", dashCtrl.CloseEditModal)

		d.POST("/foods", dashCtrl.AddFood)
		d.POST("/foods/update", dashCtrl.UpdateFood)
		d.POST("/foods/:id/toggle", dashCtrl.ToggleAvailability)
		d.POST("/foods/:id/delete", dashCtrl.DeleteFood)
	}

	// live re-render pushes for the admin page and kitchen displays
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketScreenMiddleware())
	{
		wsGroup.GET("/dashboard", kdsCtrl.KDSHandler)
	}

	return r, nil
}
