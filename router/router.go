package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/controllers"
	"github.com/yeremiapane/tableservice-client/middlewares"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/services"
	"github.com/yeremiapane/tableservice-client/store"
)

// Controllers bundles every screen controller the router wires.
type Controllers struct {
	Auth     *controllers.AuthController
	Activity *controllers.ActivityController
	Kitchen  *controllers.KitchenController
	Menu     *controllers.CustomerMenuController
	Table    *controllers.TableController
	Manager  *controllers.ManagerMenuController
	Items    *controllers.ManagerItemController
	Admin    *controllers.AdminController
}

// NewControllers builds the full controller set against one API client and
// one push subscriber.
func NewControllers(api *client.Client, creds *store.CredentialStore, subscriber services.Subscriber) Controllers {
	return Controllers{
		Auth:     controllers.NewAuthController(api, creds),
		Activity: controllers.NewActivityController(api, subscriber),
		Kitchen:  controllers.NewKitchenController(api, subscriber),
		Menu:     controllers.NewCustomerMenuController(api),
		Table:    controllers.NewTableController(api),
		Manager:  controllers.NewManagerMenuController(api),
		Items:    controllers.NewManagerItemController(api),
		Admin:    controllers.NewAdminController(api),
	}
}

func SetupRouter(ctrl Controllers, creds *store.CredentialStore) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.POST("/login", ctrl.Auth.Login)

	authed := r.Group("/")
	authed.Use(middlewares.RequireLogin(creds))
	{
		authed.POST("/logout", ctrl.Auth.Logout)
		authed.GET("/me", ctrl.Auth.Me)
	}

	// -- ACTIVITY PANEL (managers and wait staff) --
	activity := r.Group("/activity")
	activity.Use(middlewares.RequireLogin(creds), middlewares.RequireCapability(models.CapViewActivityPanel))
	{
		activity.GET("", ctrl.Activity.GetPanel)
		activity.POST("/refresh", ctrl.Activity.Refresh)
		activity.POST("/order/:order_id/item/:item_id", ctrl.Activity.UpdateOrderItemStatus)
		activity.POST("/assistance/update", ctrl.Activity.UpdateAssistanceRequest)
		activity.POST("/assistance/reopen", ctrl.Activity.ReopenAssistanceRequest)
		activity.POST("/session/complete/:table_name", ctrl.Activity.CompleteSession)
	}

	// -- KITCHEN DISPLAY --
	kitchen := r.Group("/kitchen")
	kitchen.Use(middlewares.RequireLogin(creds), middlewares.RequireCapability(models.CapViewKitchen))
	{
		kitchen.GET("", ctrl.Kitchen.GetBoard)
		kitchen.POST("/refresh", ctrl.Kitchen.Refresh)
		kitchen.POST("/order/:order_id/item/:item_id", ctrl.Kitchen.UpdateOrderItemStatus)
	}

	// -- CUSTOMER TABLET --
	tablet := r.Group("/table")
	tablet.Use(middlewares.RequireLogin(creds), middlewares.RequireCapability(models.CapTableSession))
	{
		tablet.GET("/menu", ctrl.Menu.GetMenu)
		tablet.GET("/cart", ctrl.Menu.GetCart)
		tablet.POST("/cart", ctrl.Menu.AddToCart)
		tablet.POST("/cart/quantity", ctrl.Menu.SetCartQuantity)
		tablet.POST("/cart/submit", ctrl.Menu.SubmitCart)
		tablet.POST("/session/start", ctrl.Table.StartSession)
		tablet.GET("/session", ctrl.Table.GetSession)
		tablet.POST("/session/bill", ctrl.Table.RequestBill)
		tablet.GET("/session/summary", ctrl.Table.GetSummary)
		tablet.POST("/assistance", ctrl.Table.RequestAssistance)
		tablet.POST("/assistance/resolve", ctrl.Table.ResolveAssistance)
	}

	// -- MANAGER --
	manager := r.Group("/manager")
	manager.Use(middlewares.RequireLogin(creds), middlewares.RequireCapability(models.CapManageMenu))
	{
		manager.GET("/menu", ctrl.Manager.GetMenu)
		manager.POST("/category", ctrl.Manager.CreateCategory)
		manager.PUT("/category/:category_id", ctrl.Manager.UpdateCategory)
		manager.DELETE("/category/:category_id", ctrl.Manager.DeleteCategory)
		manager.POST("/menu/move", ctrl.Manager.MoveCategory)
		manager.POST("/menu/move-item", ctrl.Manager.MoveItem)
		manager.GET("/items", ctrl.Items.ListItems)
		manager.POST("/items", ctrl.Items.CreateItem)
		manager.PUT("/items/:item_id", ctrl.Items.UpdateItem)
		manager.DELETE("/items/:item_id", ctrl.Items.DeleteItem)
	}

	// -- ADMIN --
	admin := r.Group("/admin")
	admin.Use(middlewares.RequireLogin(creds), middlewares.RequireCapability(models.CapManageUsers))
	{
		admin.GET("/users", ctrl.Admin.ListUsers)
		admin.POST("/users", ctrl.Admin.CreateUser)
		admin.PUT("/users/:user_id", ctrl.Admin.UpdateUser)
		admin.DELETE("/users/:user_id", ctrl.Admin.DeleteUser)
	}

	return r
}
