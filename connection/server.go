package connection

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	admincontroller "mindmap/controller/admin"
	authcontroller "mindmap/controller/auth"
	taskcontroller "mindmap/controller/task"
	usercontroller "mindmap/controller/user"
	"mindmap/services"
	"mindmap/store"
)

func StartServer() {
	router := gin.Default()

	client, err := FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}

	// one shared store: Firestore behind the offline write queue
	st := store.NewOfflineStore(store.NewFirestoreStore(client))

	network := services.NewNetworkService(st)
	authProvider := services.ContextAuth{}
	tasks := services.NewTaskService(st, authProvider, network)
	syncService := services.NewSyncService(st, authProvider)
	reminders := services.NewReminderService(services.NewStoreNotifier(st))
	security := services.NewSecurityService(st)

	// deferred writes replay inside the store toggle; this listener only
	// reconciles the pending-sync flags afterwards
	network.Subscribe(func(online bool) {
		if !online {
			return
		}
		go func() {
			if err := syncService.SyncAllPending(context.Background()); err != nil {
				log.Printf("sync after reconnect: %v", err)
			}
		}()
	})

	probeAddr := os.Getenv("NETWORK_PROBE_ADDR")
	if probeAddr == "" {
		probeAddr = "firestore.googleapis.com:443"
	}
	go network.Run(context.Background(), services.DialProbe(probeAddr), 15*time.Second)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	authcontroller.SignInController(router, st)
	authcontroller.SignUpController(router, st, security)
	authcontroller.ForgotPasswordController(router, st, security)
	taskcontroller.TaskController(router, tasks, reminders, syncService, network)
	usercontroller.UserController(router, st)
	admincontroller.MigrateController(router, st)

	router.Run()
}
