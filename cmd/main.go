package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/relife-app/relife-backend/pkg/auth"
	"github.com/relife-app/relife-backend/pkg/communication"
	"github.com/relife-app/relife-backend/pkg/email"
	"github.com/relife-app/relife-backend/pkg/environment"
	"github.com/relife-app/relife-backend/pkg/goals"
	"github.com/relife-app/relife-backend/pkg/invitations"
	"github.com/relife-app/relife-backend/pkg/logger"
	"github.com/relife-app/relife-backend/pkg/selfimprove"
	"github.com/relife-app/relife-backend/pkg/todos"
	"github.com/relife-app/relife-backend/pkg/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	var logging logger.Interface = logger.Logger{}
	fmt.Println("Server is starting up...")

	environment.Initialize()

	client, err := mongo.NewClient(options.Client().ApplyURI(environment.Global.DatabaseUrl))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		log.Panic(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Panic(err)
	}

	defer func() {
		err := client.Disconnect(ctx)
		if err != nil {
			logging.Fatal(err)
		}
	}()

	fmt.Println("Database connected")

	db := client.Database(environment.Global.Database)

	userCollection := db.Collection("users")
	goalCollection := db.Collection("goals")
	invitationCollection := db.Collection("invitations")
	todoCollection := db.Collection("todos")
	selfImprovementCollection := db.Collection("self_improvement_goals")

	responseManager := communication.ResponseManager{Logger: logging}

	var userCache users.UserCacheInterface
	if environment.Global.Redis != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     environment.Global.Redis,
			Password: environment.Global.RedisPassword,
		})

		userCache, err = users.NewUserCacheRedis(redisClient)
		if err != nil {
			logging.Fatal(err)
		}
	} else {
		userCache, err = users.NewUserCacheMemory()
		if err != nil {
			logging.Fatal(err)
		}
	}

	mailer := email.NewSendInBlueService(environment.Global.Sendinblue)

	var userRepository users.UserRepositoryInterface = users.UserRepository{DB: userCollection, Logger: logging}
	resolver := users.Resolver{UserRepository: userRepository, Cache: userCache, Logger: logging}

	userHandler := users.Handler{
		UserRepository:  userRepository,
		Resolver:        &resolver,
		Logger:          logging,
		ResponseManager: &responseManager,
		Secret:          environment.Global.Secret,
		EmailService:    mailer,
	}

	var goalRepository goals.GoalRepositoryInterface = goals.GoalRepository{DB: goalCollection, Logger: logging}
	var invitationRepository invitations.InvitationRepositoryInterface = invitations.InvitationRepository{DB: invitationCollection, Logger: logging}

	goalHandler := goals.Handler{
		GoalRepository:   goalRepository,
		UserRepository:   userRepository,
		InvitationFinder: invitationRepository,
		Logger:           logging,
		ResponseManager:  &responseManager,
	}

	invitationHandler := invitations.Handler{
		InvitationRepository: invitationRepository,
		GoalRepository:       goalRepository,
		UserRepository:       userRepository,
		Resolver:             &resolver,
		EmailService:         mailer,
		Logger:               logging,
		ResponseManager:      &responseManager,
	}

	var todoRepository todos.TodoRepositoryInterface = todos.TodoRepository{DB: todoCollection, Logger: logging}
	todoHandler := todos.Handler{TodoRepository: todoRepository, Logger: logging, ResponseManager: &responseManager}

	var selfImprovementRepository selfimprove.GoalRepositoryInterface = selfimprove.GoalRepository{DB: selfImprovementCollection, Logger: logging}
	selfImprovementHandler := selfimprove.Handler{GoalRepository: selfImprovementRepository, Logger: logging, ResponseManager: &responseManager}

	authMiddleware := auth.AuthenticationMiddleware{
		ResponseManager: &responseManager,
		Secret:          environment.Global.Secret,
	}

	r := mux.NewRouter()
	r.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)

		_, err := fmt.Fprint(writer, "Welcome to the ReLife API! ✔")
		if err != nil {
			log.Printf("Error: %v\n", err)
		}
	})

	unauthenticated := r.PathPrefix("/v1").Subrouter()
	unauthenticated.HandleFunc("/auth/register", userHandler.UserRegister).Methods(http.MethodPost)
	unauthenticated.HandleFunc("/auth/register/verify", userHandler.VerifyRegistrationGet).Methods(http.MethodGet)
	unauthenticated.HandleFunc("/auth/login", userHandler.UserLogin).Methods(http.MethodPost)
	unauthenticated.HandleFunc("/auth/refresh", userHandler.UserRefresh).Methods(http.MethodPost)

	authenticated := r.PathPrefix("/v1").Subrouter()
	authenticated.Use(authMiddleware.Middleware)

	authenticated.HandleFunc("/user", userHandler.UserGet).Methods(http.MethodGet)

	authenticated.HandleFunc("/goals", goalHandler.GoalAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/goals", goalHandler.GoalsGet).Methods(http.MethodGet)
	authenticated.HandleFunc("/goals/{goalID}", goalHandler.GoalGet).Methods(http.MethodGet)
	authenticated.HandleFunc("/goals/{goalID}", goalHandler.GoalUpdate).Methods(http.MethodPut)
	authenticated.HandleFunc("/goals/{goalID}", goalHandler.GoalDelete).Methods(http.MethodDelete)
	authenticated.HandleFunc("/goals/{goalID}/start", goalHandler.GoalStart).Methods(http.MethodPut)
	authenticated.HandleFunc("/goals/{goalID}/week-status", goalHandler.GoalWeekStatusUpdate).Methods(http.MethodPut)

	authenticated.HandleFunc("/invitations", invitationHandler.InvitationAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/invitations", invitationHandler.InvitationsGet).Methods(http.MethodGet)
	authenticated.HandleFunc("/invitations/{invitationID}/accept", invitationHandler.InvitationAccept).Methods(http.MethodPost)
	authenticated.HandleFunc("/invitations/{invitationID}/deny", invitationHandler.InvitationDeny).Methods(http.MethodPost)

	authenticated.HandleFunc("/todos", todoHandler.TodoAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/todos", todoHandler.TodosGet).Methods(http.MethodGet)
	authenticated.HandleFunc("/todos/{todoID}", todoHandler.TodoUpdate).Methods(http.MethodPut)
	authenticated.HandleFunc("/todos/{todoID}", todoHandler.TodoDelete).Methods(http.MethodDelete)

	authenticated.HandleFunc("/self-improvement", selfImprovementHandler.GoalAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/self-improvement", selfImprovementHandler.GoalsGet).Methods(http.MethodGet)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	})

	corsOrigins := handlers.AllowedOrigins([]string{environment.Global.Cors})
	corsMethods := handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions})
	corsHeaders := handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})

	server := handlers.CORS(corsOrigins, corsMethods, corsHeaders)(r)
	server = handlers.LoggingHandler(os.Stdout, server)

	logging.Info("Server is listening on port " + environment.Global.Port)
	log.Panic(http.ListenAndServe(":"+environment.Global.Port, server))
}
