package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/easilyhq/easily/board/job/jobapi"
	"github.com/easilyhq/easily/board/job/jobinfra"
	"github.com/easilyhq/easily/board/job/jobsrv"
	"github.com/easilyhq/easily/board/notify"
	"github.com/easilyhq/easily/board/notify/notifyinfra"
	"github.com/easilyhq/easily/board/notify/worker"
	"github.com/easilyhq/easily/board/seed"
	"github.com/easilyhq/easily/board/user/userapi"
	"github.com/easilyhq/easily/board/user/userauth"
	"github.com/easilyhq/easily/board/user/userinfra"
	"github.com/easilyhq/easily/board/user/usersrv"
	"github.com/easilyhq/easily/pkg/fsx"
	"github.com/easilyhq/easily/pkg/fsx/fsxlocal"
	"github.com/easilyhq/easily/pkg/fsx/fsxs3"
	"github.com/easilyhq/easily/pkg/logx"
)

// mailQueueName is the Redis list holding queued application emails
const mailQueueName = "easily:mail"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	MailQueue  notify.MailQueue
	Mailer     notify.Mailer

	// Services
	TokenService *userauth.TokenService
	UserService  *usersrv.UserService
	JobService   *jobsrv.JobService
	MailWorker   *worker.MailWorker
	Seeder       *seed.Seeder

	// API Handlers
	UserHandlers *userapi.Handlers
	JobHandlers  *jobapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	// 1. Database connection. The job board runs off the in-memory store;
	// the connection is established and health-checked only.
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost,
			envOr("DB_PORT", "5432"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASS"),
			os.Getenv("DB_NAME"),
		)
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			logx.Warnf("Failed to connect to database, continuing without it: %v", err)
		} else {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(5 * time.Minute)
			c.DB = db
		}
	} else {
		logx.Warn("DB_HOST is not set, running without a database connection")
	}

	// 2. Redis connection; the mail queue falls back to memory without it
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       0,
		})
		if _, err := client.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis, using in-memory mail queue: %v", err)
		} else {
			c.Redis = client
			c.MailQueue = notifyinfra.NewRedisMailQueue(client, mailQueueName)
		}
	}
	if c.MailQueue == nil {
		c.MailQueue = notifyinfra.NewMemoryMailQueue(256)
	}

	// 3. Upload backend: S3 when a bucket is configured, local disk otherwise
	if awsBucket := os.Getenv("AWS_BUCKET"); awsBucket != "" {
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(cfg), awsBucket, "uploads")
	} else {
		local, err := fsxlocal.NewLocalFileSystem(envOr("UPLOAD_DIR", "uploads"))
		if err != nil {
			logx.Fatalf("Failed to create upload directory: %v", err)
		}
		c.FileSystem = local
	}

	// 4. Mailer: SMTP relay when configured, console JSON otherwise
	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" {
		c.Mailer = notifyinfra.NewSMTPMailer(notifyinfra.SMTPConfig{
			Host:     smtpHost,
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("SMTP_FROM"),
		})
	} else {
		logx.Warn("SMTP_HOST is not set, emails go to the log")
		c.Mailer = notifyinfra.NewConsoleMailer()
	}
}

func (c *Container) initServices() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}

	// Repositories
	jobRepo := jobinfra.NewMemoryJobRepository(nil, nil)
	userRepo := userinfra.NewMemoryUserRepository(nil, nil)

	// Domain services
	c.TokenService = userauth.NewTokenService([]byte(jwtSecret), userauth.DefaultSessionTTL, nil)
	passwordSvc := userinfra.NewBcryptPasswordService(0)
	c.UserService = usersrv.NewUserService(userRepo, passwordSvc, c.TokenService)
	c.JobService = jobsrv.NewJobService(jobRepo, c.FileSystem, c.MailQueue, nil)

	c.MailWorker = worker.NewMailWorker(c.MailQueue, c.Mailer, 2)
	c.Seeder = seed.NewSeeder(jobRepo, nil, nil)

	// Handlers
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
}

// Close releases held connections
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
