package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ian-deans/bamazon-example/internal/adapter/console"
	"github.com/ian-deans/bamazon-example/internal/adapter/storage"
	"github.com/ian-deans/bamazon-example/internal/core/service"
	"github.com/ian-deans/bamazon-example/internal/port"
)

const defaultMySQLDSN = "root:root@tcp(localhost:3306)/bamazon?parseTime=true"

func main() {
	os.Exit(run())
}

// run keeps the store connections scoped so they are released exactly
// once on every exit path, and maps the session outcome to the process
// exit code.
func run() int {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = defaultMySQLDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("failed to open mysql: %v", err)
		return 1
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Printf("failed to ping mysql: %v", err)
		return 1
	}
	log.Println("connected to mysql")

	var cache port.CacheRepository
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("stock cache disabled, failed to connect redis: %v", err)
		} else {
			defer rdb.Close()
			cache = storage.NewRedisAdapter(rdb)
			log.Println("connected to redis")
		}
	}

	term := console.New(os.Stdin, os.Stdout)
	workflow := service.NewWorkflow(storage.NewMySQLAdapter(db), cache, term, term)

	outcome, err := workflow.Run(ctx)
	if err != nil {
		log.Printf("order workflow failed: %v", err)
		return 1
	}

	log.Printf("session finished: %s", outcome)
	return 0
}
