package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/collabhub/admin-console/audit"
	"github.com/collabhub/admin-console/backend"
	"github.com/collabhub/admin-console/cache"
	"github.com/collabhub/admin-console/db"
	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/state"
	"github.com/collabhub/admin-console/web"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

// sweepInterval is how often idle sessions are released from memory.
const sweepInterval = 10 * time.Minute

func main() {
	// a missing .env file is fine, the environment and flags still apply
	envErr := godotenv.Load()
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.StringP("apiURL", "a", backend.DefaultBaseURL, "platform backend API URL")
	flag.String("persistence", "memory", "console state storage: memory, mongo or redis")
	flag.String("mongo-url", "", "The URL of the MongoDB server")
	flag.String("mongo-db", "admin-console", "The name of the MongoDB database")
	flag.String("redis-url", "", "The URL or host:port of the Redis server")
	flag.String("kafka-brokers", "", "comma separated Kafka brokers for the audit log, empty disables it")
	flag.String("kafka-topic", "console-audit", "Kafka topic of the audit log")
	flag.String("csrf-key", "", "secret used to sign the form tokens")
	flag.Bool("secure-cookies", false, "send cookies only over HTTPS")
	flag.Duration("session-idle", time.Hour, "release idle sessions from memory after this long")
	flag.String("logLevel", "info", "log level (debug, info, warn, error)")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("CONSOLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()

	log.Init(viper.GetString("logLevel"), "stdout", nil)
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warnw("could not load .env file", "error", envErr)
	}

	// read the configuration
	host := viper.GetString("host")
	port := viper.GetInt("port")
	apiURL := viper.GetString("apiURL")
	csrfKey := viper.GetString("csrf-key")
	if csrfKey == "" {
		csrfKey = uuid.NewString()
		log.Warn("no csrf-key configured, using a random one: form tokens will not survive a restart")
	}

	persister, closePersister := newPersister(viper.GetString("persistence"))
	defer closePersister()

	var publisher audit.Publisher = audit.Nop{}
	if brokers := viper.GetString("kafka-brokers"); brokers != "" {
		kp, err := audit.NewKafkaPublisher(strings.Split(brokers, ","), viper.GetString("kafka-topic"))
		if err != nil {
			log.Fatalf("could not create the audit publisher: %v", err)
		}
		defer func() {
			if err := kp.Close(); err != nil {
				log.Warnw("failed to close audit publisher", "error", err)
			}
		}()
		publisher = kp
		log.Infow("audit log enabled", "brokers", brokers, "topic", viper.GetString("kafka-topic"))
	}

	registry := listing.NewRegistry(persister)
	go sweepSessions(registry, viper.GetDuration("session-idle"))

	server, err := web.New(&web.Config{
		Host:          host,
		Port:          port,
		Backend:       backend.New(apiURL, backend.WithUnauthorizedHook(web.UnauthorizedHook)),
		Registry:      registry,
		Audit:         publisher,
		CSRFSecret:    csrfKey,
		SecureCookies: viper.GetBool("secure-cookies"),
	})
	if err != nil {
		log.Fatalf("could not create the console server: %v", err)
	}
	server.Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port, "backend", apiURL)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}

// newPersister opens the configured console state storage and returns it
// with the function that releases it.
func newPersister(kind string) (state.Persister, func()) {
	switch kind {
	case "mongo":
		mongoURL := viper.GetString("mongo-url")
		mongoDB := viper.GetString("mongo-db")
		ms, err := db.New(mongoURL, mongoDB)
		if err != nil {
			log.Fatalf("could not create the MongoDB database: %v", err)
		}
		return ms, ms.Close
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := cache.Connect(ctx, viper.GetString("redis-url"))
		if err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		rp := cache.NewRedisPersister(client, cache.DefaultTTL)
		return rp, func() {
			if err := rp.Close(); err != nil {
				log.Warnw("failed to close redis", "error", err)
			}
		}
	case "memory", "":
		log.Infow("console state kept in memory, sessions will not survive a restart")
		return state.NewMemoryPersister(), func() {}
	}
	log.Fatalf("unknown persistence %q", kind)
	return nil, nil
}

func sweepSessions(registry *listing.Registry, maxIdle time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		if n := registry.Sweep(maxIdle); n > 0 {
			log.Debugw("released idle sessions", "count", n)
		}
	}
}
