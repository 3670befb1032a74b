package redis_client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultDatabase = 0

const queueConnectionTag = "busfares"

func Connect() error {
	address := util.GetEnvironmentVariable("REDIS_ADDRESS", defaultConnectionAddress)
	password := util.GetEnvironmentVariable("REDIS_PASSWORD", "")
	database := defaultDatabase

	if databaseString := util.GetEnvironmentVariable("REDIS_DATABASE", ""); databaseString != "" {
		n, err := strconv.Atoi(databaseString)
		if err != nil {
			return fmt.Errorf("parsing redis database number: %w", err)
		}
		database = n
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	errChan := make(chan error, 10)
	go logQueueErrors(errChan)

	var err error
	QueueConnection, err = rmq.OpenConnectionWithRedisClient(queueConnectionTag, Client, errChan)
	if err != nil {
		return err
	}

	log.Info().Str("address", address).Int("database", database).Msg("Connected to Redis")

	return nil
}

func logQueueErrors(errChan <-chan error) {
	for err := range errChan {
		log.Error().Err(err).Msg("Redis queue error")
	}
}
