// Package test provides the containers used by integration tests.
package test

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MongoImage = "mongo:7"
	MongoPort  = 27017
	RedisImage = "redis:7-alpine"
	RedisPort  = 6379
)

// StartMongoContainer starts a MongoDB container. Use
// container.Endpoint(ctx, "mongodb") to get the connection URL.
func StartMongoContainer(ctx context.Context) (testcontainers.Container, error) {
	exposedPort := fmt.Sprintf("%d/tcp", MongoPort)
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        MongoImage,
				ExposedPorts: []string{exposedPort},
				WaitingFor: wait.ForAll(
					wait.ForLog("Waiting for connections"),
					wait.ForListeningPort(nat.Port(exposedPort)),
				),
			},
			Started: true,
		})
}

// StartRedisContainer starts a Redis container. Use
// container.Endpoint(ctx, "redis") to get the connection URL.
func StartRedisContainer(ctx context.Context) (testcontainers.Container, error) {
	exposedPort := fmt.Sprintf("%d/tcp", RedisPort)
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        RedisImage,
				ExposedPorts: []string{exposedPort},
				WaitingFor: wait.ForAll(
					wait.ForLog("Ready to accept connections"),
					wait.ForListeningPort(nat.Port(exposedPort)),
				),
			},
			Started: true,
		})
}

// RandomDatabaseName returns a database name unlikely to collide with other
// test runs sharing the same server.
func RandomDatabaseName() string {
	return fmt.Sprintf("console-test-%d", rand.Intn(1_000_000))
}
