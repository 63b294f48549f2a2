package container

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	mongo "go.mongodb.org/mongo-driver/v2/mongo"
	mongooption "go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoContainerConnection struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

const (
	mongoDBPort  = 27017
	mongoImage   = "mongo"
	mongoTag     = "8.2.2"
	expireSecond = 600
)

// NewPool connects to the local docker daemon and checks it is reachable
func NewPool(endpoint string) (*dockertest.Pool, error) {
	pool, err := dockertest.NewPool(endpoint)
	if err != nil {
		return nil, err
	}
	pool.MaxWait = 90 * time.Second
	if err := pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("docker daemon unreachable: %w", err)
	}
	return pool, nil
}

// RunMongoContainer starts (or reuses) a MongoDB container named name and waits until it answers pings.
// The caller purges the returned resource when done.
func RunMongoContainer(pool *dockertest.Pool, name string, options MongoContainerConnection) (MongoContainerConnection, *dockertest.Resource, error) {
	if existing, ok := pool.ContainerByName(name); ok && existing.Container.State.Running {
		conn := connectionFor(existing, options)
		return conn, existing, nil
	}

	runOptions := &dockertest.RunOptions{
		Name:       name,
		Repository: mongoImage,
		Tag:        mongoTag,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + options.Username,
			"MONGO_INITDB_ROOT_PASSWORD=" + options.Password,
		},
	}
	if options.Database != "" {
		runOptions.Env = append(runOptions.Env, "MONGO_INITDB_DATABASE="+options.Database)
	}
	if options.Port != "" {
		runOptions.PortBindings = map[docker.Port][]docker.PortBinding{
			docker.Port(strconv.Itoa(mongoDBPort) + "/tcp"): {{HostIP: "127.0.0.1", HostPort: options.Port}},
		}
	}

	resource, err := pool.RunWithOptions(runOptions, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return MongoContainerConnection{}, nil, err
	}
	_ = resource.Expire(expireSecond)

	conn := connectionFor(resource, options)
	err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		uri := fmt.Sprintf("mongodb://%s:%s@%s:%s", conn.Username, conn.Password, conn.Host, conn.Port)

		client, err := mongo.Connect(mongooption.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		defer client.Disconnect(ctx)
		return client.Ping(ctx, nil)
	})
	if err != nil {
		_ = pool.Purge(resource)
		return MongoContainerConnection{}, nil, fmt.Errorf("mongo container (%s) not ready: %w", name, err)
	}
	return conn, resource, nil
}

func connectionFor(resource *dockertest.Resource, options MongoContainerConnection) MongoContainerConnection {
	port := strconv.Itoa(mongoDBPort) + "/tcp"
	host := resource.GetBoundIP(port)
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return MongoContainerConnection{
		Host:     host,
		Port:     resource.GetPort(port),
		Username: options.Username,
		Password: options.Password,
		Database: options.Database,
	}
}
