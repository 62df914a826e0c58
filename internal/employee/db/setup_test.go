package db

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ory/dockertest/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const testDB = "test"

// mongoURI is empty when no MongoDB container could be started.
var mongoURI string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("Could not connect to docker, skipping MongoDB tests: %s", err)
		os.Exit(m.Run())
	}

	container, err := pool.Run("mongo", "6.0", nil)
	if err != nil {
		log.Fatalf("Could not start container: %s", err)
	}

	uri := fmt.Sprintf("mongodb://localhost:%s", container.GetPort("27017/tcp"))
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = time.Minute
	err = backoff.Retry(func() error {
		client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		return client.Ping(context.Background(), nil)
	}, b)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}
	mongoURI = uri

	code := m.Run()

	if err := pool.Purge(container); err != nil {
		log.Fatalf("Could not purge container: %s", err)
	}

	os.Exit(code)
}

// SetupTestDB connects a Repository to a fresh collection of the test container.
func SetupTestDB(t *testing.T) *Repository {
	t.Helper()
	if mongoURI == "" {
		t.Skip("MongoDB container not available")
	}

	repo, err := NewRepository(context.Background(), &Config{
		URI:        mongoURI,
		Database:   testDB,
		Collection: fmt.Sprintf("employees_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_ = repo.coll.Drop(ctx)
		_ = repo.Close(ctx)
	})
	return repo
}
