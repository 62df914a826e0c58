package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	e "github.com/gartstein/employees/internal/employee/errors"
	"github.com/gartstein/employees/internal/employee/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultDatabase       = "test"
	defaultCollection     = "employees"
	defaultConnectTimeout = 10 * time.Second
)

type Repository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type Config struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// NewRepository opens a client for cfg.URI and pings the server before
// returning, so callers only act on an established connection.
func NewRepository(ctx context.Context, cfg *Config) (*Repository, error) {
	cs, err := connstring.ParseAndValidate(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string: %v", e.ErrConnect, err)
	}

	database := cfg.Database
	if database == "" {
		database = cs.Database
	}
	if database == "" {
		database = defaultDatabase
	}
	collection := cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrConnect, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", e.ErrConnect, err)
	}

	return &Repository{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

func (r *Repository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	if _, err := r.coll.InsertOne(ctx, employee); err != nil {
		return err
	}
	return nil
}

// SaveEmployee replaces the stored document with employee and reports
// whether the server changed anything.
func (r *Repository) SaveEmployee(ctx context.Context, employee *models.Employee) (bool, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: employee.ID}}, employee)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, e.ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (r *Repository) GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, e.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// Ping checks that the primary is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
