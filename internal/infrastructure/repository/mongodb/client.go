package mongodb

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionTracks      = "challenge_tracks"
	CollectionPrompts     = "challenge_prompts"
	CollectionUnlockCodes = "challenge_unlock_codes"
	CollectionSettings    = "challenge_user_settings"
	CollectionJournal     = "challenge_journal_entries"
)

// Client wraps *mongo.Client bound to one database.
type Client struct {
	mongoClient *mongo.Client
	database    string
	logger      *logging.Logger
}

func NewClient(ctx context.Context, uri, database string, connectTimeout time.Duration, logger *logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, crerr.Wrap(err, "connect mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if disconnectErr := client.Disconnect(context.Background()); disconnectErr != nil {
			logger.Warn("disconnect mongodb after failed ping", "error", disconnectErr)
		}
		return nil, crerr.Wrap(err, "ping mongodb")
	}

	logger.Info("mongodb connected", "database", database)
	return &Client{mongoClient: client, database: database, logger: logger}, nil
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.mongoClient.Database(c.database).Collection(name)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.mongoClient.Ping(ctx, readpref.Primary())
}

func (c *Client) Disconnect(ctx context.Context) error {
	c.logger.Info("mongodb disconnecting", "database", c.database)
	return c.mongoClient.Disconnect(ctx)
}

// EnsureIndexes creates the compound keys the repositories look documents up by.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		CollectionPrompts: {{
			Keys:    bson.D{{Key: "track_id", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		CollectionJournal: {{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "track_id", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		CollectionUnlockCodes: {{
			Keys: bson.D{{Key: "track_id", Value: 1}, {Key: "created_at", Value: -1}},
		}},
	}
	for collection, models := range specs {
		if _, err := c.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return crerr.Wrapf(err, "create indexes on %s", collection)
		}
	}
	return nil
}
