package database

import (
	"context"
	"log"
	"time"

	"marketplace/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// clientOptions tunes the pool for many short catalog reads.
func clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetAppName("marketplace").
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)
}

// InitDB connects to MongoDB and fails fast when the primary is unreachable.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions())
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("failed to ping MongoDB primary: %v", err)
	}
	MongoClient = client
	log.Printf("Connected to MongoDB database %q", databaseName())
}

func databaseName() string {
	if name := config.AppConfig.DatabaseName; name != "" {
		return name
	}
	return "marketplace"
}

// Database returns the application database.
func Database() *mongo.Database {
	return MongoClient.Database(databaseName())
}

// Disconnect closes the client during shutdown.
func Disconnect(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
