package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CreateTestDatabase connects to TEST_MONGODB_URL and returns a database unique to the test.
// The test is skipped when the variable is not set. The database is dropped on cleanup.
func CreateTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGODB_URL")
	if uri == "" {
		t.Skip("TEST_MONGODB_URL is not set.")
	}
	ctx := context.Background()
	client, err := Connect(ctx, uri)
	if err != nil {
		t.Fatalf("Could not connect to MongoDB: %v", err)
	}
	database := client.Database(fmt.Sprintf("authsvc_test_%d", os.Getpid()))
	t.Cleanup(func() {
		database.Drop(context.Background())
		client.Disconnect(context.Background())
	})
	return database
}
