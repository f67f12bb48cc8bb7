package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/levenlabs/go-lflag"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const projectionsCollection = "projections"

// FirestoreProvider implements the Database interface using Google Cloud
// Firestore. Each projection is a document in the "projections" collection
// holding the record as a JSON string alongside the fields used for listing.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
}

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// project ID may be empty and inferred from the environment
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// SaveProjection implements Database.
func (f *FirestoreProvider) SaveProjection(ctx context.Context, record types.ProjectionRecord) error {
	if record.ID == "" {
		return fmt.Errorf("projection id cannot be empty")
	}
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal projection: %w", err)
	}
	summaryJSON, err := json.Marshal(record.Summary())
	if err != nil {
		return fmt.Errorf("failed to marshal projection summary: %w", err)
	}

	_, err = f.client.Collection(projectionsCollection).Doc(record.ID).Set(ctx, map[string]any{
		"json":      string(recordJSON),
		"summary":   string(summaryJSON),
		"name":      record.Name,
		"createdAt": record.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save projection %s: %w", record.ID, err)
	}
	return nil
}

// GetProjection implements Database.
func (f *FirestoreProvider) GetProjection(ctx context.Context, id string) (types.ProjectionRecord, error) {
	if id == "" {
		return types.ProjectionRecord{}, ErrProjectionNotFound
	}
	doc, err := f.client.Collection(projectionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.ProjectionRecord{}, ErrProjectionNotFound
		}
		return types.ProjectionRecord{}, fmt.Errorf("failed to fetch projection doc: %w", err)
	}

	var record types.ProjectionRecord
	if err := decodeJSONField(doc, "json", &record); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "invalid projection doc", slog.String("id", id), slog.Any("error", err))
		return types.ProjectionRecord{}, err
	}
	return record, nil
}

// ListProjections implements Database.
func (f *FirestoreProvider) ListProjections(ctx context.Context, limit int) ([]types.ProjectionSummary, error) {
	iter := f.client.Collection(projectionsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(normalizeLimit(limit)).
		Documents(ctx)
	defer iter.Stop()

	var out []types.ProjectionSummary
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate projections: %w", err)
		}
		var summary types.ProjectionSummary
		if err := decodeJSONField(doc, "summary", &summary); err != nil {
			log.Ctx(ctx).WarnContext(ctx, "skipping invalid projection summary", slog.String("id", doc.Ref.ID), slog.Any("error", err))
			continue
		}
		out = append(out, summary)
	}
	return out, nil
}

func decodeJSONField(doc *firestore.DocumentSnapshot, field string, v any) error {
	val, err := doc.DataAt(field)
	if err != nil {
		return fmt.Errorf("document missing '%s' field: %w", field, err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		return fmt.Errorf("'%s' field is not a string", field)
	}
	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("failed to unmarshal '%s' field: %w", field, err)
	}
	return nil
}
