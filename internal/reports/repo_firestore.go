package reports

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection   = "users"
	reportsCollection = "reports"
)

// FirestoreRepo stores report records in a users/{uid}/reports subcollection.
type FirestoreRepo struct {
	client *firestore.Client
}

// NewFirestoreRepo constructs a FirestoreRepo.
func NewFirestoreRepo(client *firestore.Client) *FirestoreRepo {
	return &FirestoreRepo{client: client}
}

func (r *FirestoreRepo) userReports(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(reportsCollection)
}

// Create appends a record and returns the document ID Firestore assigned.
func (r *FirestoreRepo) Create(ctx context.Context, userID string, rep Report) (string, error) {
	doc := r.userReports(userID).NewDoc()
	if _, err := doc.Set(ctx, rep); err != nil {
		return "", fmt.Errorf("save report for user %s: %w", userID, err)
	}
	return doc.ID, nil
}

// List returns the user's records ordered by uploaded_at descending.
func (r *FirestoreRepo) List(ctx context.Context, userID string, limit int) ([]Report, error) {
	iter := r.userReports(userID).
		OrderBy("uploaded_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []Report
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list reports for user %s: %w", userID, err)
		}
		var rep Report
		if err := doc.DataTo(&rep); err != nil {
			return nil, fmt.Errorf("decode report %s: %w", doc.Ref.ID, err)
		}
		rep.ReportID = doc.Ref.ID
		out = append(out, rep)
	}
	return out, nil
}

// Get fetches one record by ID.
func (r *FirestoreRepo) Get(ctx context.Context, userID, reportID string) (Report, error) {
	doc, err := r.userReports(userID).Doc(reportID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Report{}, ErrNotFound
		}
		return Report{}, fmt.Errorf("get report %s: %w", reportID, err)
	}
	if !doc.Exists() {
		return Report{}, ErrNotFound
	}
	var rep Report
	if err := doc.DataTo(&rep); err != nil {
		return Report{}, fmt.Errorf("decode report %s: %w", reportID, err)
	}
	rep.ReportID = doc.Ref.ID
	return rep, nil
}
