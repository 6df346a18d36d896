package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionClients  = "clients"
	collectionContacts = "contacts"
)

// ExportedClient is one master-data record written by the contact exporter.
type ExportedClient struct {
	ClientID   int       `bson:"client_id"`
	Name       string    `bson:"name"`
	Surname    string    `bson:"surname"`
	VATCountry string    `bson:"vat_country,omitempty"`
	Language   string    `bson:"language,omitempty"`
	Raw        bson.M    `bson:"raw"`
	ExportedAt time.Time `bson:"exported_at"`
}

// ExportedContact is one unfolded contact entry linked to its client.
type ExportedContact struct {
	ClientID   int       `bson:"client_id"`
	Name       string    `bson:"name"`
	Emails     []string  `bson:"emails"`
	Phones     []string  `bson:"phones"`
	Faxes      []string  `bson:"faxes"`
	ExportedAt time.Time `bson:"exported_at"`
}

// ContactRepository stores the contact-export archive: one document per
// master-data record plus one per unfolded contact.
type ContactRepository struct {
	clients  *mongo.Collection
	contacts *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{
		clients:  db.Collection(collectionClients),
		contacts: db.Collection(collectionContacts),
	}
}

// UpsertClient writes or replaces a client document keyed by client_id, so
// re-running the exporter refreshes the archive instead of duplicating it.
func (r *ContactRepository) UpsertClient(ctx context.Context, client *ExportedClient) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.clients.ReplaceOne(
		ctx,
		bson.M{"client_id": client.ClientID},
		client,
		options.Replace().SetUpsert(true),
	)
	return err
}

// ReplaceContacts swaps the stored contacts of one client for the freshly
// unfolded set.
func (r *ContactRepository) ReplaceContacts(ctx context.Context, clientID int, contacts []ExportedContact) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.contacts.DeleteMany(ctx, bson.M{"client_id": clientID}); err != nil {
		return err
	}
	if len(contacts) == 0 {
		return nil
	}

	docs := make([]interface{}, len(contacts))
	for i := range contacts {
		docs[i] = contacts[i]
	}
	_, err := r.contacts.InsertMany(ctx, docs)
	return err
}

// EnsureIndexes creates the lookup indexes used by downstream analysis.
func (r *ContactRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.clients.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "surname", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = r.contacts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "phones", Value: 1}}},
	})
	return err
}
