package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

const collectionCustomers = "customers"

type CustomerRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{db: db, col: db.Collection(collectionCustomers)}
}

type mongoCustomer struct {
	ID        int64     `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	Company   string    `bson:"company,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDomainCustomer(mc mongoCustomer) *domain.Customer {
	return &domain.Customer{
		ID:        mc.ID,
		Name:      mc.Name,
		Email:     mc.Email,
		Phone:     mc.Phone,
		Company:   mc.Company,
		CreatedAt: mc.CreatedAt,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionCustomers)
	if err != nil {
		return nil, err
	}

	doc := mongoCustomer{
		ID:        id,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCustomerExists
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}

	return toDomainCustomer(doc), nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCustomer
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return toDomainCustomer(mc), nil
}

func (r *CustomerRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
	}}

	var mc mongoCustomer
	if err := r.col.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer by email or phone: %w", err)
	}
	return toDomainCustomer(mc), nil
}

// List returns a page of customers matching filter, newest first, plus the
// total count across all pages. Search matches name/email case-insensitively
// and phone as an exact substring.
func (r *CustomerRepository) List(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": primitive.Regex{Pattern: pattern, Options: "i"}},
			bson.M{"email": primitive.Regex{Pattern: pattern, Options: "i"}},
			bson.M{"phone": primitive.Regex{Pattern: pattern}},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Customer
	for cur.Next(ctx) {
		var mc mongoCustomer
		if err := cur.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode customer: %w", err)
		}
		out = append(out, toDomainCustomer(mc))
	}
	return out, total, cur.Err()
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email and phone indexes.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
