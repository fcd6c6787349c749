package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

type mongoDocument struct {
	raw bson.Raw
}

func (d mongoDocument) ID() string {
	id, _ := d.raw.Lookup("_id").StringValueOK()
	return id
}

func (d mongoDocument) DataTo(dst any) error { return bson.Unmarshal(d.raw, dst) }

// NewMongoStore подключается к MongoDB. Документы хранятся со строковым _id.
func NewMongoStore(ctx context.Context, uri, database string) (Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &mongoStore{client: client, db: client.Database(database)}, nil
}

func (s *mongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.Raw
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return mongoDocument{raw: raw}, nil
}

func (s *mongoStore) Find(ctx context.Context, collection, field string, value any) ([]Document, error) {
	return s.find(ctx, collection, bson.M{field: value})
}

func (s *mongoStore) All(ctx context.Context, collection string) ([]Document, error) {
	return s.find(ctx, collection, bson.M{})
}

func (s *mongoStore) find(ctx context.Context, collection string, filter bson.M) ([]Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]Document, 0)
	for cur.Next(ctx) {
		// cur.Current переиспользуется курсором, поэтому копируем.
		raw := make(bson.Raw, len(cur.Current))
		copy(raw, cur.Current)
		docs = append(docs, mongoDocument{raw: raw})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *mongoStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := primitive.NewObjectID().Hex()
	doc := toMongoDocument(data)
	doc["_id"] = id
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *mongoStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	doc := toMongoDocument(data)
	doc["_id"] = id
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *mongoStore) Update(ctx context.Context, collection, id string, updates []Update) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, toMongoUpdate(updates))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *mongoStore) Batch(ctx context.Context, writes []Write) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongodb session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, w := range writes {
			if err := s.Update(sc, w.Collection, w.ID, w.Updates); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (s *mongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toMongoDocument(data map[string]any) bson.M {
	doc := make(bson.M, len(data)+1)
	for k, v := range data {
		switch t := v.(type) {
		case serverTimestamp:
			doc[k] = time.Now().UTC()
		case arrayUnion:
			doc[k] = t.values
		case arrayRemove:
			doc[k] = bson.A{}
		default:
			doc[k] = v
		}
	}
	return doc
}

func toMongoUpdate(updates []Update) bson.M {
	set := bson.M{}
	addToSet := bson.M{}
	pull := bson.M{}
	currentDate := bson.M{}

	for _, u := range updates {
		switch t := u.Value.(type) {
		case serverTimestamp:
			currentDate[u.Path] = true
		case arrayUnion:
			addToSet[u.Path] = bson.M{"$each": t.values}
		case arrayRemove:
			pull[u.Path] = bson.M{"$in": t.values}
		default:
			set[u.Path] = u.Value
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}
	if len(pull) > 0 {
		update["$pull"] = pull
	}
	if len(currentDate) > 0 {
		update["$currentDate"] = currentDate
	}
	return update
}
