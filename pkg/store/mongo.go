package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/observability"
)

const (
	mapsCollection  = "maps"
	stateCollection = "state"
	selectionDocID  = "selection"
	backendMongo    = "mongo"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	// URI is a mongodb:// or mongodb+srv:// connection string.
	URI string

	// Database defaults to "poimap".
	Database string

	// Timeout bounds the initial connection. Defaults to 10s.
	Timeout time.Duration
}

// selection is the single document in the state collection.
type selection struct {
	ID         string `bson:"_id"`
	Current    string `bson:"current,omitempty"`
	LastViewed string `bson:"last_viewed,omitempty"`
}

// MongoStore keeps maps in a MongoDB collection. Each map is one document
// keyed by its id; the current selection lives in a separate collection.
type MongoStore struct {
	client *mongo.Client
	maps   *mongo.Collection
	state  *mongo.Collection
	opts   Options
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig, opts Options) (*MongoStore, error) {
	if err := errors.ValidateURL(cfg.URI, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	if cfg.Database == "" {
		cfg.Database = "poimap"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	db := client.Database(cfg.Database)
	s := &MongoStore{
		client: client,
		maps:   db.Collection(mapsCollection),
		state:  db.Collection(stateCollection),
		opts:   opts,
	}
	_, err = s.maps.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create maps index")
	}
	return s, nil
}

// Create makes a new map seeded with Lifeboat 5. The first map created
// becomes current.
func (s *MongoStore) Create(ctx context.Context, name string) (*poi.Map, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	m := poi.NewMap(name, s.opts.now())
	if err := s.insert(ctx, m); err != nil {
		return nil, err
	}
	sel, err := s.selection(ctx)
	if err != nil {
		return nil, err
	}
	if sel.Current == "" {
		sel.Current, sel.LastViewed = m.ID, m.ID
		if err := s.putSelection(ctx, sel); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// List returns every map, most recently updated first.
func (s *MongoStore) List(ctx context.Context) ([]*poi.Map, error) {
	cur, err := s.maps.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list maps")
	}
	var maps []*poi.Map
	if err := cur.All(ctx, &maps); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode maps")
	}
	return maps, nil
}

// Get returns one map.
func (s *MongoStore) Get(ctx context.Context, id string) (m *poi.Map, err error) {
	start := time.Now()
	defer func() {
		observability.Store().OnLoad(ctx, backendMongo, id, time.Since(start), err)
	}()

	m = &poi.Map{}
	err = s.maps.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(m)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, mapNotFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get map %s", id)
	}
	return m, nil
}

// Save inserts m or replaces the stored map with the same id.
func (s *MongoStore) Save(ctx context.Context, m *poi.Map) (err error) {
	if err := validateMap(m); err != nil {
		return err
	}
	start := time.Now()
	defer func() {
		observability.Store().OnSave(ctx, backendMongo, m.ID, len(m.POIs), time.Since(start), err)
	}()

	_, err = s.maps.ReplaceOne(ctx, bson.D{{Key: "_id", Value: m.ID}}, m, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save map %s", m.ID)
	}
	return nil
}

// UpdatePOIs replaces the POIs of a map and bumps its UpdatedAt.
func (s *MongoStore) UpdatePOIs(ctx context.Context, id string, pois []poi.POI) (*poi.Map, error) {
	if pois == nil {
		pois = []poi.POI{}
	}
	return s.update(ctx, id, bson.D{{Key: "pois", Value: pois}})
}

// Rename changes the display name of a map.
func (s *MongoStore) Rename(ctx context.Context, id, name string) (*poi.Map, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	return s.update(ctx, id, bson.D{{Key: "name", Value: name}})
}

func (s *MongoStore) update(ctx context.Context, id string, set bson.D) (m *poi.Map, err error) {
	start := time.Now()
	defer func() {
		n := 0
		if m != nil {
			n = len(m.POIs)
		}
		observability.Store().OnSave(ctx, backendMongo, id, n, time.Since(start), err)
	}()

	set = append(set, bson.E{Key: "updated_at", Value: s.opts.now()})
	m = &poi.Map{}
	err = s.maps.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(m)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, mapNotFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "update map %s", id)
	}
	return m, nil
}

// Delete removes a map. If it was current, the most recently updated
// remaining map becomes current.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.maps.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete map %s", id)
	}
	if res.DeletedCount == 0 {
		return mapNotFound(id)
	}

	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}
	if sel.LastViewed == id {
		sel.LastViewed = ""
	}
	if sel.Current == id {
		sel.Current = ""
		maps, err := s.List(ctx)
		if err != nil {
			return err
		}
		if len(maps) > 0 {
			sel.Current, sel.LastViewed = maps[0].ID, maps[0].ID
		}
	}
	return s.putSelection(ctx, sel)
}

// Current returns the selected map, falling back to the last viewed map
// and finally to a newly created Default Map.
func (s *MongoStore) Current(ctx context.Context) (*poi.Map, error) {
	sel, err := s.selection(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range []string{sel.Current, sel.LastViewed} {
		if id == "" {
			continue
		}
		m, err := s.Get(ctx, id)
		if errors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if sel.Current != id {
			sel.Current = id
			if err := s.putSelection(ctx, sel); err != nil {
				return nil, err
			}
		}
		return m, nil
	}

	m, err := s.Create(ctx, DefaultMapName)
	if err != nil {
		return nil, err
	}
	sel.Current, sel.LastViewed = m.ID, m.ID
	if err := s.putSelection(ctx, sel); err != nil {
		return nil, err
	}
	return m, nil
}

// SetCurrent selects a map.
func (s *MongoStore) SetCurrent(ctx context.Context, id string) error {
	n, err := s.maps.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "look up map %s", id)
	}
	if n == 0 {
		return mapNotFound(id)
	}
	return s.putSelection(ctx, selection{ID: selectionDocID, Current: id, LastViewed: id})
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) insert(ctx context.Context, m *poi.Map) (err error) {
	start := time.Now()
	defer func() {
		observability.Store().OnSave(ctx, backendMongo, m.ID, len(m.POIs), time.Since(start), err)
	}()
	if _, err = s.maps.InsertOne(ctx, m); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "insert map %s", m.ID)
	}
	return nil
}

func (s *MongoStore) selection(ctx context.Context) (selection, error) {
	var sel selection
	err := s.state.FindOne(ctx, bson.D{{Key: "_id", Value: selectionDocID}}).Decode(&sel)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return selection{ID: selectionDocID}, nil
	}
	if err != nil {
		return selection{}, errors.Wrap(errors.ErrCodeStorage, err, "read selection")
	}
	return sel, nil
}

func (s *MongoStore) putSelection(ctx context.Context, sel selection) error {
	sel.ID = selectionDocID
	_, err := s.state.ReplaceOne(ctx, bson.D{{Key: "_id", Value: selectionDocID}}, sel, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write selection")
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
