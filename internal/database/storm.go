package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/pkg/stormcodec"
)

type strm struct {
	db *storm.DB
}

var models = []any{
	&model.User{},
	&model.Session{},
	&model.List{},
	&model.Food{},
	&model.Category{},
	&model.Tag{},
	&model.Hit{},
}

// StormCodec returns the storm option selecting the format used to store data in the database.
// An empty name selects msgpack.
func StormCodec(name string) (func(*storm.Options) error, error) {
	c, err := stormcodec.ByName(name)
	if err != nil {
		return nil, err
	}
	return storm.Codec(c), nil
}

// StormInit initializes Storm database.
func StormInit(database, codecName string) error {
	db, err := open(database, codecName)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, m := range models {
		if err := db.Init(m); err != nil {
			return errors.Wrapf(err, "could not init %T index", m)
		}
	}
	return nil
}

// StormReIndex reindex Storm database.
func StormReIndex(database, codecName string) error {
	db, err := open(database, codecName)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, m := range models {
		if err := db.ReIndex(m); err != nil {
			return errors.Wrapf(err, "could not ReIndex %T", m)
		}
	}
	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database, codecName string) (Client, error) {
	db, err := open(database, codecName)
	if err != nil {
		return nil, err
	}

	return &strm{
		db: db,
	}, nil
}

func open(database, codecName string) (*storm.DB, error) {
	c, err := StormCodec(codecName)
	if err != nil {
		return nil, err
	}

	db, err := storm.Open(database, c)
	return db, errors.Wrap(err, "could not get database connection")
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	return save(c.db, m)
}

func save(node storm.Node, m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.IsNew() {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(node.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is an already exists error.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByGoogleID returns the user for the given Google account id.
func (c *strm) FindUserByGoogleID(googleID string) (*model.User, error) {
	var user model.User
	if err := c.db.One("GoogleID", googleID, &user); err != nil {
		return nil, errors.Wrap(err, "find user by google id")
	}
	return &user, nil
}

// DeleteUser deletes the user and everything it owns (sessions, lists, foods and hits).
func (c *strm) DeleteUser(id string) error {
	tx, err := c.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback() // nolint:errcheck

	var user model.User
	if err = tx.One("ID", id, &user); err != nil {
		return errors.Wrap(err, "could not find user")
	}

	for _, m := range []any{&model.Session{}, &model.Food{}, &model.List{}} {
		err = tx.Select(q.Eq("UserID", id)).Delete(m)
		if err != nil && !c.IsNotFound(err) {
			return errors.Wrapf(err, "could not delete %T", m)
		}
	}

	err = tx.Select(q.Eq("OwnerID", id)).Delete(&model.Hit{})
	if err != nil && !c.IsNotFound(err) {
		return errors.Wrap(err, "could not delete hits")
	}

	if err = tx.DeleteStruct(&user); err != nil {
		return errors.Wrap(err, "could not delete user")
	}

	return errors.Wrap(tx.Commit(), "could not commit transaction")
}

// FindSession returns the session for the given id (UUID).
func (c *strm) FindSession(id string) (*model.Session, error) {
	var session model.Session
	if err := c.db.One("ID", id, &session); err != nil {
		return nil, errors.Wrap(err, "find session by id")
	}
	return &session, nil
}

// FindSessionByAccessToken returns the session for the given access token.
func (c *strm) FindSessionByAccessToken(token string) (*model.Session, error) {
	var session model.Session
	if err := c.db.One("AccessToken", token, &session); err != nil {
		return nil, errors.Wrap(err, "find session by access token")
	}
	return &session, nil
}

// FindSessionsByUserID returns all the sessions for the given user id.
func (c *strm) FindSessionsByUserID(userID string) ([]*model.Session, error) {
	sessions := make([]*model.Session, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Find(&sessions)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find sessions by user id")
	}
	return sessions, nil
}

// FindList returns the list for the given id (UUID).
func (c *strm) FindList(id string) (*model.List, error) {
	var list model.List
	if err := c.db.One("ID", id, &list); err != nil {
		return nil, errors.Wrap(err, "find list by id")
	}
	return &list, nil
}

// FindListsByUserID returns the lists of the given user, oldest first.
func (c *strm) FindListsByUserID(userID string, publicOnly bool) ([]*model.List, error) {
	query := []q.Matcher{q.Eq("UserID", userID)}
	if publicOnly {
		query = append(query, q.Eq("Visibility", model.VisibilityPublic))
	}

	lists := make([]*model.List, 0)
	err := c.db.Select(query...).OrderBy("CreatedAt").Find(&lists)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find lists by user id")
	}
	return lists, nil
}

// FindFood returns the food for the given id (UUID).
func (c *strm) FindFood(id string) (*model.Food, error) {
	var food model.Food
	if err := c.db.One("ID", id, &food); err != nil {
		return nil, errors.Wrap(err, "find food by id")
	}
	return &food, nil
}

// FindFoodsByListID returns the foods of the given list, oldest first.
func (c *strm) FindFoodsByListID(listID string) ([]*model.Food, error) {
	foods := make([]*model.Food, 0)
	err := c.db.Select(q.Eq("ListID", listID)).OrderBy("CreatedAt").Find(&foods)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find foods by list id")
	}
	return foods, nil
}

// FindAllFoods returns all the foods.
func (c *strm) FindAllFoods() ([]*model.Food, error) {
	foods := make([]*model.Food, 0)
	if err := c.db.All(&foods); err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find foods")
	}
	return foods, nil
}

// FindCategories returns all the categories sorted by name.
func (c *strm) FindCategories() ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	err := c.db.Select().OrderBy("Name").Find(&categories)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find categories")
	}
	return categories, nil
}

// FindCategoriesByIDs returns the categories for the given ids, unknown ids are ignored.
func (c *strm) FindCategoriesByIDs(ids []string) ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	if len(ids) == 0 {
		return categories, nil
	}

	err := c.db.Select(q.In("ID", ids)).OrderBy("Name").Find(&categories)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find categories by ids")
	}
	return categories, nil
}

// FindCategoryByName returns the category for the given name.
func (c *strm) FindCategoryByName(name string) (*model.Category, error) {
	var category model.Category
	if err := c.db.One("Name", name, &category); err != nil {
		return nil, errors.Wrap(err, "find category by name")
	}
	return &category, nil
}

// FindTagByName returns the tag for the given name.
func (c *strm) FindTagByName(name string) (*model.Tag, error) {
	var tag model.Tag
	if err := c.db.One("Name", name, &tag); err != nil {
		return nil, errors.Wrap(err, "find tag by name")
	}
	return &tag, nil
}

// FindTagsByIDs returns the tags for the given ids, unknown ids are ignored.
func (c *strm) FindTagsByIDs(ids []string) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0)
	if len(ids) == 0 {
		return tags, nil
	}

	err := c.db.Select(q.In("ID", ids)).OrderBy("Name").Find(&tags)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find tags by ids")
	}
	return tags, nil
}

// SaveHits inserts or replaces the given hits.
func (c *strm) SaveHits(hits ...*model.Hit) error {
	if len(hits) == 0 {
		return nil
	}

	tx, err := c.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback() // nolint:errcheck

	for _, hit := range hits {
		if err = tx.Save(hit); err != nil {
			return errors.Wrapf(err, "could not save hit %s", hit.ObjectID)
		}
	}

	return errors.Wrap(tx.Commit(), "could not commit transaction")
}

// DeleteHits deletes the hits for the given object ids, unknown ids are ignored.
func (c *strm) DeleteHits(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	err := c.db.Select(q.In("ObjectID", ids)).Delete(&model.Hit{})
	if err != nil && !c.IsNotFound(err) {
		return errors.Wrap(err, "could not delete hits")
	}
	return nil
}

// ClearHits deletes all the hits.
func (c *strm) ClearHits() error {
	err := c.db.Select().Delete(&model.Hit{})
	if err != nil && !c.IsNotFound(err) {
		return errors.Wrap(err, "could not clear hits")
	}
	return nil
}

// FindHits returns all the hits matching the given matcher, newest first.
func (c *strm) FindHits(matcher q.Matcher) ([]*model.Hit, error) {
	hits := make([]*model.Hit, 0)
	err := c.db.Select(matcher).OrderBy("CreatedAtUnix", "ObjectID").Reverse().Find(&hits)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find hits")
	}
	return hits, nil
}

// Seed ensures the given categories exist.
func Seed(db Client, names []string) error {
	for _, name := range names {
		_, err := db.FindCategoryByName(name)
		if err == nil {
			continue
		}
		if !db.IsNotFound(err) {
			return err
		}

		if err = db.Save(&model.Category{Name: name}); err != nil {
			return errors.Wrapf(err, "could not seed category %s", name)
		}
	}
	return nil
}
