package database

import (
	"github.com/asdine/storm/v3/q"
	"github.com/shishikan-sg/shishikan/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is an already exists error.
		IsAlreadyExists(err error) bool

		UserInteraction
		SessionInteraction
		ListInteraction
		FoodInteraction
		CategoryInteraction
		HitInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByGoogleID returns the user for the given Google account id.
		FindUserByGoogleID(googleID string) (*model.User, error)
		// DeleteUser deletes the user and everything it owns (sessions, lists, foods and hits).
		DeleteUser(id string) error
	}

	// A SessionInteraction defines all the methods used to interact with a session record.
	SessionInteraction interface {
		// FindSession returns the session for the given id (UUID).
		FindSession(id string) (*model.Session, error)
		// FindSessionByAccessToken returns the session for the given access token.
		FindSessionByAccessToken(token string) (*model.Session, error)
		// FindSessionsByUserID returns all sessions for the given user id.
		FindSessionsByUserID(userID string) ([]*model.Session, error)
	}

	// A ListInteraction defines all the methods used to interact with a list record.
	ListInteraction interface {
		// FindList returns the list for the given id (UUID).
		FindList(id string) (*model.List, error)
		// FindListsByUserID returns the lists of the given user, oldest first.
		FindListsByUserID(userID string, publicOnly bool) ([]*model.List, error)
	}

	// A FoodInteraction defines all the methods used to interact with a food record.
	FoodInteraction interface {
		// FindFood returns the food for the given id (UUID).
		FindFood(id string) (*model.Food, error)
		// FindFoodsByListID returns the foods of the given list, oldest first.
		FindFoodsByListID(listID string) ([]*model.Food, error)
		// FindAllFoods returns all the foods.
		FindAllFoods() ([]*model.Food, error)
	}

	// A CategoryInteraction defines all the methods used to interact with category and tag records.
	CategoryInteraction interface {
		// FindCategories returns all the categories sorted by name.
		FindCategories() ([]*model.Category, error)
		// FindCategoriesByIDs returns the categories for the given ids, unknown ids are ignored.
		FindCategoriesByIDs(ids []string) ([]*model.Category, error)
		// FindCategoryByName returns the category for the given name.
		FindCategoryByName(name string) (*model.Category, error)
		// FindTagByName returns the tag for the given name.
		FindTagByName(name string) (*model.Tag, error)
		// FindTagsByIDs returns the tags for the given ids, unknown ids are ignored.
		FindTagsByIDs(ids []string) ([]*model.Tag, error)
	}

	// A HitInteraction defines all the methods used by the embedded search index.
	HitInteraction interface {
		// SaveHits inserts or replaces the given hits.
		SaveHits(hits ...*model.Hit) error
		// DeleteHits deletes the hits for the given object ids, unknown ids are ignored.
		DeleteHits(ids ...string) error
		// ClearHits deletes all the hits.
		ClearHits() error
		// FindHits returns all the hits matching the given matcher, newest first.
		FindHits(matcher q.Matcher) ([]*model.Hit, error)
	}
)
