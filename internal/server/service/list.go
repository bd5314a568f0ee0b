package service

import (
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

type (
	// A ListService manages the lists.
	ListService interface {
		// Create creates a list owned by the given user.
		Create(user *model.User, params CreateListParams) (*model.List, error)
		// Lists returns the lists of the given user.
		Lists(user *model.User) ([]*model.List, error)
		// UserLists returns the owner and the lists of userID readable by the viewer (nil for anonymous).
		UserLists(viewer *model.User, userID string) (*model.User, []*model.List, error)
		// Find returns the list readable by the viewer (nil for anonymous) and its owner.
		Find(viewer *model.User, id string) (*model.List, *model.User, error)
	}

	// CreateListParams are used to create a list.
	CreateListParams struct {
		Name        string `json:"name"        validate:"required,max=100"`
		Description string `json:"description" validate:"max=1000"`
		Visibility  string `json:"visibility"  validate:"omitempty,oneof=public private"`
	}

	listService struct {
		db database.Client
	}
)

// NewList returns a new ListService.
func NewList(db database.Client) ListService {
	return &listService{db: db}
}

func (s *listService) Create(user *model.User, params CreateListParams) (*model.List, error) {
	list := &model.List{
		UserID:      user.ID,
		Name:        params.Name,
		Description: params.Description,
		Visibility:  params.Visibility,
	}
	if list.Visibility == "" {
		list.Visibility = model.VisibilityPrivate
	}

	return list, errors.Wrap(s.db.Save(list), "could not persist list")
}

func (s *listService) Lists(user *model.User) ([]*model.List, error) {
	return s.db.FindListsByUserID(user.ID, false)
}

func (s *listService) UserLists(viewer *model.User, userID string) (*model.User, []*model.List, error) {
	if !libssk.ValidIdentifier(userID) {
		return nil, nil, sskerror.NotFound("User not found.")
	}

	owner, err := s.db.FindUser(userID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, nil, sskerror.NotFound("User not found.")
		}
		return nil, nil, errors.Wrap(err, "could not get access to database")
	}

	self := viewer != nil && viewer.ID == owner.ID
	lists, err := s.db.FindListsByUserID(owner.ID, !self)
	if err != nil {
		return nil, nil, err
	}
	return owner, lists, nil
}

func (s *listService) Find(viewer *model.User, id string) (*model.List, *model.User, error) {
	list, err := readableList(s.db, viewer, id)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.db.FindUser(list.UserID)
	if err != nil && !s.db.IsNotFound(err) {
		return nil, nil, errors.Wrap(err, "could not get access to database")
	}
	return list, owner, nil
}
