package services

import (
	"context"
	"errors"
	"regexp"
	"sort"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"matchup/database"
	"matchup/helper"
	"matchup/models"
)

const (
	userResource = "User"
	passwordCost = 10
)

// UserRelations are the collections a user profile is assembled from.
type UserRelations struct {
	Events        database.Repository[models.Event]
	Messages      database.Repository[models.Message]
	Notifications database.Repository[models.Notification]
	Ratings       database.Repository[models.Rating]
	Requests      database.Repository[models.Request]
}

type UserService struct {
	users database.Repository[models.User]
	rel   UserRelations
	log   zerolog.Logger
}

func NewUserService(users database.Repository[models.User], rel UserRelations, log zerolog.Logger) *UserService {
	return &UserService{users: users, rel: rel, log: log.With().Str("resource", userResource).Logger()}
}

func (s *UserService) GetAll(ctx context.Context) ([]models.UserProfile, error) {
	users, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, translateStoreError(userResource, "", err)
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		p, err := s.populate(ctx, u)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.UserProfile, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return models.UserProfile{}, err
	}
	return s.populate(ctx, u)
}

// Search matches users whose name contains the given text, ignoring case.
func (s *UserService) Search(ctx context.Context, name string) ([]models.User, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
	users, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, translateStoreError(userResource, "", err)
	}
	return users, nil
}

// Create stores a new account with a bcrypt hashed password.
func (s *UserService) Create(ctx context.Context, in models.RegisterInput) (models.User, error) {
	if err := helper.ValidateStruct(in); err != nil {
		return models.User{}, err
	}

	_, err := s.users.FindOne(ctx, bson.M{"email": in.Email})
	if err == nil {
		return models.User{}, helper.Conflict("Email already in use.")
	}
	if !errors.Is(err, database.ErrNotFound) {
		return models.User{}, translateStoreError(userResource, "", err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	in.Password = hash

	saved, err := s.users.Insert(ctx, in.Build())
	if err != nil {
		return models.User{}, translateStoreError(userResource, "", err)
	}

	s.log.Info().Str("id", saved.ID.Hex()).Msg("user registered")
	return saved, nil
}

// FindByEmail backs login, so an unknown address reads as bad credentials.
func (s *UserService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := s.users.FindOne(ctx, bson.M{"email": email})
	if errors.Is(err, database.ErrNotFound) {
		return models.User{}, helper.BadRequest("Invalid credentials.")
	}
	if err != nil {
		return models.User{}, translateStoreError(userResource, "", err)
	}
	return u, nil
}

// Update overwrites the account fields of a user. Profile data such as
// hobbies or location is kept.
func (s *UserService) Update(ctx context.Context, id string, in models.RegisterInput) (models.UserProfile, error) {
	oid, err := ParseID(userResource, id)
	if err != nil {
		return models.UserProfile{}, err
	}
	if err := helper.ValidateStruct(in); err != nil {
		return models.UserProfile{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.UserProfile{}, err
	}

	u, err := s.users.Update(ctx, oid, bson.M{
		"email":    in.Email,
		"password": hash,
		"name":     in.Name,
		"phone":    in.Phone,
	})
	if err != nil {
		return models.UserProfile{}, translateStoreError(userResource, id, err)
	}
	return s.populate(ctx, u)
}

func (s *UserService) Patch(ctx context.Context, id string, patch models.UserPatch) (models.UserProfile, error) {
	oid, err := ParseID(userResource, id)
	if err != nil {
		return models.UserProfile{}, err
	}
	if err := helper.ValidateStruct(patch); err != nil {
		return models.UserProfile{}, err
	}

	if patch.Password != nil {
		hash, err := hashPassword(*patch.Password)
		if err != nil {
			return models.UserProfile{}, err
		}
		patch.Password = &hash
	}

	set, err := database.ToDocument(patch)
	if err != nil {
		return models.UserProfile{}, helper.BadRequest(err.Error())
	}
	u, err := s.users.Update(ctx, oid, set)
	if err != nil {
		return models.UserProfile{}, translateStoreError(userResource, id, err)
	}
	return s.populate(ctx, u)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(userResource, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, oid); err != nil {
		return translateStoreError(userResource, id, err)
	}
	return nil
}

func (s *UserService) SetProfilePicture(ctx context.Context, id, url string) (models.User, error) {
	oid, err := ParseID(userResource, id)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.Update(ctx, oid, bson.M{"profilePicture": url})
	if err != nil {
		return models.User{}, translateStoreError(userResource, id, err)
	}
	return u, nil
}

// SetOnline records websocket presence for a user.
func (s *UserService) SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error {
	if _, err := s.users.Update(ctx, id, bson.M{"online": online}); err != nil {
		return translateStoreError(userResource, id.Hex(), err)
	}
	return nil
}

// CreatedEvents lists the events the user organises.
func (s *UserService) CreatedEvents(ctx context.Context, id string) ([]models.Event, error) {
	oid, err := ParseID(userResource, id)
	if err != nil {
		return nil, err
	}
	return findRelated(ctx, s.rel.Events, "Event", bson.M{"creator": oid})
}

// JoinedEvents lists the events the user takes part in.
func (s *UserService) JoinedEvents(ctx context.Context, id string) ([]models.Event, error) {
	oid, err := ParseID(userResource, id)
	if err != nil {
		return nil, err
	}
	return findRelated(ctx, s.rel.Events, "Event", bson.M{"acceptedParticipants": oid})
}

func (s *UserService) ReceivedMessages(ctx context.Context, id string) ([]models.Message, error) {
	oid, err := ParseID(userResource, id)
	if err != nil {
		return nil, err
	}
	return findRelated(ctx, s.rel.Messages, "Message", bson.M{"recipient": oid})
}

func (s *UserService) populate(ctx context.Context, u models.User) (models.UserProfile, error) {
	p := models.UserProfile{User: u}
	var err error

	if p.OwnEvents, err = findRelated(ctx, s.rel.Events, "Event", bson.M{"creator": u.ID}); err != nil {
		return p, err
	}
	if p.ParticipantEvents, err = findRelated(ctx, s.rel.Events, "Event", bson.M{"acceptedParticipants": u.ID}); err != nil {
		return p, err
	}
	if p.Messages, err = findRelated(ctx, s.rel.Messages, "Message", bson.M{"recipient": u.ID}); err != nil {
		return p, err
	}
	if p.Notifications, err = findRelated(ctx, s.rel.Notifications, "Notification", bson.M{"recipient": u.ID}); err != nil {
		return p, err
	}
	sortNewestFirst(p.Notifications)
	if p.Ratings, err = findRelated(ctx, s.rel.Ratings, "Rating", bson.M{"to": u.ID}); err != nil {
		return p, err
	}
	if p.RequestsSent, err = findRelated(ctx, s.rel.Requests, "Request", bson.M{"from": u.ID}); err != nil {
		return p, err
	}
	if p.RequestsReceived, err = findRelated(ctx, s.rel.Requests, "Request", bson.M{"to": u.ID}); err != nil {
		return p, err
	}
	return p, nil
}

func (s *UserService) find(ctx context.Context, id string) (models.User, error) {
	oid, err := ParseID(userResource, id)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return models.User{}, translateStoreError(userResource, id, err)
	}
	return u, nil
}

func findRelated[T any](ctx context.Context, repo database.Repository[T], resource string, filter bson.M) ([]T, error) {
	if repo == nil {
		return []T{}, nil
	}
	docs, err := repo.Find(ctx, filter)
	if err != nil {
		return nil, translateStoreError(resource, "", err)
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

func sortNewestFirst(ns []models.Notification) {
	sort.SliceStable(ns, func(i, j int) bool { return ns[i].CreatedAt.After(ns[j].CreatedAt) })
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", helper.BadRequest("password must be at most 72 bytes")
	}
	if err != nil {
		return "", helper.Internal("Could not hash password.", err)
	}
	return string(hash), nil
}
