package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"matchup/database"
	"matchup/metrics"
	"matchup/models"
)

type fixture struct {
	users         *database.MemoryRepository[models.User]
	events        *database.MemoryRepository[models.Event]
	messages      *database.MemoryRepository[models.Message]
	notifications *database.MemoryRepository[models.Notification]
	ratings       *database.MemoryRepository[models.Rating]
	requests      *database.MemoryRepository[models.Request]

	userService         *UserService
	notificationService *NotificationService
	metrics             *metrics.Metrics
}

func newFixture() *fixture {
	f := &fixture{
		users:         database.NewMemoryRepository[models.User]([]string{"email"}, []string{"phone"}),
		events:        database.NewMemoryRepository[models.Event](),
		messages:      database.NewMemoryRepository[models.Message](),
		notifications: database.NewMemoryRepository[models.Notification](),
		ratings:       database.NewMemoryRepository[models.Rating](),
		requests:      database.NewMemoryRepository[models.Request](),
		metrics:       metrics.New(),
	}
	f.userService = NewUserService(f.users, UserRelations{
		Events:        f.events,
		Messages:      f.messages,
		Notifications: f.notifications,
		Ratings:       f.ratings,
		Requests:      f.requests,
	}, zerolog.Nop())
	f.notificationService = NewNotificationService(f.notifications, f.metrics, zerolog.Nop())
	return f
}

func (f *fixture) register(email, phone string) models.User {
	u, err := f.userService.Create(context.Background(), models.RegisterInput{
		Email:    email,
		Password: "secret123",
		Name:     "User " + email,
		Phone:    phone,
	})
	if err != nil {
		panic(err)
	}
	return u
}

type fakeVerifier struct {
	status  string
	err     error
	started []string
	checked []string
}

func (v *fakeVerifier) StartVerification(_ context.Context, phone string) error {
	v.started = append(v.started, phone)
	return v.err
}

func (v *fakeVerifier) CheckVerification(_ context.Context, phone, code string) (string, error) {
	v.checked = append(v.checked, phone+":"+code)
	return v.status, v.err
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[primitive.ObjectID][]models.Notification
}

func (n *recordingNotifier) Notify(recipient primitive.ObjectID, note models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = map[primitive.ObjectID][]models.Notification{}
	}
	n.sent[recipient] = append(n.sent[recipient], note)
}

var errStoreDown = errors.New("store down")

// failingInsert wraps a repository whose inserts always fail.
type failingInsert[T any] struct {
	database.Repository[T]
}

func (r failingInsert[T]) Insert(context.Context, T) (T, error) {
	var zero T
	return zero, errStoreDown
}
