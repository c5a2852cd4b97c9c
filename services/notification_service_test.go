package services

import (
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/worklinehq/workline/config"
	apiError "github.com/worklinehq/workline/errors"
	"github.com/worklinehq/workline/models"
)

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
}

func (f *fakeNotificationRepo) SaveNotification(n *models.Notification) error {
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now().UTC()
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) GetUserNotifications(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeNotificationRepo) FindByIDAndUser(id uint, userID uint) (*models.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			return &f.notifications[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkNotificationRead(id uint, userID uint) error {
	for i := range f.notifications {
		n := &f.notifications[i]
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) UnreadCount(userID uint) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func newTestNotificationService() (NotificationService, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	return NewNotificationService(repo, &config.Config{}), repo
}

func TestNotificationCreate(t *testing.T) {
	svc, repo := newTestNotificationService()

	n, err := svc.Create(1, "New message", "New message from Bob")
	require.NoError(t, err)
	assert.NotZero(t, n.ID)
	assert.Equal(t, uint(1), n.UserID)
	assert.False(t, n.IsRead)

	// no dedup: creating the same notice twice stores both
	_, err = svc.Create(1, "New message", "New message from Bob")
	require.NoError(t, err)
	assert.Len(t, repo.notifications, 2)
}

func TestNotificationList_NewestFirst(t *testing.T) {
	svc, _ := newTestNotificationService()

	_, err := svc.Create(1, "first", "first body")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Create(1, "second", "second body")
	require.NoError(t, err)
	_, err = svc.Create(2, "other user", "not mine")
	require.NoError(t, err)

	notifications, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "second", notifications[0].Title)
	assert.Equal(t, "first", notifications[1].Title)
}

func TestNotificationMarkRead(t *testing.T) {
	svc, repo := newTestNotificationService()

	n, err := svc.Create(1, "title", "body")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(n.ID, 1))
	assert.True(t, repo.notifications[0].IsRead)

	// idempotent
	require.NoError(t, svc.MarkRead(n.ID, 1))
	assert.True(t, repo.notifications[0].IsRead)

	count, err := svc.UnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNotificationMarkRead_WrongOwner(t *testing.T) {
	svc, repo := newTestNotificationService()

	n, err := svc.Create(1, "title", "body")
	require.NoError(t, err)

	err = svc.MarkRead(n.ID, 2)
	require.Error(t, err)
	apiErr, ok := err.(*apiError.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.False(t, repo.notifications[0].IsRead)
}

func TestNotificationMarkRead_UnknownID(t *testing.T) {
	svc, _ := newTestNotificationService()

	err := svc.MarkRead(42, 1)
	require.Error(t, err)
	apiErr, ok := err.(*apiError.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestNotificationUnreadCount(t *testing.T) {
	svc, _ := newTestNotificationService()

	_, err := svc.Create(1, "a", "a")
	require.NoError(t, err)
	n, err := svc.Create(1, "b", "b")
	require.NoError(t, err)
	_, err = svc.Create(2, "c", "c")
	require.NoError(t, err)

	count, err := svc.UnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkRead(n.ID, 1))
	count, err = svc.UnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
