package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

// fakeDirectory resolves usernames from a fixed map
type fakeDirectory struct {
	users map[string]*models.User
}

func (d *fakeDirectory) GetUserByUsername(username string) (*models.User, error) {
	return d.users[username], nil
}

// fakeInvitationStore keeps invitations in memory, mirroring the
// per-user row semantics of the SQL store
type fakeInvitationStore struct {
	invitations map[string]*models.Invitation
}

func newFakeInvitationStore() *fakeInvitationStore {
	return &fakeInvitationStore{invitations: map[string]*models.Invitation{}}
}

func (s *fakeInvitationStore) CreateInvitation(inv *models.Invitation) error {
	copied := *inv
	s.invitations[inv.InvitationID] = &copied
	return nil
}

func (s *fakeInvitationStore) GetInvitation(invitationID string) (*models.Invitation, error) {
	inv, ok := s.invitations[invitationID]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (s *fakeInvitationStore) GetInvitationsForInvitee(userID string, now time.Time) ([]*models.Invitation, error) {
	var result []*models.Invitation
	for _, inv := range s.invitations {
		if inv.HasInvitee(userID) && inv.ExpiresAt.After(now) {
			copied := *inv
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *fakeInvitationStore) GetInvitationsByInviter(inviterID string) ([]*models.Invitation, error) {
	var result []*models.Invitation
	for _, inv := range s.invitations {
		if inv.InviterID == inviterID {
			copied := *inv
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *fakeInvitationStore) UpsertResponse(invitationID, userID string, response models.InvitationResponse) error {
	inv, ok := s.invitations[invitationID]
	if !ok {
		return errors.New("no such invitation")
	}
	if inv.Responses == nil {
		inv.Responses = map[string]models.InvitationResponse{}
	}
	inv.Responses[userID] = response
	return nil
}

func (s *fakeInvitationStore) UpsertEvaluation(invitationID, userID string, eval models.ParticipantEvaluation) error {
	inv, ok := s.invitations[invitationID]
	if !ok {
		return errors.New("no such invitation")
	}
	if inv.ParticipantEvaluations == nil {
		inv.ParticipantEvaluations = map[string]models.ParticipantEvaluation{}
	}
	inv.ParticipantEvaluations[userID] = eval
	return nil
}

func (s *fakeInvitationStore) InvitationExists(invitationID string) (bool, error) {
	_, ok := s.invitations[invitationID]
	return ok, nil
}

// fakeNotificationStore collects notifications in memory
type fakeNotificationStore struct {
	notifications []models.Notification
	failCreate    bool
}

func (s *fakeNotificationStore) CreateNotification(n *models.Notification) error {
	if s.failCreate {
		return errors.New("notification store down")
	}
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *fakeNotificationStore) GetNotificationsForUser(userID string) ([]models.Notification, error) {
	var result []models.Notification
	for _, n := range s.notifications {
		if n.RecipientUserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (s *fakeNotificationStore) MarkNotificationRead(notificationID, userID string) (bool, error) {
	for i, n := range s.notifications {
		if n.NotificationID == notificationID && n.RecipientUserID == userID {
			s.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	service       *InvitationService
	store         *fakeInvitationStore
	notifications *fakeNotificationStore
	now           time.Time
}

func newFixture(t *testing.T, users ...*models.User) *fixture {
	t.Helper()
	directory := &fakeDirectory{users: map[string]*models.User{}}
	for _, u := range users {
		directory.users[u.Username] = u
	}

	store := newFakeInvitationStore()
	notifications := &fakeNotificationStore{}
	svc := NewInvitationService(directory, store, notifications, nil)

	f := &fixture{service: svc, store: store, notifications: notifications,
		now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	counter := 0
	svc.now = func() time.Time { return f.now }
	svc.newID = func() string {
		counter++
		return string(rune('a'+counter-1)) + "-id"
	}
	return f
}

func testUser(id, username string) *models.User {
	return &models.User{
		UserID:   id,
		Username: username,
		Email:    username + "@example.com",
		ShowName: true,
	}
}

func TestCreateInvitation(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, map[string]interface{}{
		"coffee_name":  "Gesha Village",
		"session_type": "SCA Cupping",
	})
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	if inv.InviterID != "u-alice" {
		t.Errorf("InviterID = %v, want u-alice", inv.InviterID)
	}
	if inv.Status != "pending" {
		t.Errorf("Status = %v, want pending", inv.Status)
	}
	if got := inv.ExpiresAt.Sub(inv.CreatedAt); got != 7*24*time.Hour {
		t.Errorf("expiry window = %v, want 168h", got)
	}
	if len(inv.InviteeUsers) != 1 || inv.InviteeUsers[0].UserID != "u-bob" {
		t.Errorf("InviteeUsers = %+v, want bob only", inv.InviteeUsers)
	}

	// Bob got a notification
	notifications, err := f.service.Notifications("u-bob")
	if err != nil {
		t.Fatalf("Notifications() error = %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	n := notifications[0]
	if n.CoffeeName != "Gesha Village" {
		t.Errorf("notification CoffeeName = %v, want Gesha Village", n.CoffeeName)
	}
	if n.Type != models.NotificationTypeCuppingInvitation {
		t.Errorf("notification Type = %v", n.Type)
	}
	if n.IsRead {
		t.Error("new notification should be unread")
	}
}

func TestCreateInvitationSkipsUnknownInvitees(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob", "nosuchuser"}, nil)
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}
	if len(inv.InviteeUsers) != 1 {
		t.Errorf("got %d invitees, want 1", len(inv.InviteeUsers))
	}
}

func TestCreateInvitationNoInviteesResolved(t *testing.T) {
	alice := testUser("u-alice", "alice")
	f := newFixture(t, alice)

	_, err := f.service.CreateInvitation(context.Background(), alice, []string{"ghost"}, nil)
	if !errors.Is(err, ErrNoInviteesResolved) {
		t.Errorf("error = %v, want ErrNoInviteesResolved", err)
	}
	if len(f.store.invitations) != 0 {
		t.Error("no invitation should be stored")
	}
}

func TestCreateInvitationSurvivesNotificationFailure(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)
	f.notifications.failCreate = true

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil)
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}
	if _, err := f.service.GetInvitation(inv.InvitationID); err != nil {
		t.Errorf("invitation should exist despite notification failure: %v", err)
	}
}

func TestInboxHidesExpiredInvitations(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil)
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	inbox, err := f.service.GetUserInvitations("u-bob")
	if err != nil {
		t.Fatalf("GetUserInvitations() error = %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("got %d invitations before expiry, want 1", len(inbox))
	}

	// Advance past the expiry window
	f.now = f.now.Add(8 * 24 * time.Hour)

	inbox, err = f.service.GetUserInvitations("u-bob")
	if err != nil {
		t.Fatalf("GetUserInvitations() error = %v", err)
	}
	if len(inbox) != 0 {
		t.Errorf("got %d invitations after expiry, want 0", len(inbox))
	}

	// The invitation itself is still readable and writable
	if _, err := f.service.GetInvitation(inv.InvitationID); err != nil {
		t.Errorf("expired invitation should still be readable: %v", err)
	}
	if err := f.service.RespondToInvitation(inv.InvitationID, bob, models.ResponseAccept); err != nil {
		t.Errorf("expired invitation should still accept responses: %v", err)
	}
}

func TestRespondToInvitation(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil)
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	if err := f.service.RespondToInvitation(inv.InvitationID, bob, models.ResponseAccept); err != nil {
		t.Fatalf("RespondToInvitation() error = %v", err)
	}

	got, err := f.service.GetInvitation(inv.InvitationID)
	if err != nil {
		t.Fatalf("GetInvitation() error = %v", err)
	}
	r, ok := got.Responses["u-bob"]
	if !ok {
		t.Fatal("bob's response not recorded")
	}
	if r.Response != models.ResponseAccept {
		t.Errorf("response = %v, want accept", r.Response)
	}

	// Responding again overwrites, last write wins
	f.now = f.now.Add(time.Hour)
	if err := f.service.RespondToInvitation(inv.InvitationID, bob, models.ResponseDecline); err != nil {
		t.Fatalf("second RespondToInvitation() error = %v", err)
	}
	got, _ = f.service.GetInvitation(inv.InvitationID)
	if len(got.Responses) != 1 {
		t.Errorf("got %d responses, want 1", len(got.Responses))
	}
	if got.Responses["u-bob"].Response != models.ResponseDecline {
		t.Errorf("response = %v, want decline after overwrite", got.Responses["u-bob"].Response)
	}
}

func TestRespondToInvitationValidation(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil)
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	if err := f.service.RespondToInvitation(inv.InvitationID, bob, "maybe"); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
	if err := f.service.RespondToInvitation("no-such-id", bob, models.ResponseAccept); !errors.Is(err, ErrInvitationNotFound) {
		t.Errorf("error = %v, want ErrInvitationNotFound", err)
	}
}

func TestSubmitEvaluationAndResults(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, map[string]interface{}{
		"coffee_name": "El Paraiso",
	})
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	if err := f.service.SubmitEvaluation(inv.InvitationID, alice, models.EvaluationPayload{
		"overall_score": 88.0,
		"aroma":         8.5,
		"flavor":        8.0,
		"acidity":       8.0,
		"body":          7.5,
		"notes":         "jasmine, peach",
	}); err != nil {
		t.Fatalf("SubmitEvaluation() error = %v", err)
	}

	f.now = f.now.Add(time.Minute)
	if err := f.service.SubmitEvaluation(inv.InvitationID, bob, models.EvaluationPayload{
		"overall_score": 86.0,
		"aroma":         8.0,
		"flavor":        8.5,
		"acidity":       7.5,
		// body intentionally missing
	}); err != nil {
		t.Fatalf("SubmitEvaluation() error = %v", err)
	}

	results, err := f.service.SessionResults(inv.InvitationID)
	if err != nil {
		t.Fatalf("SessionResults() error = %v", err)
	}

	if results.Participants != 2 {
		t.Errorf("Participants = %d, want 2", results.Participants)
	}
	if results.CoffeeName != "El Paraiso" {
		t.Errorf("CoffeeName = %v, want El Paraiso", results.CoffeeName)
	}
	if got := results.Averages["overall_score"]; got != 87.0 {
		t.Errorf("overall_score average = %v, want 87", got)
	}
	// Bob skipped body, so only alice's value counts
	if got := results.Averages["body"]; got != 7.5 {
		t.Errorf("body average = %v, want 7.5", got)
	}

	// Individual results in submission order
	if len(results.IndividualResults) != 2 {
		t.Fatalf("got %d individual results, want 2", len(results.IndividualResults))
	}
	if results.IndividualResults[0].UserName != "alice" || results.IndividualResults[1].UserName != "bob" {
		t.Errorf("individual results out of order: %v then %v",
			results.IndividualResults[0].UserName, results.IndividualResults[1].UserName)
	}
}

func TestSessionResultsNoEvaluations(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil)
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	results, err := f.service.SessionResults(inv.InvitationID)
	if err != nil {
		t.Fatalf("SessionResults() error = %v", err)
	}
	if results.Participants != 0 {
		t.Errorf("Participants = %d, want 0", results.Participants)
	}
	for _, key := range AggregateKeys {
		if results.Averages[key] != 0 {
			t.Errorf("average %s = %v, want 0", key, results.Averages[key])
		}
	}
	if len(results.IndividualResults) != 0 {
		t.Errorf("got %d individual results, want 0", len(results.IndividualResults))
	}
}

func TestSubmitEvaluationOverwrites(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil)
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	if err := f.service.SubmitEvaluation(inv.InvitationID, bob, models.EvaluationPayload{"overall_score": 80.0}); err != nil {
		t.Fatalf("SubmitEvaluation() error = %v", err)
	}
	if err := f.service.SubmitEvaluation(inv.InvitationID, bob, models.EvaluationPayload{"overall_score": 90.0}); err != nil {
		t.Fatalf("second SubmitEvaluation() error = %v", err)
	}

	results, err := f.service.SessionResults(inv.InvitationID)
	if err != nil {
		t.Fatalf("SessionResults() error = %v", err)
	}
	if results.Participants != 1 {
		t.Errorf("Participants = %d, want 1", results.Participants)
	}
	if got := results.Averages["overall_score"]; got != 90.0 {
		t.Errorf("overall_score = %v, want 90 after overwrite", got)
	}
}

func TestGetSentInvitations(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	if _, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil); err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	sent, err := f.service.GetSentInvitations("u-alice")
	if err != nil {
		t.Fatalf("GetSentInvitations() error = %v", err)
	}
	if len(sent) != 1 {
		t.Errorf("got %d sent invitations, want 1", len(sent))
	}

	sent, err = f.service.GetSentInvitations("u-bob")
	if err != nil {
		t.Fatalf("GetSentInvitations() error = %v", err)
	}
	if len(sent) != 0 {
		t.Errorf("got %d sent invitations for bob, want 0", len(sent))
	}
}

func TestAnonymousInviterName(t *testing.T) {
	alice := testUser("u-alice", "alice")
	alice.ShowName = false
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	inv, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil)
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}
	if inv.InviterName != "Anonymous" {
		t.Errorf("InviterName = %v, want Anonymous", inv.InviterName)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	alice := testUser("u-alice", "alice")
	bob := testUser("u-bob", "bob")
	f := newFixture(t, alice, bob)

	if _, err := f.service.CreateInvitation(context.Background(), alice, []string{"bob"}, nil); err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	notifications, _ := f.service.Notifications("u-bob")
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	id := notifications[0].NotificationID

	// Another user cannot mark bob's notification
	if err := f.service.MarkNotificationRead(id, "u-alice"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("error = %v, want ErrNotificationNotFound for wrong user", err)
	}

	if err := f.service.MarkNotificationRead(id, "u-bob"); err != nil {
		t.Fatalf("MarkNotificationRead() error = %v", err)
	}
	notifications, _ = f.service.Notifications("u-bob")
	if !notifications[0].IsRead {
		t.Error("notification should be read")
	}
}
