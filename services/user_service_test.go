package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/repositories"
)

func newUserFixture() (UserService, repositories.UserRepository, *fakeIdentity) {
	repo := repositories.NewUserRepository(db.NewMemoryStore())
	idp := newFakeIdentity()
	return NewUserService(repo, idp, discardLogger()), repo, idp
}

func TestRegister_Defaults(t *testing.T) {
	svc, _, idp := newUserFixture()

	user, err := svc.Register(context.Background(), RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !idp.has(user.ID) || user.UID != user.ID {
		t.Fatalf("expected profile id to equal identity id, got id=%q uid=%q", user.ID, user.UID)
	}
	if user.Role != models.RolePlayer || user.Blacklisted {
		t.Errorf("unexpected role/blacklist: %q %v", user.Role, user.Blacklisted)
	}
	if len(user.GamesSignedUp) != 0 || len(user.GamesHistory) != 0 || user.GamesSignedUp == nil || user.GamesHistory == nil {
		t.Errorf("expected empty game sets, got %v %v", user.GamesSignedUp, user.GamesHistory)
	}
	if user.LanguagePreference != "en" {
		t.Errorf("expected default language en, got %q", user.LanguagePreference)
	}
	if user.CreatedAt == nil || user.UpdatedAt != nil {
		t.Errorf("expected only createdAt to be stamped")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, idp := newUserFixture()
	ctx := context.Background()

	cases := []RegisterInput{
		{Password: "secret123", Name: "Ann"},
		{Email: "ann@example.com", Name: "Ann"},
		{Email: "ann@example.com", Password: "secret123"},
		{Email: "not-an-email", Password: "secret123", Name: "Ann"},
		{Email: "ann@example.com", Password: "123", Name: "Ann"},
	}
	for _, in := range cases {
		if _, err := svc.Register(ctx, in); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Register(%+v): expected validation error, got %v", in, err)
		}
	}
	if len(idp.users) != 0 {
		t.Errorf("identity provider must not be called for invalid input")
	}

	if _, err := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})
	if !errors.Is(err, ErrUserEmailConflict) {
		t.Errorf("expected ErrUserEmailConflict, got %v", err)
	}
}

func TestRegister_RemovesIdentityWhenProfileWriteFails(t *testing.T) {
	store := &failingStore{Store: db.NewMemoryStore(), collection: "users", err: errors.New("quota exceeded")}
	idp := newFakeIdentity()
	svc := NewUserService(repositories.NewUserRepository(store), idp, discardLogger())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})
	if !errors.Is(err, ErrUserCreationFailed) {
		t.Fatalf("expected ErrUserCreationFailed, got %v", err)
	}
	if len(idp.users) != 0 {
		t.Fatalf("expected identity to be removed, still have %v", idp.users)
	}
}

func TestUpdateRole(t *testing.T) {
	svc, repo, _ := newUserFixture()
	ctx := context.Background()
	user, err := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.UpdateRole(ctx, user.ID, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if stored.Role != models.RolePlayer || stored.UpdatedAt != nil {
		t.Fatalf("invalid role must not touch the store, got %+v", stored)
	}

	if err := svc.UpdateRole(ctx, user.ID, models.RoleOrganizer); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	stored, _ = repo.GetByID(ctx, user.ID)
	if stored.Role != models.RoleOrganizer || stored.UpdatedAt == nil {
		t.Errorf("expected organizer with updatedAt, got %+v", stored)
	}

	if err := svc.UpdateRole(ctx, "missing", models.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	svc, repo, _ := newUserFixture()
	ctx := context.Background()
	user, _ := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})

	err := svc.UpdateUser(ctx, nil, user.ID, map[string]any{
		"uid":                "hijack",
		"languagePreference": "ru",
		"name":               "Anna",
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if stored.UID != user.ID || stored.LanguagePreference != "ru" || stored.Name != "Anna" {
		t.Errorf("unexpected profile after update: %+v", stored)
	}

	if err := svc.UpdateUser(ctx, nil, user.ID, map[string]any{"id": "x"}); !errors.Is(err, ErrEmptyUpdate) {
		t.Errorf("expected ErrEmptyUpdate, got %v", err)
	}
	if err := svc.UpdateUser(ctx, nil, user.ID, map[string]any{"role": "king"}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
	if err := svc.UpdateUser(ctx, nil, "missing", map[string]any{"name": "x"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetBlacklisted(t *testing.T) {
	svc, repo, _ := newUserFixture()
	ctx := context.Background()
	user, _ := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})

	if err := svc.SetBlacklisted(ctx, user.ID, true); err != nil {
		t.Fatalf("SetBlacklisted: %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if !stored.Blacklisted {
		t.Errorf("expected user to be blacklisted")
	}
	if err := svc.SetBlacklisted(ctx, user.ID, false); err != nil {
		t.Fatalf("SetBlacklisted: %v", err)
	}
	stored, _ = repo.GetByID(ctx, user.ID)
	if stored.Blacklisted {
		t.Errorf("expected user to be unblacklisted")
	}
	if err := svc.SetBlacklisted(ctx, "missing", true); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_Missing(t *testing.T) {
	svc, _, idp := newUserFixture()
	if err := svc.DeleteUser(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if idp.deleteCalls != 0 {
		t.Fatalf("identity provider must not be called, got %d calls", idp.deleteCalls)
	}
}

func TestDeleteUser_RemovesProfileAndIdentity(t *testing.T) {
	svc, repo, idp := newUserFixture()
	ctx := context.Background()
	user, _ := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})

	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := repo.GetByID(ctx, user.ID); !errors.Is(err, repositories.ErrUserNotFound) {
		t.Errorf("expected profile to be gone, got %v", err)
	}
	if idp.has(user.ID) {
		t.Errorf("expected identity to be gone")
	}
}

func TestDeleteUser_MissingIdentityCountsAsSuccess(t *testing.T) {
	svc, repo, idp := newUserFixture()
	ctx := context.Background()
	user, _ := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})
	delete(idp.users, user.ID)

	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := repo.GetByID(ctx, user.ID); !errors.Is(err, repositories.ErrUserNotFound) {
		t.Errorf("expected profile to be gone, got %v", err)
	}
}

func TestDeleteUser_RestoresProfileWhenIdentityDeleteFails(t *testing.T) {
	svc, repo, idp := newUserFixture()
	ctx := context.Background()
	user, _ := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})
	idp.deleteErr = errors.New("identity service unavailable")

	err := svc.DeleteUser(ctx, user.ID)
	if !errors.Is(err, ErrUserDeleteFailed) {
		t.Fatalf("expected ErrUserDeleteFailed, got %v", err)
	}
	restored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("expected profile to be restored, got %v", err)
	}
	if restored.Email != user.Email || restored.Role != user.Role {
		t.Errorf("restored profile differs: %+v", restored)
	}

	// Повтор после восстановления сервиса проходит.
	idp.deleteErr = nil
	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("retry DeleteUser: %v", err)
	}
}

func TestGetUsersByName(t *testing.T) {
	svc, _, _ := newUserFixture()
	ctx := context.Background()
	_, _ = svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})

	users, err := svc.GetUsersByName(ctx, "Ann")
	if err != nil || len(users) != 1 {
		t.Fatalf("expected one user, got %v %v", users, err)
	}
	if _, err := svc.GetUsersByName(ctx, "Bob"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRegister_LowercasesEmail(t *testing.T) {
	svc, repo, _ := newUserFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: " Ann@Example.COM ", Password: "secret123", Name: "Ann"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if stored.Email != "ann@example.com" {
		t.Errorf("expected lowercased email, got %q", stored.Email)
	}
}

func TestUpdateUser_CallerRestrictions(t *testing.T) {
	svc, repo, _ := newUserFixture()
	ctx := context.Background()
	ann, _ := svc.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "secret123", Name: "Ann"})
	bob, _ := svc.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "secret123", Name: "Bob"})
	admin := &models.User{ID: "root", Role: models.RoleAdmin}

	tests := []struct {
		name   string
		caller *models.User
		id     string
		fields map[string]any
		want   error
	}{
		{"own profile", ann, ann.ID, map[string]any{"name": "Anna"}, nil},
		{"someone else's profile", ann, bob.ID, map[string]any{"name": "Bobby"}, ErrForbiddenOperation},
		{"own role", ann, ann.ID, map[string]any{"role": "admin"}, ErrForbiddenOperation},
		{"own blacklist flag", ann, ann.ID, map[string]any{"blacklisted": false}, ErrForbiddenOperation},
		{"organizer is not an admin", &models.User{ID: bob.ID, Role: models.RoleOrganizer}, ann.ID, map[string]any{"name": "x"}, ErrForbiddenOperation},
		{"admin changes anyone", admin, bob.ID, map[string]any{"role": "organizer"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateUser(ctx, tt.caller, tt.id, tt.fields)
			if tt.want == nil && err != nil {
				t.Fatalf("UpdateUser: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	stored, _ := repo.GetByID(ctx, ann.ID)
	if stored.Role != models.RolePlayer || stored.Name != "Anna" {
		t.Errorf("unexpected profile after restricted updates: %+v", stored)
	}
	stored, _ = repo.GetByID(ctx, bob.ID)
	if stored.Role != models.RoleOrganizer || stored.Name != "Bob" {
		t.Errorf("unexpected profile after admin update: %+v", stored)
	}
}
