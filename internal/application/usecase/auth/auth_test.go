package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*entity.User
	deleted []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

// fakePasswordService "hashes" by prefixing.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokenService struct {
	revoked       map[string]bool
	revokedUsers  []uuid.UUID
	issued        int
	refreshClaims map[string]*adapter.TokenClaims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{revoked: map[string]bool{}, refreshClaims: map[string]*adapter.TokenClaims{}}
}

func (f *fakeTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	f.issued++
	refresh := uuid.NewString()
	f.refreshClaims[refresh] = &adapter.TokenClaims{UserID: userID, Email: email}
	return &adapter.TokenPair{AccessToken: uuid.NewString(), RefreshToken: refresh}, nil
}

func (f *fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, ok := f.refreshClaims[token]
	if !ok || f.revoked[token] {
		return nil, domainerror.ErrInvalidToken
	}
	return claims, nil
}

func (f *fakeTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeTokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	f.revokedUsers = append(f.revokedUsers, userID)
	return nil
}

type fakeResetTokens struct {
	tokens map[string]*adapter.PasswordResetToken
}

func (f *fakeResetTokens) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	t := &adapter.PasswordResetToken{Token: uuid.NewString(), UserID: userID, Email: email, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	f.tokens[t.Token] = t
	return t, nil
}

func (f *fakeResetTokens) ValidateResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, domainerror.ErrInvalidResetToken
	}
	return t, nil
}

func (f *fakeResetTokens) InvalidateResetToken(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeEmailService struct {
	resets []adapter.QueuePasswordResetInput
}

func (f *fakeEmailService) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	f.resets = append(f.resets, input)
	return nil
}

func (f *fakeEmailService) QueueMonthlySummaryEmail(ctx context.Context, input adapter.QueueMonthlySummaryInput) error {
	return nil
}

// recorder implements the per-user stores and records which were cleared.
type recorder struct {
	cleared []string
}

func (r *recorder) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	return nil, nil
}
func (r *recorder) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	return nil, domainerror.ErrExpenseNotFound
}
func (r *recorder) Create(ctx context.Context, e *entity.Expense) error         { return nil }
func (r *recorder) Delete(ctx context.Context, id, userID uuid.UUID) error      { return nil }
func (r *recorder) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	r.cleared = append(r.cleared, "expenses")
	return nil
}

type settingsRecorder struct{ r *recorder }

func (s settingsRecorder) Get(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	return nil, domainerror.ErrSettingsNotFound
}
func (s settingsRecorder) Merge(ctx context.Context, userID uuid.UUID, patch adapter.SettingsPatch) error {
	return nil
}
func (s settingsRecorder) SaveFixedExpenses(ctx context.Context, userID uuid.UUID, items []entity.FixedExpenseItem, total decimal.Decimal) error {
	return nil
}
func (s settingsRecorder) Delete(ctx context.Context, userID uuid.UUID) error {
	s.r.cleared = append(s.r.cleared, "settings")
	return nil
}

type notesRecorder struct{ r *recorder }

func (n notesRecorder) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.QuickNote, error) {
	return nil, nil
}
func (n notesRecorder) FindByID(ctx context.Context, id uuid.UUID) (*entity.QuickNote, error) {
	return nil, domainerror.ErrNoteNotFound
}
func (n notesRecorder) Create(ctx context.Context, note *entity.QuickNote) error { return nil }
func (n notesRecorder) Update(ctx context.Context, note *entity.QuickNote) error { return nil }
func (n notesRecorder) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (n notesRecorder) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	n.r.cleared = append(n.r.cleared, "notes")
	return nil
}

type remindersRecorder struct{ r *recorder }

func (w remindersRecorder) Get(ctx context.Context, userID uuid.UUID) (*entity.WaterReminder, error) {
	return nil, domainerror.ErrReminderNotFound
}
func (w remindersRecorder) Save(ctx context.Context, reminder *entity.WaterReminder) error {
	return nil
}
func (w remindersRecorder) Delete(ctx context.Context, userID uuid.UUID) error {
	w.r.cleared = append(w.r.cleared, "reminder")
	return nil
}

func authCode(err error) domainerror.AuthErrorCode {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}

func TestRegisterUserUseCase(t *testing.T) {
	tests := []struct {
		name     string
		input    RegisterUserInput
		wantCode domainerror.AuthErrorCode
	}{
		{"valid", RegisterUserInput{Email: " Ana@Example.com ", Name: "Ana", Password: "secret123"}, ""},
		{"missing name", RegisterUserInput{Email: "ana@example.com", Password: "secret123"}, domainerror.ErrCodeMissingFields},
		{"invalid email", RegisterUserInput{Email: "ana", Name: "Ana", Password: "secret123"}, domainerror.ErrCodeInvalidEmail},
		{"weak password", RegisterUserInput{Email: "ana@example.com", Name: "Ana", Password: "short"}, domainerror.ErrCodeWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepo()
			out, err := NewRegisterUserUseCase(users, fakePasswordService{}, newFakeTokenService()).Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				if got := authCode(err); got != tt.wantCode {
					t.Errorf("code = %q, want %q", got, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.User.Email != "ana@example.com" {
				t.Errorf("email = %q, want normalized", out.User.Email)
			}
			if out.AccessToken == "" || out.RefreshToken == "" {
				t.Error("expected tokens")
			}
		})
	}
}

func TestRegisterUserUseCase_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewRegisterUserUseCase(users, fakePasswordService{}, newFakeTokenService())
	input := RegisterUserInput{Email: "ana@example.com", Name: "Ana", Password: "secret123"}

	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := uc.Execute(context.Background(), input)
	if authCode(err) != domainerror.ErrCodeEmailExists {
		t.Errorf("expected email exists, got %v", err)
	}
}

func TestLoginAndRefresh(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tokens := newFakeTokenService()
	user := entity.NewUser("ana@example.com", "Ana", "hashed:secret123")
	users.users[user.ID] = user

	login := NewLoginUserUseCase(users, fakePasswordService{}, tokens)
	for _, bad := range []LoginUserInput{
		{Email: "ana@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "secret123"},
	} {
		if _, err := login.Execute(ctx, bad); authCode(err) != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("login %s: expected invalid credentials, got %v", bad.Email, err)
		}
	}

	out, err := login.Execute(ctx, LoginUserInput{Email: "ANA@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refresh := NewRefreshTokenUseCase(tokens)
	rotated, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: out.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == out.RefreshToken {
		t.Error("expected a new refresh token")
	}
	if _, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: out.RefreshToken}); authCode(err) != domainerror.ErrCodeInvalidToken {
		t.Errorf("reusing a rotated token: expected invalid token, got %v", err)
	}

	if err := NewLogoutUserUseCase(tokens).Execute(ctx, LogoutUserInput{RefreshToken: rotated.RefreshToken}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: rotated.RefreshToken}); err == nil {
		t.Error("expected refresh after logout to fail")
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tokens := newFakeTokenService()
	resets := &fakeResetTokens{tokens: map[string]*adapter.PasswordResetToken{}}
	email := &fakeEmailService{}
	user := entity.NewUser("ana@example.com", "Ana", "hashed:secret123")
	users.users[user.ID] = user

	forgot := NewForgotPasswordUseCase(users, resets, email, "https://app.example.com")
	if _, err := forgot.Execute(ctx, ForgotPasswordInput{Email: "nobody@example.com"}); err != nil {
		t.Fatalf("unknown email should succeed: %v", err)
	}
	if len(email.resets) != 0 {
		t.Fatalf("expected no email for unknown account")
	}
	if _, err := forgot.Execute(ctx, ForgotPasswordInput{Email: "bad"}); authCode(err) != domainerror.ErrCodeInvalidEmail {
		t.Errorf("expected invalid email, got %v", err)
	}
	if _, err := forgot.Execute(ctx, ForgotPasswordInput{Email: "ana@example.com"}); err != nil {
		t.Fatalf("forgot: %v", err)
	}
	if len(email.resets) != 1 || len(resets.tokens) != 1 {
		t.Fatalf("expected one queued email and token, got %d/%d", len(email.resets), len(resets.tokens))
	}

	var token string
	for k := range resets.tokens {
		token = k
	}

	reset := NewResetPasswordUseCase(users, fakePasswordService{}, resets, tokens)
	if err := reset.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "short"}); authCode(err) != domainerror.ErrCodeWeakPassword {
		t.Errorf("expected weak password, got %v", err)
	}
	if err := reset.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "brand-new-pass"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if user.PasswordHash != "hashed:brand-new-pass" {
		t.Errorf("password not updated")
	}
	if len(tokens.revokedUsers) != 1 {
		t.Errorf("expected sessions revoked")
	}
	if err := reset.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "another-pass"}); authCode(err) != domainerror.ErrCodeInvalidResetToken {
		t.Errorf("token reuse: expected invalid reset token, got %v", err)
	}
}

func TestDeleteAccountUseCase(t *testing.T) {
	ctx := context.Background()

	newCase := func() (*DeleteAccountUseCase, *fakeUserRepo, *recorder, *entity.User) {
		users := newFakeUserRepo()
		user := entity.NewUser("ana@example.com", "Ana", "hashed:secret123")
		users.users[user.ID] = user
		rec := &recorder{}
		uc := NewDeleteAccountUseCase(users, fakePasswordService{}, newFakeTokenService(), AccountData{
			Expenses:  rec,
			Settings:  settingsRecorder{rec},
			Notes:     notesRecorder{rec},
			Reminders: remindersRecorder{rec},
		})
		return uc, users, rec, user
	}

	t.Run("requires confirmation", func(t *testing.T) {
		uc, _, rec, user := newCase()
		err := uc.Execute(ctx, DeleteAccountInput{UserID: user.ID, Password: "secret123", Confirmation: "delete"})
		if authCode(err) != domainerror.ErrCodeInvalidConfirmation {
			t.Errorf("expected invalid confirmation, got %v", err)
		}
		if len(rec.cleared) != 0 {
			t.Error("nothing should be deleted")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, _, _, user := newCase()
		err := uc.Execute(ctx, DeleteAccountInput{UserID: user.ID, Password: "nope", Confirmation: DeleteConfirmation})
		if authCode(err) != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("expected invalid credentials, got %v", err)
		}
	})

	t.Run("deletes everything", func(t *testing.T) {
		uc, users, rec, user := newCase()
		if err := uc.Execute(ctx, DeleteAccountInput{UserID: user.ID, Password: "secret123", Confirmation: DeleteConfirmation}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"expenses", "settings", "notes", "reminder"}
		if len(rec.cleared) != len(want) {
			t.Fatalf("cleared = %v, want %v", rec.cleared, want)
		}
		for i := range want {
			if rec.cleared[i] != want[i] {
				t.Errorf("cleared[%d] = %q, want %q", i, rec.cleared[i], want[i])
			}
		}
		if len(users.deleted) != 1 || users.deleted[0] != user.ID {
			t.Errorf("user not deleted")
		}
	})
}
