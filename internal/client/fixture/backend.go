// Package fixture is an in-process PhishShield API. Backend holds the
// accounts and canned data; Transport serves it to client.APIClient without
// a network, and the mockapi package serves it over HTTP.
package fixture

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrBadRequest         = errors.New("bad request")
)

// ErrorResponse maps a backend error to the HTTP status and error text the
// API answers with.
func ErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "Bad request"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// MsgEndpointNotFound is the error text for unknown routes.
const MsgEndpointNotFound = "Endpoint not found"

const DefaultTokenTTL = 24 * time.Hour

// AccountStore persists accounts between processes. metadata.Repository
// satisfies it.
type AccountStore interface {
	Set(ctx context.Context, key string, value []byte) error
	List(ctx context.Context) (map[string][]byte, error)
}

// AccountKeyPrefix prefixes the AccountStore keys of stored accounts.
const AccountKeyPrefix = "fixture.account."

type Options struct {
	// Secret signs the issued tokens. A random secret is generated when
	// empty, so tokens do not survive a restart.
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
	// Accounts, when set, receives every account change. LoadAccounts
	// reads it back.
	Accounts AccountStore
}

type account struct {
	user models.User
	hash []byte
}

type storedAccount struct {
	User models.User `json:"user"`
	Hash []byte      `json:"hash"`
}

type Backend struct {
	secret []byte
	ttl    time.Duration
	cost   int
	store  AccountStore

	now   func() time.Time
	newID func() string
	pick  func(n int) int

	mu       sync.Mutex
	accounts map[string]*account
	byEmail  map[string]string
}

// NewBackend returns a backend seeded with the demo account.
func NewBackend(opts Options) (*Backend, error) {
	b := &Backend{
		secret:   opts.Secret,
		ttl:      opts.TokenTTL,
		cost:     opts.BcryptCost,
		store:    opts.Accounts,
		now:      time.Now,
		newID:    uuid.NewString,
		pick:     rand.IntN,
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
	}
	if len(b.secret) == 0 {
		b.secret = []byte(uuid.NewString())
	}
	if b.ttl <= 0 {
		b.ttl = DefaultTokenTTL
	}
	if b.cost == 0 {
		b.cost = bcrypt.DefaultCost
	}

	demo := models.User{
		ID:          DemoUserID,
		Name:        DemoName,
		Email:       DemoEmail,
		PhoneNumber: DemoPhone,
		Credits:     DemoCredits,
		CreatedAt:   demoCreatedAt,
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), b.cost)
	if err != nil {
		return nil, fmt.Errorf("seed demo account: %w", err)
	}
	b.install(demo, hash)

	return b, nil
}

// LoadAccounts replaces the in-memory accounts with those found in the
// account store, the demo account included when it was changed before.
// Without a store it does nothing.
func (b *Backend) LoadAccounts(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	rows, err := b.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	loaded := make([]storedAccount, 0, len(rows))
	for key, value := range rows {
		if !strings.HasPrefix(key, AccountKeyPrefix) {
			continue
		}
		var sa storedAccount
		if err := json.Unmarshal(value, &sa); err != nil {
			return fmt.Errorf("decode account %s: %w", key, err)
		}
		loaded = append(loaded, sa)
	}
	// the newest account owns a re-registered email
	slices.SortFunc(loaded, func(x, y storedAccount) int {
		return cmp.Compare(x.User.CreatedAt.UnixNano(), y.User.CreatedAt.UnixNano())
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sa := range loaded {
		if old, ok := b.accounts[sa.User.ID]; ok {
			delete(b.byEmail, normalizeEmail(old.user.Email))
		}
		b.install(sa.User, sa.Hash)
	}
	return nil
}

func (b *Backend) install(u models.User, hash []byte) {
	b.accounts[u.ID] = &account{user: u, hash: hash}
	b.byEmail[normalizeEmail(u.Email)] = u.ID
}

// save writes acc to the account store. b.mu must be held.
func (b *Backend) save(ctx context.Context, acc *account) error {
	if b.store == nil {
		return nil
	}
	value, err := json.Marshal(storedAccount{User: acc.user, Hash: acc.hash})
	if err != nil {
		return err
	}
	if err := b.store.Set(ctx, AccountKeyPrefix+acc.user.ID, value); err != nil {
		return fmt.Errorf("save account %s: %w", acc.user.ID, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (b *Backend) Login(req models.LoginRequest) (models.AuthPayload, error) {
	b.mu.Lock()
	id, ok := b.byEmail[normalizeEmail(req.Email)]
	var acc account
	if ok {
		acc = *b.accounts[id]
	}
	b.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
		return models.AuthPayload{}, ErrInvalidCredentials
	}

	return b.issue(acc.user)
}

// Signup always creates a new account. Registering an email again points it
// at the newest account.
func (b *Backend) Signup(ctx context.Context, req models.SignupRequest) (models.AuthPayload, error) {
	u := models.User{
		ID:          b.newID(),
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Credits:     0,
		CreatedAt:   b.now().UTC(),
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), b.cost)
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	b.mu.Lock()
	acc := &account{user: u, hash: hash}
	err = b.save(ctx, acc)
	if err == nil {
		b.install(u, hash)
	}
	b.mu.Unlock()
	if err != nil {
		return models.AuthPayload{}, err
	}
	return b.issue(u)
}

func (b *Backend) issue(u models.User) (models.AuthPayload, error) {
	now := b.now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(b.ttl)),
		ID:        b.newID(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("sign token: %w", err)
	}
	return models.AuthPayload{Token: token, User: u}, nil
}

// Authenticate resolves a bearer token to its user id.
func (b *Backend) Authenticate(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return b.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(b.now),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrTokenExpired)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrInvalidToken)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[claims.Subject]; !ok {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

func (b *Backend) Profile(userID string) (models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return acc.user, nil
}

// UpdateProfile merges patch into the stored account and returns the full
// record.
func (b *Backend) UpdateProfile(ctx context.Context, userID string, patch models.UserPatch) (models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	updated := &account{user: patch.Apply(acc.user), hash: acc.hash}
	if err := b.save(ctx, updated); err != nil {
		return models.User{}, err
	}
	if patch.Email != nil && normalizeEmail(*patch.Email) != normalizeEmail(acc.user.Email) {
		delete(b.byEmail, normalizeEmail(acc.user.Email))
		b.byEmail[normalizeEmail(*patch.Email)] = userID
	}
	acc.user = updated.user
	return acc.user, nil
}

func (b *Backend) Dashboard() models.DashboardData {
	return dashboardData()
}

// Quiz returns the first count questions of the bank, all of them when
// count is not positive or exceeds the bank.
func (b *Backend) Quiz(count int) models.QuizSet {
	n := len(quizBank)
	if count > 0 && count < n {
		n = count
	}
	set := make(models.QuizSet, n)
	copy(set, quizBank[:n])
	return set
}

// Submit scores answers against the bank by question index. The earned
// credits are added to the account of userID; anonymous submissions are
// only scored.
func (b *Backend) Submit(ctx context.Context, userID string, answers models.QuizAnswers) (models.QuizResult, error) {
	res := models.QuizResult{TotalQuestions: len(answers)}
	for i, answer := range answers {
		if i >= 0 && i < len(quizBank) && quizBank[i].IsCorrect(answer) {
			res.CorrectAnswers++
		}
	}
	if res.TotalQuestions > 0 {
		res.Score = float64(res.CorrectAnswers) / float64(res.TotalQuestions) * 100
	}
	res.CreditsEarned = res.CorrectAnswers * CreditsPerCorrectAnswer
	if userID == "" {
		return res, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[userID]
	if !ok {
		return models.QuizResult{}, ErrUserNotFound
	}
	updated := &account{user: acc.user, hash: acc.hash}
	updated.user.Credits += res.CreditsEarned
	if err := b.save(ctx, updated); err != nil {
		return models.QuizResult{}, err
	}
	acc.user = updated.user
	return res, nil
}

func (b *Backend) Chat(req models.ChatRequest) (models.ChatReply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return models.ChatReply{}, fmt.Errorf("%w: message is required", ErrBadRequest)
	}
	return models.ChatReply{Message: chatReplies[b.pick(len(chatReplies))]}, nil
}
