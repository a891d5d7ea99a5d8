package remote

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/qiuyou/courtside/internal/auth"
	"github.com/qiuyou/courtside/internal/domain/user"
)

// MaxImageBytes bounds a single upload.
const MaxImageBytes = 5 << 20

const imageBaseURL = "https://img.courtside.local/"

var (
	codePattern  = regexp.MustCompile(`^\d{6}$`)
	phonePattern = regexp.MustCompile(`^1\d{10}$`)

	imageTypes = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
)

// Latency bounds the simulated round trip of each call.
type Latency struct {
	Min time.Duration
	Max time.Duration
}

// DefaultLatency matches a slow mobile link.
var DefaultLatency = Latency{Min: 200 * time.Millisecond, Max: time.Second}

type account struct {
	user         user.User
	passwordHash []byte
}

// Mock is an in-memory API.
type Mock struct {
	tokens   *auth.Tokens
	latency  Latency
	hashCost int

	mu       sync.Mutex
	byID     map[string]*account
	byLogin  map[string]*account
	payments map[string]*Payment
}

var _ API = (*Mock)(nil)

// NewMock creates a mock remote that signs sessions with tokens.
func NewMock(tokens *auth.Tokens, latency Latency) *Mock {
	return &Mock{
		tokens:   tokens,
		latency:  latency,
		hashCost: bcrypt.DefaultCost,
		byID:     make(map[string]*account),
		byLogin:  make(map[string]*account),
		payments: make(map[string]*Payment),
	}
}

// WithHashCost lowers bcrypt cost, for tests.
func (m *Mock) WithHashCost(cost int) *Mock {
	m.hashCost = cost
	return m
}

// Login authenticates by username or phone.
func (m *Mock) Login(ctx context.Context, account, password string) (*user.Session, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	acct, ok := m.byLogin[strings.ToLower(account)]
	m.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) != nil {
		return nil, user.ErrInvalidCredentials
	}
	return m.session(acct.user)
}

// SignUp creates an account.
func (m *Mock) SignUp(ctx context.Context, req user.SignUpRequest) (*user.Session, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), m.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	u := user.User{
		ID:         uuid.NewString(),
		Username:   strings.TrimSpace(req.Username),
		Nickname:   req.Nickname,
		Phone:      req.Phone,
		Email:      req.Email,
		Gender:     user.GenderUnknown,
		SkillLevel: "2.5",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.mu.Lock()
	if m.taken(u.Username) || (u.Phone != "" && m.taken(u.Phone)) {
		m.mu.Unlock()
		return nil, user.ErrAccountExists
	}
	m.store(&account{user: u, passwordHash: hash})
	m.mu.Unlock()

	return m.session(u)
}

// LoginPhone signs in with an SMS code, creating the account on first use.
func (m *Mock) LoginPhone(ctx context.Context, phone, code string) (*user.Session, error) {
	if !phonePattern.MatchString(phone) {
		return nil, user.ErrInvalidInput
	}
	if !codePattern.MatchString(code) {
		return nil, ErrInvalidCode
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	acct, ok := m.byLogin[phone]
	if !ok {
		now := time.Now()
		acct = &account{user: user.User{
			ID:         uuid.NewString(),
			Username:   phone,
			Nickname:   "用户" + phone[len(phone)-4:],
			Phone:      phone,
			Gender:     user.GenderUnknown,
			SkillLevel: "3.0",
			CreatedAt:  now,
			UpdatedAt:  now,
		}}
		m.store(acct)
	}
	u := acct.user
	m.mu.Unlock()

	return m.session(u)
}

// LoginWechat signs in with a WeChat authorization.
func (m *Mock) LoginWechat(ctx context.Context, profile WechatProfile) (*user.Session, error) {
	if strings.TrimSpace(profile.OpenID) == "" {
		return nil, user.ErrInvalidInput
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	key := "wechat:" + profile.OpenID
	m.mu.Lock()
	acct, ok := m.byLogin[key]
	if !ok {
		nickname := strings.TrimSpace(profile.Nickname)
		if nickname == "" {
			nickname = "微信用户"
		}
		now := time.Now()
		acct = &account{user: user.User{
			ID:         "wx_" + profile.OpenID,
			Username:   key,
			Nickname:   nickname,
			Avatar:     profile.Avatar,
			Gender:     user.GenderUnknown,
			SkillLevel: "3.0",
			Signature:  "微信用户",
			WechatID:   profile.OpenID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}}
		m.store(acct)
	}
	u := acct.user
	m.mu.Unlock()

	return m.session(u)
}

// CreatePayment opens a payment order and settles it immediately.
func (m *Mock) CreatePayment(ctx context.Context, registrationID, method string, amount float64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	if err := m.wait(ctx); err != nil {
		return "", err
	}

	p := &Payment{
		ID:             "pay_" + uuid.NewString(),
		RegistrationID: registrationID,
		Method:         method,
		Amount:         amount,
		State:          PaymentSucceeded,
		CreatedAt:      time.Now(),
	}
	m.mu.Lock()
	m.payments[p.ID] = p
	m.mu.Unlock()
	return p.ID, nil
}

// PaymentStatus looks a payment up.
func (m *Mock) PaymentStatus(ctx context.Context, paymentID string) (*Payment, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[paymentID]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	out := *p
	return &out, nil
}

// UploadImage accepts an image and returns its public URL.
func (m *Mock) UploadImage(ctx context.Context, filename string, size int64) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !imageTypes[ext] || size <= 0 || size > MaxImageBytes {
		return "", ErrInvalidImage
	}
	if err := m.wait(ctx); err != nil {
		return "", err
	}
	return imageBaseURL + uuid.NewString() + ext, nil
}

// taken must be called with mu held.
func (m *Mock) taken(login string) bool {
	_, ok := m.byLogin[strings.ToLower(login)]
	return ok
}

// store must be called with mu held.
func (m *Mock) store(acct *account) {
	m.byID[acct.user.ID] = acct
	m.byLogin[strings.ToLower(acct.user.Username)] = acct
	if acct.user.Phone != "" {
		m.byLogin[acct.user.Phone] = acct
	}
}

func (m *Mock) session(u user.User) (*user.Session, error) {
	token, expires, err := m.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &user.Session{Token: token, ExpiresAt: expires, User: u}, nil
}

func (m *Mock) wait(ctx context.Context) error {
	d := m.latency.Min
	if span := m.latency.Max - m.latency.Min; span > 0 {
		d += rand.N(span)
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
