package userapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogly/internal/config"
	"blogly/internal/core/apperr"
	"blogly/internal/core/forms"
	userEntity "blogly/internal/core/user"
	sessionPort "blogly/internal/ports/session"
	userPort "blogly/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "blogly"

// dummyHash is compared against when the email is unknown so that a failed
// login costs the same whether or not the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("blogly-dummy-password"), bcrypt.DefaultCost)

// UserService registers and authenticates users and manages their sessions.
type UserService struct {
	UserRepository userPort.UserRepository
	Revoker        sessionPort.Revoker // optional
	secret         []byte
	sessionTTL     time.Duration
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, revoker sessionPort.Revoker, secret []byte, sessionTTL time.Duration) *UserService {
	return &UserService{
		UserRepository: repo,
		Revoker:        revoker,
		secret:         secret,
		sessionTTL:     sessionTTL,
		now:            time.Now,
	}
}

// RegisterUser creates an account. The email is stored lower-cased.
func (s *UserService) RegisterUser(ctx context.Context, username, email, password, confirmPassword string) (*userPort.UserDTO, error) {
	if password != confirmPassword {
		return nil, apperr.New(apperr.PasswordMismatch, "The password confirmation does not match.")
	}
	email = forms.NormalizeEmail(email)

	exists, err := s.UserRepository.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "An account with this email or username already exists.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.Wrap(apperr.Validation, "Password is too long (at most 72 bytes).", err)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	})
	if err != nil {
		// Lost a race with a concurrent registration.
		if apperr.Is(err, apperr.Conflict) {
			return nil, apperr.Wrap(apperr.Conflict, "An account with this email or username already exists.", err)
		}
		return nil, err
	}

	config.Logger.Info("User registered", zap.String("userID", u.ID.String()), zap.String("username", u.Username))
	return toUserDTO(u), nil
}

// Authenticate checks an email and password pair. Both failure modes return
// the same InvalidCredentials error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*userPort.UserDTO, error) {
	invalid := apperr.New(apperr.InvalidCredentials, "Invalid email or password")

	u, err := s.UserRepository.FindByEmail(ctx, forms.NormalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		config.Logger.Info("Password check failed", zap.String("userID", u.ID.String()))
		return nil, invalid
	}
	return toUserDTO(u), nil
}

// StartSession issues a signed token for the user.
func (s *UserService) StartSession(ctx context.Context, userID string) (*userPort.Session, error) {
	expiresAt := s.now().Add(s.sessionTTL)
	claims := &jwt.StandardClaims{
		Id:        uuid.Must(uuid.NewV4()).String(),
		Subject:   userID,
		Issuer:    tokenIssuer,
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &userPort.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// EndSession revokes the token until its natural expiry. Tokens that no
// longer parse are already unusable and are ignored.
func (s *UserService) EndSession(ctx context.Context, token string) error {
	if s.Revoker == nil || token == "" {
		return nil
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}

	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.Revoker.Revoke(ctx, claims.Id, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// CurrentUser resolves a session token to its user. Any problem with the
// token, including a user that no longer exists, yields nil.
func (s *UserService) CurrentUser(ctx context.Context, token string) *userPort.UserDTO {
	if token == "" {
		return nil
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}

	if s.Revoker != nil {
		revoked, err := s.Revoker.IsRevoked(ctx, claims.Id)
		if err != nil {
			config.Logger.Error("Session revocation lookup failed", zap.Error(err))
			return nil
		}
		if revoked {
			return nil
		}
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return nil
	}
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		if !apperr.Is(err, apperr.NotFound) {
			config.Logger.Error("Loading session user failed", zap.String("userID", claims.Subject), zap.Error(err))
		}
		return nil
	}
	return toUserDTO(u)
}

func (s *UserService) parseToken(token string) (*jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Issuer != tokenIssuer || claims.Id == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

func toUserDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}
