package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"design-folio/common/constant"
	"design-folio/model"
	"design-folio/outbound/store"
)

type AuthHttpTestSuite struct {
	suite.Suite

	Store   *store.Store
	PgxMock pgxmock.PgxPoolIface

	Cache     *redis.Client
	CacheMock redismock.ClientMock

	Handler AuthHttp
}

func (s *AuthHttpTestSuite) SetupTest() {
	rdb, mock := redismock.NewClientMock()
	s.Cache = rdb
	s.CacheMock = mock

	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Store = store.New(pool)

	s.Handler = AuthHttp{
		Store:    s.Store,
		Cache:    s.Cache,
		Validate: validator.New(),
		TimeNow: func() time.Time {
			return time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
		},

		secret:   []byte("test-secret"),
		tokenTTL: time.Hour,
	}

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *AuthHttpTestSuite) TearDownTest() {
	s.PgxMock.Close()

	if err := s.Cache.Close(); err != nil {
		s.T().Fatalf("failed to close redis mock: %v", err)
	}
}

func TestAuthHttpTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHttpTestSuite))
}

func (s *AuthHttpTestSuite) postLogin(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler.login(w, req)
	return w
}

func (s *AuthHttpTestSuite) TestLoginThrottled() {
	s.CacheMock.ExpectExists(fmt.Sprintf(constant.LoginThrottleLock, "admin@example.com")).
		SetVal(1)

	w := s.postLogin(`{"email": "admin@example.com", "password": "hunter2hunter2"}`)

	s.Equal(http.StatusTooManyRequests, w.Code)
	s.NoError(s.CacheMock.ExpectationsWereMet())
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *AuthHttpTestSuite) TestLoginUnknownEmailLocksAndRejects() {
	lockKey := fmt.Sprintf(constant.LoginThrottleLock, "ghost@example.com")

	s.CacheMock.ExpectExists(lockKey).SetVal(0)

	s.PgxMock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	s.CacheMock.ExpectSetNX(lockKey, true, constant.LoginThrottleLockTTL).SetVal(true)

	w := s.postLogin(`{"email": "ghost@example.com", "password": "hunter2hunter2"}`)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.JSONEq(`{"error":"Invalid email or password"}`, w.Body.String())

	s.NoError(s.CacheMock.ExpectationsWereMet())
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *AuthHttpTestSuite) TestLoginWrongPasswordLocksAndRejects() {
	lockKey := fmt.Sprintf(constant.LoginThrottleLock, "admin@example.com")

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	s.Require().NoError(err)

	s.CacheMock.ExpectExists(lockKey).SetVal(0)

	s.PgxMock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(int32(1), "admin@example.com", string(hash)))

	s.CacheMock.ExpectSetNX(lockKey, true, constant.LoginThrottleLockTTL).SetVal(true)

	w := s.postLogin(`{"email": "admin@example.com", "password": "wrong-password"}`)

	s.Equal(http.StatusUnauthorized, w.Code)

	s.NoError(s.CacheMock.ExpectationsWereMet())
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *AuthHttpTestSuite) TestLoginSuccessIssuesToken() {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	s.Require().NoError(err)

	s.CacheMock.ExpectExists(fmt.Sprintf(constant.LoginThrottleLock, "admin@example.com")).SetVal(0)

	s.PgxMock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(int32(1), "admin@example.com", string(hash)))

	w := s.postLogin(`{"email": "admin@example.com", "password": "correct-password"}`)

	s.Equal(http.StatusOK, w.Code)

	var resp model.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(time.Date(2025, time.March, 10, 10, 30, 0, 0, time.UTC), resp.ExpiresAt.UTC())

	parsed, err := jwt.Parse(resp.Token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.Handler.TimeNow))
	s.Require().NoError(err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	s.Require().True(ok)
	s.Equal("admin@example.com", claims["sub"])
	s.Equal(float64(1), claims["uid"])

	s.NoError(s.CacheMock.ExpectationsWereMet())
	s.NoError(s.PgxMock.ExpectationsWereMet())
}
