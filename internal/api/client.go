package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"kwiz-client/internal/domain"
	"kwiz-client/internal/logger"
)

// ErrServiceUnavailable wraps transport-level failures reaching the Kwiz API.
var ErrServiceUnavailable = errors.New("kwiz service unavailable")

// ErrRejected is returned when the server answers with success=false.
var ErrRejected = errors.New("request rejected by server")

const defaultTimeout = 10 * time.Second

// APIError carries a non-2xx response back to callers.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client issues JSON requests against the fixed Kwiz API base URL. It
// performs no retries and no caching; authenticated calls attach a bearer
// token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	log        *logger.Logger
}

// New builds a client for the given base URL. A nil httpClient gets a
// sane default timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        logger.New("api"),
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

type authEnvelope struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	Data    domain.User `json:"data"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type quizzesEnvelope struct {
	Data []domain.Quiz `json:"data"`
}

type createSessionRequest struct {
	QuizID int64  `json:"quiz_id"`
	Title  string `json:"title"`
}

type sessionEnvelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
}

type startRequest struct {
	IsTimerEnabled bool `json:"is_timer_enabled"`
}

type questionEnvelope struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

type answerRequest struct {
	AnswerID   int64 `json:"answer_id"`
	QuestionID int64 `json:"question_id"`
	Time       int   `json:"time"`
}

type answerEnvelope struct {
	Success bool `json:"success"`
	Points  int  `json:"points"`
}

// Login exchanges phone+password for a token and profile.
func (c *Client) Login(ctx context.Context, phone, password string) (domain.Credential, error) {
	var payload authEnvelope
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Phone: phone, Password: password}, &payload)
	if err != nil {
		return domain.Credential{}, err
	}
	if !payload.Success || payload.Token == "" {
		return domain.Credential{}, domain.ErrLoginFailed
	}
	return domain.Credential{Token: payload.Token, User: payload.Data}, nil
}

// Register creates an account and returns its credential.
func (c *Client) Register(ctx context.Context, name, phone, password string) (domain.Credential, error) {
	req := registerRequest{
		Name:                 name,
		Phone:                phone,
		Password:             password,
		PasswordConfirmation: password,
	}
	var payload authEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &payload); err != nil {
		return domain.Credential{}, err
	}
	if !payload.Success || payload.Token == "" {
		return domain.Credential{}, domain.ErrLoginFailed
	}
	return domain.Credential{Token: payload.Token, User: payload.Data}, nil
}

// Quizzes lists the quizzes visible to the authenticated user.
func (c *Client) Quizzes(ctx context.Context) ([]domain.Quiz, error) {
	var payload quizzesEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// Turmas lists the user's classes. The endpoint returns a bare array.
func (c *Client) Turmas(ctx context.Context) ([]domain.Turma, error) {
	var payload []domain.Turma
	if err := c.doJSON(ctx, http.MethodGet, "/turms", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// OverallStats fetches aggregate statistics for a user.
func (c *Client) OverallStats(ctx context.Context, userID int64) (domain.Stats, error) {
	var payload domain.Stats
	path := "/get-user-overall-stats/" + strconv.FormatInt(userID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return domain.Stats{}, err
	}
	return payload, nil
}

// CreateGameSession asks the server for a new play-through of quizID.
func (c *Client) CreateGameSession(ctx context.Context, quizID int64, title string) (domain.GameSession, error) {
	var payload sessionEnvelope
	err := c.doJSON(ctx, http.MethodPost, "/game-sessions", createSessionRequest{QuizID: quizID, Title: title}, &payload)
	if err != nil {
		return domain.GameSession{}, err
	}
	if !payload.Success || payload.Code == "" {
		return domain.GameSession{}, fmt.Errorf("create game session: %w", domain.ErrSessionRejected)
	}
	return domain.GameSession{Code: payload.Code, QuizID: quizID, Title: title}, nil
}

// StartGameSession begins the play-through and returns its first question.
func (c *Client) StartGameSession(ctx context.Context, code string) (*domain.Question, error) {
	var payload questionEnvelope
	path := "/game-sessions/" + code + "/start"
	if err := c.doJSON(ctx, http.MethodPost, path, startRequest{IsTimerEnabled: true}, &payload); err != nil {
		return nil, err
	}
	if !payload.Success || payload.Question == nil {
		return nil, fmt.Errorf("start game session: %w", domain.ErrSessionRejected)
	}
	return payload.Question, nil
}

// SubmitAnswer reports a selection with the remaining countdown seconds
// and returns the points the server awarded.
func (c *Client) SubmitAnswer(ctx context.Context, code string, answerID, questionID int64, remaining int) (domain.AnswerResult, error) {
	req := answerRequest{AnswerID: answerID, QuestionID: questionID, Time: remaining}
	var payload answerEnvelope
	path := "/game-sessions/" + code + "/answer"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &payload); err != nil {
		return domain.AnswerResult{}, err
	}
	if !payload.Success {
		return domain.AnswerResult{}, fmt.Errorf("submit answer: %w", ErrRejected)
	}
	return domain.AnswerResult{Points: payload.Points}, nil
}

// NextQuestion advances the play-through. A nil question with nil error
// means the session is complete.
func (c *Client) NextQuestion(ctx context.Context, code string) (*domain.Question, error) {
	var payload questionEnvelope
	path := "/game-sessions/" + code + "/next"
	if err := c.doJSON(ctx, http.MethodPost, path, struct{}{}, &payload); err != nil {
		return nil, err
	}
	if !payload.Success || payload.Question == nil {
		return nil, nil
	}
	return payload.Question, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := uuid.NewString()
	request.Header.Set("X-Request-ID", requestID)

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.log.WithRequestID(requestID).WithError(err).Warnf("%s %s failed", method, path)
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode, Message: response.Status}
		c.log.WithRequestID(requestID).Warnf("%s %s returned %d", method, path, response.StatusCode)
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(responseBody); err != nil {
		c.log.WithRequestID(requestID).WithError(err).Warnf("%s %s returned malformed JSON", method, path)
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return nil
}
