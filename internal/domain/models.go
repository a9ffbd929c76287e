package domain

// User is the profile returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Credential is the persisted session state: an opaque bearer token plus
// the profile it was issued for. Replaced wholesale, never mutated.
type Credential struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Quiz summarizes a playable quiz; only the length of Questions is used.
type Quiz struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Questions      []struct{} `json:"questions"`
	IsTimerEnabled bool       `json:"isTimerEnabled"`
}

// QuestionCount reports how many questions the quiz carries.
func (q Quiz) QuestionCount() int {
	return len(q.Questions)
}

// Turma is a class the user belongs to.
type Turma struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Code    string     `json:"code"`
	Members []struct{} `json:"members"`
}

// Stats aggregates a user's overall play history.
type Stats struct {
	TotalQuizzes      int     `json:"totalQuizzes"`
	AverageScore      float64 `json:"averageScore"`
	TotalAchievements int     `json:"totalAchievements"`
}

// GameSession identifies one play-through to the server. The code is the
// handle for every subsequent call.
type GameSession struct {
	Code   string `json:"code"`
	QuizID int64  `json:"quiz_id,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Option is a possible answer. IsCorrect is the locally-known flag used
// for immediate styling only; the server stays authoritative for scoring.
type Option struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is fetched one at a time; each replaces the previous in client
// memory.
type Question struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	TimeLimit int      `json:"time_limit"`
	Options   []Option `json:"options"`
}

// Option returns the option with the given id, if present.
func (q Question) Option(id int64) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// AnswerResult is the server's acknowledgment of one submission.
type AnswerResult struct {
	Points int `json:"points"`
}
