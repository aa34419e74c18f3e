package ecellweb

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrAlreadySubscribed is returned when the email is already on the list.
	ErrAlreadySubscribed = errors.New("ecellweb: already subscribed")
	// ErrAlreadyRegistered is returned when the email is already registered
	// for the event.
	ErrAlreadyRegistered = errors.New("ecellweb: already registered")
)

// Subscriber is a newsletter subscriber.
type Subscriber struct {
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Interests    []string  `json:"interests"`
	SubscribedAt time.Time `json:"subscribedAt"`
	Status       string    `json:"status"`
}

// Teammate is an additional participant on a team registration.
type Teammate struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

// Registration is an event sign-up.
type Registration struct {
	ID           string     `json:"id"`
	EventID      string     `json:"eventId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Department   string     `json:"department"`
	Year         string     `json:"year"`
	Experience   string     `json:"experience,omitempty"`
	Expectations string     `json:"expectations,omitempty"`
	TeamMembers  []Teammate `json:"teamMembers"`
	RegisteredAt time.Time  `json:"registeredAt"`
	Status       string     `json:"status"`
}

// Store wraps the local SQLite database holding newsletter subscribers and
// event registrations. Content itself lives in the content store.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed during writes; busy_timeout makes writers wait
	// instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database answers.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS subscribers (
    email TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    interests TEXT NOT NULL DEFAULT ',',
    subscribed_at TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active'
);
CREATE TABLE IF NOT EXISTS registrations (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    department TEXT NOT NULL,
    year TEXT NOT NULL,
    experience TEXT NOT NULL DEFAULT '',
    expectations TEXT NOT NULL DEFAULT '',
    team_members TEXT NOT NULL DEFAULT '[]',
    registered_at TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'confirmed',
    UNIQUE (event_id, email)
);
CREATE INDEX IF NOT EXISTS registrations_event ON registrations (event_id);
`)
	return err
}

// AddSubscriber stores sub. The email is lower-cased; an email already on
// the list yields ErrAlreadySubscribed.
func (s *Store) AddSubscriber(sub Subscriber) error {
	email := strings.ToLower(strings.TrimSpace(sub.Email))
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now().UTC()
	}
	if sub.Status == "" {
		sub.Status = "active"
	}
	res, err := s.db.Exec(`INSERT INTO subscribers (email, name, interests, subscribed_at, status) VALUES (?, ?, ?, ?, ?) ON CONFLICT (email) DO NOTHING`,
		email, strings.TrimSpace(sub.Name), JoinList(sub.Interests), sub.SubscribedAt.Format(time.RFC3339), sub.Status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadySubscribed
	}
	return nil
}

// ListSubscribers returns all subscribers, newest first.
func (s *Store) ListSubscribers() ([]Subscriber, error) {
	rows, err := s.db.Query(`SELECT email, name, interests, subscribed_at, status FROM subscribers ORDER BY subscribed_at DESC, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []Subscriber{}
	for rows.Next() {
		var sub Subscriber
		var interests, at string
		if err := rows.Scan(&sub.Email, &sub.Name, &interests, &at, &sub.Status); err != nil {
			return nil, err
		}
		sub.Interests = ParseList(interests)
		sub.SubscribedAt, _ = time.Parse(time.RFC3339, at)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// SaveRegistration stores r. A second registration with the same email for
// the same event yields ErrAlreadyRegistered.
func (s *Store) SaveRegistration(r Registration) error {
	if r.RegisteredAt.IsZero() {
		r.RegisteredAt = time.Now().UTC()
	}
	if r.Status == "" {
		r.Status = "confirmed"
	}
	if r.TeamMembers == nil {
		r.TeamMembers = []Teammate{}
	}
	team, err := json.Marshal(r.TeamMembers)
	if err != nil {
		return fmt.Errorf("encode team members: %w", err)
	}
	res, err := s.db.Exec(`INSERT INTO registrations (id, event_id, name, email, phone, department, year, experience, expectations, team_members, registered_at, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT (event_id, email) DO NOTHING`,
		r.ID, r.EventID, r.Name, strings.ToLower(strings.TrimSpace(r.Email)), r.Phone, r.Department, r.Year,
		r.Experience, r.Expectations, string(team), r.RegisteredAt.Format(time.RFC3339), r.Status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyRegistered
	}
	return nil
}

// ListRegistrations returns registrations, newest first. An empty eventID
// lists every event.
func (s *Store) ListRegistrations(eventID string) ([]Registration, error) {
	query := `SELECT id, event_id, name, email, phone, department, year, experience, expectations, team_members, registered_at, status FROM registrations`
	var args []any
	if eventID != "" {
		query += ` WHERE event_id = ?`
		args = append(args, eventID)
	}
	query += ` ORDER BY registered_at DESC, id`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := []Registration{}
	for rows.Next() {
		var r Registration
		var team, at string
		if err := rows.Scan(&r.ID, &r.EventID, &r.Name, &r.Email, &r.Phone, &r.Department, &r.Year,
			&r.Experience, &r.Expectations, &team, &at, &r.Status); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(team), &r.TeamMembers); err != nil {
			return nil, fmt.Errorf("decode team members of %s: %w", r.ID, err)
		}
		r.RegisteredAt, _ = time.Parse(time.RFC3339, at)
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

// CountRegistrations returns the number of registrations for eventID.
func (s *Store) CountRegistrations(eventID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM registrations WHERE event_id = ?`, eventID).Scan(&n)
	return n, err
}

// JoinList encodes values as a comma-delimited string (e.g. ",a,b,") so that
// a single value can be matched with instr.
func JoinList(values []string) string {
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			normalized = append(normalized, v)
		}
	}
	if len(normalized) == 0 {
		return ","
	}
	return "," + strings.Join(normalized, ",") + ","
}

// ParseList splits a comma-delimited string (e.g. ",a,b,") into a slice.
func ParseList(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
