// Package store persists council conversations as JSON documents, one file
// per conversation under a data directory.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/jonboulle/clockwork"

	"github.com/Realcryptoplato/llm-council/internal/council"
	"github.com/Realcryptoplato/llm-council/internal/metrics"
	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

const (
	defaultListPoolSize = 16

	// idFormat produces ids that sort lexically in creation order.
	idFormat = "20060102T150405.000000000"

	maxTitleRunes = 50
)

// ErrNotFound is returned when a conversation id has no file on disk.
var ErrNotFound = errors.New("conversation not found")

// Message is a single turn in a conversation. Assistant turns carry the
// full council result so stored runs can be re-rendered later.
type Message struct {
	Role    string          `json:"role"`
	Content string          `json:"content,omitempty"`
	Tier    string          `json:"tier,omitempty"`
	Result  *council.Result `json:"result,omitempty"`
}

// Conversation is the on-disk document for one council run.
type Conversation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
}

// ConversationMetadata is the listing view of a conversation, without the
// message bodies.
type ConversationMetadata struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
}

type Config struct {
	Logger *slog.Logger
	Clock  clockwork.Clock

	// Dir is the data directory. It is created on first save.
	Dir string

	// ListPoolSize bounds concurrent file reads during List.
	ListPoolSize int
}

func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("dir is required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.ListPoolSize <= 0 {
		c.ListPoolSize = defaultListPoolSize
	}
	return nil
}

type Store struct {
	log *slog.Logger
	cfg *Config

	listPool pond.ResultPool[*Conversation]
}

func New(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}
	return &Store{
		log:      cfg.Logger,
		cfg:      cfg,
		listPool: pond.NewResultPool[*Conversation](cfg.ListPoolSize),
	}, nil
}

// NewConversation assembles the document for one completed council run.
func (s *Store) NewConversation(question string, tier string, result *council.Result) *Conversation {
	now := s.cfg.Clock.Now().UTC()
	return &Conversation{
		ID:        now.Format(idFormat),
		CreatedAt: now,
		Title:     conversationTitle(question),
		Messages: []Message{
			{Role: openrouter.RoleUser, Content: question},
			{Role: openrouter.RoleAssistant, Content: result.Answer, Tier: tier, Result: result},
		},
	}
}

// Save writes a conversation to disk, creating the data directory if
// needed.
func (s *Store) Save(conv *Conversation) error {
	path, err := s.path(conv.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create conversation file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(conv); err != nil {
		return fmt.Errorf("failed to encode conversation: %w", err)
	}

	metrics.ConversationsSavedTotal.Inc()
	if s.log != nil {
		s.log.Debug("store: saved conversation", "id", conv.ID, "path", path)
	}
	return nil
}

// Load reads one conversation by id. Returns ErrNotFound if no file
// exists for the id.
func (s *Store) Load(id string) (*Conversation, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation file: %w", err)
	}
	defer file.Close()

	var conv Conversation
	if err := json.NewDecoder(file).Decode(&conv); err != nil {
		return nil, fmt.Errorf("failed to decode conversation %s: %w", id, err)
	}
	return &conv, nil
}

// List returns metadata for every stored conversation, newest first.
// Unreadable files are skipped with a warning so one corrupt document
// does not hide the rest of the history.
func (s *Store) List(ctx context.Context) ([]ConversationMetadata, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	group := s.listPool.NewGroupContext(ctx)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		group.SubmitErr(func() (*Conversation, error) {
			conv, err := s.Load(id)
			if err != nil {
				if s.log != nil {
					s.log.Warn("store: skipping unreadable conversation", "id", id, "error", err)
				}
				return nil, nil
			}
			return conv, nil
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	list := make([]ConversationMetadata, 0, len(results))
	for _, conv := range results {
		if conv == nil {
			continue
		}
		list = append(list, ConversationMetadata{
			ID:           conv.ID,
			CreatedAt:    conv.CreatedAt,
			Title:        conv.Title,
			MessageCount: len(conv.Messages),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Delete removes one conversation by id. Returns ErrNotFound if no file
// exists for the id.
func (s *Store) Delete(id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// path maps an id to its file, rejecting ids that would escape the data
// directory.
func (s *Store) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid conversation id %q", id)
	}
	return filepath.Join(s.cfg.Dir, id+".json"), nil
}

// conversationTitle derives a short listing title from the first line of
// the question.
func conversationTitle(question string) string {
	title := strings.TrimSpace(question)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = strings.TrimSpace(string(runes[:maxTitleRunes])) + "..."
	}
	return title
}
