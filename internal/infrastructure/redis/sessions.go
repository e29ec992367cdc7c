package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"kawaiiCalc/internal/domain"
	"kawaiiCalc/internal/ports"
)

var _ ports.ISessionStore = (*SessionStore)(nil)

const (
	sessionPrefix = "calc:session:"
	// maxUpdateAttempts — сколько раз повторяем WATCH/MULTI при конкурентных нажатиях в одной сессии.
	maxUpdateAttempts = 10
)

// ErrSessionExists — сессия с таким id уже есть.
var ErrSessionExists = errors.New("session already exists")

// SessionStore хранит состояние калькулятора JSON-строкой по ключу calc:session:<id> с TTL.
type SessionStore struct {
	cli *Client
	ttl time.Duration
	log *slog.Logger
}

// NewSessionStore возвращает хранилище сессий.
func NewSessionStore(cli *Client, ttl time.Duration, log *slog.Logger) *SessionStore {
	return &SessionStore{cli: cli, ttl: ttl, log: log}
}

func sessionKey(id string) string {
	return sessionPrefix + id
}

func decodeState(b []byte) (domain.Keypad, error) {
	var state domain.Keypad
	if err := json.Unmarshal(b, &state); err != nil {
		return domain.Keypad{}, fmt.Errorf("decode session: %w", err)
	}
	if err := state.Validate(); err != nil {
		return domain.Keypad{}, fmt.Errorf("decode session: %w", err)
	}
	return state, nil
}

// Create сохраняет новое состояние. Существующий id не перезаписывается.
func (s *SessionStore) Create(ctx context.Context, id string, state domain.Keypad) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	ok, err := s.cli.SetNX(ctx, sessionKey(id), b, s.ttl).Result()
	if err != nil {
		s.log.Debug("session create failed", "session", id, "error", err)
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionExists, id)
	}
	return nil
}

// Get читает состояние сессии.
func (s *SessionStore) Get(ctx context.Context, id string) (domain.Keypad, error) {
	b, err := s.cli.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Keypad{}, domain.ErrSessionNotFound
		}
		s.log.Debug("session get failed", "session", id, "error", err)
		return domain.Keypad{}, err
	}
	return decodeState(b)
}

// Update меняет состояние в оптимистичной транзакции (WATCH/MULTI/EXEC) и продлевает TTL.
// Если ключ изменили параллельно, fn вызывается заново на свежем состоянии.
func (s *SessionStore) Update(ctx context.Context, id string, fn func(state *domain.Keypad) error) (domain.Keypad, error) {
	key := sessionKey(id)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		var out domain.Keypad
		err := s.cli.Watch(ctx, func(tx *redis.Tx) error {
			b, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return domain.ErrSessionNotFound
				}
				return err
			}
			state, err := decodeState(b)
			if err != nil {
				return err
			}
			if err := fn(&state); err != nil {
				return err
			}
			nb, err := json.Marshal(state)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, nb, s.ttl)
				return nil
			})
			if err != nil {
				return err
			}
			out = state
			return nil
		}, key)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			s.log.Debug("session update conflict, retry", "session", id, "attempt", attempt+1)
			continue
		}
		return domain.Keypad{}, err
	}
	return domain.Keypad{}, fmt.Errorf("session %s: too many concurrent updates", id)
}

// Delete удаляет сессию.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.cli.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
