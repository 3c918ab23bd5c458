// Package redisrepo keeps saves in hashes and the event journal in capped
// lists.
package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"runeforge/internal/app/ports"
	"runeforge/internal/domain/event"
)

const (
	DefaultPrefix   = "runeforge"
	DefaultEventCap = 1000
)

type Store struct {
	client   *redis.Client
	prefix   string
	eventCap int64
}

func Open(ctx context.Context, addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client, DefaultPrefix), nil
}

func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, eventCap: DefaultEventCap}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) saveKey(playerID string) string {
	return s.prefix + ":save:" + playerID
}

func (s *Store) eventsKey(playerID string) string {
	return s.prefix + ":events:" + playerID
}

type pipeKey struct{}

// writer returns the open MULTI pipeline when called inside RunInTx.
func (s *Store) writer(ctx context.Context) redis.Cmdable {
	if pipe, ok := ctx.Value(pipeKey{}).(redis.Pipeliner); ok {
		return pipe
	}
	return s.client
}

// RunInTx queues every write fn makes and sends them as one MULTI/EXEC.
// Reads inside fn see the state before the transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(pipeKey{}).(redis.Pipeliner); ok {
		return fn(ctx)
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return fn(context.WithValue(ctx, pipeKey{}, pipe))
	})
	return err
}

func (s *Store) Put(ctx context.Context, rec ports.SaveRecord) error {
	return s.writer(ctx).HSet(ctx, s.saveKey(rec.PlayerID), map[string]any{
		"payload":        rec.Payload,
		"schema_version": rec.SchemaVersion,
		"saved_at":       rec.SavedAt.UTC().UnixMilli(),
	}).Err()
}

func (s *Store) Get(ctx context.Context, playerID string) (ports.SaveRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.saveKey(playerID)).Result()
	if err != nil {
		return ports.SaveRecord{}, err
	}
	if len(fields) == 0 {
		return ports.SaveRecord{}, ports.ErrNotFound
	}
	payload, ok := fields["payload"]
	if !ok {
		return ports.SaveRecord{}, fmt.Errorf("%w: save %s: payload missing", ports.ErrCorruptRecord, playerID)
	}
	version, err := strconv.Atoi(fields["schema_version"])
	if err != nil {
		return ports.SaveRecord{}, fmt.Errorf("%w: save %s: schema_version: %v", ports.ErrCorruptRecord, playerID, err)
	}
	savedAt, err := strconv.ParseInt(fields["saved_at"], 10, 64)
	if err != nil {
		return ports.SaveRecord{}, fmt.Errorf("%w: save %s: saved_at: %v", ports.ErrCorruptRecord, playerID, err)
	}
	return ports.SaveRecord{
		PlayerID:      playerID,
		Payload:       []byte(payload),
		SchemaVersion: version,
		SavedAt:       time.UnixMilli(savedAt).UTC(),
	}, nil
}

func (s *Store) Delete(ctx context.Context, playerID string) error {
	n, err := s.client.Del(ctx, s.saveKey(playerID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Append pushes events to the head of the player's list, oldest first, and
// trims the list to the newest eventCap entries.
func (s *Store) Append(ctx context.Context, playerID string, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}
	values := make([]any, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		values = append(values, b)
	}
	w := s.writer(ctx)
	key := s.eventsKey(playerID)
	if err := w.LPush(ctx, key, values...).Err(); err != nil {
		return err
	}
	return w.LTrim(ctx, key, 0, s.eventCap-1).Err()
}

func (s *Store) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]event.Event, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	raw, err := s.client.LRange(ctx, s.eventsKey(playerID), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([]event.Event, 0, len(raw))
	for _, item := range raw {
		var e event.Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode event for %s: %w", playerID, err)
		}
		out = append(out, e)
	}
	return out, nil
}
