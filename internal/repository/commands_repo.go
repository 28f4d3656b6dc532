package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/store"
)

const commandKeyPrefix = "aquasolar:command:"

// ErrNoCommand acknowledge was called with an empty mailbox.
var ErrNoCommand = errors.New("no command outstanding")

// CommandKey key of a tenant's command mailbox document.
func CommandKey(tenantID string) string {
	return commandKeyPrefix + tenantID
}

// CommandsRepository the single-slot command mailbox.
//
// The slot moves pending -> delivered -> executed. Set always rewrites the
// slot to pending (last write wins; an operator toggling twice before the
// unit polls loses the first command on purpose). Deliver is the only way a
// pending action reaches a field unit, so a command is handed out exactly
// once no matter which endpoint asked.
type CommandsRepository interface {
	// Get reads the slot without side effects. (nil, nil) when idle.
	Get(ctx context.Context, tenantID string) (*domain.Command, error)

	// Set overwrites the slot with a new pending command.
	Set(ctx context.Context, tenantID, action string, now time.Time) error

	// Deliver hands out a pending action and marks the slot delivered.
	// Returns domain.CommandNone, without transitioning, when the slot is
	// idle, already delivered, or executed.
	Deliver(ctx context.Context, tenantID string) (string, error)

	// Acknowledge marks the slot executed and returns the stored command.
	// ErrNoCommand when the mailbox has never been written.
	Acknowledge(ctx context.Context, tenantID string) (*domain.Command, error)
}

// KVCommandsRepository CommandsRepository over the KV store.
type KVCommandsRepository struct {
	kv store.KV
}

func NewKVCommandsRepository(kv store.KV) *KVCommandsRepository {
	return &KVCommandsRepository{kv: kv}
}

var _ CommandsRepository = (*KVCommandsRepository)(nil)

func (r *KVCommandsRepository) Get(ctx context.Context, tenantID string) (*domain.Command, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	val, err := r.kv.Get(ctx, CommandKey(tenantID))
	if err != nil {
		if err == store.ErrMiss {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get command: %w", err)
	}

	var cmd domain.Command
	if err := json.Unmarshal([]byte(val), &cmd); err != nil {
		return nil, fmt.Errorf("failed to unmarshal command: %w", err)
	}
	return &cmd, nil
}

func (r *KVCommandsRepository) Set(ctx context.Context, tenantID, action string, now time.Time) error {
	if tenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}
	if action != domain.CommandOn && action != domain.CommandOff {
		return fmt.Errorf("invalid command action %q", action)
	}

	return r.write(ctx, tenantID, &domain.Command{
		Action:    action,
		Status:    domain.CommandStatusPending,
		Timestamp: now,
	})
}

func (r *KVCommandsRepository) Deliver(ctx context.Context, tenantID string) (string, error) {
	cmd, err := r.Get(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if cmd == nil || cmd.Status != domain.CommandStatusPending || cmd.Action == domain.CommandNone {
		return domain.CommandNone, nil
	}

	cmd.Status = domain.CommandStatusDelivered
	if err := r.write(ctx, tenantID, cmd); err != nil {
		return "", err
	}
	return cmd.Action, nil
}

func (r *KVCommandsRepository) Acknowledge(ctx context.Context, tenantID string) (*domain.Command, error) {
	cmd, err := r.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, ErrNoCommand
	}

	cmd.Status = domain.CommandStatusExecuted
	if err := r.write(ctx, tenantID, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (r *KVCommandsRepository) write(ctx context.Context, tenantID string, cmd *domain.Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}
	if err := r.kv.Set(ctx, CommandKey(tenantID), string(data), 0); err != nil {
		return fmt.Errorf("failed to save command: %w", err)
	}
	return nil
}
