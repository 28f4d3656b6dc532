package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aquasolar-cloud/internal/domain"
	"aquasolar-cloud/internal/store"
)

const snapshotKeyPrefix = "aquasolar:status:"

// SnapshotKey key of a tenant's status snapshot document.
func SnapshotKey(tenantID string) string {
	return snapshotKeyPrefix + tenantID
}

// TenantFromSnapshotKey inverse of SnapshotKey, used by the fleet scan.
func TenantFromSnapshotKey(key string) string {
	return strings.TrimPrefix(key, snapshotKeyPrefix)
}

// StatusRepository the per-tenant status snapshot in the hot store.
type StatusRepository interface {
	// GetSnapshot returns (nil, nil) when the tenant has never reported.
	GetSnapshot(ctx context.Context, tenantID string) (*domain.StatusSnapshot, error)

	// SaveSnapshot overwrites the tenant's snapshot document.
	SaveSnapshot(ctx context.Context, tenantID string, snap *domain.StatusSnapshot) error

	// ListSnapshots returns every stored snapshot keyed by tenant ID.
	ListSnapshots(ctx context.Context) (map[string]*domain.StatusSnapshot, error)
}

// KVStatusRepository StatusRepository over the KV store.
type KVStatusRepository struct {
	kv store.KV
}

func NewKVStatusRepository(kv store.KV) *KVStatusRepository {
	return &KVStatusRepository{kv: kv}
}

var _ StatusRepository = (*KVStatusRepository)(nil)

func (r *KVStatusRepository) GetSnapshot(ctx context.Context, tenantID string) (*domain.StatusSnapshot, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}

	val, err := r.kv.Get(ctx, SnapshotKey(tenantID))
	if err != nil {
		if err == store.ErrMiss {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap domain.StatusSnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (r *KVStatusRepository) SaveSnapshot(ctx context.Context, tenantID string, snap *domain.StatusSnapshot) error {
	if tenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}
	if snap == nil {
		return fmt.Errorf("snapshot is required")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// No TTL: the snapshot is the current state, not a cache entry.
	// Liveness is derived from last_update, never from key expiry.
	if err := r.kv.Set(ctx, SnapshotKey(tenantID), string(data), 0); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *KVStatusRepository) ListSnapshots(ctx context.Context) (map[string]*domain.StatusSnapshot, error) {
	keys, err := r.kv.ScanKeys(ctx, snapshotKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshots: %w", err)
	}

	snaps := make(map[string]*domain.StatusSnapshot, len(keys))
	for _, key := range keys {
		val, err := r.kv.Get(ctx, key)
		if err != nil {
			if err == store.ErrMiss {
				continue // expired between scan and get
			}
			return nil, fmt.Errorf("failed to get snapshot %s: %w", key, err)
		}
		var snap domain.StatusSnapshot
		if err := json.Unmarshal([]byte(val), &snap); err != nil {
			continue // one bad document must not hide the rest of the fleet
		}
		snaps[TenantFromSnapshotKey(key)] = &snap
	}
	return snaps, nil
}
