package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/espalier/internal/adapters/file"
	"github.com/aretw0/espalier/internal/adapters/redis"
	"github.com/aretw0/espalier/pkg/persistence/middleware"
	"github.com/aretw0/espalier/pkg/ports"
)

// Environment variables controlling where records live and how they are
// protected. Keys are hex encoded; 64 hex characters decode to the 32 bytes
// AES-256 needs.
const (
	StoreKeyEnv          = "ESPALIER_STORE_KEY"
	StoreFallbackKeysEnv = "ESPALIER_STORE_FALLBACK_KEYS"
	RedisAddrEnv         = "ESPALIER_REDIS_ADDR"
	RedisPasswordEnv     = "ESPALIER_REDIS_PASSWORD"
)

// ResolveStore builds the record store the CLI persists to. The default
// backend is the atomic file store under dir; setting ESPALIER_REDIS_ADDR
// switches to Redis and ignores dir. When ESPALIER_STORE_KEY is set the
// backend is wrapped with AES-GCM encryption, and
// ESPALIER_STORE_FALLBACK_KEYS may carry previous keys (comma separated) so
// records survive a rotation.
func ResolveStore(dir string) (ports.RecordStore, error) {
	var store ports.RecordStore
	if addr := os.Getenv(RedisAddrEnv); addr != "" {
		store = redis.New(addr, os.Getenv(RedisPasswordEnv), 0)
	} else {
		store = file.New(dir)
	}

	active := os.Getenv(StoreKeyEnv)
	if active == "" {
		return store, nil
	}

	key, err := decodeStoreKey(active)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StoreKeyEnv, err)
	}
	cfg := middleware.EncryptionConfig{ActiveKey: key}

	if raw := os.Getenv(StoreFallbackKeysEnv); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			fallback, err := decodeStoreKey(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", StoreFallbackKeysEnv, err)
			}
			cfg.FallbackKeys = append(cfg.FallbackKeys, fallback)
		}
	}

	return middleware.NewEncryptionMiddleware(cfg)(store), nil
}

func decodeStoreKey(raw string) ([]byte, error) {
	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must decode to 32 bytes (AES-256), got %d", len(key))
	}
	return key, nil
}
